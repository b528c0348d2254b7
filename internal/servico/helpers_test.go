package servico_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/repositorio/memoria"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificadorFake struct {
	mu      sync.Mutex
	eventos []string
}

func (n *notificadorFake) Broadcast(_ context.Context, evento string, _ any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.eventos = append(n.eventos, evento)
	return nil
}

func (n *notificadorFake) Eventos() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.eventos...)
}

type geradorMock struct {
	mock.Mock
}

func (g *geradorMock) Gerar(ctx context.Context, comanda *dominio.Comanda) (string, error) {
	args := g.Called(ctx, comanda)
	return args.String(0), args.Error(1)
}

type relogioFake struct {
	mu    sync.Mutex
	atual time.Time
}

func (r *relogioFake) Agora() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.atual
}

func (r *relogioFake) Avancar(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.atual = r.atual.Add(d)
}

type cenario struct {
	armazem  *memoria.Armazem
	notif    *notificadorFake
	relogio  *relogioFake
	ambiente *dominio.Ambiente
	cadastro *servico.CadastroServico
	mesas    *servico.MesaServico
	fila     *servico.FilaServico
	pedidos  *servico.PedidoServico
}

func novoCenario(t *testing.T) *cenario {
	t.Helper()
	c := &cenario{
		armazem: memoria.Novo(),
		notif:   &notificadorFake{},
		relogio: &relogioFake{atual: time.Date(2024, 5, 10, 19, 0, 0, 0, time.UTC)},
	}
	c.cadastro = servico.NovoCadastroServico(c.armazem)
	c.mesas = servico.NovoMesaServico(c.armazem, c.notif, nil)
	c.mesas.DefinirRelogio(c.relogio.Agora)
	c.fila = servico.NovoFilaServico(c.armazem, c.notif)
	c.fila.DefinirRelogio(c.relogio.Agora)
	c.pedidos = servico.NovoPedidoServico(c.armazem, c.notif)
	c.pedidos.DefinirRelogio(c.relogio.Agora)

	amb, err := c.cadastro.CriarAmbiente(context.Background(), "Salão", 80)
	require.NoError(t, err)
	c.ambiente = amb
	return c
}

func (c *cenario) criarMesa(t *testing.T, numero, capacidade int) *dominio.Mesa {
	t.Helper()
	mesa, err := c.mesas.Criar(context.Background(), numero, c.ambiente.ID, capacidade)
	require.NoError(t, err)
	return mesa
}

func (c *cenario) criarProduto(t *testing.T, nome, preco string, estoque int) *dominio.Produto {
	t.Helper()
	p, err := c.cadastro.CriarProduto(context.Background(), nome, decimal.RequireFromString(preco), estoque)
	require.NoError(t, err)
	return p
}

func (c *cenario) mesa(t *testing.T, id uuid.UUID) *dominio.Mesa {
	t.Helper()
	m, err := c.mesas.BuscarPorID(context.Background(), id)
	require.NoError(t, err)
	return m
}

func (c *cenario) entrada(t *testing.T, id uuid.UUID) *dominio.EntradaFila {
	t.Helper()
	e, err := c.armazem.Repositorios().Fila.BuscarPorID(context.Background(), id)
	require.NoError(t, err)
	return e
}

func (c *cenario) novaEntrada(t *testing.T, nome string, pessoas int) *dominio.EntradaFila {
	t.Helper()
	telefone := "11999990000"
	e, err := c.fila.CriarEntrada(context.Background(), servico.DadosEntrada{
		Nome:          &nome,
		NumeroPessoas: &pessoas,
		Telefone:      &telefone,
	})
	require.NoError(t, err)
	return e
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
