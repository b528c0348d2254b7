package servico_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cenarioLiquidacao struct {
	*cenario
	gerador    *geradorMock
	liquidacao *servico.LiquidacaoServico
	mesaAlvo   *dominio.Mesa
	lancados   []*dominio.Pedido
}

// novoCenarioLiquidacao monta a mesa 10 ocupada com dois pedidos entregues
// somando 68,50.
func novoCenarioLiquidacao(t *testing.T) *cenarioLiquidacao {
	t.Helper()
	ctx := context.Background()
	c := novoCenario(t)
	cl := &cenarioLiquidacao{cenario: c, gerador: &geradorMock{}}
	cl.liquidacao = servico.NovoLiquidacaoServico(c.armazem, c.notif, cl.gerador)
	cl.liquidacao.DefinirRelogio(c.relogio.Agora)

	cl.mesaAlvo = c.criarMesa(t, 10, 4)
	feijoada := c.criarProduto(t, "Feijoada", "30", 20)
	suco := c.criarProduto(t, "Suco", "8.50", 20)

	garcom := uuid.New()
	p1, err := c.pedidos.Criar(ctx, servico.NovoPedido{
		MesaID:        cl.mesaAlvo.ID,
		NumeroAssento: ptr(2),
		NomeCliente:   ptr("Ana"),
		GarcomID:      &garcom,
		Itens:         []servico.ItemSolicitado{{ProdutoID: feijoada.ID, Quantidade: 2}},
	})
	require.NoError(t, err)
	p2, err := c.pedidos.Criar(ctx, servico.NovoPedido{
		MesaID: cl.mesaAlvo.ID,
		Itens:  []servico.ItemSolicitado{{ProdutoID: suco.ID, Quantidade: 1}},
	})
	require.NoError(t, err)

	for _, p := range []*dominio.Pedido{p1, p2} {
		_, err := c.pedidos.AtualizarStatus(ctx, p.ID, string(dominio.PedidoEntregue))
		require.NoError(t, err)
	}
	cl.lancados = []*dominio.Pedido{p1, p2}
	return cl
}

func TestLiquidacaoServico_FinalizarMesa(t *testing.T) {
	ctx := context.Background()
	cl := novoCenarioLiquidacao(t)
	cl.gerador.On("Gerar", mock.Anything, mock.AnythingOfType("*dominio.Comanda")).Return("recibos/comanda.pdf", nil).Once()

	res, err := cl.liquidacao.FinalizarMesa(ctx, cl.mesaAlvo.ID, servico.SolicitacaoFinalizacao{
		FormaPagamento: "dinheiro",
		ValorPago:      dec("100"),
	})
	require.NoError(t, err)
	cl.gerador.AssertExpectations(t)

	t.Run("totais e troco", func(t *testing.T) {
		assert.Equal(t, "68.5", res.Comanda.ValorTotal.String())
		assert.Equal(t, "68.5", res.Comanda.TotalComDesconto.String())
		assert.Equal(t, "31.5", res.Comanda.Troco.String())
		assert.Equal(t, dominio.DescontoNenhum, res.Comanda.TipoDesconto)
		require.NotNil(t, res.PdfPath)
		assert.Equal(t, "recibos/comanda.pdf", *res.PdfPath)
	})

	t.Run("comanda guarda cópia dos itens", func(t *testing.T) {
		comanda, err := cl.liquidacao.BuscarComanda(ctx, res.Comanda.ID)
		require.NoError(t, err)
		require.Len(t, comanda.Pedidos, 2)
		assert.Equal(t, 10, comanda.NumeroMesa)
		assert.ElementsMatch(t, []uuid.UUID{cl.lancados[0].ID, cl.lancados[1].ID}, []uuid.UUID(comanda.PedidoIDs))
		require.NotNil(t, comanda.PdfPath)
	})

	t.Run("garçom vem da mesa", func(t *testing.T) {
		require.NotNil(t, res.Comanda.GarcomID)
		assert.Equal(t, *cl.lancados[0].GarcomID, *res.Comanda.GarcomID)
	})

	t.Run("mesa volta limpa", func(t *testing.T) {
		mesa := cl.mesa(t, cl.mesaAlvo.ID)
		assert.Equal(t, dominio.MesaLivre, mesa.Status)
		assert.Empty(t, mesa.PedidosReferenciados())
		assert.Nil(t, mesa.GarcomID)
		assert.Nil(t, mesa.OcupadaDesde)
		assert.True(t, mesa.ValorTotal.IsZero())
		for _, a := range mesa.Assentos {
			assert.Nil(t, a.NomeCliente)
		}
	})

	t.Run("pedidos ficam finalizados", func(t *testing.T) {
		for _, p := range cl.lancados {
			salvo, err := cl.cenario.pedidos.BuscarPorID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, dominio.PedidoFinalizado, salvo.Status)
		}
	})

	t.Run("registra mesa finalizada e evento de saída", func(t *testing.T) {
		pagina, err := cl.liquidacao.ListarFinalizadas(ctx, servico.FiltroFinalizadas{NumeroMesa: ptr(10)})
		require.NoError(t, err)
		require.Len(t, pagina.Data, 1)
		assert.Equal(t, res.Comanda.ID, pagina.Data[0].ComandaID)

		eventos := cl.armazem.Eventos()
		require.Len(t, eventos, 1)
		assert.Equal(t, dominio.EventoOutboxMesaFinalizada, eventos[0].TipoEvento)
		assert.Equal(t, res.Comanda.ID, eventos[0].IdAgregado)
		assert.Contains(t, eventos[0].Payload, `"numeroMesa":10`)
	})

	t.Run("notifica fechamento e liberação", func(t *testing.T) {
		eventos := cl.notif.Eventos()
		assert.Equal(t, []string{dominio.EventoMesaFinalizada, dominio.EventoMesaLiberada}, eventos[len(eventos)-2:])
	})

	t.Run("segunda finalização é rejeitada", func(t *testing.T) {
		_, err := cl.liquidacao.FinalizarMesa(ctx, cl.mesaAlvo.ID, servico.SolicitacaoFinalizacao{
			FormaPagamento: "dinheiro",
			ValorPago:      dec("100"),
		})
		assert.ErrorIs(t, err, dominio.ErrValidacao)
		cl.gerador.AssertNumberOfCalls(t, "Gerar", 1)
	})
}

func TestLiquidacaoServico_FinalizarMesa_Rejeicoes(t *testing.T) {
	ctx := context.Background()

	t.Run("dinheiro insuficiente não altera nada", func(t *testing.T) {
		cl := novoCenarioLiquidacao(t)

		_, err := cl.liquidacao.FinalizarMesa(ctx, cl.mesaAlvo.ID, servico.SolicitacaoFinalizacao{
			FormaPagamento: "dinheiro",
			ValorPago:      dec("50"),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, dominio.ErrValidacao)
		assert.Equal(t, "Valor pago menor que o total com desconto", err.Error())

		mesa := cl.mesa(t, cl.mesaAlvo.ID)
		assert.Equal(t, dominio.MesaOcupada, mesa.Status)
		assert.Len(t, mesa.PedidosReferenciados(), 2)
		pagina, err := cl.liquidacao.ListarFinalizadas(ctx, servico.FiltroFinalizadas{})
		require.NoError(t, err)
		assert.Zero(t, pagina.Total)
		assert.Empty(t, cl.armazem.Eventos())
		cl.gerador.AssertNotCalled(t, "Gerar", mock.Anything, mock.Anything)
	})

	t.Run("mesa livre não pode ser finalizada", func(t *testing.T) {
		cl := novoCenarioLiquidacao(t)
		livre := cl.criarMesa(t, 20, 2)
		_, err := cl.liquidacao.FinalizarMesa(ctx, livre.ID, servico.SolicitacaoFinalizacao{FormaPagamento: "pix"})
		assert.ErrorIs(t, err, dominio.ErrValidacao)
	})

	t.Run("sem pedido entregue", func(t *testing.T) {
		cl := novoCenarioLiquidacao(t)
		mesa := cl.criarMesa(t, 21, 2)
		_, err := cl.mesas.AtualizarStatus(ctx, mesa.ID, "ocupada")
		require.NoError(t, err)

		_, err = cl.liquidacao.FinalizarMesa(ctx, mesa.ID, servico.SolicitacaoFinalizacao{FormaPagamento: "cartao"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Entregue")
	})

	t.Run("forma de pagamento inválida", func(t *testing.T) {
		cl := novoCenarioLiquidacao(t)
		_, err := cl.liquidacao.FinalizarMesa(ctx, cl.mesaAlvo.ID, servico.SolicitacaoFinalizacao{FormaPagamento: "cheque"})
		assert.ErrorIs(t, err, dominio.ErrValidacao)
	})

	t.Run("mesa inexistente", func(t *testing.T) {
		cl := novoCenarioLiquidacao(t)
		_, err := cl.liquidacao.FinalizarMesa(ctx, uuid.New(), servico.SolicitacaoFinalizacao{FormaPagamento: "pix"})
		assert.ErrorIs(t, err, dominio.ErrNaoEncontrado)
	})
}

func TestLiquidacaoServico_FinalizarMesa_Descontos(t *testing.T) {
	ctx := context.Background()

	t.Run("desconto percentual com taxa de serviço no cartão", func(t *testing.T) {
		cl := novoCenarioLiquidacao(t)
		cl.gerador.On("Gerar", mock.Anything, mock.Anything).Return("x.pdf", nil)

		res, err := cl.liquidacao.FinalizarMesa(ctx, cl.mesaAlvo.ID, servico.SolicitacaoFinalizacao{
			FormaPagamento:   "cartao",
			TipoDesconto:     "porcentagem",
			ValorDesconto:    dec("10"),
			ValorTaxaServico: dec("6.17"),
		})
		require.NoError(t, err)
		assert.Equal(t, "61.65", res.Comanda.TotalComDesconto.String())
		assert.Equal(t, "67.82", res.Totais.TotalAPagar.String())
		assert.True(t, res.Comanda.Troco.IsZero())
	})

	t.Run("desconto em valor acima do total zera", func(t *testing.T) {
		cl := novoCenarioLiquidacao(t)
		cl.gerador.On("Gerar", mock.Anything, mock.Anything).Return("x.pdf", nil)

		res, err := cl.liquidacao.FinalizarMesa(ctx, cl.mesaAlvo.ID, servico.SolicitacaoFinalizacao{
			FormaPagamento: "dinheiro",
			TipoDesconto:   "valor",
			ValorDesconto:  dec("100"),
		})
		require.NoError(t, err)
		assert.True(t, res.Comanda.TotalComDesconto.IsZero())
		assert.True(t, res.Comanda.Troco.IsZero())
	})
}

func TestLiquidacaoServico_FalhaNoPDF(t *testing.T) {
	ctx := context.Background()
	cl := novoCenarioLiquidacao(t)
	cl.gerador.On("Gerar", mock.Anything, mock.Anything).Return("", errors.New("disco cheio")).Once()

	garcom := uuid.New()
	res, err := cl.liquidacao.FinalizarMesa(ctx, cl.mesaAlvo.ID, servico.SolicitacaoFinalizacao{
		FormaPagamento: "pix",
		GarcomID:       &garcom,
	})
	require.NoError(t, err)
	assert.Nil(t, res.PdfPath)
	assert.Nil(t, res.Comanda.PdfPath)
	assert.Equal(t, garcom, *res.Comanda.GarcomID)
	assert.Equal(t, dominio.MesaLivre, cl.mesa(t, cl.mesaAlvo.ID).Status)

	t.Run("recibo pode ser gerado depois", func(t *testing.T) {
		cl.gerador.On("Gerar", mock.Anything, mock.Anything).Return("recibos/novo.pdf", nil).Once()

		comanda, err := cl.liquidacao.RegerarPDF(ctx, res.Comanda.ID)
		require.NoError(t, err)
		require.NotNil(t, comanda.PdfPath)
		assert.Equal(t, "recibos/novo.pdf", *comanda.PdfPath)

		pagina, err := cl.liquidacao.ListarFinalizadas(ctx, servico.FiltroFinalizadas{})
		require.NoError(t, err)
		require.Len(t, pagina.Data, 1)
		require.NotNil(t, pagina.Data[0].PdfPath)
		assert.Equal(t, "recibos/novo.pdf", *pagina.Data[0].PdfPath)
	})
}

func TestLiquidacaoServico_ListarFinalizadas(t *testing.T) {
	ctx := context.Background()
	cl := novoCenarioLiquidacao(t)
	cl.gerador.On("Gerar", mock.Anything, mock.Anything).Return("x.pdf", nil)

	_, err := cl.liquidacao.FinalizarMesa(ctx, cl.mesaAlvo.ID, servico.SolicitacaoFinalizacao{FormaPagamento: "pix"})
	require.NoError(t, err)

	inicio := cl.relogio.Agora().Add(time.Hour)
	pagina, err := cl.liquidacao.ListarFinalizadas(ctx, servico.FiltroFinalizadas{DataInicial: &inicio})
	require.NoError(t, err)
	assert.Zero(t, pagina.Total)

	outra := 99
	pagina, err = cl.liquidacao.ListarFinalizadas(ctx, servico.FiltroFinalizadas{NumeroMesa: &outra})
	require.NoError(t, err)
	assert.Zero(t, pagina.Total)

	fim := cl.relogio.Agora().Add(-time.Hour)
	agora := cl.relogio.Agora()
	_, err = cl.liquidacao.ListarFinalizadas(ctx, servico.FiltroFinalizadas{DataInicial: &agora, DataFinal: &fim})
	assert.ErrorIs(t, err, dominio.ErrValidacao)
}
