package servico

import (
	"context"
	"time"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
)

type FiltroMesas struct {
	Status     *dominio.StatusMesa
	AmbienteID *uuid.UUID
	Pagina     int
	Limite     int
}

type FiltroPedidos struct {
	MesaID *uuid.UUID
	Pagina int
	Limite int
}

type FiltroReservas struct {
	MesaID *uuid.UUID
	Status *dominio.StatusReserva
	Pagina int
	Limite int
}

type FiltroFinalizadas struct {
	NumeroMesa  *int
	DataInicial *time.Time
	DataFinal   *time.Time
	Pagina      int
	Limite      int
}

// MesaRepositorio devolve dominio.ErrNaoEncontrado nas buscas por id e
// dominio.ErrConflito quando uma troca condicional de status não afeta nenhuma
// linha.
type MesaRepositorio interface {
	Criar(ctx context.Context, mesa *dominio.Mesa) error
	Salvar(ctx context.Context, mesa *dominio.Mesa) error
	Excluir(ctx context.Context, id uuid.UUID) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Mesa, error)
	BuscarParaAtualizar(ctx context.Context, id uuid.UUID) (*dominio.Mesa, error)
	BuscarPorNumero(ctx context.Context, numero int) (*dominio.Mesa, error)
	Listar(ctx context.Context, filtro FiltroMesas) ([]dominio.Mesa, int64, error)
	// BuscarLivreParaGrupo devolve nil quando nenhuma mesa livre comporta o grupo.
	BuscarLivreParaGrupo(ctx context.Context, pessoas int) (*dominio.Mesa, error)
	TrocarStatus(ctx context.Context, id uuid.UUID, de, para dominio.StatusMesa, ocupadaDesde *time.Time) error
	// Liberar encerra a ocupação: status livre e garçom, pedidos, total e
	// assentos zerados. Só age sobre mesa ocupada.
	Liberar(ctx context.Context, id uuid.UUID) error
}

type FilaRepositorio interface {
	Criar(ctx context.Context, entrada *dominio.EntradaFila) error
	// Salvar grava só os dados do grupo; status e mesa têm escrita própria.
	Salvar(ctx context.Context, entrada *dominio.EntradaFila) error
	// Finalizar só grava se a entrada ainda estiver Aguardando.
	Finalizar(ctx context.Context, id uuid.UUID) error
	Excluir(ctx context.Context, id uuid.UUID) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.EntradaFila, error)
	// ProximaAguardando devolve nil quando ninguém cabe na capacidade.
	ProximaAguardando(ctx context.Context, capacidade int) (*dominio.EntradaFila, error)
	// Atribuir só grava se a entrada ainda estiver Aguardando e sem mesa.
	Atribuir(ctx context.Context, entrada *dominio.EntradaFila) error
	Listar(ctx context.Context, pagina, limite int) ([]dominio.EntradaFila, int64, error)
}

type ReservaRepositorio interface {
	Criar(ctx context.Context, reserva *dominio.Reserva) error
	Salvar(ctx context.Context, reserva *dominio.Reserva) error
	Excluir(ctx context.Context, id uuid.UUID) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Reserva, error)
	Listar(ctx context.Context, filtro FiltroReservas) ([]dominio.Reserva, int64, error)
	// ContarAtivas conta as reservas ativas da mesa, só no horário quando ele
	// é informado, ignorando a reserva exceto.
	ContarAtivas(ctx context.Context, mesaID uuid.UUID, horario *time.Time, exceto uuid.UUID) (int64, error)
}

type PedidoRepositorio interface {
	Criar(ctx context.Context, pedido *dominio.Pedido) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Pedido, error)
	AtualizarStatus(ctx context.Context, id uuid.UUID, status dominio.StatusPedido) error
	Listar(ctx context.Context, filtro FiltroPedidos) ([]dominio.Pedido, int64, error)
	ListarEntreguesDaMesa(ctx context.Context, mesaID uuid.UUID) ([]dominio.Pedido, error)
	// ContarPendentes conta os pedidos da lista que ainda não foram entregues.
	ContarPendentes(ctx context.Context, ids []uuid.UUID) (int64, error)
	MarcarFinalizados(ctx context.Context, ids []uuid.UUID) error
}

type ProdutoRepositorio interface {
	Criar(ctx context.Context, produto *dominio.Produto) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Produto, error)
	Listar(ctx context.Context) ([]dominio.Produto, error)
	// BaixarEstoque falha com dominio.ErrValidacao se não houver quantidade.
	BaixarEstoque(ctx context.Context, id uuid.UUID, quantidade int) error
}

type AmbienteRepositorio interface {
	Criar(ctx context.Context, ambiente *dominio.Ambiente) error
	Salvar(ctx context.Context, ambiente *dominio.Ambiente) error
	Excluir(ctx context.Context, id uuid.UUID) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Ambiente, error)
	Listar(ctx context.Context) ([]dominio.Ambiente, error)
}

type LiquidacaoRepositorio interface {
	CriarComanda(ctx context.Context, comanda *dominio.Comanda) error
	AnexarPDF(ctx context.Context, comandaID uuid.UUID, caminho string) error
	BuscarComanda(ctx context.Context, id uuid.UUID) (*dominio.Comanda, error)
	CriarMesaFinalizada(ctx context.Context, finalizada *dominio.MesaFinalizada) error
	AnexarPDFMesaFinalizada(ctx context.Context, comandaID uuid.UUID, caminho string) error
	ListarMesasFinalizadas(ctx context.Context, filtro FiltroFinalizadas) ([]dominio.MesaFinalizada, int64, error)
	RegistrarEvento(ctx context.Context, evento *dominio.EventoOutbox) error
}

type MensagemRepositorio interface {
	JaProcessada(ctx context.Context, id string) (bool, error)
	Registrar(ctx context.Context, id string) error
}

// Repositorios agrupa os repositórios de uma mesma unidade de trabalho.
type Repositorios struct {
	Mesas      MesaRepositorio
	Fila       FilaRepositorio
	Reservas   ReservaRepositorio
	Pedidos    PedidoRepositorio
	Produtos   ProdutoRepositorio
	Ambientes  AmbienteRepositorio
	Liquidacao LiquidacaoRepositorio
	Mensagens  MensagemRepositorio
}

// Armazem entrega os repositórios e abre transações. Dentro de Transacao os
// repositórios recebidos compartilham a mesma transação; um erro devolvido
// por fn desfaz tudo.
type Armazem interface {
	Repositorios() Repositorios
	Transacao(ctx context.Context, fn func(r Repositorios) error) error
}

// Notificador publica eventos de tempo real depois de cada mudança confirmada.
type Notificador interface {
	Broadcast(ctx context.Context, evento string, payload any) error
}

type GeradorRecibo interface {
	Gerar(ctx context.Context, comanda *dominio.Comanda) (string, error)
}

type CacheMesas interface {
	ObterDisponiveis(ctx context.Context) ([]dominio.Mesa, bool, error)
	GuardarDisponiveis(ctx context.Context, mesas []dominio.Mesa) error
}
