package servico

import (
	"context"
	"errors"
	"fmt"

	"servico-restaurante/internal/dominio"

	"github.com/google/uuid"
)

const limitePadraoPedidos = 10

type PedidoServico struct {
	armazem     Armazem
	notificador Notificador
	agora       relogio
}

func NovoPedidoServico(armazem Armazem, notificador Notificador) *PedidoServico {
	return &PedidoServico{armazem: armazem, notificador: notificador, agora: agoraPadrao}
}

type ItemSolicitado struct {
	ProdutoID    uuid.UUID
	Quantidade   int
	Modificacoes string
}

type NovoPedido struct {
	MesaID        uuid.UUID
	NumeroAssento *int
	NomeCliente   *string
	GarcomID      *uuid.UUID
	Itens         []ItemSolicitado
}

// Criar lança o pedido na mesa: copia nome e preço dos produtos, baixa o
// estoque e ocupa a mesa se ela estava livre.
func (s *PedidoServico) Criar(ctx context.Context, np NovoPedido) (*dominio.Pedido, error) {
	if len(np.Itens) == 0 {
		return nil, dominio.Validacao("Nenhum item no pedido.")
	}

	var pedido *dominio.Pedido
	var mesa *dominio.Mesa
	ocupou := false

	err := s.armazem.Transacao(ctx, func(r Repositorios) error {
		var err error
		mesa, err = r.Mesas.BuscarParaAtualizar(ctx, np.MesaID)
		if err != nil {
			return err
		}
		if mesa.Status == dominio.MesaReservada {
			return dominio.Validacao("Mesa reservada não recebe pedidos.")
		}

		pedido = &dominio.Pedido{
			ID:            uuid.New(),
			MesaID:        mesa.ID,
			NumeroAssento: np.NumeroAssento,
			NomeCliente:   np.NomeCliente,
			GarcomID:      np.GarcomID,
			Status:        dominio.PedidoPendente,
		}
		for _, item := range np.Itens {
			if item.Quantidade < 1 {
				return dominio.Validacao("Quantidade deve ser pelo menos 1.")
			}
			produto, err := r.Produtos.BuscarPorID(ctx, item.ProdutoID)
			if errors.Is(err, dominio.ErrNaoEncontrado) {
				return dominio.NaoEncontrado(fmt.Sprintf("Produto com ID %s não encontrado", item.ProdutoID))
			}
			if err != nil {
				return err
			}
			if !produto.Ativo {
				return dominio.Validacao(fmt.Sprintf("Produto %s indisponível.", produto.Nome))
			}
			if err := r.Produtos.BaixarEstoque(ctx, produto.ID, item.Quantidade); err != nil {
				return err
			}
			pedido.Itens = append(pedido.Itens, dominio.ItemPedido{
				ID:            uuid.New(),
				PedidoID:      pedido.ID,
				ProdutoID:     produto.ID,
				Nome:          produto.Nome,
				Quantidade:    item.Quantidade,
				PrecoUnitario: produto.Preco,
				Modificacoes:  item.Modificacoes,
			})
		}
		pedido.CalcularTotal()

		if err := mesa.VincularPedido(pedido.ID, np.NumeroAssento, np.NomeCliente, pedido.Total); err != nil {
			return err
		}
		if err := r.Pedidos.Criar(ctx, pedido); err != nil {
			return fmt.Errorf("falha ao criar pedido: %w", err)
		}

		if mesa.Status == dominio.MesaLivre {
			agora := s.agora()
			if err := r.Mesas.TrocarStatus(ctx, mesa.ID, dominio.MesaLivre, dominio.MesaOcupada, &agora); err != nil {
				return err
			}
			mesa.Status = dominio.MesaOcupada
			mesa.OcupadaDesde = &agora
			ocupou = true
		}
		if mesa.GarcomID == nil && np.GarcomID != nil {
			mesa.GarcomID = np.GarcomID
		}
		return r.Mesas.Salvar(ctx, mesa)
	})
	if err != nil {
		return nil, err
	}

	notificar(ctx, s.notificador, dominio.EventoPedidoCriado, pedido)
	if ocupou {
		notificar(ctx, s.notificador, dominio.EventoMesaOcupada, mesa)
	}
	return pedido, nil
}

// AtualizarStatus é usado pelo salão e pela cozinha. Finalizado só é atingido
// no fechamento da mesa.
func (s *PedidoServico) AtualizarStatus(ctx context.Context, id uuid.UUID, status string) (*dominio.Pedido, error) {
	novo, err := dominio.ParseStatusPedido(status)
	if err != nil {
		return nil, err
	}

	repos := s.armazem.Repositorios()
	pedido, err := repos.Pedidos.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pedido.Status == dominio.PedidoFinalizado {
		return nil, dominio.Validacao("Pedido já finalizado.")
	}
	if err := repos.Pedidos.AtualizarStatus(ctx, id, novo); err != nil {
		return nil, err
	}
	pedido.Status = novo

	notificar(ctx, s.notificador, dominio.EventoPedidoAtualizado, pedido)
	return pedido, nil
}

func (s *PedidoServico) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Pedido, error) {
	return s.armazem.Repositorios().Pedidos.BuscarPorID(ctx, id)
}

func (s *PedidoServico) Listar(ctx context.Context, filtro FiltroPedidos) (*Pagina[dominio.Pedido], error) {
	filtro.Pagina, filtro.Limite = normalizarPaginacao(filtro.Pagina, filtro.Limite, limitePadraoPedidos)
	pedidos, total, err := s.armazem.Repositorios().Pedidos.Listar(ctx, filtro)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar pedidos: %w", err)
	}
	return novaPagina(pedidos, total, filtro.Pagina, filtro.Limite), nil
}
