package repositorio

import (
	"context"
	"fmt"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const msgPedidoNaoEncontrado = "Pedido não encontrado"

type Pedidos struct {
	db *gorm.DB
}

func (r *Pedidos) Criar(ctx context.Context, pedido *dominio.Pedido) error {
	return r.db.WithContext(ctx).Create(pedido).Error
}

func (r *Pedidos) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Pedido, error) {
	var pedido dominio.Pedido
	if err := r.db.WithContext(ctx).Preload("Itens").First(&pedido, "id = ?", id).Error; err != nil {
		return nil, traduzir(err, msgPedidoNaoEncontrado, "")
	}
	return &pedido, nil
}

// AtualizarStatus não mexe em pedidos já finalizados.
func (r *Pedidos) AtualizarStatus(ctx context.Context, id uuid.UUID, status dominio.StatusPedido) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&dominio.Pedido{}).
		Where("id = ? AND status <> ?", id, dominio.PedidoFinalizado).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	return conferirAlteracao(db, res, &dominio.Pedido{}, id, msgPedidoNaoEncontrado, dominio.Conflito("Pedido já finalizado."))
}

func (r *Pedidos) Listar(ctx context.Context, filtro servico.FiltroPedidos) ([]dominio.Pedido, int64, error) {
	q := r.db.WithContext(ctx).Model(&dominio.Pedido{})
	if filtro.MesaID != nil {
		q = q.Where("mesa_id = ?", *filtro.MesaID)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pedidos := []dominio.Pedido{}
	err := paginar(q, filtro.Pagina, filtro.Limite).
		Preload("Itens").
		Order("created_at DESC").
		Find(&pedidos).Error
	if err != nil {
		return nil, 0, err
	}
	return pedidos, total, nil
}

// ListarEntreguesDaMesa trava os pedidos para que a cozinha não mude o status
// durante o fechamento.
func (r *Pedidos) ListarEntreguesDaMesa(ctx context.Context, mesaID uuid.UUID) ([]dominio.Pedido, error) {
	var pedidos []dominio.Pedido
	err := r.db.WithContext(ctx).
		Clauses(travaExclusiva).
		Preload("Itens").
		Where("mesa_id = ? AND status = ?", mesaID, dominio.PedidoEntregue).
		Order("created_at ASC").
		Find(&pedidos).Error
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar pedidos entregues: %w", err)
	}
	return pedidos, nil
}

func (r *Pedidos) ContarPendentes(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&dominio.Pedido{}).
		Where("id IN ? AND status NOT IN ?", ids, []dominio.StatusPedido{dominio.PedidoEntregue, dominio.PedidoFinalizado}).
		Count(&n).Error
	return n, err
}

func (r *Pedidos) MarcarFinalizados(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&dominio.Pedido{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     dominio.PedidoFinalizado,
			"updated_at": time.Now(),
		}).Error
}
