package repositorio

import (
	"context"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgReservaNaoEncontrada = "Reserva não encontrada"

type Reservas struct {
	db *gorm.DB
}

func (r *Reservas) Criar(ctx context.Context, reserva *dominio.Reserva) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(reserva).Error
}

func (r *Reservas) Salvar(ctx context.Context, reserva *dominio.Reserva) error {
	res := r.db.WithContext(ctx).Model(&dominio.Reserva{}).
		Where("id = ?", reserva.ID).
		Updates(map[string]interface{}{
			"nome_cliente":   reserva.NomeCliente,
			"telefone":       reserva.Telefone,
			"data_reserva":   reserva.DataReserva,
			"numero_pessoas": reserva.NumeroPessoas,
			"status":         reserva.Status,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dominio.NaoEncontrado(msgReservaNaoEncontrada)
	}
	return nil
}

func (r *Reservas) Excluir(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&dominio.Reserva{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return dominio.NaoEncontrado(msgReservaNaoEncontrada)
	}
	return nil
}

func (r *Reservas) BuscarPorID(ctx context.Context, id uuid.UUID) (*dominio.Reserva, error) {
	var reserva dominio.Reserva
	err := r.db.WithContext(ctx).
		Preload("Mesa.Ambiente").
		First(&reserva, "id = ?", id).Error
	if err != nil {
		return nil, traduzir(err, msgReservaNaoEncontrada, "")
	}
	return &reserva, nil
}

func (r *Reservas) Listar(ctx context.Context, filtro servico.FiltroReservas) ([]dominio.Reserva, int64, error) {
	q := r.db.WithContext(ctx).Model(&dominio.Reserva{})
	if filtro.MesaID != nil {
		q = q.Where("mesa_id = ?", *filtro.MesaID)
	}
	if filtro.Status != nil {
		q = q.Where("status = ?", *filtro.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	reservas := []dominio.Reserva{}
	err := paginar(q, filtro.Pagina, filtro.Limite).
		Preload("Mesa.Ambiente").
		Order("data_reserva ASC, id ASC").
		Find(&reservas).Error
	if err != nil {
		return nil, 0, err
	}
	return reservas, total, nil
}

func (r *Reservas) ContarAtivas(ctx context.Context, mesaID uuid.UUID, horario *time.Time, exceto uuid.UUID) (int64, error) {
	q := r.db.WithContext(ctx).Model(&dominio.Reserva{}).
		Where("mesa_id = ? AND status = ? AND id <> ?", mesaID, dominio.ReservaAtiva, exceto)
	if horario != nil {
		q = q.Where("data_reserva = ?", *horario)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
