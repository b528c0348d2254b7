package repositorio

import (
	"context"
	"time"

	"servico-restaurante/internal/dominio"

	"gorm.io/gorm"
)

// Outbox lê e marca os eventos gravados junto com o fechamento das mesas.
type Outbox struct {
	db *gorm.DB
}

func NovoOutbox(db *gorm.DB) *Outbox {
	return &Outbox{db: db}
}

func (o *Outbox) Pendentes(ctx context.Context, limite int) ([]dominio.EventoOutbox, error) {
	var eventos []dominio.EventoOutbox
	err := o.db.WithContext(ctx).
		Where("data_publicacao IS NULL").
		Order("id ASC").
		Limit(limite).
		Find(&eventos).Error
	return eventos, err
}

func (o *Outbox) MarcarPublicado(ctx context.Context, id int64, em time.Time) error {
	return o.db.WithContext(ctx).Model(&dominio.EventoOutbox{}).
		Where("id = ?", id).
		Update("data_publicacao", em).Error
}
