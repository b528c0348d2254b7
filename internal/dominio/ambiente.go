package dominio

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Ambiente struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Nome          string    `gorm:"uniqueIndex;not null" json:"nome"`
	LimitePessoas int       `gorm:"not null" json:"limitePessoas"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a *Ambiente) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Ambiente) Validar() error {
	if a.Nome == "" {
		return Validacao("Nome do ambiente é obrigatório.")
	}
	if a.LimitePessoas < 1 {
		return Validacao("Limite de pessoas deve ser pelo menos 1.")
	}
	return nil
}

func (Ambiente) TableName() string {
	return "ambientes"
}
