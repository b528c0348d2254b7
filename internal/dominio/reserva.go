package dominio

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusReserva string

const (
	ReservaAtiva     StatusReserva = "ativa"
	ReservaConcluida StatusReserva = "concluida"
	ReservaCancelada StatusReserva = "cancelada"
)

// ParseStatusReserva aceita o status em qualquer caixa.
func ParseStatusReserva(s string) (StatusReserva, error) {
	switch st := StatusReserva(strings.ToLower(strings.TrimSpace(s))); st {
	case ReservaAtiva, ReservaConcluida, ReservaCancelada:
		return st, nil
	}
	return "", Validacao("Status da reserva inválido.")
}

// Reserva prende uma mesa para um grupo num horário. Enquanto houver reserva
// ativa a mesa fica reservada.
type Reserva struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	NomeCliente   string        `gorm:"not null" json:"nomeCliente"`
	Telefone      string        `gorm:"not null" json:"telefone"`
	MesaID        uuid.UUID     `gorm:"type:uuid;not null;index:idx_reserva_horario" json:"mesaId"`
	Mesa          *Mesa         `gorm:"foreignKey:MesaID;constraint:OnDelete:CASCADE" json:"mesa,omitempty"`
	DataReserva   time.Time     `gorm:"not null;index:idx_reserva_horario" json:"dataReserva"`
	NumeroPessoas int           `gorm:"not null" json:"numeroPessoas"`
	Status        StatusReserva `gorm:"type:varchar(16);not null;index" json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (r *Reserva) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReservaAtiva
	}
	return nil
}

func (r *Reserva) Validar() error {
	if strings.TrimSpace(r.NomeCliente) == "" {
		return Validacao("Nome do cliente é obrigatório.")
	}
	if strings.TrimSpace(r.Telefone) == "" {
		return Validacao("Telefone é obrigatório.")
	}
	if r.MesaID == uuid.Nil {
		return Validacao("Mesa é obrigatória.")
	}
	if r.DataReserva.IsZero() {
		return Validacao("Data da reserva é obrigatória.")
	}
	if r.NumeroPessoas < 1 {
		return Validacao("Número de pessoas deve ser pelo menos 1.")
	}
	return nil
}

// Encerrar leva uma reserva ativa a concluída ou cancelada.
func (r *Reserva) Encerrar(para StatusReserva) error {
	if r.Status != ReservaAtiva {
		return Validacao("Só é possível alterar o status de uma reserva ativa.")
	}
	if para != ReservaConcluida && para != ReservaCancelada {
		return Validacao("Status da reserva inválido.")
	}
	r.Status = para
	return nil
}

func (Reserva) TableName() string {
	return "reservas"
}
