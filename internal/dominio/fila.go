package dominio

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusFila string

const (
	FilaAguardando StatusFila = "Aguardando"
	FilaFinalizado StatusFila = "Finalizado"
)

type EntradaFila struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Nome            string     `gorm:"not null" json:"name"`
	NumeroPessoas   int        `gorm:"not null" json:"numberOfPeople"`
	Contato         string     `gorm:"not null;default:''" json:"contact"`
	Telefone        string     `gorm:"not null" json:"telefone"`
	Status          StatusFila `gorm:"type:varchar(16);not null;index" json:"status"`
	MesaID          *uuid.UUID `gorm:"type:uuid;index" json:"assignedTable"`
	Mesa            *Mesa      `gorm:"foreignKey:MesaID;constraint:OnDelete:SET NULL" json:"mesa,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;index" json:"createdAt"`
	AtribuidaEm     *time.Time `json:"assignedAt"`
	TempoAtribuicao int        `gorm:"not null;default:0" json:"timeToAssign"`
}

func (e *EntradaFila) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = FilaAguardando
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}

func (e *EntradaFila) Validar() error {
	if strings.TrimSpace(e.Nome) == "" {
		return Validacao("Nome é obrigatório.")
	}
	if e.NumeroPessoas < 1 {
		return Validacao("Número de pessoas deve ser pelo menos 1.")
	}
	if strings.TrimSpace(e.Telefone) == "" {
		return Validacao("Telefone é obrigatório.")
	}
	return nil
}

// PodeSerAtribuida indica se a entrada ainda espera mesa.
func (e *EntradaFila) PodeSerAtribuida() bool {
	return e.Status == FilaAguardando && e.MesaID == nil
}

// Atribuir preenche mesa, horário e o tempo de espera em minutos inteiros.
func (e *EntradaFila) Atribuir(mesaID uuid.UUID, em time.Time) {
	id := mesaID
	e.MesaID = &id
	e.AtribuidaEm = &em
	e.TempoAtribuicao = MinutosEntre(e.CreatedAt, em)
}

// OcupaMesa indica se a ocupação atual da mesa é a desta entrada. A mesa e a
// entrada recebem o mesmo instante quando o grupo é sentado; o banco guarda
// microssegundos.
func (e *EntradaFila) OcupaMesa(m *Mesa) bool {
	if e.MesaID == nil || *e.MesaID != m.ID || m.Status != MesaOcupada {
		return false
	}
	if e.AtribuidaEm == nil || m.OcupadaDesde == nil {
		return false
	}
	return e.AtribuidaEm.Truncate(time.Microsecond).Equal(m.OcupadaDesde.Truncate(time.Microsecond))
}

func (e *EntradaFila) Finalizar() error {
	if e.Status == FilaFinalizado {
		return Validacao("Essa entrada já está finalizada.")
	}
	e.Status = FilaFinalizado
	return nil
}

// MinutosEntre trunca para baixo; intervalos negativos contam como zero.
func MinutosEntre(de, ate time.Time) int {
	d := ate.Sub(de)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

func (EntradaFila) TableName() string {
	return "entradas_fila"
}
