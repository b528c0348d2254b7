package dominio

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatusMesa string

const (
	MesaLivre     StatusMesa = "livre"
	MesaOcupada   StatusMesa = "ocupada"
	MesaReservada StatusMesa = "reservada"
)

// ParseStatusMesa aceita o status em qualquer caixa.
func ParseStatusMesa(s string) (StatusMesa, error) {
	switch StatusMesa(strings.ToLower(strings.TrimSpace(s))) {
	case MesaLivre:
		return MesaLivre, nil
	case MesaOcupada:
		return MesaOcupada, nil
	case MesaReservada:
		return MesaReservada, nil
	}
	return "", Validacao("Status inválido.")
}

type Mesa struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	NumeroMesa   int             `gorm:"uniqueIndex;not null" json:"numeroMesa"`
	AmbienteID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"ambienteId"`
	Ambiente     *Ambiente       `gorm:"foreignKey:AmbienteID" json:"ambiente,omitempty"`
	Capacidade   int             `gorm:"not null" json:"capacidade"`
	Status       StatusMesa      `gorm:"type:varchar(16);not null;index" json:"status"`
	Assentos     []Assento       `gorm:"foreignKey:MesaID;constraint:OnDelete:CASCADE" json:"assentos"`
	Pedidos      ListaUUID       `gorm:"type:jsonb;not null;default:'[]'" json:"pedidos"`
	GarcomID     *uuid.UUID      `gorm:"type:uuid" json:"garcomId,omitempty"`
	ValorTotal   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valorTotal"`
	OcupadaDesde *time.Time      `json:"occupiedSince"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Assento struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MesaID        uuid.UUID `gorm:"type:uuid;not null;index" json:"mesaId"`
	NumeroAssento int       `gorm:"not null" json:"numeroAssento"`
	NomeCliente   *string   `json:"nomeCliente"`
	Pedidos       ListaUUID `gorm:"type:jsonb;not null;default:'[]'" json:"pedidos"`
}

func (m *Mesa) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = MesaLivre
	}
	if m.Pedidos == nil {
		m.Pedidos = ListaUUID{}
	}
	return nil
}

func (a *Assento) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Pedidos == nil {
		a.Pedidos = ListaUUID{}
	}
	return nil
}

// NovaMesa monta uma mesa livre com um assento por lugar.
func NovaMesa(numero int, ambienteID uuid.UUID, capacidade int) (*Mesa, error) {
	if numero < 1 {
		return nil, Validacao("Número da mesa é obrigatório.")
	}
	if capacidade < 1 {
		return nil, Validacao("Capacidade deve ser pelo menos 1.")
	}
	m := &Mesa{
		ID:         uuid.New(),
		NumeroMesa: numero,
		AmbienteID: ambienteID,
		Capacidade: capacidade,
		Status:     MesaLivre,
		Pedidos:    ListaUUID{},
		ValorTotal: decimal.Zero,
	}
	m.Assentos = novosAssentos(m.ID, 1, capacidade)
	return m, nil
}

func novosAssentos(mesaID uuid.UUID, de, ate int) []Assento {
	assentos := make([]Assento, 0, ate-de+1)
	for i := de; i <= ate; i++ {
		assentos = append(assentos, Assento{
			ID:            uuid.New(),
			MesaID:        mesaID,
			NumeroAssento: i,
			Pedidos:       ListaUUID{},
		})
	}
	return assentos
}

// AjustarCapacidade mantém len(Assentos) == Capacidade.
func (m *Mesa) AjustarCapacidade(capacidade int) error {
	if capacidade < 1 {
		return Validacao("Capacidade deve ser pelo menos 1.")
	}
	if capacidade > len(m.Assentos) {
		m.Assentos = append(m.Assentos, novosAssentos(m.ID, len(m.Assentos)+1, capacidade)...)
	} else {
		m.Assentos = m.Assentos[:capacidade]
	}
	m.Capacidade = capacidade
	return nil
}

// PedidosReferenciados junta as referências da mesa e dos assentos, sem repetição.
func (m *Mesa) PedidosReferenciados() []uuid.UUID {
	vistos := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	add := func(lista ListaUUID) {
		for _, id := range lista {
			if _, ok := vistos[id]; ok {
				continue
			}
			vistos[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	add(m.Pedidos)
	for _, a := range m.Assentos {
		add(a.Pedidos)
	}
	return ids
}

// ValidarTransicao aplica as arestas permitidas do ciclo de vida. A checagem de
// pedidos pendentes para voltar a livre depende do armazenamento e fica no
// serviço.
func (m *Mesa) ValidarTransicao(para StatusMesa) error {
	switch para {
	case MesaOcupada:
		if m.Status != MesaLivre {
			return Validacao("Só é possível ocupar uma mesa livre.")
		}
	case MesaReservada:
		if m.Status != MesaLivre {
			return Validacao("Só é possível marcar como reservada se a mesa estiver livre.")
		}
	case MesaLivre:
	default:
		return Validacao("Status inválido.")
	}
	return nil
}

// VincularPedido registra o pedido na mesa e, se informado, no assento.
func (m *Mesa) VincularPedido(pedidoID uuid.UUID, numeroAssento *int, nomeCliente *string, total decimal.Decimal) error {
	if numeroAssento != nil {
		idx := -1
		for i := range m.Assentos {
			if m.Assentos[i].NumeroAssento == *numeroAssento {
				idx = i
				break
			}
		}
		if idx < 0 {
			return Validacao("Assento não existe nesta mesa.")
		}
		if !m.Assentos[idx].Pedidos.Contem(pedidoID) {
			m.Assentos[idx].Pedidos = append(m.Assentos[idx].Pedidos, pedidoID)
		}
		if nomeCliente != nil {
			m.Assentos[idx].NomeCliente = nomeCliente
		}
	}
	if !m.Pedidos.Contem(pedidoID) {
		m.Pedidos = append(m.Pedidos, pedidoID)
	}
	m.ValorTotal = Arredondar(m.ValorTotal.Add(total))
	return nil
}

// Limpar encerra o ciclo de ocupação.
func (m *Mesa) Limpar() {
	m.Status = MesaLivre
	m.GarcomID = nil
	m.Pedidos = ListaUUID{}
	m.ValorTotal = decimal.Zero
	m.OcupadaDesde = nil
	for i := range m.Assentos {
		m.Assentos[i].NomeCliente = nil
		m.Assentos[i].Pedidos = ListaUUID{}
	}
}

func (Mesa) TableName() string {
	return "mesas"
}

func (Assento) TableName() string {
	return "assentos"
}
