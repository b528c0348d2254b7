package dominio

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatusPedido string

const (
	PedidoPendente   StatusPedido = "Pendente"
	PedidoPreparando StatusPedido = "Preparando"
	PedidoPronto     StatusPedido = "Pronto"
	PedidoEntregue   StatusPedido = "Entregue"
	PedidoFinalizado StatusPedido = "Finalizado"
)

// ParseStatusPedido aceita apenas os status que podem ser definidos fora do
// fechamento da mesa.
func ParseStatusPedido(s string) (StatusPedido, error) {
	switch st := StatusPedido(s); st {
	case PedidoPendente, PedidoPreparando, PedidoPronto, PedidoEntregue:
		return st, nil
	case PedidoFinalizado:
		return "", Validacao("Pedidos só são finalizados no fechamento da mesa.")
	}
	return "", Validacao("Status de pedido inválido.")
}

// Quitado vale para pedidos que não bloqueiam a liberação da mesa.
// Etapa dá a posição do status no fluxo Pendente, Preparando, Pronto,
// Entregue, Finalizado.
func (s StatusPedido) Etapa() int {
	switch s {
	case PedidoPendente:
		return 1
	case PedidoPreparando:
		return 2
	case PedidoPronto:
		return 3
	case PedidoEntregue:
		return 4
	case PedidoFinalizado:
		return 5
	}
	return 0
}

func (s StatusPedido) Quitado() bool {
	return s == PedidoEntregue || s == PedidoFinalizado
}

type Produto struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Nome              string          `gorm:"not null" json:"nome"`
	Preco             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"preco"`
	QuantidadeEstoque int             `gorm:"not null;default:0" json:"quantidadeEstoque"`
	Ativo             bool            `gorm:"not null;default:true" json:"ativo"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (p *Produto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Produto) Validar() error {
	if p.Nome == "" {
		return Validacao("Nome do produto é obrigatório.")
	}
	if p.Preco.IsNegative() {
		return Validacao("Preço não pode ser negativo.")
	}
	if p.QuantidadeEstoque < 0 {
		return Validacao("Estoque não pode ser negativo.")
	}
	return nil
}

type Pedido struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	MesaID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"mesa"`
	NumeroAssento *int            `json:"numeroAssento,omitempty"`
	NomeCliente   *string         `json:"nomeCliente,omitempty"`
	GarcomID      *uuid.UUID      `gorm:"type:uuid" json:"garcom,omitempty"`
	Itens         []ItemPedido    `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"itens"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Status        StatusPedido    `gorm:"type:varchar(16);not null;index" json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ItemPedido guarda nome e preço do produto no momento do pedido.
type ItemPedido struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	PedidoID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"pedidoId"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null" json:"produtoId"`
	Nome          string          `gorm:"not null" json:"nome"`
	Quantidade    int             `gorm:"not null" json:"quantidade"`
	PrecoUnitario decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"precoUnitario"`
	Modificacoes  string          `json:"modificacoes,omitempty"`
}

func (p *Pedido) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PedidoPendente
	}
	return nil
}

func (i *ItemPedido) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i ItemPedido) Subtotal() decimal.Decimal {
	return i.PrecoUnitario.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}

func (p *Pedido) CalcularTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Itens {
		total = total.Add(item.Subtotal())
	}
	p.Total = Arredondar(total)
	return p.Total
}

func (Produto) TableName() string {
	return "produtos"
}

func (Pedido) TableName() string {
	return "pedidos"
}

func (ItemPedido) TableName() string {
	return "itens_pedido"
}
