package dominio

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TipoDesconto string

const (
	DescontoNenhum      TipoDesconto = "nenhum"
	DescontoPorcentagem TipoDesconto = "porcentagem"
	DescontoValor       TipoDesconto = "valor"
)

func ParseTipoDesconto(s string) (TipoDesconto, error) {
	switch t := TipoDesconto(s); t {
	case "":
		return DescontoNenhum, nil
	case DescontoNenhum, DescontoPorcentagem, DescontoValor:
		return t, nil
	}
	return "", Validacao("Tipo de desconto inválido.")
}

type FormaPagamento string

const (
	PagamentoDinheiro FormaPagamento = "dinheiro"
	PagamentoCartao   FormaPagamento = "cartao"
	PagamentoPix      FormaPagamento = "pix"
)

func ParseFormaPagamento(s string) (FormaPagamento, error) {
	switch f := FormaPagamento(s); f {
	case PagamentoDinheiro, PagamentoCartao, PagamentoPix:
		return f, nil
	}
	return "", Validacao("Forma de pagamento inválida.")
}

var cem = decimal.NewFromInt(100)

// Pagamento é o que o caixa informa ao fechar a mesa.
type Pagamento struct {
	Forma         FormaPagamento
	ValorPago     decimal.Decimal
	TipoDesconto  TipoDesconto
	ValorDesconto decimal.Decimal
	TaxaServico   decimal.Decimal
}

func (p Pagamento) Validar() error {
	if p.ValorPago.IsNegative() {
		return Validacao("Valor pago não pode ser negativo.")
	}
	if p.ValorDesconto.IsNegative() {
		return Validacao("Valor do desconto não pode ser negativo.")
	}
	if p.TipoDesconto == DescontoPorcentagem && p.ValorDesconto.GreaterThan(cem) {
		return Validacao("Desconto percentual deve estar entre 0 e 100.")
	}
	if p.TaxaServico.IsNegative() {
		return Validacao("Taxa de serviço não pode ser negativa.")
	}
	return nil
}

type Totais struct {
	ValorTotal       decimal.Decimal `json:"valorTotal"`
	TotalComDesconto decimal.Decimal `json:"totalComDesconto"`
	TaxaServico      decimal.Decimal `json:"valorTaxaServico"`
	TotalAPagar      decimal.Decimal `json:"totalAPagar"`
	Troco            decimal.Decimal `json:"troco"`
}

// AplicarDesconto nunca devolve valor negativo para desconto em valor.
func AplicarDesconto(total decimal.Decimal, tipo TipoDesconto, valor decimal.Decimal) decimal.Decimal {
	switch tipo {
	case DescontoPorcentagem:
		return total.Mul(decimal.NewFromInt(1).Sub(valor.Div(cem)))
	case DescontoValor:
		return decimal.Max(total.Sub(valor), decimal.Zero)
	default:
		return total
	}
}

// CalcularTotais soma os pedidos, aplica desconto e taxa, e confere o dinheiro
// recebido.
func CalcularTotais(pedidos []Pedido, pg Pagamento) (Totais, error) {
	if err := pg.Validar(); err != nil {
		return Totais{}, err
	}

	total := decimal.Zero
	for _, p := range pedidos {
		total = total.Add(p.Total)
	}

	comDesconto := Arredondar(AplicarDesconto(total, pg.TipoDesconto, pg.ValorDesconto))
	aPagar := comDesconto.Add(pg.TaxaServico)

	troco := decimal.Zero
	if pg.Forma == PagamentoDinheiro {
		if pg.ValorPago.LessThan(aPagar) {
			return Totais{}, Validacao("Valor pago menor que o total com desconto")
		}
		troco = decimal.Max(pg.ValorPago.Sub(aPagar), decimal.Zero)
	}

	return Totais{
		ValorTotal:       Arredondar(total),
		TotalComDesconto: comDesconto,
		TaxaServico:      Arredondar(pg.TaxaServico),
		TotalAPagar:      Arredondar(aPagar),
		Troco:            Arredondar(troco),
	}, nil
}

// ItemComanda e PedidoComanda são cópias, não referências: editar um produto
// depois não muda o histórico.
type ItemComanda struct {
	Nome          string          `json:"nome"`
	Quantidade    int             `json:"quantidade"`
	PrecoUnitario decimal.Decimal `json:"preco"`
	Total         decimal.Decimal `json:"total"`
}

type PedidoComanda struct {
	PedidoID      uuid.UUID       `json:"pedidoId"`
	NumeroAssento *int            `json:"numeroAssento,omitempty"`
	NomeCliente   *string         `json:"nomeCliente,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Itens         []ItemComanda   `json:"itens"`
}

type Comanda struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	MesaID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"mesaId"`
	NumeroMesa       int             `gorm:"not null" json:"mesa"`
	AmbienteID       uuid.UUID       `gorm:"type:uuid;not null" json:"ambienteId"`
	GarcomID         *uuid.UUID      `gorm:"type:uuid" json:"garcomId,omitempty"`
	PedidoIDs        ListaUUID       `gorm:"type:jsonb;not null" json:"pedidoIds"`
	Pedidos          []PedidoComanda `gorm:"type:jsonb;serializer:json;not null" json:"pedidos"`
	ValorTotal       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorTotal"`
	TipoDesconto     TipoDesconto    `gorm:"type:varchar(16);not null" json:"tipoDesconto"`
	ValorDesconto    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorDesconto"`
	TotalComDesconto decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalComDesconto"`
	ValorTaxaServico decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valorTaxaServico"`
	FormaPagamento   FormaPagamento  `gorm:"type:varchar(16);not null" json:"formaPagamento"`
	ValorPago        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorPago"`
	Troco            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"troco"`
	DataFinalizacao  time.Time       `gorm:"not null" json:"dataFinalizacao"`
	PdfPath          *string         `json:"pdfPath"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type MesaFinalizada struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ComandaID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"comandaId"`
	NumeroMesa       int             `gorm:"not null;index" json:"numeroMesa"`
	AmbienteID       uuid.UUID       `gorm:"type:uuid;not null" json:"ambienteId"`
	GarcomID         *uuid.UUID      `gorm:"type:uuid" json:"garcomId,omitempty"`
	Pedidos          ListaUUID       `gorm:"type:jsonb;not null" json:"pedidos"`
	ValorTotal       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorTotal"`
	TipoDesconto     TipoDesconto    `gorm:"type:varchar(16);not null" json:"tipoDesconto"`
	ValorDesconto    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorDesconto"`
	TotalComDesconto decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalComDesconto"`
	ValorTaxaServico decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valorTaxaServico"`
	FormaPagamento   FormaPagamento  `gorm:"type:varchar(16);not null" json:"formaPagamento"`
	ValorPago        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorPago"`
	Troco            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"troco"`
	DataFinalizacao  time.Time       `gorm:"not null;index" json:"dataFinalizacao"`
	PdfPath          *string         `json:"pdfPath"`
}

func (c *Comanda) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (f *MesaFinalizada) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// NovaComanda copia mesa, pedidos e itens para o registro de fechamento.
func NovaComanda(mesa *Mesa, garcomID *uuid.UUID, pedidos []Pedido, pg Pagamento, t Totais, em time.Time) *Comanda {
	ids := make(ListaUUID, 0, len(pedidos))
	snapshot := make([]PedidoComanda, 0, len(pedidos))
	for _, p := range pedidos {
		ids = append(ids, p.ID)
		itens := make([]ItemComanda, 0, len(p.Itens))
		for _, it := range p.Itens {
			itens = append(itens, ItemComanda{
				Nome:          it.Nome,
				Quantidade:    it.Quantidade,
				PrecoUnitario: it.PrecoUnitario,
				Total:         Arredondar(it.Subtotal()),
			})
		}
		snapshot = append(snapshot, PedidoComanda{
			PedidoID:      p.ID,
			NumeroAssento: p.NumeroAssento,
			NomeCliente:   p.NomeCliente,
			Total:         p.Total,
			Itens:         itens,
		})
	}

	tipo := pg.TipoDesconto
	if tipo == "" {
		tipo = DescontoNenhum
	}

	return &Comanda{
		ID:               uuid.New(),
		MesaID:           mesa.ID,
		NumeroMesa:       mesa.NumeroMesa,
		AmbienteID:       mesa.AmbienteID,
		GarcomID:         garcomID,
		PedidoIDs:        ids,
		Pedidos:          snapshot,
		ValorTotal:       t.ValorTotal,
		TipoDesconto:     tipo,
		ValorDesconto:    Arredondar(pg.ValorDesconto),
		TotalComDesconto: t.TotalComDesconto,
		ValorTaxaServico: t.TaxaServico,
		FormaPagamento:   pg.Forma,
		ValorPago:        Arredondar(pg.ValorPago),
		Troco:            t.Troco,
		DataFinalizacao:  em,
	}
}

func NovaMesaFinalizada(c *Comanda) *MesaFinalizada {
	return &MesaFinalizada{
		ID:               uuid.New(),
		ComandaID:        c.ID,
		NumeroMesa:       c.NumeroMesa,
		AmbienteID:       c.AmbienteID,
		GarcomID:         c.GarcomID,
		Pedidos:          c.PedidoIDs.Copia(),
		ValorTotal:       c.ValorTotal,
		TipoDesconto:     c.TipoDesconto,
		ValorDesconto:    c.ValorDesconto,
		TotalComDesconto: c.TotalComDesconto,
		ValorTaxaServico: c.ValorTaxaServico,
		FormaPagamento:   c.FormaPagamento,
		ValorPago:        c.ValorPago,
		Troco:            c.Troco,
		DataFinalizacao:  c.DataFinalizacao,
		PdfPath:          c.PdfPath,
	}
}

func (Comanda) TableName() string {
	return "comandas"
}

func (MesaFinalizada) TableName() string {
	return "mesas_finalizadas"
}
