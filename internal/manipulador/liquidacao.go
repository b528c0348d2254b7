package manipulador

import (
	"net/http"
	"strconv"
	"time"

	"servico-restaurante/internal/servico"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type requisicaoFinalizacao struct {
	FormaPagamento   string           `json:"formaPagamento" binding:"required"`
	ValorPago        *decimal.Decimal `json:"valorPago"`
	TipoDesconto     string           `json:"tipoDesconto"`
	ValorDesconto    decimal.Decimal  `json:"valorDesconto"`
	ValorTaxaServico decimal.Decimal  `json:"valorTaxaServico"`
	GarcomID         *uuid.UUID       `json:"garcomId"`
}

// POST /api/tables/:id/finalizar
func (h *Handlers) FinalizarMesa(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da mesa inválido.")
	if !ok {
		return
	}
	var req requisicaoFinalizacao
	if err := c.ShouldBindJSON(&req); err != nil || req.ValorPago == nil {
		invalido(c, "Dados de pagamento incompletos.")
		return
	}

	res, err := h.Liquidacao.FinalizarMesa(c.Request.Context(), id, servico.SolicitacaoFinalizacao{
		FormaPagamento:   req.FormaPagamento,
		ValorPago:        *req.ValorPago,
		TipoDesconto:     req.TipoDesconto,
		ValorDesconto:    req.ValorDesconto,
		ValorTaxaServico: req.ValorTaxaServico,
		GarcomID:         req.GarcomID,
		UsuarioID:        usuarioID(c),
	})
	if err != nil {
		responderErro(c, err, "Erro ao finalizar mesa")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Mesa finalizada com sucesso.",
		"comanda":       res.Comanda,
		"finalizedMesa": res.MesaFinalizada,
		"table":         res.Mesa,
		"totais":        res.Totais,
		"pdfPath":       res.PdfPath,
	})
}

// GET /api/finalized-tables
func (h *Handlers) ListarMesasFinalizadas(c *gin.Context) {
	filtro := servico.FiltroFinalizadas{}
	filtro.Pagina, filtro.Limite = paginacao(c)

	if v := c.Query("numeroMesa"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			invalido(c, "Número da mesa inválido.")
			return
		}
		filtro.NumeroMesa = &n
	}
	if v := c.Query("dataInicial"); v != "" {
		t, err := lerData(v, false)
		if err != nil {
			invalido(c, "Data inicial inválida.")
			return
		}
		filtro.DataInicial = &t
	}
	if v := c.Query("dataFinal"); v != "" {
		t, err := lerData(v, true)
		if err != nil {
			invalido(c, "Data final inválida.")
			return
		}
		filtro.DataFinal = &t
	}

	res, err := h.Liquidacao.ListarFinalizadas(c.Request.Context(), filtro)
	if err != nil {
		responderErro(c, err, "Erro ao obter mesas finalizadas")
		return
	}
	c.JSON(http.StatusOK, res)
}

// lerData aceita RFC3339 ou só a data; no fim do intervalo a data simples
// cobre o dia inteiro.
func lerData(v string, fimDoDia bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	if fimDoDia {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// GET /api/comandas/:id
func (h *Handlers) BuscarComanda(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da comanda inválido.")
	if !ok {
		return
	}
	comanda, err := h.Liquidacao.BuscarComanda(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err, "Erro ao obter comanda")
		return
	}
	c.JSON(http.StatusOK, comanda)
}

// POST /api/comandas/:id/pdf
func (h *Handlers) RegerarPDFComanda(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da comanda inválido.")
	if !ok {
		return
	}
	comanda, err := h.Liquidacao.RegerarPDF(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err, "Erro ao gerar PDF da comanda.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "PDF gerado com sucesso.", "comanda": comanda, "pdfPath": comanda.PdfPath})
}
