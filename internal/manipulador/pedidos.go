package manipulador

import (
	"net/http"

	"servico-restaurante/internal/servico"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/orders
func (h *Handlers) CriarPedido(c *gin.Context) {
	var req struct {
		MesaID        uuid.UUID  `json:"mesaId" binding:"required"`
		NumeroAssento *int       `json:"numeroAssento"`
		NomeCliente   *string    `json:"nomeCliente"`
		GarcomID      *uuid.UUID `json:"garcomId"`
		Itens         []struct {
			ProdutoID    uuid.UUID `json:"produtoId" binding:"required"`
			Quantidade   int       `json:"quantidade" binding:"required,min=1"`
			Modificacoes string    `json:"modificacoes"`
		} `json:"itens" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Mesa e itens do pedido são obrigatórios.")
		return
	}

	np := servico.NovoPedido{
		MesaID:        req.MesaID,
		NumeroAssento: req.NumeroAssento,
		NomeCliente:   req.NomeCliente,
		GarcomID:      req.GarcomID,
	}
	if np.GarcomID == nil {
		np.GarcomID = usuarioID(c)
	}
	for _, it := range req.Itens {
		np.Itens = append(np.Itens, servico.ItemSolicitado{
			ProdutoID:    it.ProdutoID,
			Quantidade:   it.Quantidade,
			Modificacoes: it.Modificacoes,
		})
	}

	pedido, err := h.Pedidos.Criar(c.Request.Context(), np)
	if err != nil {
		responderErro(c, err, "Erro ao criar pedido")
		return
	}
	c.JSON(http.StatusCreated, pedido)
}

// GET /api/orders
func (h *Handlers) ListarPedidos(c *gin.Context) {
	filtro := servico.FiltroPedidos{}
	filtro.Pagina, filtro.Limite = paginacao(c)
	if v := c.Query("mesaId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			invalido(c, "ID da mesa inválido.")
			return
		}
		filtro.MesaID = &id
	}

	res, err := h.Pedidos.Listar(c.Request.Context(), filtro)
	if err != nil {
		responderErro(c, err, "Erro ao obter pedidos")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/orders/:id
func (h *Handlers) BuscarPedido(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID do pedido inválido.")
	if !ok {
		return
	}
	pedido, err := h.Pedidos.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err, "Erro ao obter pedido")
		return
	}
	c.JSON(http.StatusOK, pedido)
}

// PUT /api/orders/:id/status
func (h *Handlers) AtualizarStatusPedido(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID do pedido inválido.")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Status de pedido inválido.")
		return
	}

	pedido, err := h.Pedidos.AtualizarStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		responderErro(c, err, "Erro ao atualizar pedido")
		return
	}
	c.JSON(http.StatusOK, pedido)
}
