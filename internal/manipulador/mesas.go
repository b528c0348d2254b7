package manipulador

import (
	"net/http"

	"servico-restaurante/internal/servico"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/tables
func (h *Handlers) CriarMesa(c *gin.Context) {
	var req struct {
		NumeroMesa int       `json:"numeroMesa" binding:"required,min=1"`
		AmbienteID uuid.UUID `json:"ambiente" binding:"required"`
		Capacidade int       `json:"capacidade" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Número da mesa, ambiente e capacidade são obrigatórios.")
		return
	}

	mesa, err := h.Mesas.Criar(c.Request.Context(), req.NumeroMesa, req.AmbienteID, req.Capacidade)
	if err != nil {
		responderErro(c, err, "Erro ao criar mesa")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Mesa criada com sucesso", "table": mesa})
}

// GET /api/tables
func (h *Handlers) ListarMesas(c *gin.Context) {
	pagina, limite := paginacao(c)
	res, err := h.Mesas.Listar(c.Request.Context(), pagina, limite)
	if err != nil {
		responderErro(c, err, "Erro ao obter mesas")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/tables/available
func (h *Handlers) ListarMesasDisponiveis(c *gin.Context) {
	mesas, err := h.Mesas.ListarDisponiveis(c.Request.Context())
	if err != nil {
		responderErro(c, err, "Erro ao obter mesas disponíveis.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": mesas})
}

// GET /api/tables/by-ambiente/:ambienteId
func (h *Handlers) ListarMesasPorAmbiente(c *gin.Context) {
	id, ok := parametroID(c, "ambienteId", "ID de ambiente inválido.")
	if !ok {
		return
	}
	mesas, err := h.Mesas.ListarPorAmbiente(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err, "Erro ao obter mesas do ambiente.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": mesas})
}

// GET /api/tables/:id
func (h *Handlers) BuscarMesa(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da mesa inválido.")
	if !ok {
		return
	}
	mesa, err := h.Mesas.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err, "Erro interno do servidor.")
		return
	}
	c.JSON(http.StatusOK, mesa)
}

// PUT /api/tables/:id
func (h *Handlers) AtualizarMesa(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da mesa inválido.")
	if !ok {
		return
	}
	var req struct {
		NumeroMesa *int       `json:"numeroMesa"`
		AmbienteID *uuid.UUID `json:"ambiente"`
		Capacidade *int       `json:"capacidade"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Dados da mesa inválidos.")
		return
	}

	mesa, err := h.Mesas.Atualizar(c.Request.Context(), id, servico.DadosMesa{
		NumeroMesa: req.NumeroMesa,
		AmbienteID: req.AmbienteID,
		Capacidade: req.Capacidade,
	})
	if err != nil {
		responderErro(c, err, "Erro ao atualizar mesa")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mesa atualizada com sucesso", "table": mesa})
}

// DELETE /api/tables/:id
func (h *Handlers) ExcluirMesa(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da mesa inválido.")
	if !ok {
		return
	}
	if err := h.Mesas.Excluir(c.Request.Context(), id); err != nil {
		responderErro(c, err, "Erro ao excluir mesa")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mesa excluída com sucesso"})
}

// PUT /api/tables/:id/status
func (h *Handlers) AtualizarStatusMesa(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da mesa inválido.")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Status inválido.")
		return
	}

	mesa, err := h.Mesas.AtualizarStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		responderErro(c, err, "Erro ao atualizar status da mesa.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status da mesa atualizado com sucesso.", "table": mesa})
}
