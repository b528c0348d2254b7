package manipulador

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// POST /api/ambientes
func (h *Handlers) CriarAmbiente(c *gin.Context) {
	var req struct {
		Nome          string `json:"nome" binding:"required"`
		LimitePessoas int    `json:"limitePessoas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Nome do ambiente é obrigatório.")
		return
	}

	ambiente, err := h.Cadastro.CriarAmbiente(c.Request.Context(), req.Nome, req.LimitePessoas)
	if err != nil {
		responderErro(c, err, "Erro ao criar ambiente")
		return
	}
	c.JSON(http.StatusCreated, ambiente)
}

// GET /api/ambientes
func (h *Handlers) ListarAmbientes(c *gin.Context) {
	ambientes, err := h.Cadastro.ListarAmbientes(c.Request.Context())
	if err != nil {
		responderErro(c, err, "Erro ao obter ambientes")
		return
	}
	c.JSON(http.StatusOK, ambientes)
}

// PUT /api/ambientes/:id
func (h *Handlers) AtualizarAmbiente(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID de ambiente inválido.")
	if !ok {
		return
	}
	var req struct {
		Nome          *string `json:"nome"`
		LimitePessoas *int    `json:"limitePessoas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Dados do ambiente inválidos.")
		return
	}

	ambiente, err := h.Cadastro.AtualizarAmbiente(c.Request.Context(), id, req.Nome, req.LimitePessoas)
	if err != nil {
		responderErro(c, err, "Erro ao atualizar ambiente")
		return
	}
	c.JSON(http.StatusOK, ambiente)
}

// DELETE /api/ambientes/:id
func (h *Handlers) ExcluirAmbiente(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID de ambiente inválido.")
	if !ok {
		return
	}
	if err := h.Cadastro.ExcluirAmbiente(c.Request.Context(), id); err != nil {
		responderErro(c, err, "Erro ao excluir ambiente")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ambiente excluído com sucesso"})
}

// POST /api/produtos
func (h *Handlers) CriarProduto(c *gin.Context) {
	var req struct {
		Nome              string          `json:"nome" binding:"required"`
		Preco             decimal.Decimal `json:"preco"`
		QuantidadeEstoque int             `json:"quantidadeEstoque"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Nome e preço do produto são obrigatórios.")
		return
	}

	produto, err := h.Cadastro.CriarProduto(c.Request.Context(), req.Nome, req.Preco, req.QuantidadeEstoque)
	if err != nil {
		responderErro(c, err, "Erro ao criar produto")
		return
	}
	c.JSON(http.StatusCreated, produto)
}

// GET /api/produtos
func (h *Handlers) ListarProdutos(c *gin.Context) {
	produtos, err := h.Cadastro.ListarProdutos(c.Request.Context())
	if err != nil {
		responderErro(c, err, "Erro ao obter produtos")
		return
	}
	c.JSON(http.StatusOK, produtos)
}

// GET /api/produtos/:id
func (h *Handlers) BuscarProduto(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID do produto inválido.")
	if !ok {
		return
	}
	produto, err := h.Cadastro.BuscarProduto(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err, "Erro ao obter produto")
		return
	}
	c.JSON(http.StatusOK, produto)
}
