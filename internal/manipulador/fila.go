package manipulador

import (
	"net/http"

	"servico-restaurante/internal/servico"

	"github.com/gin-gonic/gin"
)

type requisicaoEntrada struct {
	Nome          *string `json:"name"`
	NumeroPessoas *int    `json:"numberOfPeople"`
	Contato       *string `json:"contact"`
	Telefone      *string `json:"telefone"`
}

func (r requisicaoEntrada) dados() servico.DadosEntrada {
	return servico.DadosEntrada{
		Nome:          r.Nome,
		NumeroPessoas: r.NumeroPessoas,
		Contato:       r.Contato,
		Telefone:      r.Telefone,
	}
}

// POST /api/queue
func (h *Handlers) CriarEntrada(c *gin.Context) {
	var req requisicaoEntrada
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Dados da entrada inválidos.")
		return
	}

	entrada, err := h.Fila.CriarEntrada(c.Request.Context(), req.dados())
	if err != nil {
		responderErro(c, err, "Erro ao criar entrada na fila")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Entrada criada na fila com sucesso", "entry": entrada})
}

// GET /api/queue
func (h *Handlers) ListarEntradas(c *gin.Context) {
	pagina, limite := paginacao(c)
	res, err := h.Fila.ListarEntradas(c.Request.Context(), pagina, limite)
	if err != nil {
		responderErro(c, err, "Erro ao obter fila")
		return
	}
	c.JSON(http.StatusOK, res)
}

// PUT /api/queue/:id
func (h *Handlers) AtualizarEntrada(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da entrada inválido.")
	if !ok {
		return
	}
	var req requisicaoEntrada
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Dados da entrada inválidos.")
		return
	}

	entrada, err := h.Fila.AtualizarEntrada(c.Request.Context(), id, req.dados())
	if err != nil {
		responderErro(c, err, "Erro ao atualizar entrada da fila")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entrada da fila atualizada", "entry": entrada})
}

// PUT /api/queue/:id/finish
func (h *Handlers) FinalizarEntrada(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da entrada inválido.")
	if !ok {
		return
	}

	entrada, err := h.Fila.FinalizarEntrada(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err, "Erro ao finalizar entrada da fila")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entrada finalizada com sucesso", "entry": entrada})
}

// DELETE /api/queue/:id
func (h *Handlers) ExcluirEntrada(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da entrada inválido.")
	if !ok {
		return
	}

	sentada, err := h.Fila.ExcluirEntrada(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err, "Erro ao excluir entrada da fila")
		return
	}
	resposta := gin.H{"message": "Entrada removida da fila com sucesso."}
	if sentada != nil {
		resposta["reassigned"] = sentada
	}
	c.JSON(http.StatusOK, resposta)
}
