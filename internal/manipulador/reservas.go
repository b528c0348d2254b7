package manipulador

import (
	"net/http"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type requisicaoReserva struct {
	NomeCliente   *string    `json:"nomeCliente"`
	Telefone      *string    `json:"telefone"`
	MesaID        *uuid.UUID `json:"mesaId"`
	DataReserva   *time.Time `json:"dataReserva"`
	NumeroPessoas *int       `json:"numeroPessoas"`
	Status        *string    `json:"status"`
}

func (r requisicaoReserva) dados() servico.DadosReserva {
	return servico.DadosReserva{
		NomeCliente:   r.NomeCliente,
		Telefone:      r.Telefone,
		MesaID:        r.MesaID,
		DataReserva:   r.DataReserva,
		NumeroPessoas: r.NumeroPessoas,
		Status:        r.Status,
	}
}

// POST /api/reservations
func (h *Handlers) CriarReserva(c *gin.Context) {
	var req requisicaoReserva
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Dados da reserva inválidos.")
		return
	}

	reserva, err := h.Reservas.Criar(c.Request.Context(), req.dados())
	if err != nil {
		responderErro(c, err, "Erro ao criar reserva")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reserva criada com sucesso", "reservation": reserva})
}

// GET /api/reservations
func (h *Handlers) ListarReservas(c *gin.Context) {
	pagina, limite := paginacao(c)
	filtro := servico.FiltroReservas{Pagina: pagina, Limite: limite}
	if v := c.Query("mesaId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			invalido(c, "ID da mesa inválido.")
			return
		}
		filtro.MesaID = &id
	}
	if v := c.Query("status"); v != "" {
		st, err := dominio.ParseStatusReserva(v)
		if err != nil {
			invalido(c, "Status da reserva inválido.")
			return
		}
		filtro.Status = &st
	}

	res, err := h.Reservas.Listar(c.Request.Context(), filtro)
	if err != nil {
		responderErro(c, err, "Erro ao obter reservas")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/reservations/:id
func (h *Handlers) BuscarReserva(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da reserva inválido.")
	if !ok {
		return
	}
	reserva, err := h.Reservas.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err, "Erro ao obter reserva")
		return
	}
	c.JSON(http.StatusOK, reserva)
}

// PUT /api/reservations/:id
func (h *Handlers) AtualizarReserva(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da reserva inválido.")
	if !ok {
		return
	}
	var req requisicaoReserva
	if err := c.ShouldBindJSON(&req); err != nil {
		invalido(c, "Dados da reserva inválidos.")
		return
	}

	reserva, err := h.Reservas.Atualizar(c.Request.Context(), id, req.dados())
	if err != nil {
		responderErro(c, err, "Erro ao atualizar reserva")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reserva atualizada com sucesso", "reservation": reserva})
}

// DELETE /api/reservations/:id
func (h *Handlers) ExcluirReserva(c *gin.Context) {
	id, ok := parametroID(c, "id", "ID da reserva inválido.")
	if !ok {
		return
	}
	if err := h.Reservas.Excluir(c.Request.Context(), id); err != nil {
		responderErro(c, err, "Erro ao excluir reserva")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reserva excluída com sucesso"})
}
