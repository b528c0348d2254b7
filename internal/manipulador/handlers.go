// Package manipulador expõe os serviços do restaurante em HTTP com gin.
package manipulador

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/middleware"
	"servico-restaurante/internal/servico"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handlers struct {
	Fila       *servico.FilaServico
	Reservas   *servico.ReservaServico
	Mesas      *servico.MesaServico
	Liquidacao *servico.LiquidacaoServico
	Pedidos    *servico.PedidoServico
	Cadastro   *servico.CadastroServico
}

// responderErro traduz os erros do domínio. Erros internos são registrados
// no log e o cliente recebe só a mensagem genérica.
func responderErro(c *gin.Context, err error, mensagemInterna string) {
	var e *dominio.Erro
	mensagem := mensagemInterna
	if errors.As(err, &e) {
		mensagem = e.Mensagem
	}

	switch {
	case errors.Is(err, dominio.ErrNaoEncontrado):
		c.JSON(http.StatusNotFound, gin.H{"message": mensagem})
	case errors.Is(err, dominio.ErrValidacao):
		c.JSON(http.StatusBadRequest, gin.H{"message": mensagem})
	case errors.Is(err, dominio.ErrConflito):
		c.JSON(http.StatusConflict, gin.H{"message": mensagem})
	default:
		log.Printf("%s: %v", mensagemInterna, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": mensagemInterna})
	}
}

func invalido(c *gin.Context, mensagem string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": mensagem})
}

func parametroID(c *gin.Context, nome, mensagem string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(nome))
	if err != nil {
		invalido(c, mensagem)
		return uuid.Nil, false
	}
	return id, true
}

// paginacao lê page e limit; valores ausentes ou inválidos ficam zerados e o
// serviço aplica o padrão.
func paginacao(c *gin.Context) (int, int) {
	pagina, _ := strconv.Atoi(c.Query("page"))
	limite, _ := strconv.Atoi(c.Query("limit"))
	return pagina, limite
}

func usuarioID(c *gin.Context) *uuid.UUID {
	if u := middleware.UsuarioAtual(c); u != nil {
		id := u.ID
		return &id
	}
	return nil
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
