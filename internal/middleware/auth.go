// Package middleware reúne autenticação, autorização por papel e limite de
// requisições do gin.
package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	PapelAdmin   = "admin"
	PapelGerente = "manager"
	PapelAgente  = "agent"
	PapelGarcom  = "waiter"

	chaveUsuario = "usuario"
)

type Claims struct {
	UsuarioID string `json:"id"`
	Nome      string `json:"nome"`
	Papel     string `json:"role"`
	jwt.RegisteredClaims
}

// Usuario é o que os handlers enxergam de quem fez a requisição.
type Usuario struct {
	ID    uuid.UUID
	Nome  string
	Papel string
}

func GerarToken(segredo []byte, u Usuario, validade time.Duration) (string, error) {
	agora := time.Now()
	claims := &Claims{
		UsuarioID: u.ID.String(),
		Nome:      u.Nome,
		Papel:     u.Papel,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(agora.Add(validade)),
			IssuedAt:  jwt.NewNumericDate(agora),
			Subject:   u.ID.String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(segredo)
}

func LerToken(segredo []byte, token string) (*Usuario, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("algoritmo de assinatura inesperado")
		}
		return segredo, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("token inválido")
	}
	id, err := uuid.Parse(claims.UsuarioID)
	if err != nil {
		return nil, errors.New("token sem usuário válido")
	}
	return &Usuario{ID: id, Nome: claims.Nome, Papel: claims.Papel}, nil
}

// Autenticar exige "Authorization: Bearer <token>".
func Autenticar(segredo []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		cabecalho := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(cabecalho, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Acesso negado. Token não fornecido."})
			return
		}

		usuario, err := LerToken(segredo, strings.TrimSpace(token))
		if err != nil {
			log.Printf("Erro na verificação do token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido."})
			return
		}

		c.Set(chaveUsuario, usuario)
		c.Next()
	}
}

// ExigirPapel deixa passar admin e os papéis informados.
func ExigirPapel(papeis ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario := UsuarioAtual(c)
		if usuario == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Usuário não autenticado."})
			return
		}
		if usuario.Papel == PapelAdmin {
			c.Next()
			return
		}
		for _, p := range papeis {
			if usuario.Papel == p {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Acesso proibido. Você não tem permissão para este recurso."})
	}
}

// UsuarioAtual devolve nil fora de rotas autenticadas.
func UsuarioAtual(c *gin.Context) *Usuario {
	v, ok := c.Get(chaveUsuario)
	if !ok {
		return nil
	}
	u, _ := v.(*Usuario)
	return u
}
