package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// LimitarRequisicoes aplica limite por IP no formato do ulule, ex: "300-M".
func LimitarRequisicoes(formato string) (gin.HandlerFunc, error) {
	taxa, err := limiter.NewRateFromFormatted(formato)
	if err != nil {
		return nil, fmt.Errorf("limite de requisições inválido %q: %w", formato, err)
	}
	instancia := limiter.New(memory.NewStore(), taxa)
	return mgin.NewMiddleware(instancia), nil
}
