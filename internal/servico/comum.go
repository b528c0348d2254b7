package servico

import (
	"context"
	"log"
	"time"
)

// Pagina é o formato das listagens paginadas.
type Pagina[T any] struct {
	Data        []T   `json:"data"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

func novaPagina[T any](itens []T, total int64, pagina, limite int) *Pagina[T] {
	if itens == nil {
		itens = []T{}
	}
	totalPaginas := 0
	if limite > 0 {
		totalPaginas = int((total + int64(limite) - 1) / int64(limite))
	}
	return &Pagina[T]{
		Data:        itens,
		Total:       total,
		TotalPages:  totalPaginas,
		CurrentPage: pagina,
	}
}

func normalizarPaginacao(pagina, limite, limitePadrao int) (int, int) {
	if pagina < 1 {
		pagina = 1
	}
	if limite < 1 {
		limite = limitePadrao
	}
	return pagina, limite
}

// notificar nunca falha a operação: o estado já foi confirmado.
func notificar(ctx context.Context, n Notificador, evento string, payload any) {
	if n == nil {
		return
	}
	if err := n.Broadcast(ctx, evento, payload); err != nil {
		log.Printf("Erro ao notificar evento %s: %v", evento, err)
	}
}

type relogio func() time.Time

func agoraPadrao() time.Time {
	return time.Now()
}
