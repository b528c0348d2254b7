// Package notificacao entrega os eventos de tempo real do salão para fora do
// processo: pub/sub do redis, tópico do kafka ou os dois ao mesmo tempo.
package notificacao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
)

// Mensagem é o envelope publicado em todos os transportes.
type Mensagem struct {
	Evento    string    `json:"evento"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

func serializar(evento string, payload any) ([]byte, error) {
	b, err := json.Marshal(Mensagem{
		Evento:    evento,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar evento %s: %w", evento, err)
	}
	return b, nil
}

// Destino é qualquer coisa que aceite um evento.
type Destino interface {
	Broadcast(ctx context.Context, evento string, payload any) error
}

// Multi repassa o evento a todos os destinos, mesmo quando algum falha.
type Multi []Destino

func NovoMulti(destinos ...Destino) Multi {
	var m Multi
	for _, d := range destinos {
		if d != nil {
			m = append(m, d)
		}
	}
	return m
}

func (m Multi) Broadcast(ctx context.Context, evento string, payload any) error {
	var errs []error
	for _, d := range m {
		if err := d.Broadcast(ctx, evento, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop descarta tudo. Usado quando nenhum transporte está configurado.
type Nop struct{}

func (Nop) Broadcast(_ context.Context, evento string, _ any) error {
	log.Printf("Evento %s descartado: nenhum transporte configurado", evento)
	return nil
}
