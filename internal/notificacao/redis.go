package notificacao

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	prefixoCanal = "restaurante:eventos:"
	CanalTodos   = prefixoCanal + "all"
)

// Canal devolve o canal de pub/sub de um evento.
func Canal(evento string) string {
	return prefixoCanal + evento
}

type Redis struct {
	cliente *redis.Client
}

func NovoRedis(cliente *redis.Client) *Redis {
	return &Redis{cliente: cliente}
}

// Broadcast publica no canal do evento e no canal que agrega todos.
func (r *Redis) Broadcast(ctx context.Context, evento string, payload any) error {
	b, err := serializar(evento, payload)
	if err != nil {
		return err
	}
	if err := r.cliente.Publish(ctx, Canal(evento), b).Err(); err != nil {
		return fmt.Errorf("falha ao publicar evento %s: %w", evento, err)
	}
	if err := r.cliente.Publish(ctx, CanalTodos, b).Err(); err != nil {
		return fmt.Errorf("falha ao publicar evento %s no canal geral: %w", evento, err)
	}
	return nil
}
