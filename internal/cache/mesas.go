// Package cache guarda no redis a listagem de mesas livres. A chave é apagada
// a cada evento de mesa recebido pelo notificador.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"servico-restaurante/internal/dominio"

	"github.com/redis/go-redis/v9"
)

const ChaveDisponiveis = "restaurante:mesas:disponiveis"

type Mesas struct {
	Client *redis.Client
	TTL    time.Duration
}

func NovoMesas(client *redis.Client, ttl time.Duration) *Mesas {
	return &Mesas{Client: client, TTL: ttl}
}

func (c *Mesas) ObterDisponiveis(ctx context.Context) ([]dominio.Mesa, bool, error) {
	b, err := c.Client.Get(ctx, ChaveDisponiveis).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("falha ao ler mesas disponíveis do cache: %w", err)
	}

	var mesas []dominio.Mesa
	if err := json.Unmarshal(b, &mesas); err != nil {
		// entrada corrompida conta como ausente
		c.Client.Del(ctx, ChaveDisponiveis)
		return nil, false, nil
	}
	return mesas, true, nil
}

func (c *Mesas) GuardarDisponiveis(ctx context.Context, mesas []dominio.Mesa) error {
	b, err := json.Marshal(mesas)
	if err != nil {
		return fmt.Errorf("falha ao serializar mesas: %w", err)
	}
	return c.Client.Set(ctx, ChaveDisponiveis, b, c.TTL).Err()
}

func (c *Mesas) Invalidar(ctx context.Context) error {
	return c.Client.Del(ctx, ChaveDisponiveis).Err()
}

// Broadcast faz do cache um destino de notificações: qualquer evento de mesa
// invalida a listagem.
func (c *Mesas) Broadcast(ctx context.Context, evento string, _ any) error {
	if !strings.HasPrefix(evento, "mesa.") {
		return nil
	}
	if err := c.Invalidar(ctx); err != nil {
		return fmt.Errorf("falha ao invalidar cache de mesas: %w", err)
	}
	return nil
}
