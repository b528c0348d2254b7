package cache

import (
	"context"
	"testing"
	"time"

	"servico-restaurante/internal/dominio"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoCache(t *testing.T) (*Mesas, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NovoMesas(client, time.Minute), mr
}

func TestMesas_GuardarEObter(t *testing.T) {
	ctx := context.Background()
	c, mr := novoCache(t)

	_, ok, err := c.ObterDisponiveis(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "cache vazio não deve acertar")

	mesas := []dominio.Mesa{{
		ID:         uuid.New(),
		NumeroMesa: 3,
		Capacidade: 4,
		Status:     dominio.MesaLivre,
		Pedidos:    dominio.ListaUUID{},
		ValorTotal: decimal.Zero,
	}}
	require.NoError(t, c.GuardarDisponiveis(ctx, mesas))
	assert.Equal(t, time.Minute, mr.TTL(ChaveDisponiveis))

	lidas, ok, err := c.ObterDisponiveis(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, lidas, 1)
	assert.Equal(t, mesas[0].ID, lidas[0].ID)
	assert.Equal(t, 3, lidas[0].NumeroMesa)
	assert.Equal(t, dominio.MesaLivre, lidas[0].Status)
}

func TestMesas_ListaVaziaTambemEhCacheada(t *testing.T) {
	ctx := context.Background()
	c, _ := novoCache(t)

	require.NoError(t, c.GuardarDisponiveis(ctx, []dominio.Mesa{}))
	lidas, ok, err := c.ObterDisponiveis(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, lidas)
}

func TestMesas_Broadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("evento de mesa apaga a listagem", func(t *testing.T) {
		c, mr := novoCache(t)
		require.NoError(t, c.GuardarDisponiveis(ctx, []dominio.Mesa{{NumeroMesa: 1}}))

		require.NoError(t, c.Broadcast(ctx, dominio.EventoMesaOcupada, nil))
		assert.False(t, mr.Exists(ChaveDisponiveis))
	})

	t.Run("evento da fila não mexe no cache", func(t *testing.T) {
		c, mr := novoCache(t)
		require.NoError(t, c.GuardarDisponiveis(ctx, []dominio.Mesa{{NumeroMesa: 1}}))

		require.NoError(t, c.Broadcast(ctx, dominio.EventoFilaCriada, nil))
		assert.True(t, mr.Exists(ChaveDisponiveis))
	})
}

func TestMesas_ConteudoCorrompido(t *testing.T) {
	ctx := context.Background()
	c, mr := novoCache(t)
	require.NoError(t, mr.Set(ChaveDisponiveis, "{não é json"))

	_, ok, err := c.ObterDisponiveis(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists(ChaveDisponiveis))
}
