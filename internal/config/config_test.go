package config

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarregar(t *testing.T) {
	t.Run("valores padrão", func(t *testing.T) {
		for _, v := range []string{"PORTA", "ARMAZENAMENTO", "REDIS_ADDR", "KAFKA_BROKERS", "RABBITMQ_URL", "CACHE_TTL", "RATE_LIMIT"} {
			t.Setenv(v, "")
		}
		cfg := Carregar()
		assert.Equal(t, "8080", cfg.Porta)
		assert.Equal(t, ArmazenamentoPostgres, cfg.Armazenamento)
		assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
		assert.Equal(t, "300-M", cfg.RateLimit)
		assert.Empty(t, cfg.Redis.Addr)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Empty(t, cfg.RabbitURL)
	})

	t.Run("lê as variáveis informadas", func(t *testing.T) {
		t.Setenv("PORTA", "9090")
		t.Setenv("ARMAZENAMENTO", ArmazenamentoMemoria)
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
		t.Setenv("CACHE_TTL", "2m")
		t.Setenv("REDIS_DB", "3")

		cfg := Carregar()
		assert.Equal(t, "9090", cfg.Porta)
		assert.Equal(t, ArmazenamentoMemoria, cfg.Armazenamento)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, 2*time.Minute, cfg.Redis.CacheTTL)
		assert.Equal(t, 3, cfg.Redis.DB)
	})

	t.Run("ttl inválido volta ao padrão", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "rápido")
		assert.Equal(t, 30*time.Second, Carregar().Redis.CacheTTL)
	})
}

func TestNovoRedis(t *testing.T) {
	ctx := context.Background()

	t.Run("desligado sem endereço", func(t *testing.T) {
		cliente, err := NovoRedis(ctx, RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, cliente)
	})

	t.Run("conecta e responde ao ping", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cliente, err := NovoRedis(ctx, RedisConfig{Addr: mr.Addr()})
		require.NoError(t, err)
		require.NotNil(t, cliente)
		cliente.Close()
	})
}

func TestNovoKafkaWriter(t *testing.T) {
	assert.Nil(t, NovoKafkaWriter(KafkaConfig{Topico: "x"}))

	w := NovoKafkaWriter(KafkaConfig{Brokers: []string{"k1:9092"}, Topico: "restaurante-eventos"})
	require.NotNil(t, w)
	assert.Equal(t, "restaurante-eventos", w.Topic)
}
