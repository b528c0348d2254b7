package publicador

import (
	"context"
	"errors"
	"testing"
	"time"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/repositorio/memoria"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publicacao struct {
	exchange, chave string
	msg             amqp.Publishing
}

type canalFake struct {
	enviadas []publicacao
	falharEm map[string]bool
}

func (c *canalFake) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.falharEm[msg.MessageId] {
		return errors.New("canal fechado")
	}
	c.enviadas = append(c.enviadas, publicacao{exchange, key, msg})
	return nil
}

func gravarEventos(t *testing.T, a *memoria.Armazem, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ev, err := dominio.NovoEventoOutbox(dominio.EventoOutboxMesaFinalizada, uuid.New(), map[string]int{"numeroMesa": i + 1}, time.Now())
		require.NoError(t, err)
		require.NoError(t, a.Transacao(context.Background(), func(r servico.Repositorios) error {
			return r.Liquidacao.RegistrarEvento(context.Background(), ev)
		}))
	}
}

func TestPublicarPendentes(t *testing.T) {
	ctx := context.Background()

	t.Run("publica e marca os eventos em ordem", func(t *testing.T) {
		a := memoria.Novo()
		gravarEventos(t, a, 2)
		canal := &canalFake{}
		p := NovoPublicador(a.Outbox(), canal)

		assert.Equal(t, 2, p.PublicarPendentes(ctx))
		require.Len(t, canal.enviadas, 2)
		assert.Equal(t, Exchange, canal.enviadas[0].exchange)
		assert.Equal(t, "Mesa.Finalizada", canal.enviadas[0].chave)
		assert.Equal(t, "restaurante-1", canal.enviadas[0].msg.MessageId)
		assert.Equal(t, amqp.Persistent, canal.enviadas[0].msg.DeliveryMode)
		assert.JSONEq(t, `{"numeroMesa":1}`, string(canal.enviadas[0].msg.Body))

		for _, ev := range a.Eventos() {
			assert.NotNil(t, ev.DataPublicacao)
		}
		assert.Zero(t, p.PublicarPendentes(ctx), "nada deve ser publicado de novo")
	})

	t.Run("evento que falha fica para a próxima rodada", func(t *testing.T) {
		a := memoria.Novo()
		gravarEventos(t, a, 2)
		canal := &canalFake{falharEm: map[string]bool{"restaurante-1": true}}
		p := NovoPublicador(a.Outbox(), canal)

		assert.Equal(t, 1, p.PublicarPendentes(ctx))
		eventos := a.Eventos()
		assert.Nil(t, eventos[0].DataPublicacao)
		assert.NotNil(t, eventos[1].DataPublicacao)

		canal.falharEm = nil
		assert.Equal(t, 1, p.PublicarPendentes(ctx))
	})

	t.Run("respeita o tamanho do lote", func(t *testing.T) {
		a := memoria.Novo()
		gravarEventos(t, a, tamanhoLote+3)
		p := NovoPublicador(a.Outbox(), &canalFake{})

		assert.Equal(t, tamanhoLote, p.PublicarPendentes(ctx))
		assert.Equal(t, 3, p.PublicarPendentes(ctx))
	})
}

func TestRodar_ParaQuandoOContextoAcaba(t *testing.T) {
	a := memoria.Novo()
	gravarEventos(t, a, 1)
	canal := &canalFake{}
	p := NovoPublicador(a.Outbox(), canal)
	p.intervalo = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	fim := make(chan struct{})
	go func() {
		p.Rodar(ctx)
		close(fim)
	}()

	require.Eventually(t, func() bool {
		return a.Eventos()[0].DataPublicacao != nil
	}, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-fim:
	case <-time.After(time.Second):
		t.Fatal("publicador não parou")
	}
}
