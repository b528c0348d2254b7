// Package publicador entrega ao RabbitMQ os eventos gravados no outbox dentro
// das transações de fechamento.
package publicador

import (
	"context"
	"fmt"
	"log"
	"time"

	"servico-restaurante/internal/dominio"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange        = "restaurante-eventos"
	tamanhoLote     = 10
	intervaloPadrao = 2 * time.Second
)

// FonteEventos é o outbox visto pelo publicador.
type FonteEventos interface {
	Pendentes(ctx context.Context, limite int) ([]dominio.EventoOutbox, error)
	MarcarPublicado(ctx context.Context, id int64, em time.Time) error
}

// Canal é a parte do *amqp.Channel usada aqui.
type Canal interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publicador struct {
	fonte     FonteEventos
	canal     Canal
	intervalo time.Duration
}

func NovoPublicador(fonte FonteEventos, canal Canal) *Publicador {
	return &Publicador{fonte: fonte, canal: canal, intervalo: intervaloPadrao}
}

// DeclararExchange cria o exchange topic dos eventos do restaurante.
func DeclararExchange(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(
		Exchange, // nome
		"topic",  // tipo
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return fmt.Errorf("falha ao declarar exchange: %w", err)
	}
	return nil
}

// Rodar verifica o outbox a cada intervalo até o contexto acabar.
func (p *Publicador) Rodar(ctx context.Context) {
	ticker := time.NewTicker(p.intervalo)
	defer ticker.Stop()

	log.Printf("Publicador de eventos iniciado (polling a cada %s)", p.intervalo)
	for {
		select {
		case <-ctx.Done():
			log.Println("Publicador de eventos encerrado")
			return
		case <-ticker.C:
			p.PublicarPendentes(ctx)
		}
	}
}

// PublicarPendentes envia um lote e devolve quantos eventos foram publicados.
// Um evento que falha fica pendente para a próxima rodada.
func (p *Publicador) PublicarPendentes(ctx context.Context) int {
	eventos, err := p.fonte.Pendentes(ctx, tamanhoLote)
	if err != nil {
		log.Printf("Erro ao buscar eventos pendentes: %v", err)
		return 0
	}
	if len(eventos) == 0 {
		return 0
	}

	publicados := 0
	for _, evento := range eventos {
		err := p.canal.PublishWithContext(ctx,
			Exchange,
			evento.TipoEvento, // routing key, ex: "Mesa.Finalizada"
			false,
			false,
			amqp.Publishing{
				MessageId:    fmt.Sprintf("restaurante-%d", evento.ID),
				ContentType:  "application/json",
				Body:         []byte(evento.Payload),
				Timestamp:    evento.DataOcorrencia,
				DeliveryMode: amqp.Persistent,
			},
		)
		if err != nil {
			log.Printf("Erro ao publicar evento %d: %v", evento.ID, err)
			continue
		}

		if err := p.fonte.MarcarPublicado(ctx, evento.ID, time.Now()); err != nil {
			log.Printf("Evento %d publicado mas falhou ao atualizar outbox: %v", evento.ID, err)
			continue
		}
		publicados++
		log.Printf("Evento publicado: %s (agregado=%s)", evento.TipoEvento, evento.IdAgregado)
	}
	return publicados
}
