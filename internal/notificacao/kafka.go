package notificacao

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

type escritor interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Kafka envia cada evento ao tópico de análise, com o nome do evento como
// chave para manter a ordem por tipo.
type Kafka struct {
	writer escritor
}

func NovoKafka(writer *kafka.Writer) *Kafka {
	return &Kafka{writer: writer}
}

func (k *Kafka) Broadcast(ctx context.Context, evento string, payload any) error {
	b, err := serializar(evento, payload)
	if err != nil {
		return err
	}
	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evento),
		Value: b,
	})
	if err != nil {
		return fmt.Errorf("falha ao enviar evento %s ao kafka: %w", evento, err)
	}
	return nil
}
