// Package consumidor recebe da cozinha, via RabbitMQ, os avanços de status dos
// pedidos.
package consumidor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"servico-restaurante/internal/dominio"
	"servico-restaurante/internal/servico"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeCozinha = "cozinha-eventos"
	Fila            = "restaurante-cozinha"

	ChavePedidoPronto   = "Cozinha.PedidoPronto"
	ChavePedidoEntregue = "Cozinha.PedidoEntregue"
)

var statusPorChave = map[string]dominio.StatusPedido{
	ChavePedidoPronto:   dominio.PedidoPronto,
	ChavePedidoEntregue: dominio.PedidoEntregue,
}

type Consumidor struct {
	armazem     servico.Armazem
	notificador servico.Notificador
}

func NovoConsumidor(armazem servico.Armazem, notificador servico.Notificador) *Consumidor {
	return &Consumidor{armazem: armazem, notificador: notificador}
}

// Iniciar declara exchange, fila e bindings e consome até o contexto acabar.
func (c *Consumidor) Iniciar(ctx context.Context, ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(
		ExchangeCozinha, // nome
		"topic",         // tipo
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return fmt.Errorf("falha ao declarar exchange: %w", err)
	}

	q, err := ch.QueueDeclare(Fila, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("falha ao declarar fila: %w", err)
	}

	for chave := range statusPorChave {
		if err := ch.QueueBind(q.Name, chave, ExchangeCozinha, false, nil); err != nil {
			return fmt.Errorf("falha ao fazer bind %s: %w", chave, err)
		}
	}

	// uma mensagem por vez
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("falha ao configurar QoS: %w", err)
	}

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		false,  // auto-ack desligado
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumer: %w", err)
	}

	log.Println("Consumidor RabbitMQ iniciado, aguardando mensagens da cozinha...")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					log.Println("Canal de mensagens da cozinha fechado")
					return
				}
				c.tratar(ctx, msg)
			}
		}
	}()
	return nil
}

func (c *Consumidor) tratar(ctx context.Context, msg amqp.Delivery) {
	idMsg := msg.MessageId
	if idMsg == "" {
		idMsg = fmt.Sprintf("%d-%s", msg.DeliveryTag, msg.RoutingKey)
	}

	err := c.Processar(ctx, idMsg, msg.RoutingKey, msg.Body)
	switch {
	case err == nil:
		msg.Ack(false)
	case errors.Is(err, dominio.ErrValidacao), errors.Is(err, dominio.ErrNaoEncontrado):
		// reenfileirar não resolve mensagem inválida
		log.Printf("Mensagem %s descartada: %v", idMsg, err)
		msg.Nack(false, false)
	default:
		log.Printf("Erro ao processar mensagem %s: %v", idMsg, err)
		msg.Nack(false, true)
	}
}

// Processar aplica a mensagem uma única vez por id. O registro da mensagem e a
// troca de status acontecem na mesma transação.
func (c *Consumidor) Processar(ctx context.Context, idMsg, chave string, corpo []byte) error {
	status, ok := statusPorChave[chave]
	if !ok {
		log.Printf("Routing key desconhecida: %s", chave)
		return nil
	}

	var evento struct {
		PedidoID string `json:"pedidoId"`
	}
	if err := json.Unmarshal(corpo, &evento); err != nil {
		return dominio.Validacao(fmt.Sprintf("Mensagem inválida: %v", err))
	}
	pedidoID, err := uuid.Parse(evento.PedidoID)
	if err != nil {
		return dominio.Validacao("pedidoId inválido.")
	}

	var atualizado *dominio.Pedido
	err = c.armazem.Transacao(ctx, func(r servico.Repositorios) error {
		processada, err := r.Mensagens.JaProcessada(ctx, idMsg)
		if err != nil {
			return fmt.Errorf("falha ao verificar mensagem: %w", err)
		}
		if processada {
			log.Printf("Mensagem %s já processada, ignorando", idMsg)
			return nil
		}

		pedido, err := r.Pedidos.BuscarPorID(ctx, pedidoID)
		if err != nil {
			return err
		}
		// eventos atrasados não fazem o pedido voltar de etapa
		if pedido.Status.Etapa() >= status.Etapa() {
			log.Printf("Pedido %s já está %s; mensagem %s ignorada", pedidoID, pedido.Status, idMsg)
		} else {
			if err := r.Pedidos.AtualizarStatus(ctx, pedidoID, status); err != nil {
				return fmt.Errorf("falha ao atualizar pedido: %w", err)
			}
			pedido.Status = status
			atualizado = pedido
		}
		return r.Mensagens.Registrar(ctx, idMsg)
	})
	if err != nil {
		return err
	}

	if atualizado != nil {
		log.Printf("Pedido %s marcado como %s pela cozinha", pedidoID, status)
		if c.notificador != nil {
			if err := c.notificador.Broadcast(ctx, dominio.EventoPedidoAtualizado, atualizado); err != nil {
				log.Printf("Erro ao notificar evento %s: %v", dominio.EventoPedidoAtualizado, err)
			}
		}
	}
	return nil
}
