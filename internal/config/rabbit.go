package config

import (
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConectarRabbit tenta várias vezes: o broker costuma subir depois do serviço.
func ConectarRabbit(url string, tentativas int) (*amqp.Connection, error) {
	var err error
	for i := 1; i <= tentativas; i++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(url)
		if err == nil {
			log.Println("Conectado ao RabbitMQ")
			return conn, nil
		}
		log.Printf("Tentativa %d/%d de conexão RabbitMQ: %v", i, tentativas, err)
		if i < tentativas {
			time.Sleep(3 * time.Second)
		}
	}
	return nil, fmt.Errorf("falha ao conectar RabbitMQ após %d tentativas: %w", tentativas, err)
}
