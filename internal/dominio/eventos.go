package dominio

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Eventos de tempo real enviados pelo Notificador.
const (
	EventoMesaCriada       = "mesa.criada"
	EventoMesaAtualizada   = "mesa.atualizada"
	EventoMesaExcluida     = "mesa.excluida"
	EventoMesaOcupada      = "mesa.ocupada"
	EventoMesaReservada    = "mesa.reservada"
	EventoMesaLiberada     = "mesa.liberada"
	EventoMesaFinalizada   = "mesa.finalizada"
	EventoFilaCriada       = "fila.criada"
	EventoFilaAtribuida    = "fila.atribuida"
	EventoFilaFinalizada   = "fila.finalizada"
	EventoFilaRemovida     = "fila.removida"
	EventoPedidoCriado     = "pedido.criado"
	EventoPedidoAtualizado = "pedido.atualizado"
	EventoReservaCriada    = "reserva.criada"
	EventoReservaAlterada  = "reserva.alterada"
	EventoReservaExcluida  = "reserva.excluida"
)

// Routing key do evento gravado no outbox ao fechar uma mesa.
const EventoOutboxMesaFinalizada = "Mesa.Finalizada"

type EventoOutbox struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	TipoEvento     string     `gorm:"not null" json:"tipoEvento"`
	IdAgregado     uuid.UUID  `gorm:"type:uuid;not null" json:"idAgregado"`
	Payload        string     `gorm:"type:jsonb;not null" json:"payload"`
	DataOcorrencia time.Time  `gorm:"not null" json:"dataOcorrencia"`
	DataPublicacao *time.Time `json:"dataPublicacao,omitempty"`
}

type MensagemProcessada struct {
	IDMensagem     string    `gorm:"primaryKey" json:"idMensagem"`
	DataProcessada time.Time `gorm:"not null" json:"dataProcessada"`
}

func NovoEventoOutbox(tipo string, agregado uuid.UUID, payload any, em time.Time) (*EventoOutbox, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar payload: %w", err)
	}
	return &EventoOutbox{
		TipoEvento:     tipo,
		IdAgregado:     agregado,
		Payload:        string(b),
		DataOcorrencia: em,
	}, nil
}

func (EventoOutbox) TableName() string {
	return "eventos_outbox"
}

func (MensagemProcessada) TableName() string {
	return "mensagens_processadas"
}
