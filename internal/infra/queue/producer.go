package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DeliveryEvent records one WhatsApp send attempt (or skip) for
// downstream consumers: analytics, reconciliation against Interakt
// delivery webhooks, etc.
type DeliveryEvent struct {
	EventID    string `json:"event_id"`
	OrderID    string `json:"order_id"`
	Phone      string `json:"phone,omitempty"`
	Status     string `json:"status"` // success | failed | error | skipped
	StatusCode int    `json:"status_code,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Source     string `json:"source"` // single | batch | worker
	SentAt     string `json:"sent_at"`
}

const (
	SourceSingle = "single"
	SourceBatch  = "batch"
	SourceWorker = "worker"
)

func NewDeliveryEvent(eventID, orderID, phone, status, source string) DeliveryEvent {
	return DeliveryEvent{
		EventID: eventID,
		OrderID: orderID,
		Phone:   phone,
		Status:  status,
		Source:  source,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishDelivery(ctx context.Context, event DeliveryEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("delivery event marshal failed: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("rabbitmq publish failed: %v", err)
	}

	return nil
}
