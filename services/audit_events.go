package services

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AuditEvent is published after every successful admin status transition.
type AuditEvent struct {
	HotelID      uint   `json:"hotel_id"`
	MerchantID   uint   `json:"merchant_id"`
	Action       string `json:"action"`
	FromStatus   string `json:"from_status"`
	ToStatus     string `json:"to_status"`
	RejectReason string `json:"reject_reason,omitempty"`
	At           string `json:"at"`
}

// EventPublisher delivers audit events downstream.
type EventPublisher interface {
	PublishAudit(ctx context.Context, ev AuditEvent) error
}

// RabbitPublisher publishes audit events to a durable queue on the default
// exchange. Each publish dials its own connection.
type RabbitPublisher struct {
	URL   string
	Queue string
}

func NewRabbitPublisher(url, queue string) *RabbitPublisher {
	return &RabbitPublisher{URL: url, Queue: queue}
}

func (p *RabbitPublisher) PublishAudit(ctx context.Context, ev AuditEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, "", p.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// CachePurger drops cached public responses after listing data changes.
type CachePurger interface {
	Purge(ctx context.Context) error
}

// afterChange runs the best-effort side effects of a hotel mutation. Errors
// are logged and never reach the caller.
func afterChange(ctx context.Context, cache CachePurger, pub EventPublisher, ev *AuditEvent) {
	if cache != nil {
		if err := cache.Purge(ctx); err != nil {
			zap.L().Warn("response cache purge failed", zap.Error(err))
		}
	}
	if pub != nil && ev != nil {
		pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := pub.PublishAudit(pubCtx, *ev); err != nil {
			zap.L().Warn("audit event publish failed",
				zap.Uint("hotel_id", ev.HotelID), zap.String("action", ev.Action), zap.Error(err))
		}
	}
}
