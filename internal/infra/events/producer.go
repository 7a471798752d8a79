package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"unicart/internal/domain/checkout"
	"unicart/internal/infra"
	"unicart/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventTypeOrderPlaced = "order.placed"

	publishTimeout = 10 * time.Second
)

// OrderPlacedEvent is the JSON payload written to the receipt topic.
type OrderPlacedEvent struct {
	EventID           uuid.UUID `json:"eventId"`
	Type              string    `json:"type"`
	OrderID           uuid.UUID `json:"orderId"`
	UserID            uuid.UUID `json:"userId"`
	DomainType        string    `json:"domainType"`
	TotalCents        int64     `json:"totalCents"`
	EstimatedDelivery time.Time `json:"estimatedDelivery"`
	PlacedAt          time.Time `json:"placedAt"`
}

func NewOrderPlacedEvent(r checkout.OrderReceipt) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventID:           uuid.New(),
		Type:              EventTypeOrderPlaced,
		OrderID:           r.OrderID,
		UserID:            r.UserID,
		DomainType:        string(r.DomainType),
		TotalCents:        r.Total.Cents(),
		EstimatedDelivery: r.EstimatedDelivery,
		PlacedAt:          r.PlacedAt,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ReceiptProducer publishes order receipts keyed by order id so every event
// for one order lands on the same partition.
type ReceiptProducer struct {
	writer messageWriter
	logger *slog.Logger
}

func NewReceiptProducer(cfg config.KafkaConfig, logger *slog.Logger) *ReceiptProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.ReceiptTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &ReceiptProducer{writer: writer, logger: logger}
}

func (p *ReceiptProducer) PublishOrderPlaced(ctx context.Context, receipt checkout.OrderReceipt) error {
	event := NewOrderPlacedEvent(receipt)
	payload, err := json.Marshal(event)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal order placed event", err, infra.KindBrokerFailure)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return infra.WrapRepoErr("failed to publish order placed event", err, infra.KindBrokerFailure)
	}

	p.logger.Debug("order placed event published",
		"event_id", event.EventID.String(),
		"order_id", event.OrderID.String())
	return nil
}

func (p *ReceiptProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// LogPublisher stands in when no brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishOrderPlaced(_ context.Context, receipt checkout.OrderReceipt) error {
	p.logger.Info("order placed",
		"order_id", receipt.OrderID.String(),
		"user_id", receipt.UserID.String(),
		"domain", string(receipt.DomainType),
		"total_cents", receipt.Total.Cents(),
		"estimated_delivery", receipt.EstimatedDelivery)
	return nil
}
