package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"kiosk-sales-api/internal/pkg/clock"
	"kiosk-sales-api/internal/pkg/config"
	"kiosk-sales-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeSaleRegistered  = "sale.registered"
	TypeCommerceSettled = "commerce.settled"
)

type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
	Close() error
}

// MessageWriter is the part of *kafka.Writer the publisher depends on.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  MessageWriter
	clock   clock.Clock
	timeout time.Duration
	logger  *slog.Logger
}

// NewKafkaWriter flushes after BatchTimeout instead of kafka-go's 1s default.
// In async mode WriteMessages returns once the message is queued and delivery
// failures are reported through Completion.
func NewKafkaWriter(cfg config.EventsConfig, logger *slog.Logger) *kafka.Writer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequireOne,
		Async:                  cfg.Async,
	}
	if cfg.Async {
		w.Completion = completionLogger(logger)
	}
	return w
}

func completionLogger(logger *slog.Logger) func([]kafka.Message, error) {
	return func(msgs []kafka.Message, err error) {
		if err == nil {
			return
		}
		for _, m := range msgs {
			logger.Warn("Event delivery failed",
				slog.String("key", string(m.Key)),
				slog.String("error", err.Error()),
			)
		}
	}
}

func NewKafkaPublisher(writer MessageWriter, clk clock.Clock, timeout time.Duration, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, clock: clk, timeout: timeout, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	env := Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: p.clock.Now(),
		Payload:    payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return errs.Wrapf(err, "failed to encode %s event", eventType)
	}

	// The sale or settlement is already committed; a client disconnect must not drop its event.
	ctx = context.WithoutCancel(ctx)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg := kafka.Message{
		Key:   []byte(eventType + "-" + key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrapf(err, "failed to publish %s event", eventType)
	}
	p.logger.Debug("Event published", slog.String("type", eventType), slog.String("id", env.ID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
