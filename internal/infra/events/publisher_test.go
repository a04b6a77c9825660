//go:build unit

package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"kiosk-sales-api/internal/infra/events"
	"kiosk-sales-api/internal/pkg/clock"
	"kiosk-sales-api/internal/pkg/config"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages    []kafka.Message
	err         error
	hasDeadline bool
	ctxErr      error
	closed      bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, w.hasDeadline = ctx.Deadline()
	w.ctxErr = ctx.Err()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("writes an envelope keyed by event type", func(t *testing.T) {
		w := &recordingWriter{}
		p := events.NewKafkaPublisher(w, clock.NewFixedClock(now), time.Second, logger)

		err := p.Publish(context.Background(), events.TypeSaleRegistered, "1001", map[string]any{"receiptId": 55})
		require.NoError(t, err)
		require.Len(t, w.messages, 1)
		assert.True(t, w.hasDeadline)

		msg := w.messages[0]
		assert.Equal(t, "sale.registered-1001", string(msg.Key))

		var env struct {
			ID         string         `json:"id"`
			Type       string         `json:"type"`
			OccurredAt time.Time      `json:"occurredAt"`
			Payload    map[string]any `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(msg.Value, &env))
		assert.NotEmpty(t, env.ID)
		assert.Equal(t, events.TypeSaleRegistered, env.Type)
		assert.True(t, now.Equal(env.OccurredAt))
		assert.EqualValues(t, 55, env.Payload["receiptId"])
	})

	t.Run("wraps writer failures", func(t *testing.T) {
		w := &recordingWriter{err: errors.New("leader not available")}
		p := events.NewKafkaPublisher(w, clock.NewFixedClock(now), 0, logger)

		err := p.Publish(context.Background(), events.TypeCommerceSettled, "Acme", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "commerce.settled")
		assert.False(t, w.hasDeadline)
	})

	t.Run("cancelled request context still publishes", func(t *testing.T) {
		w := &recordingWriter{}
		p := events.NewKafkaPublisher(w, clock.NewFixedClock(now), time.Second, logger)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := p.Publish(ctx, events.TypeSaleRegistered, "1002", nil)
		require.NoError(t, err)
		require.Len(t, w.messages, 1)
		assert.NoError(t, w.ctxErr)
		assert.True(t, w.hasDeadline)
	})

	t.Run("close closes the writer", func(t *testing.T) {
		w := &recordingWriter{}
		p := events.NewKafkaPublisher(w, clock.NewFixedClock(now), 0, logger)
		require.NoError(t, p.Close())
		assert.True(t, w.closed)
	})
}

func TestNopPublisher(t *testing.T) {
	var p events.Publisher = events.NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), events.TypeSaleRegistered, "1", nil))
	assert.NoError(t, p.Close())
}

func TestNewKafkaWriter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("async writer flushes quickly and reports failures", func(t *testing.T) {
		cfg := config.EventsConfig{
			Brokers:      []string{"localhost:9092"},
			Topic:        "kiosk-sales",
			WriteTimeout: 5 * time.Second,
			BatchTimeout: 10 * time.Millisecond,
			Async:        true,
		}
		w := events.NewKafkaWriter(cfg, logger)
		t.Cleanup(func() { _ = w.Close() })

		assert.Equal(t, "kiosk-sales", w.Topic)
		assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
		assert.Less(t, w.BatchTimeout, time.Second)
		assert.True(t, w.Async)
		assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
		require.NotNil(t, w.Completion)
		assert.NotPanics(t, func() {
			w.Completion([]kafka.Message{{Key: []byte("sale.registered-1")}}, errors.New("broker down"))
			w.Completion(nil, nil)
		})
	})

	t.Run("sync writer has no completion callback", func(t *testing.T) {
		cfg := config.NewTestConfig().Events
		cfg.Brokers = []string{"localhost:9092"}
		cfg.Async = false
		w := events.NewKafkaWriter(cfg, logger)
		t.Cleanup(func() { _ = w.Close() })

		assert.False(t, w.Async)
		assert.Nil(t, w.Completion)
		assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
	})
}
