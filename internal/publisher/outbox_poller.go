package publisher

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/store"
)

const (
	// Topic carries order_completed events for downstream order systems.
	Topic = "ucp-order-events"

	batchSize = 100
)

// EventWriter is the subset of kafka.Writer the poller needs.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OutboxPoller drains the store's event outbox and publishes each event to
// Kafka, keyed by session id so events for one session keep their order.
// Writes go through a circuit breaker: a down broker trips the breaker open
// instead of being hammered on every tick.
type OutboxPoller struct {
	tick    time.Duration
	st      store.SessionStore
	writer  EventWriter
	breaker *gobreaker.CircuitBreaker[any]
}

func NewOutboxPoller(st store.SessionStore, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return newOutboxPoller(st, w)
}

func newOutboxPoller(st store.SessionStore, w EventWriter) *OutboxPoller {
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "order-events-writer",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &OutboxPoller{
		tick:    time.Second,
		st:      st,
		writer:  w,
		breaker: breaker,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.st.GetUnpublishedEvents(ctx, batchSize)
	if err != nil {
		log.Printf("failed to fetch outbox events: %v", err)
		return
	}

	for _, event := range events {
		if errPublish := p.publish(ctx, event); errPublish != nil {
			log.Printf("failed to publish event id = %v with error %v", event.ID, errPublish)
			if errors.Is(errPublish, gobreaker.ErrOpenState) {
				return // broker is down, try again next tick
			}
			continue
		}

		if errMark := p.st.MarkEventPublished(ctx, event.ID); errMark != nil {
			log.Printf("failed to mark event as published id = %v with error %v", event.ID, errMark)
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event *store.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // session id for ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}

	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, msg)
	})
	return err
}

func (p *OutboxPoller) Close() error {
	if c, ok := p.writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
