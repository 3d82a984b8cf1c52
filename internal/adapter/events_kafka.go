package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
)

const publishTimeout = 5 * time.Second

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer messageWriter
	logger *logger.Logger
}

// NewKafkaPublisher constructs an [EventPublisher] writing JSON encoded
// events to cfg.Topic. Events of one user are keyed by user ID and so land
// on the same partition.
//
// The writer is asynchronous: Publish only enqueues, delivery failures are
// logged from the completion callback and Close flushes what is pending.
func NewKafkaPublisher(cfg config.Events, logger *logger.Logger) EventPublisher {
	logger.Debug().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.Topic).Msg("creating kafka publisher")

	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			Async:                  true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logger.Warn().Err(err).Int("messages", len(messages)).Msg("failed to deliver user events")
				}
			},
		},
		logger: logger,
	}
}

// Publish implements [EventPublisher].
func (p *kafkaPublisher) Publish(ctx context.Context, event models.UserEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %w", ErrPublishFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// Close implements [EventPublisher].
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type nopPublisher struct{}

// NewNopPublisher returns an [EventPublisher] that discards every event.
func NewNopPublisher() EventPublisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, models.UserEvent) error { return nil }

func (nopPublisher) Close() error { return nil }
