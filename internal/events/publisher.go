package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ResultPublisher forwards completed-attempt summaries to the external intake
// system. Delivery is best-effort telemetry: callers must treat failures as
// warnings, never as a reason to roll back local completion.
type ResultPublisher interface {
	PublishResultEvent(ctx context.Context, event *ResultEvent) error
	Close() error
}

// KafkaResultPublisher implements ResultPublisher using Watermill with Kafka.
type KafkaResultPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher.
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaResultPublisher creates a Kafka-based publisher using Watermill.
func NewKafkaResultPublisher(config PublisherConfig) (*KafkaResultPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaResultPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// PublishResultEvent publishes a result event to the configured topic.
func (p *KafkaResultPublisher) PublishResultEvent(ctx context.Context, event *ResultEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal result event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish result event",
			"event_id", event.ID,
			"attempt_id", event.AttemptID,
			"error", err)
		return fmt.Errorf("failed to publish result event: %w", err)
	}

	p.logger.Info("Published result event",
		"event_id", event.ID,
		"attempt_id", event.AttemptID,
		"topic", p.topicName)
	return nil
}

// Close closes the publisher and releases resources.
func (p *KafkaResultPublisher) Close() error {
	return p.publisher.Close()
}

// MockResultPublisher records events in memory, for tests and for running
// without a broker.
type MockResultPublisher struct {
	Events  []ResultEvent
	FailAll bool
}

func (m *MockResultPublisher) PublishResultEvent(_ context.Context, event *ResultEvent) error {
	if m.FailAll {
		return fmt.Errorf("mock publisher failure")
	}
	m.Events = append(m.Events, *event)
	return nil
}

func (m *MockResultPublisher) Close() error {
	return nil
}
