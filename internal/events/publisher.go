package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// WatermillEventPublisher publishes events through any watermill publisher
type WatermillEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaEventPublisher creates a Kafka-backed publisher
func NewKafkaEventPublisher(config PublisherConfig) (*WatermillEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &WatermillEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// NewChannelEventPublisher creates an in-process publisher. The returned
// GoChannel can be subscribed to for local consumers.
func NewChannelEventPublisher(config PublisherConfig) (*WatermillEventPublisher, *gochannel.GoChannel) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(config.Logger))

	return &WatermillEventPublisher{
		publisher: pubSub,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, pubSub
}

// Publish marshals the event and sends it to the configured topic
func (p *WatermillEventPublisher) Publish(ctx context.Context, event *Event) error {
	msg, err := toMessage(event)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *WatermillEventPublisher) Close() error {
	return p.publisher.Close()
}

func toMessage(event *Event) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	return msg, nil
}

// DecodeEvent reads an event envelope back from a watermill message. Data
// stays as raw JSON for the consumer to decode.
func DecodeEvent(msg *message.Message) (*Event, json.RawMessage, error) {
	var envelope struct {
		Event
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return nil, nil, fmt.Errorf("failed to decode event %s: %w", msg.UUID, err)
	}
	event := envelope.Event
	event.Data = nil
	return &event, envelope.Data, nil
}

// MockEventPublisher records events in memory (for testing)
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []Event
	Logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &MockEventPublisher{
		Events: make([]Event, 0),
		Logger: logger,
	}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *Event) error {
	m.mu.Lock()
	m.Events = append(m.Events, *event)
	m.mu.Unlock()
	m.Logger.Debug("Mock: Published event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns all published events (for testing)
func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.Events))
	copy(out, m.Events)
	return out
}

// ClearEvents clears all published events (for testing)
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	m.Events = make([]Event, 0)
	m.mu.Unlock()
}
