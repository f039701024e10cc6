package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	portsevents "github.com/anygroup/splitfair/internal/core/ports/events"
)

// Publisher writes JSON-encoded events to Kafka. One writer serves all topics;
// the topic is set per message.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher connected to the given brokers.
func NewPublisher(brokers []string) portsevents.Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: writer}
}

// Ensure Publisher implements the portsevents.Publisher interface
var _ portsevents.Publisher = (*Publisher)(nil)

// Publish marshals the event to JSON and writes it to the topic.
func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for topic %s: %w", topic, err)
	}

	msg := kafka.Message{
		Topic: topic,
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
