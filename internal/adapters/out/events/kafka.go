// Package events delivers ports.Event notifications, to a Kafka topic or to
// the service log.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"workshop/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// envelope is the JSON payload written to the topic.
type envelope struct {
	Type        string            `json:"type"`
	AggregateID string            `json:"aggregate_id"`
	ActorID     string            `json:"actor_id"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	At          time.Time         `json:"at"`
}

// KafkaNotifier writes events keyed by aggregate id so events of one
// aggregate stay ordered within a partition.
type KafkaNotifier struct {
	writer messageWriter
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

func (n *KafkaNotifier) Notify(ctx context.Context, e ports.Event) error {
	payload, err := json.Marshal(envelope{
		Type:        e.Type,
		AggregateID: e.AggregateID.String(),
		ActorID:     e.ActorID.String(),
		Attributes:  e.Attributes,
		At:          e.At,
	})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:     []byte(e.AggregateID.String()),
		Value:   payload,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(e.Type)}},
		Time:    e.At,
	}
	if err = n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
