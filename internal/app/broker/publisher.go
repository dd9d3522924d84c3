// internal/app/broker/publisher.go

// Package broker wraps the Kafka client: a Publisher for outbound domain
// events and a Consumer that keeps local read-caches current. One Publisher
// and one Consumer are built at startup with explicit connect/close
// lifecycle and injected where needed; nothing reaches for a global handle.
package broker

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Topics this service produces to and consumes from. Messages are keyed by
// aggregate or user id; the broker preserves order per key.
const (
	TopicChat         = "chat"
	TopicMail         = "mail"
	TopicUser         = "user"
	TopicSubscription = "subscription"
)

// Writer is the subset of the kafka writer the publisher needs.
// Tests inject a recording fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// Publisher publishes JSON payloads to a topic, partitioned by key.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
	Close() error
}

// KafkaPublisher implements Publisher over per-topic kafka writers created
// lazily on first use.
type KafkaPublisher struct {
	mu      sync.Mutex
	writers map[string]Writer
	factory func(topic string) Writer
	log     *zap.Logger
}

// NewPublisher builds a KafkaPublisher for the given brokers.
func NewPublisher(brokers []string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writers: make(map[string]Writer),
		log:     log,
		factory: func(topic string) Writer {
			return &skafka.Writer{
				Addr:     skafka.TCP(brokers...),
				Topic:    topic,
				Balancer: &skafka.Hash{},
			}
		},
	}
}

// NewPublisherWithFactory allows tests to inject writer fakes.
func NewPublisherWithFactory(factory func(topic string) Writer, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writers: make(map[string]Writer),
		factory: factory,
		log:     log,
	}
}

// Publish marshals value to JSON and writes one message keyed by key.
// The hash balancer plus the key gives per-entity ordering.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	msg := skafka.Message{
		Key:   []byte(key),
		Value: b,
		Headers: []skafka.Header{
			{Key: "message_id", Value: []byte(uuid.NewString())},
		},
	}
	return p.writer(topic).WriteMessages(ctx, msg)
}

// Close closes every topic writer, keeping the first error.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var first error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
		delete(p.writers, topic)
	}
	return first
}

func (p *KafkaPublisher) writer(topic string) Writer {
	p.mu.Lock()
	defer p.mu.Unlock()
	w, ok := p.writers[topic]
	if !ok {
		w = p.factory(topic)
		p.writers[topic] = w
	}
	return w
}
