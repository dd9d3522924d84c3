// internal/app/broker/consumer.go

package broker

import (
	"context"
	"errors"
	"io"

	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes one message value from a subscribed topic.
// A returned error is logged and the message is committed anyway;
// these feeds are caches, not ledgers, and a poison message must
// not wedge the group.
type Handler func(ctx context.Context, value []byte) error

// Consumer runs a consumer-group read loop over the subscribed topics and
// dispatches each message to the handler registered for its topic. The
// handler table is fixed at construction.
type Consumer struct {
	reader   *skafka.Reader
	handlers map[string]Handler
	log      *zap.Logger
}

// NewConsumer subscribes groupID to the topics present in handlers.
func NewConsumer(brokers []string, groupID string, handlers map[string]Handler, log *zap.Logger) *Consumer {
	topics := make([]string, 0, len(handlers))
	for t := range handlers {
		topics = append(topics, t)
	}
	return &Consumer{
		reader: skafka.NewReader(skafka.ReaderConfig{
			Brokers:     brokers,
			GroupID:     groupID,
			GroupTopics: topics,
		}),
		handlers: handlers,
		log:      log,
	}
}

// Run fetches, dispatches, and commits until ctx is canceled or the reader
// is closed. Intended to be launched in its own goroutine at startup.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			c.log.Error("kafka fetch failed", zap.Error(err))
			return
		}

		h, ok := c.handlers[msg.Topic]
		if !ok {
			c.log.Warn("no handler for topic", zap.String("topic", msg.Topic))
		} else if err := h(ctx, msg.Value); err != nil {
			c.log.Error("message handler failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.log.Error("kafka commit failed", zap.Error(err))
		}
	}
}

// Close shuts the underlying reader down, unblocking Run.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
