package testutil

import (
	"context"
	"sync"

	skafka "github.com/segmentio/kafka-go"
)

// RecordingWriter is a broker.Writer that records every message it is
// asked to write. Publisher and emitter tests inject one per topic.
type RecordingWriter struct {
	Topic string

	mu       sync.Mutex
	messages []skafka.Message
	err      error
	closed   bool
}

// NewRecordingWriter builds a RecordingWriter for the given topic.
func NewRecordingWriter(topic string) *RecordingWriter {
	return &RecordingWriter{Topic: topic}
}

// FailWith makes every subsequent WriteMessages call return err.
func (w *RecordingWriter) FailWith(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

func (w *RecordingWriter) WriteMessages(ctx context.Context, msgs ...skafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *RecordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// Messages returns a copy of the recorded messages.
func (w *RecordingWriter) Messages() []skafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]skafka.Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// Closed reports whether Close has been called.
func (w *RecordingWriter) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// WriterRecorder hands out RecordingWriters by topic and remembers them so
// tests can inspect what was published where.
type WriterRecorder struct {
	mu      sync.Mutex
	writers map[string]*RecordingWriter
}

// NewWriterRecorder builds an empty WriterRecorder.
func NewWriterRecorder() *WriterRecorder {
	return &WriterRecorder{writers: make(map[string]*RecordingWriter)}
}

// Factory is the writer factory to hand to broker.NewPublisherWithFactory.
func (r *WriterRecorder) Factory(topic string) *RecordingWriter {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.writers[topic]; ok {
		return w
	}
	w := NewRecordingWriter(topic)
	r.writers[topic] = w
	return w
}

// Writer returns the recorder for a topic, or nil if nothing was published
// to it.
func (r *WriterRecorder) Writer(topic string) *RecordingWriter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writers[topic]
}
