package collector

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaEventPublisher_Publishes(t *testing.T) {
	w := &fakeWriter{}
	p, err := NewKafkaEventPublisher(KafkaPublisherConfig{Writer: w, Logger: discardLogger()})
	require.NoError(t, err)

	event := testEvent()
	event.ID = "evt-1"
	require.NoError(t, p.LogEvent(context.Background(), event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	require.Equal(t, "my-app", string(msg.Key))
	require.Equal(t, event.Timestamp, msg.Time)
	require.Equal(t, "evt-1", header(msg, HeaderEventID))
	require.Equal(t, "true", header(msg, HeaderTracked))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	require.Equal(t, "evt-1", body["id"])
	require.Equal(t, "https://img.example/photo?w=200", body["url"])

	require.NoError(t, p.Close())
	require.True(t, w.closed)
}

func TestKafkaEventPublisher_WriteError(t *testing.T) {
	boom := errors.New("broker down")
	p, err := NewKafkaEventPublisher(KafkaPublisherConfig{Writer: &fakeWriter{err: boom}, Logger: discardLogger()})
	require.NoError(t, err)

	err = p.LogEvent(context.Background(), testEvent())
	require.ErrorIs(t, err, boom)
}

func TestNewKafkaEventPublisher_Validation(t *testing.T) {
	_, err := NewKafkaEventPublisher(KafkaPublisherConfig{Topic: "events"})
	require.Error(t, err)

	_, err = NewKafkaEventPublisher(KafkaPublisherConfig{Brokers: []string{"localhost:9092"}})
	require.Error(t, err)

	p, err := NewKafkaEventPublisher(KafkaPublisherConfig{Brokers: []string{"localhost:9092"}, Topic: "events"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}
