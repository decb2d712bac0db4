package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// Kafka header keys set on every published event.
const (
	HeaderEventID = "event-id"
	HeaderTracked = "tracked"
)

// MessageWriter is the part of kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisherConfig configures a KafkaEventPublisher.
type KafkaPublisherConfig struct {
	Brokers []string
	Topic   string
	Writer  MessageWriter // Overrides Brokers/Topic when set
	Logger  *slog.Logger
}

// KafkaEventPublisher publishes each event as a JSON message keyed by app, so
// events for one app land on one partition in order.
type KafkaEventPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

// NewKafkaEventPublisher creates a publisher writing to cfg.Topic.
func NewKafkaEventPublisher(cfg KafkaPublisherConfig) (*KafkaEventPublisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	writer := cfg.Writer
	if writer == nil {
		if len(cfg.Brokers) == 0 {
			return nil, errors.New("at least one kafka broker is required")
		}
		if cfg.Topic == "" {
			return nil, errors.New("kafka topic cannot be empty")
		}
		writer = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Logger:       kafka.LoggerFunc(func(string, ...any) {}),
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
				logger.Error(fmt.Sprintf(msg, args...))
			}),
		}
	}

	return &KafkaEventPublisher{writer: writer, logger: logger}, nil
}

// LogEvent publishes event synchronously.
func (p *KafkaEventPublisher) LogEvent(ctx context.Context, event *Event) error {
	data, err := event.toJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(value(event.Tracking.App)),
		Value: data,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: HeaderTracked, Value: []byte(strconv.FormatBool(event.Tracked))},
		},
	}
	if event.ID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: HeaderEventID, Value: []byte(event.ID)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	p.logger.Debug("published event to kafka", "id", event.ID)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaEventPublisher) Close() error {
	return p.writer.Close()
}
