package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"tvojakarta/internal/orders"
	"tvojakarta/pkg/logger"
)

// Publisher announces confirmed orders to downstream consumers.
type Publisher interface {
	PublishOrderConfirmed(ctx context.Context, order *orders.Order) error
	Close() error
	HealthCheck(ctx context.Context) error
}

type ProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	Compression      sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "tvojakarta.orders.confirmed",
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		Compression:      sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// SaramaConfig translates cfg into a sync producer configuration.
func (cfg *ProducerConfig) SaramaConfig() *sarama.Config {
	sc := sarama.NewConfig()
	sc.Producer.Return.Successes = true
	sc.Producer.Return.Errors = true
	sc.Producer.RequiredAcks = cfg.RequiredAcks
	sc.Producer.Compression = cfg.Compression
	sc.Producer.Retry.Max = cfg.RetryMax
	sc.Producer.Timeout = cfg.Timeout
	sc.Producer.MaxMessageBytes = cfg.MaxMessageBytes

	// Idempotence needs a single in-flight request and a known protocol version.
	if cfg.IdempotentWrites {
		sc.Producer.Idempotent = true
		sc.Net.MaxOpenRequests = 1
		sc.Version = sarama.V2_1_0_0
	}

	// Same order number, same partition.
	sc.Producer.Partitioner = sarama.NewHashPartitioner
	return sc
}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaPublisher(cfg *ProducerConfig) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, cfg.SaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, cfg.Topic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer, e.g. a sarama mock.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, log: logger.GetDefault()}
}

func (p *KafkaPublisher) PublishOrderConfirmed(ctx context.Context, order *orders.Order) error {
	msg := NewOrderConfirmed(order)
	value, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal order confirmation: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(msg.PartitionKey()),
		Value:     sarama.ByteEncoder(value),
		Headers:   headers(msg),
		Timestamp: msg.PlacedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to send order confirmation to Kafka: %w", err)
	}

	p.log.InfoWithContext(ctx, "Order confirmation published", map[string]interface{}{
		"topic":        p.topic,
		"partition":    partition,
		"offset":       offset,
		"order_number": msg.OrderNumber,
	})
	return nil
}

func headers(msg *OrderConfirmed) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("message_id"), Value: []byte(msg.MessageID.String())},
		{Key: []byte("message_type"), Value: []byte(msg.Type)},
		{Key: []byte("order_number"), Value: []byte(msg.OrderNumber)},
		{Key: []byte("version"), Value: []byte("1.0")},
		{Key: []byte("producer"), Value: []byte("tvojakarta-checkout")},
		{Key: []byte("placed_at"), Value: []byte(msg.PlacedAt.Format(time.RFC3339))},
	}
}

func (p *KafkaPublisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// HealthCheck reports whether the producer is still usable.
func (p *KafkaPublisher) HealthCheck(ctx context.Context) error {
	if p.producer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}
	return ctx.Err()
}

// NoopPublisher is used when Kafka is disabled; confirmations are only logged.
type NoopPublisher struct {
	log *logger.Logger
}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{log: logger.GetDefault()}
}

func (p *NoopPublisher) PublishOrderConfirmed(ctx context.Context, order *orders.Order) error {
	p.log.DebugWithContext(ctx, "Order confirmation not published, Kafka disabled", map[string]interface{}{
		"order_number": order.Number,
	})
	return nil
}

func (p *NoopPublisher) Close() error { return nil }

func (p *NoopPublisher) HealthCheck(ctx context.Context) error { return nil }
