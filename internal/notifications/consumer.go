package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"tvojakarta/pkg/logger"
)

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeout    time.Duration
	Heartbeat         time.Duration
	MaxProcessingTime time.Duration
	OffsetOldest      bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "tvojakarta-receipts",
		Topics:            []string{"tvojakarta.orders.confirmed"},
		SessionTimeout:    30 * time.Second,
		Heartbeat:         3 * time.Second,
		MaxProcessingTime: time.Minute,
		OffsetOldest:      false,
		MaxRetries:        3,
		RetryBackoff:      time.Second,
	}
}

// ReceiptConsumer reads order confirmations and sends a receipt for each.
type ReceiptConsumer struct {
	group   sarama.ConsumerGroup
	handler *receiptHandler
	topics  []string
	log     *logger.Logger
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

func NewReceiptConsumer(cfg *ConsumerConfig, sender ReceiptSender) (*ReceiptConsumer, error) {
	sc := sarama.NewConfig()
	sc.Consumer.Group.Session.Timeout = cfg.SessionTimeout
	sc.Consumer.Group.Heartbeat.Interval = cfg.Heartbeat
	sc.Consumer.MaxProcessingTime = cfg.MaxProcessingTime
	sc.Consumer.Return.Errors = true
	sc.Consumer.Offsets.AutoCommit.Enable = true
	sc.Consumer.Offsets.AutoCommit.Interval = time.Second
	if cfg.OffsetOldest {
		sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		sc.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &ReceiptConsumer{
		group:   group,
		handler: newReceiptHandler(sender, cfg.MaxRetries, cfg.RetryBackoff),
		topics:  cfg.Topics,
		log:     logger.GetDefault(),
	}, nil
}

// Start consumes in the background until Stop or ctx ends.
func (rc *ReceiptConsumer) Start(ctx context.Context) {
	ctx, rc.cancel = context.WithCancel(ctx)

	rc.wg.Add(2)
	go func() {
		defer rc.wg.Done()
		for err := range rc.group.Errors() {
			rc.log.ErrorWithContext(ctx, "Receipt consumer group error", err, nil)
		}
	}()
	go func() {
		defer rc.wg.Done()
		for {
			// Consume returns on every rebalance and must be called again.
			if err := rc.group.Consume(ctx, rc.topics, rc.handler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				rc.log.ErrorWithContext(ctx, "Receipt consumer error", err, nil)
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	rc.log.InfoWithContext(ctx, "Receipt consumer started", map[string]interface{}{"topics": rc.topics})
}

func (rc *ReceiptConsumer) Stop() error {
	if rc.cancel != nil {
		rc.cancel()
	}
	err := rc.group.Close()
	rc.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

// receiptHandler is the sarama.ConsumerGroupHandler for order confirmations.
type receiptHandler struct {
	sender     ReceiptSender
	maxRetries int
	backoff    time.Duration
	log        *logger.Logger
}

func newReceiptHandler(sender ReceiptSender, maxRetries int, backoff time.Duration) *receiptHandler {
	return &receiptHandler{
		sender:     sender,
		maxRetries: maxRetries,
		backoff:    backoff,
		log:        logger.GetDefault(),
	}
}

func (h *receiptHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *receiptHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *receiptHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.process(session.Context(), message); err != nil {
				h.log.ErrorWithContext(session.Context(), "Failed to process order confirmation", err, map[string]interface{}{
					"partition": message.Partition,
					"offset":    message.Offset,
				})
				continue
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// process decodes one message and sends its receipt. Undecodable messages
// and foreign types are skipped without error so they do not block the
// partition.
func (h *receiptHandler) process(ctx context.Context, message *sarama.ConsumerMessage) error {
	msg, err := ParseOrderConfirmed(message.Value)
	if err != nil {
		h.log.ErrorWithContext(ctx, "Skipping malformed order confirmation", err, map[string]interface{}{
			"offset": message.Offset,
		})
		return nil
	}
	if msg.Type != MessageTypeOrderConfirmed {
		return nil
	}
	return h.sendWithRetry(ctx, msg)
}

func (h *receiptHandler) sendWithRetry(ctx context.Context, msg *OrderConfirmed) error {
	var err error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if err = h.sender.SendReceipt(ctx, msg); err == nil {
			return nil
		}
		if attempt == h.maxRetries {
			break
		}

		delay := h.backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("receipt for %s failed after %d attempts: %w", msg.OrderNumber, h.maxRetries+1, err)
}
