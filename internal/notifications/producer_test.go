package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvojakarta/internal/orders"
)

func sampleOrder() *orders.Order {
	return &orders.Order{
		ID:            uuid.New(),
		Number:        "TK-2025-004211",
		FirstName:     "Ana",
		LastName:      "Jovanović",
		Email:         "ana@example.com",
		CardLast4:     "4242",
		Subtotal:      115,
		ServiceFee:    4,
		ProcessingFee: 5,
		Total:         124,
		TransactionID: "TXN_1_deadbeef",
		Items: []orders.OrderItem{
			{EventID: "1", EventTitleSR: "Koncert", EventTitleEN: "Concert", EventDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), TicketTypeSR: "VIP karta", TicketTypeEN: "VIP Ticket", Price: 45, Quantity: 2},
			{EventID: "1", EventTitleSR: "Koncert", EventTitleEN: "Concert", EventDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), TicketTypeSR: "Regularna karta", TicketTypeEN: "Regular Ticket", Price: 25, Quantity: 1},
		},
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_PublishesOrderConfirmed(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var msg OrderConfirmed
		if err := json.Unmarshal(val, &msg); err != nil {
			return err
		}
		if msg.OrderNumber != "TK-2025-004211" || msg.Total != 124 || msg.TicketCount() != 3 {
			return errors.New("unexpected payload")
		}
		if msg.Items[0].EventDate != "2025-06-15" {
			return errors.New("unexpected event date")
		}
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "orders")
	require.NoError(t, pub.PublishOrderConfirmed(context.Background(), sampleOrder()))
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "orders")
	err := pub.PublishOrderConfirmed(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestProducerConfig_SaramaConfig(t *testing.T) {
	sc := DefaultProducerConfig().SaramaConfig()

	assert.True(t, sc.Producer.Return.Successes)
	assert.True(t, sc.Producer.Idempotent)
	assert.Equal(t, 1, sc.Net.MaxOpenRequests)
	assert.Equal(t, sarama.WaitForAll, sc.Producer.RequiredAcks)
	assert.NoError(t, sc.Validate())
}

func TestNewOrderConfirmed(t *testing.T) {
	msg := NewOrderConfirmed(sampleOrder())

	assert.Equal(t, MessageTypeOrderConfirmed, msg.Type)
	assert.Equal(t, "Ana Jovanović", msg.CustomerName)
	assert.Equal(t, "TK-2025-004211", msg.PartitionKey())
	assert.Equal(t, "VIP karta", msg.Items[0].TicketType)

	raw, err := msg.ToJSON()
	require.NoError(t, err)
	parsed, err := ParseOrderConfirmed(raw)
	require.NoError(t, err)
	assert.Equal(t, msg.MessageID, parsed.MessageID)
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher()
	assert.NoError(t, pub.PublishOrderConfirmed(context.Background(), sampleOrder()))
	assert.NoError(t, pub.HealthCheck(context.Background()))
	assert.NoError(t, pub.Close())
}
