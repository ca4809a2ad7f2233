package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakySender struct {
	failures int
	calls    int
	sent     []string
}

func (s *flakySender) SendReceipt(ctx context.Context, msg *OrderConfirmed) error {
	s.calls++
	if s.failures > 0 {
		s.failures--
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, msg.OrderNumber)
	return nil
}

func message(t *testing.T, msg *OrderConfirmed) *sarama.ConsumerMessage {
	t.Helper()
	raw, err := msg.ToJSON()
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Topic: "orders", Value: raw}
}

func TestReceiptHandler_RetriesThenSends(t *testing.T) {
	sender := &flakySender{failures: 2}
	h := newReceiptHandler(sender, 3, time.Millisecond)

	require.NoError(t, h.process(context.Background(), message(t, NewOrderConfirmed(sampleOrder()))))
	assert.Equal(t, 3, sender.calls)
	assert.Equal(t, []string{"TK-2025-004211"}, sender.sent)
}

func TestReceiptHandler_GivesUp(t *testing.T) {
	sender := &flakySender{failures: 10}
	h := newReceiptHandler(sender, 2, time.Millisecond)

	err := h.process(context.Background(), message(t, NewOrderConfirmed(sampleOrder())))
	assert.Error(t, err)
	assert.Equal(t, 3, sender.calls)
}

func TestReceiptHandler_SkipsMalformedAndForeign(t *testing.T) {
	sender := &flakySender{}
	h := newReceiptHandler(sender, 0, time.Millisecond)

	assert.NoError(t, h.process(context.Background(), &sarama.ConsumerMessage{Value: []byte("{not json")}))

	foreign := NewOrderConfirmed(sampleOrder())
	foreign.Type = "SOMETHING_ELSE"
	assert.NoError(t, h.process(context.Background(), message(t, foreign)))
	assert.Equal(t, 0, sender.calls)
}

func TestRenderReceipt(t *testing.T) {
	body, err := RenderReceipt(NewOrderConfirmed(sampleOrder()))
	require.NoError(t, err)

	assert.Contains(t, body, "TK-2025-004211")
	assert.Contains(t, body, "2 x VIP karta - Koncert (2025-06-15): 45 KM")
	assert.Contains(t, body, "Ukupno: 124 KM")
	assert.Contains(t, body, "**** 4242")
	assert.NoError(t, NewLogReceiptSender().SendReceipt(context.Background(), NewOrderConfirmed(sampleOrder())))
}
