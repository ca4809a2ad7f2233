package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"tvojakarta/internal/orders"
)

type MessageType string

const MessageTypeOrderConfirmed MessageType = "ORDER_CONFIRMED"

// OrderConfirmed is the Kafka payload announcing a paid order. It carries
// what a receipt needs and nothing about the card beyond its last digits.
type OrderConfirmed struct {
	MessageID     uuid.UUID            `json:"message_id"`
	Type          MessageType          `json:"type"`
	OrderNumber   string               `json:"order_number"`
	Email         string               `json:"email"`
	CustomerName  string               `json:"customer_name"`
	CardLast4     string               `json:"card_last4"`
	Newsletter    bool                 `json:"newsletter"`
	Subtotal      int                  `json:"subtotal"`
	ServiceFee    int                  `json:"service_fee"`
	ProcessingFee int                  `json:"processing_fee"`
	Total         int                  `json:"total"`
	TransactionID string               `json:"transaction_id"`
	Items         []OrderConfirmedItem `json:"items"`
	PlacedAt      time.Time            `json:"placed_at"`
}

type OrderConfirmedItem struct {
	EventID    string `json:"event_id"`
	EventTitle string `json:"event_title"`
	EventDate  string `json:"event_date"`
	TicketType string `json:"ticket_type"`
	Price      int    `json:"price"`
	Quantity   int    `json:"quantity"`
}

// NewOrderConfirmed builds the payload for order. Titles are in Serbian, the
// storefront default.
func NewOrderConfirmed(order *orders.Order) *OrderConfirmed {
	items := make([]OrderConfirmedItem, len(order.Items))
	for i, it := range order.Items {
		items[i] = OrderConfirmedItem{
			EventID:    it.EventID,
			EventTitle: it.EventTitleSR,
			EventDate:  it.EventDate.Format("2006-01-02"),
			TicketType: it.TicketTypeSR,
			Price:      it.Price,
			Quantity:   it.Quantity,
		}
	}
	return &OrderConfirmed{
		MessageID:     uuid.New(),
		Type:          MessageTypeOrderConfirmed,
		OrderNumber:   order.Number,
		Email:         order.Email,
		CustomerName:  order.FirstName + " " + order.LastName,
		CardLast4:     order.CardLast4,
		Newsletter:    order.Newsletter,
		Subtotal:      order.Subtotal,
		ServiceFee:    order.ServiceFee,
		ProcessingFee: order.ProcessingFee,
		Total:         order.Total,
		TransactionID: order.TransactionID,
		Items:         items,
		PlacedAt:      order.CreatedAt,
	}
}

func (m *OrderConfirmed) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseOrderConfirmed(data []byte) (*OrderConfirmed, error) {
	var m OrderConfirmed
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// PartitionKey keeps all messages for one order on one partition.
func (m *OrderConfirmed) PartitionKey() string {
	return m.OrderNumber
}

func (m *OrderConfirmed) TicketCount() int {
	n := 0
	for _, it := range m.Items {
		n += it.Quantity
	}
	return n
}
