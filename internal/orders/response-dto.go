package orders

import (
	"time"

	"tvojakarta/internal/catalog"
)

type OrderItemResponse struct {
	EventID    string       `json:"event_id"`
	EventTitle string       `json:"event_title"`
	EventDate  catalog.Date `json:"event_date"`
	TicketType string       `json:"ticket_type"`
	Price      int          `json:"price"`
	Quantity   int          `json:"quantity"`
}

type OrderResponse struct {
	Number        string              `json:"number"`
	Status        Status              `json:"status"`
	StatusLabel   string              `json:"status_label"`
	Email         string              `json:"email"`
	CardLast4     string              `json:"card_last4"`
	Subtotal      int                 `json:"subtotal"`
	ServiceFee    int                 `json:"service_fee"`
	ProcessingFee int                 `json:"processing_fee"`
	Total         int                 `json:"total"`
	TicketCount   int                 `json:"ticket_count"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

func ToOrderResponse(o Order, lang catalog.Language) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		y, m, d := it.EventDate.Date()
		items[i] = OrderItemResponse{
			EventID:    it.EventID,
			EventTitle: catalog.Text{SR: it.EventTitleSR, EN: it.EventTitleEN}.Get(lang),
			EventDate:  catalog.NewDate(y, m, d),
			TicketType: catalog.Text{SR: it.TicketTypeSR, EN: it.TicketTypeEN}.Get(lang),
			Price:      it.Price,
			Quantity:   it.Quantity,
		}
	}
	return OrderResponse{
		Number:        o.Number,
		Status:        o.Status,
		StatusLabel:   o.Status.Label(lang),
		Email:         o.Email,
		CardLast4:     o.CardLast4,
		Subtotal:      o.Subtotal,
		ServiceFee:    o.ServiceFee,
		ProcessingFee: o.ProcessingFee,
		Total:         o.Total,
		TicketCount:   o.TicketCount(),
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}
