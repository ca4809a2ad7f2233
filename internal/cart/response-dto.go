package cart

import (
	"tvojakarta/internal/catalog"
	"tvojakarta/internal/pricing"
)

type CartItemResponse struct {
	ID         string       `json:"id"`
	EventID    string       `json:"event_id"`
	EventTitle string       `json:"event_title"`
	EventImage string       `json:"event_image"`
	EventDate  catalog.Date `json:"event_date"`
	TicketType string       `json:"ticket_type"`
	Price      int          `json:"price"`
	Quantity   int          `json:"quantity"`
	LineTotal  int          `json:"line_total"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	Total      int                `json:"total"`
	ItemsCount int                `json:"items_count"`
	Language   catalog.Language   `json:"language"`
}

type SummaryResponse struct {
	CartResponse
	Quote pricing.Quote `json:"quote"`
}

func toItemResponse(item CartItem, lang catalog.Language) CartItemResponse {
	return CartItemResponse{
		ID:         item.ID,
		EventID:    item.EventID,
		EventTitle: item.EventTitle.Get(lang),
		EventImage: item.EventImage,
		EventDate:  item.EventDate,
		TicketType: item.TicketType.Get(lang),
		Price:      item.Price,
		Quantity:   item.Quantity,
		LineTotal:  item.LineTotal(),
	}
}

func toCartResponse(snap Snapshot, lang catalog.Language) CartResponse {
	items := make([]CartItemResponse, len(snap.Items))
	for i, it := range snap.Items {
		items[i] = toItemResponse(it, lang)
	}
	return CartResponse{
		Items:      items,
		Total:      snap.Total,
		ItemsCount: snap.ItemsCount,
		Language:   lang,
	}
}
