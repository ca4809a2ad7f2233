package cart

import (
	"errors"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/pricing"
)

var (
	ErrItemNotFound       = errors.New("cart item not found")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrCheckoutPending    = errors.New("cart is locked by a pending checkout")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
)

// CartItem is a quantity of one ticket type for one event. Event title, image
// and date are copied from the catalog when the line is created and are not
// refreshed afterwards, so the price shown is the price charged.
type CartItem struct {
	ID         string       `json:"id"`
	EventID    string       `json:"event_id"`
	EventTitle catalog.Text `json:"event_title"`
	EventImage string       `json:"event_image"`
	EventDate  catalog.Date `json:"event_date"`
	TicketType catalog.Text `json:"ticket_type"`
	Price      int          `json:"price"`
	Quantity   int          `json:"quantity"`
}

func (i CartItem) LineTotal() int {
	return i.Price * i.Quantity
}

type lineKey struct {
	eventID    string
	ticketType string
}

// key identifies the (event, ticket type) pair a line represents.
func (i CartItem) key() lineKey {
	name := i.TicketType.SR
	if name == "" {
		name = i.TicketType.EN
	}
	return lineKey{eventID: i.EventID, ticketType: name}
}

// Snapshot is a consistent copy of a cart taken under its lock.
type Snapshot struct {
	Items      []CartItem `json:"items"`
	Total      int        `json:"total"`
	ItemsCount int        `json:"items_count"`
}

// Summary adds the fee breakdown to a snapshot.
type Summary struct {
	Snapshot
	Quote pricing.Quote `json:"quote"`
}
