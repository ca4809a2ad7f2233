package orders

import (
	"tvojakarta/internal/catalog"
	"tvojakarta/internal/pricing"
)

// CreateOrderInput is what checkout hands over after a successful payment.
type CreateOrderInput struct {
	SessionID     string
	Customer      Customer
	CardLast4     string
	Newsletter    bool
	Lines         []Line
	Quote         pricing.Quote
	TransactionID string
}

type Customer struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

type Line struct {
	EventID    string
	EventTitle catalog.Text
	EventDate  catalog.Date
	TicketType catalog.Text
	Price      int
	Quantity   int
}

type OrderListQuery struct {
	Lang  string `form:"lang" binding:"omitempty,oneof=sr en"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
