package cart

type AddItemRequest struct {
	EventID    string `json:"event_id" binding:"required,max=64"`
	TicketType string `json:"ticket_type" binding:"required,max=255"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}
