package orders

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"tvojakarta/internal/catalog"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrDuplicateNumber = errors.New("order number already taken")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
)

var statusLabels = map[Status]catalog.Text{
	StatusConfirmed: {SR: "Potvrđena", EN: "Confirmed"},
	StatusCompleted: {SR: "Završena", EN: "Completed"},
}

func (s Status) Label(lang catalog.Language) string {
	if label, ok := statusLabels[s]; ok {
		return label.Get(lang)
	}
	return string(s)
}

// Order is a paid cart. Amounts are copied from the quote at payment time.
type Order struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	Number        string      `json:"number" gorm:"uniqueIndex;not null;size:32"`
	SessionID     string      `json:"-" gorm:"index;not null;size:64"`
	Status        Status      `json:"status" gorm:"type:varchar(20);not null;default:'confirmed'"`
	FirstName     string      `json:"first_name" gorm:"not null;size:100"`
	LastName      string      `json:"last_name" gorm:"not null;size:100"`
	Email         string      `json:"email" gorm:"not null;size:255"`
	Phone         string      `json:"phone" gorm:"size:50"`
	Address       string      `json:"address" gorm:"size:255"`
	City          string      `json:"city" gorm:"size:100"`
	PostalCode    string      `json:"postal_code" gorm:"size:20"`
	CardLast4     string      `json:"card_last4" gorm:"size:4"`
	Newsletter    bool        `json:"newsletter" gorm:"default:false"`
	Subtotal      int         `json:"subtotal" gorm:"not null"`
	ServiceFee    int         `json:"service_fee" gorm:"not null"`
	ProcessingFee int         `json:"processing_fee" gorm:"not null"`
	Total         int         `json:"total" gorm:"not null"`
	TransactionID string      `json:"transaction_id" gorm:"size:64"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time   `json:"created_at" gorm:"autoCreateTime"`
}

type OrderItem struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	OrderID      uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	EventID      string    `json:"event_id" gorm:"not null;size:64"`
	EventTitleSR string    `json:"event_title_sr" gorm:"size:255"`
	EventTitleEN string    `json:"event_title_en" gorm:"size:255"`
	EventDate    time.Time `json:"event_date" gorm:"type:date"`
	TicketTypeSR string    `json:"ticket_type_sr" gorm:"size:255"`
	TicketTypeEN string    `json:"ticket_type_en" gorm:"size:255"`
	Price        int       `json:"price" gorm:"not null"`
	Quantity     int       `json:"quantity" gorm:"not null;check:quantity > 0"`
}

func (o Order) TicketCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
