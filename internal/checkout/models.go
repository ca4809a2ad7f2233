package checkout

import (
	"errors"
	"time"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/pricing"
)

var (
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrEmptyCart          = errors.New("cart is empty")
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// PaymentForm is the billing and card data submitted at checkout. The card
// fields are only checked for shape; nothing here is a real card.
type PaymentForm struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,basic_email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`

	CardNumber string `json:"card_number" validate:"required,card_number"`
	ExpiryDate string `json:"expiry_date" validate:"required"`
	CVV        string `json:"cvv" validate:"required,cvv"`
	CardName   string `json:"card_name" validate:"required"`

	AcceptTerms         bool `json:"accept_terms" validate:"eq=true"`
	SubscribeNewsletter bool `json:"subscribe_newsletter"`
}

// CardLast4 returns the last four digits of the card number, or "" when
// there are fewer than four.
func (f PaymentForm) CardLast4() string {
	digits := digitsOnly(f.CardNumber)
	if len(digits) < 4 {
		return ""
	}
	return digits[len(digits)-4:]
}

// normalized returns the form with the card number grouped in blocks of four
// and the expiry rendered as MM/YY. Call it on a validated form only.
func (f PaymentForm) normalized() PaymentForm {
	f.CardNumber = FormatCardNumber(f.CardNumber)
	if digitsOnly(f.ExpiryDate) != "" {
		f.ExpiryDate = FormatExpiryDate(f.ExpiryDate)
	}
	return f
}

// ValidationError is the first failing check of a PaymentForm.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return "invalid payment form: " + e.Field + ": " + e.Code
}

// Status is where a session's checkout stands.
type Status struct {
	State       State         `json:"state"`
	Message     string        `json:"message,omitempty"`
	OrderNumber string        `json:"order_number,omitempty"`
	Quote       pricing.Quote `json:"quote"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// attempt is the data carried through one payment.
type attempt struct {
	sessionID string
	form      PaymentForm
	lang      catalog.Language
	quote     pricing.Quote
}
