// Package pricing derives checkout totals from a cart subtotal. Amounts are
// whole KM; no fractional currency is modeled.
package pricing

const (
	DefaultServiceFeePermille = 35
	DefaultProcessingFee      = 5
)

// Policy holds the fee schedule. The service fee is expressed in permille so
// it can be rounded exactly in integer arithmetic.
type Policy struct {
	ServiceFeePermille int `json:"service_fee_permille"`
	ProcessingFee      int `json:"processing_fee"`
}

// Quote is the full price breakdown shown on the cart summary and at checkout.
type Quote struct {
	Subtotal      int `json:"subtotal"`
	ServiceFee    int `json:"service_fee"`
	ProcessingFee int `json:"processing_fee"`
	Total         int `json:"total"`
}

func DefaultPolicy() Policy {
	return Policy{
		ServiceFeePermille: DefaultServiceFeePermille,
		ProcessingFee:      DefaultProcessingFee,
	}
}

// ServiceFee rounds subtotal*permille/1000 half up. Negative subtotals are
// treated as zero.
func (p Policy) ServiceFee(subtotal int) int {
	if subtotal <= 0 {
		return 0
	}
	return (subtotal*p.ServiceFeePermille + 500) / 1000
}

func (p Policy) Quote(subtotal int) Quote {
	if subtotal < 0 {
		subtotal = 0
	}
	fee := p.ServiceFee(subtotal)
	return Quote{
		Subtotal:      subtotal,
		ServiceFee:    fee,
		ProcessingFee: p.ProcessingFee,
		Total:         subtotal + fee + p.ProcessingFee,
	}
}
