package checkout

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ChargeRequest carries the card in display form: "4242 4242 4242 4242"
// and "12/27".
type ChargeRequest struct {
	SessionID      string
	Amount         int
	CardNumber     string
	ExpiryDate     string
	CardLast4      string
	CardholderName string
	Email          string
}

type ChargeResult struct {
	TransactionID string
}

// PaymentGateway charges a checkout total. A real processor plugs in here.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// SimulatedGateway approves every charge after a fixed delay. Cancelling the
// context fails the charge.
type SimulatedGateway struct {
	Delay time.Duration
}

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{Delay: delay}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ChargeResult{}, fmt.Errorf("%w: %w", ErrPaymentFailed, ctx.Err())
		}
	} else if err := ctx.Err(); err != nil {
		return ChargeResult{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	txID, err := generateTransactionID()
	if err != nil {
		return ChargeResult{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}
	return ChargeResult{TransactionID: txID}, nil
}

// generateTransactionID returns TXN_<unix seconds>_<8 hex chars>.
func generateTransactionID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("TXN_%d_%s", time.Now().Unix(), hex.EncodeToString(b)), nil
}
