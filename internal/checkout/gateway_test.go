package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedGateway_Approves(t *testing.T) {
	res, err := NewSimulatedGateway(time.Millisecond).Charge(context.Background(), ChargeRequest{Amount: 124})
	require.NoError(t, err)
	assert.Regexp(t, `^TXN_\d+_[0-9a-f]{8}$`, res.TransactionID)
}

func TestSimulatedGateway_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulatedGateway(time.Hour).Charge(ctx, ChargeRequest{Amount: 124})
	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewSimulatedGateway(0).Charge(ctx, ChargeRequest{Amount: 124})
	assert.ErrorIs(t, err, context.Canceled)
}
