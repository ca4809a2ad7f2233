package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvojakarta/internal/catalog"
	"tvojakarta/internal/pricing"
)

func TestMachine_Transitions(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateIdle, m.State())

	quote := pricing.DefaultPolicy().Quote(100)
	require.NoError(t, m.Begin(quote, catalog.LanguageEN))
	assert.Equal(t, StateSubmitting, m.State())
	assert.ErrorIs(t, m.Begin(quote, catalog.LanguageEN), ErrCheckoutInProgress)

	st := m.Status("")
	assert.Equal(t, "Processing...", st.Message)
	assert.Equal(t, 109, st.Quote.Total)

	m.Fail()
	assert.Equal(t, StateFailed, m.State())
	assert.Equal(t, Message(CodePayment, catalog.LanguageSR), m.Status(catalog.LanguageSR).Message)

	require.NoError(t, m.Begin(quote, catalog.LanguageSR), "failed behaves like idle")
	m.Succeed("TK-2025-000001")
	st = m.Status("")
	assert.Equal(t, StateSucceeded, st.State)
	assert.Equal(t, "TK-2025-000001", st.OrderNumber)
	assert.Equal(t, Message(CodeSuccess, catalog.LanguageSR), st.Message)

	require.NoError(t, m.Begin(quote, catalog.LanguageSR))
	assert.Empty(t, m.Status("").OrderNumber)
}

func TestMachines_GetAndForget(t *testing.T) {
	ms := NewMachines()
	a := ms.Get("a")
	assert.Same(t, a, ms.Get("a"))
	assert.Equal(t, 1, ms.Len())

	ms.Forget("a")
	assert.Equal(t, 0, ms.Len())
	assert.NotSame(t, a, ms.Get("a"))
}

func TestMachines_PeekDoesNotCreate(t *testing.T) {
	ms := NewMachines()

	_, ok := ms.Peek("a")
	assert.False(t, ok)
	assert.Equal(t, 0, ms.Len())

	a := ms.Get("a")
	got, ok := ms.Peek("a")
	require.True(t, ok)
	assert.Same(t, a, got)
}
