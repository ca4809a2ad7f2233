package cart

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvojakarta/internal/catalog"
)

func jazzLine(ticket string, price, qty int) CartItem {
	return CartItem{
		EventID:    "1",
		EventTitle: catalog.Text{SR: "Noćni koncer jazz muzike", EN: "Night Jazz Concert"},
		EventDate:  catalog.NewDate(2025, 2, 15),
		TicketType: catalog.Text{SR: ticket, EN: ticket},
		Price:      price,
		Quantity:   qty,
	}
}

func TestStore_AddMergesSameEventAndTicketType(t *testing.T) {
	s := NewStore()

	first, err := s.Add(jazzLine("VIP", 45, 1))
	require.NoError(t, err)
	for _, q := range []int{2, 3, 4} {
		merged, err := s.Add(jazzLine("VIP", 45, q))
		require.NoError(t, err)
		assert.Equal(t, first.ID, merged.ID)
	}

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Quantity)
}

func TestStore_AddDistinctLinesGetDistinctIDs(t *testing.T) {
	s := NewStore()

	a, err := s.Add(jazzLine("VIP", 45, 1))
	require.NoError(t, err)
	b, err := s.Add(jazzLine("Regular", 25, 1))
	require.NoError(t, err)
	other := jazzLine("VIP", 45, 1)
	other.EventID = "2"
	c, err := s.Add(other)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
	assert.Len(t, s.Items(), 3)
}

func TestStore_AddRejectsNonPositiveQuantity(t *testing.T) {
	s := NewStore()

	_, err := s.Add(jazzLine("VIP", 45, 0))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, s.Items())
}

func TestStore_NoUpperBoundOnQuantity(t *testing.T) {
	s := NewStore()

	_, err := s.Add(jazzLine("VIP", 45, 50))
	require.NoError(t, err)

	assert.Equal(t, 50, s.ItemsCount())
}

func TestStore_TotalIsSumOfLines(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Total())

	_, _ = s.Add(jazzLine("VIP", 45, 2))
	_, _ = s.Add(jazzLine("Regular", 25, 3))

	assert.Equal(t, 165, s.Total())
	assert.Equal(t, s.Total(), s.Total())
	assert.Equal(t, 5, s.ItemsCount())
}

func TestStore_UpdateZeroEqualsRemove(t *testing.T) {
	build := func() (*Store, string) {
		s := NewStore()
		s.newID = sequentialIDs()
		vip, _ := s.Add(jazzLine("VIP", 45, 2))
		_, _ = s.Add(jazzLine("Regular", 25, 1))
		return s, vip.ID
	}

	updated, id := build()
	require.NoError(t, updated.UpdateQuantity(id, 0))

	removed, id := build()
	require.NoError(t, removed.Remove(id))

	assert.Equal(t, removed.Snapshot(), updated.Snapshot())
	assert.Len(t, updated.Items(), 1)
}

func TestStore_UpdateQuantityReplaces(t *testing.T) {
	s := NewStore()
	item, _ := s.Add(jazzLine("VIP", 45, 2))

	require.NoError(t, s.UpdateQuantity(item.ID, 7))

	assert.Equal(t, 7, s.Items()[0].Quantity)
}

func TestStore_MissingIDIsExplicitNotFound(t *testing.T) {
	s := NewStore()
	_, _ = s.Add(jazzLine("VIP", 45, 2))
	before := s.Snapshot()

	assert.ErrorIs(t, s.UpdateQuantity("nope", 3), ErrItemNotFound)
	assert.ErrorIs(t, s.Remove("nope"), ErrItemNotFound)
	assert.Equal(t, before, s.Snapshot())
}

func TestStore_EndToEndScenario(t *testing.T) {
	s := NewStore()

	_, err := s.Add(jazzLine("VIP Ticket", 45, 2))
	require.NoError(t, err)
	_, err = s.Add(jazzLine("Regular Ticket", 25, 1))
	require.NoError(t, err)
	assert.Equal(t, 115, s.Total())
	assert.Equal(t, 3, s.ItemsCount())

	require.NoError(t, s.Clear())

	assert.Equal(t, 0, s.Total())
	assert.Equal(t, 0, s.ItemsCount())
}

func TestStore_CheckoutLock(t *testing.T) {
	s := NewStore()
	item, _ := s.Add(jazzLine("VIP", 45, 2))

	snap, err := s.BeginCheckout()
	require.NoError(t, err)
	assert.Equal(t, 90, snap.Total)

	_, err = s.Add(jazzLine("VIP", 45, 1))
	assert.ErrorIs(t, err, ErrCheckoutPending)
	assert.ErrorIs(t, s.UpdateQuantity(item.ID, 1), ErrCheckoutPending)
	assert.ErrorIs(t, s.Clear(), ErrCheckoutPending)
	_, err = s.BeginCheckout()
	assert.ErrorIs(t, err, ErrCheckoutPending)

	s.CompleteCheckout(false)
	assert.False(t, s.Locked())
	assert.Equal(t, 90, s.Total())

	_, err = s.BeginCheckout()
	require.NoError(t, err)
	s.CompleteCheckout(true)
	assert.Equal(t, 0, s.ItemsCount())
}

func TestStore_BeginCheckoutEmpty(t *testing.T) {
	_, err := NewStore().BeginCheckout()
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestStore_ConcurrentAddsMerge(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Add(jazzLine("VIP", 45, 2))
		}()
	}
	wg.Wait()

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 100, items[0].Quantity)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}
