package cart

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetCreatesOncePerSession(t *testing.T) {
	r := NewRegistry(time.Hour)

	a := r.Get("s1")
	b := r.Get("s1")
	c := r.Get("s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_EvictIdle(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(30 * time.Minute)
	r.now = func() time.Time { return now }

	var evicted []string
	r.OnEvict(func(id string) { evicted = append(evicted, id) })

	r.Get("idle")
	pending := r.Get("pending")
	_, _ = pending.Add(jazzLine("VIP", 45, 1))
	_, err := pending.BeginCheckout()
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	r.Get("fresh")

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, r.EvictIdle())
	assert.Equal(t, []string{"idle"}, evicted)

	_, ok := r.Peek("idle")
	assert.False(t, ok)
	_, ok = r.Peek("pending")
	assert.True(t, ok)
	_, ok = r.Peek("fresh")
	assert.True(t, ok)
}

func TestJanitor_SweepsOnTicker(t *testing.T) {
	r := NewRegistry(time.Millisecond)
	var calls atomic.Int32
	r.OnEvict(func(string) { calls.Add(1) })
	r.Get("s1")

	j := NewJanitor(r, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	j.Start(ctx)
	defer j.Stop()

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, r.Len())
}
