package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvojakarta/internal/shared/constants"
	"tvojakarta/pkg/cache"
)

type countingRepository struct {
	Repository
	calls int
}

func (r *countingRepository) All(ctx context.Context) ([]EventRecord, error) {
	r.calls++
	return r.Repository.All(ctx)
}

type failingRepository struct{}

func (failingRepository) All(ctx context.Context) ([]EventRecord, error) {
	return nil, errors.New("db down")
}

func newTestService(t *testing.T) (*service, *countingRepository) {
	t.Helper()
	events, err := DefaultEvents()
	require.NoError(t, err)
	repo := &countingRepository{Repository: NewStaticRepository(events)}
	svc := NewService(repo).(*service)
	return svc, repo
}

func TestService_GetEvent(t *testing.T) {
	svc, _ := newTestService(t)

	event, err := svc.GetEvent(context.Background(), "1", LanguageEN)
	require.NoError(t, err)
	assert.Equal(t, "Night Jazz Concert", event.Title)

	_, err = svc.GetEvent(context.Background(), "999", LanguageEN)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_UpcomingUsesClock(t *testing.T) {
	svc, _ := newTestService(t)
	svc.now = func() time.Time { return time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC) }

	events, err := svc.GetUpcomingEvents(context.Background(), LanguageSR, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "19", events[0].ID)
}

func TestService_CachesCatalogInRedis(t *testing.T) {
	svc, repo := newTestService(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc.SetCacheService(cache.NewService(client))
	ctx := context.Background()

	_, err := svc.ListEvents(ctx, Query{Language: LanguageSR})
	require.NoError(t, err)
	assert.True(t, mr.Exists(constants.CACHE_KEY_CATALOG_EVENTS))

	featured, err := svc.GetFeaturedEvents(ctx, LanguageEN, 0)
	require.NoError(t, err)
	assert.Len(t, featured, 8)
	assert.Equal(t, 1, repo.calls)

	require.NoError(t, svc.InvalidateCache(ctx))
	assert.False(t, mr.Exists(constants.CACHE_KEY_CATALOG_EVENTS))

	_, err = svc.GetCategories(ctx, LanguageEN)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestService_CachedDatesSurviveRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc.SetCacheService(cache.NewService(client))
	ctx := context.Background()

	_, err := svc.GetRecord(ctx, "1")
	require.NoError(t, err)

	record, err := svc.GetRecord(ctx, "20")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", record.Date.String())
	assert.Len(t, record.TicketTypes, 2)
}

func TestService_RepositoryError(t *testing.T) {
	svc := NewService(failingRepository{})

	_, err := svc.ListEvents(context.Background(), Query{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEventNotFound)
}
