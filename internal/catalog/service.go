package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tvojakarta/internal/shared/constants"
	"tvojakarta/pkg/cache"
	"tvojakarta/pkg/logger"
)

type Service interface {
	// Service dependency injection
	SetCacheService(cacheService cache.Service)

	ListEvents(ctx context.Context, query Query) ([]LocalizedEvent, error)
	SearchEvents(ctx context.Context, term string, limit int, lang Language) ([]LocalizedEvent, error)
	GetEvent(ctx context.Context, id string, lang Language) (*LocalizedEvent, error)
	GetRecord(ctx context.Context, id string) (EventRecord, error)
	GetFeaturedEvents(ctx context.Context, lang Language, limit int) ([]LocalizedEvent, error)
	GetUpcomingEvents(ctx context.Context, lang Language, limit int) ([]LocalizedEvent, error)
	GetCategories(ctx context.Context, lang Language) ([]CategorySummary, error)
	GetLocations(ctx context.Context, lang Language) ([]string, error)
	InvalidateCache(ctx context.Context) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	now          func() time.Time
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
		log:  logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// records loads the full catalog, through the cache when one is configured.
func (s *service) records(ctx context.Context) ([]EventRecord, error) {
	if s.cacheService == nil {
		return s.repo.All(ctx)
	}

	var events []EventRecord
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_CATALOG_EVENTS, constants.TTL_CATALOG_EVENTS,
		func() (interface{}, error) { return s.repo.All(ctx) }, &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *service) ListEvents(ctx context.Context, query Query) ([]LocalizedEvent, error) {
	events, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	return LocalizeAll(query.Apply(events), query.Language), nil
}

func (s *service) SearchEvents(ctx context.Context, term string, limit int, lang Language) ([]LocalizedEvent, error) {
	events, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	return LocalizeAll(Search(events, term, limit), lang), nil
}

func (s *service) GetEvent(ctx context.Context, id string, lang Language) (*LocalizedEvent, error) {
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	localized := Localize(record, lang)
	return &localized, nil
}

func (s *service) GetRecord(ctx context.Context, id string) (EventRecord, error) {
	events, err := s.records(ctx)
	if err != nil {
		return EventRecord{}, err
	}
	record, ok := FindByID(events, id)
	if !ok {
		return EventRecord{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	return record, nil
}

func (s *service) GetFeaturedEvents(ctx context.Context, lang Language, limit int) ([]LocalizedEvent, error) {
	events, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	return LocalizeAll(truncate(Featured(events), limit), lang), nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, lang Language, limit int) ([]LocalizedEvent, error) {
	events, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	return LocalizeAll(truncate(Upcoming(events, s.now()), limit), lang), nil
}

func (s *service) GetCategories(ctx context.Context, lang Language) ([]CategorySummary, error) {
	events, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(events, lang), nil
}

func (s *service) GetLocations(ctx context.Context, lang Language) ([]string, error) {
	events, err := s.records(ctx)
	if err != nil {
		return nil, err
	}
	return Locations(events, lang), nil
}

func (s *service) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil {
		return nil
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_CATALOG_ALL); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	s.log.InfoContext(ctx, "Catalog cache invalidated")
	return nil
}

func truncate(events []EventRecord, limit int) []EventRecord {
	if limit > 0 && len(events) > limit {
		return events[:limit]
	}
	return events
}
