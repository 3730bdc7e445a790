package app

import (
	"context"
	"time"

	"github.com/harriot/experience-engine/internal/cache"
	"github.com/harriot/experience-engine/internal/domain"
	"github.com/harriot/experience-engine/internal/metrics"
)

// EventService fronts the aggregator with the result cache and walks date
// ranges day by day.
type EventService struct {
	agg     *Aggregator
	cache   *cache.Cache
	metrics *metrics.Metrics
}

func NewEventService(agg *Aggregator, c *cache.Cache, m *metrics.Metrics) *EventService {
	return &EventService{agg: agg, cache: c, metrics: m}
}

// EventsForDay returns the classified events for city on one calendar day,
// served from cache when possible.
func (s *EventService) EventsForDay(ctx context.Context, city string, day time.Time) []domain.ClassifiedEvent {
	day = truncateToDay(day)
	events, hit, _ := s.cache.GetOrCompute(cache.Key(city, day), func() ([]domain.ClassifiedEvent, error) {
		raw := s.agg.Aggregate(ctx, city, day)
		classified := make([]domain.ClassifiedEvent, 0, len(raw))
		for _, ev := range raw {
			classified = append(classified, classify(ev))
		}
		return classified, nil
	})
	if s.metrics != nil {
		if hit {
			s.metrics.CacheHits.Inc()
		} else {
			s.metrics.CacheMisses.Inc()
		}
	}
	return events
}

// EventsForRange concatenates per-day events for every calendar day in the
// inclusive [start, end] span, in day order. A single-day span is valid; an
// inverted span is the caller's contract violation.
func (s *EventService) EventsForRange(ctx context.Context, city string, start, end time.Time) ([]domain.ClassifiedEvent, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return nil, domain.ErrInvalidDateRange
	}

	var all []domain.ClassifiedEvent
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		all = append(all, s.EventsForDay(ctx, city, day)...)
	}
	return all, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
