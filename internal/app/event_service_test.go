package app

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/harriot/experience-engine/internal/cache"
	"github.com/harriot/experience-engine/internal/clock"
	"github.com/harriot/experience-engine/internal/domain"
	"github.com/harriot/experience-engine/internal/source"
)

func newEventService(srcs []source.Source, now time.Time) *EventService {
	agg := NewAggregator(srcs, nil, nil)
	c := cache.New(100, time.Hour, clock.NewFixed(now))
	return NewEventService(agg, c, nil)
}

func TestEventService_EventsForDay_Caches(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{name: "one", enabled: true, events: []domain.NormalizedEvent{normalized("a", "one")}}
	svc := newEventService([]source.Source{src}, day)

	first := svc.EventsForDay(context.Background(), "Austin", day)
	second := svc.EventsForDay(context.Background(), "Austin", day)

	if src.calls.Load() != 1 {
		t.Fatalf("expected exactly one fetch, got %d", src.calls.Load())
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cache hit returned a different value:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(first) != 1 || first[0].Impact == "" {
		t.Fatalf("expected classified events, got %+v", first)
	}
}

func TestEventService_EventsForDay_DistinctKeys(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{name: "one", enabled: true, events: []domain.NormalizedEvent{normalized("a", "one")}}
	svc := newEventService([]source.Source{src}, day)

	svc.EventsForDay(context.Background(), "Austin", day)
	svc.EventsForDay(context.Background(), "Dallas", day)
	svc.EventsForDay(context.Background(), "Austin", day.AddDate(0, 0, 1))

	if src.calls.Load() != 3 {
		t.Fatalf("expected 3 fetches for 3 distinct keys, got %d", src.calls.Load())
	}
}

func TestEventService_EventsForRange(t *testing.T) {
	t.Parallel()

	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("walks every day inclusively", func(t *testing.T) {
		src := &fakeSource{name: "one", enabled: true, events: []domain.NormalizedEvent{normalized("a", "one")}}
		svc := newEventService([]source.Source{src}, monday)

		events, err := svc.EventsForRange(context.Background(), "Austin", monday, monday.AddDate(0, 0, 2))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if src.calls.Load() != 3 {
			t.Fatalf("expected 3 per-day fetches, got %d", src.calls.Load())
		}
		if len(events) != 3 {
			t.Fatalf("expected 3 concatenated events, got %d", len(events))
		}
	})

	t.Run("single-day span is valid", func(t *testing.T) {
		src := &fakeSource{name: "one", enabled: true}
		svc := newEventService([]source.Source{src}, monday)

		events, err := svc.EventsForRange(context.Background(), "Austin", monday, monday)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// empty union on a weekday degrades to the single synthetic conference
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
	})

	t.Run("inverted span is rejected", func(t *testing.T) {
		svc := newEventService(nil, monday)
		_, err := svc.EventsForRange(context.Background(), "Austin", monday, monday.AddDate(0, 0, -1))
		if err != domain.ErrInvalidDateRange {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("no dedup across days", func(t *testing.T) {
		src := &fakeSource{name: "one", enabled: true, events: []domain.NormalizedEvent{normalized("same-id", "one")}}
		svc := newEventService([]source.Source{src}, monday)

		events, err := svc.EventsForRange(context.Background(), "Austin", monday, monday.AddDate(0, 0, 1))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected the same event once per day, got %d", len(events))
		}
	})

	t.Run("intra-day timestamps do not split cache keys", func(t *testing.T) {
		src := &fakeSource{name: "one", enabled: true, events: []domain.NormalizedEvent{normalized("a", "one")}}
		svc := newEventService([]source.Source{src}, monday)

		svc.EventsForDay(context.Background(), "Austin", monday.Add(3*time.Hour))
		svc.EventsForDay(context.Background(), "Austin", monday.Add(21*time.Hour))

		if src.calls.Load() != 1 {
			t.Fatalf("expected one fetch for one calendar day, got %d", src.calls.Load())
		}
	})
}
