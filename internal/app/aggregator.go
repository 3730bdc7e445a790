package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/harriot/experience-engine/internal/domain"
	"github.com/harriot/experience-engine/internal/metrics"
	"github.com/harriot/experience-engine/internal/source"
)

// Aggregator fans out to every enabled source for one (city, day), merges
// the results, and synthesizes a fallback set when the union is empty.
// A single source failing never fails the aggregation.
type Aggregator struct {
	sources []source.Source
	logger  *log.Logger
	metrics *metrics.Metrics
}

func NewAggregator(sources []source.Source, logger *log.Logger, m *metrics.Metrics) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{sources: sources, logger: logger, metrics: m}
}

// Aggregate returns the merged normalized events for city on day. Merge
// order is source registration order, then payload order within a source.
func (a *Aggregator) Aggregate(ctx context.Context, city string, day time.Time) []domain.NormalizedEvent {
	results := make([][]domain.NormalizedEvent, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		if !src.Enabled() {
			continue
		}
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			evs, err := src.Fetch(ctx, city, day)
			if err != nil {
				a.logger.Printf("WARN: fetch %s events: %v", src.Name(), err)
				if a.metrics != nil {
					a.metrics.FetchTotal.WithLabelValues(src.Name(), "error").Inc()
				}
				return
			}
			if a.metrics != nil {
				a.metrics.FetchTotal.WithLabelValues(src.Name(), "ok").Inc()
			}
			results[i] = evs
		}(i, src)
	}
	wg.Wait()

	var merged []domain.NormalizedEvent
	for _, evs := range results {
		merged = append(merged, evs...)
	}

	if len(merged) == 0 {
		if a.metrics != nil {
			a.metrics.SyntheticFallbacks.Inc()
		}
		return syntheticEvents(city, day)
	}
	return merged
}
