package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harriot/experience-engine/internal/domain"
	"github.com/harriot/experience-engine/internal/metrics"
)

const multiplierCap = 3.0

var impactWeights = map[domain.ImpactLevel]float64{
	domain.ImpactLow:      0.05,
	domain.ImpactMedium:   0.15,
	domain.ImpactHigh:     0.35,
	domain.ImpactCritical: 0.75,
}

// PricingService folds the events of a stay window into a rate adjustment.
type PricingService struct {
	events  *EventService
	logger  *log.Logger
	metrics *metrics.Metrics

	faultHook func() // fault injection used by tests
}

func NewPricingService(events *EventService, logger *log.Logger, m *metrics.Metrics) *PricingService {
	if logger == nil {
		logger = log.Default()
	}
	return &PricingService{events: events, logger: logger, metrics: m}
}

// PriceStay computes the adjustment for a stay in city spanning
// [checkIn, checkOut]. The only error it returns is an inverted range;
// every internal fault degrades to a valid low-confidence adjustment.
func (s *PricingService) PriceStay(ctx context.Context, city string, checkIn, checkOut time.Time) (domain.PricingAdjustment, error) {
	events, err := s.events.EventsForRange(ctx, city, checkIn, checkOut)
	if err != nil {
		return domain.PricingAdjustment{}, err
	}
	adj := s.ComputeAdjustment(events)
	if s.metrics != nil {
		s.metrics.PricingTotal.Inc()
	}
	return adj, nil
}

// ComputeAdjustment reduces classified events into a PricingAdjustment.
// A panic during the fold is recovered into the low-trust fallback so the
// caller always gets a valid result.
func (s *PricingService) ComputeAdjustment(events []domain.ClassifiedEvent) (adj domain.PricingAdjustment) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("WARN: pricing computation failed: %v", r)
			adj = domain.PricingAdjustment{
				Multiplier:  1.0,
				Reason:      "Error calculating event impact",
				EventsCount: 0,
				Confidence:  0.3,
			}
		}
	}()

	if s.faultHook != nil {
		s.faultHook()
	}

	if len(events) == 0 {
		// Absence of events is itself informative, hence the 0.8 baseline.
		return domain.PricingAdjustment{
			Multiplier:  1.0,
			Reason:      "No significant events found",
			EventsCount: 0,
			Confidence:  0.8,
		}
	}

	var (
		totalImpact      float64
		highImpactEvents int
		peak             *domain.ClassifiedEvent
		maxWeight        float64
	)
	for i := range events {
		ev := events[i]
		weight := impactWeights[ev.Impact]
		totalImpact += weight

		if ev.Impact == domain.ImpactHigh || ev.Impact == domain.ImpactCritical {
			highImpactEvents++
		}
		// strict comparison: first event wins ties
		if weight > maxWeight {
			maxWeight = weight
			peak = &events[i]
		}
	}

	multiplier := 1.0 + totalImpact
	if multiplier > multiplierCap {
		multiplier = multiplierCap
	}

	var reason string
	switch {
	case highImpactEvents > 0:
		reason = fmt.Sprintf("High-impact events detected: %d major events", highImpactEvents)
	case len(events) > 3:
		reason = fmt.Sprintf("Multiple events period: %d events", len(events))
	default:
		reason = fmt.Sprintf("Moderate event activity: %d events", len(events))
	}

	confidence := 0.6 + 0.1*float64(len(events))
	if confidence > 0.9 {
		confidence = 0.9
	}

	return domain.PricingAdjustment{
		Multiplier:  multiplier,
		Reason:      reason,
		EventsCount: len(events),
		PeakEvent:   peak,
		Confidence:  confidence,
	}
}
