package app

import (
	"strings"

	"github.com/harriot/experience-engine/internal/domain"
)

// Events are assumed nearby; distance is not geocoded yet.
const placeholderDistanceKM = 2.5

// ClassifyImpact assigns a demand-impact tier from category and expected
// attendance. Pure function; category matching is case-insensitive and
// highest tiers are checked first.
func ClassifyImpact(ev domain.NormalizedEvent) domain.ImpactLevel {
	category := strings.ToLower(ev.Category)
	attendance := ev.ExpectedAttendance

	crowdDraw := category == "music" || category == "sports"
	corporate := category == "business" || category == "conference"

	switch {
	case crowdDraw && attendance > 30000:
		return domain.ImpactCritical
	case crowdDraw && attendance > 15000:
		return domain.ImpactHigh
	case corporate && attendance > 3000:
		return domain.ImpactMedium
	default:
		return domain.ImpactLow
	}
}

func classify(ev domain.NormalizedEvent) domain.ClassifiedEvent {
	return domain.ClassifiedEvent{
		NormalizedEvent: ev,
		Impact:          ClassifyImpact(ev),
		DistanceKM:      placeholderDistanceKM,
	}
}
