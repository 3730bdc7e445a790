package domain

import "time"

// ImpactLevel is the discrete demand-effect tier assigned to an event.
type ImpactLevel string

const (
	ImpactLow      ImpactLevel = "low"
	ImpactMedium   ImpactLevel = "medium"
	ImpactHigh     ImpactLevel = "high"
	ImpactCritical ImpactLevel = "critical"
)

// NormalizedEvent is the common shape every source adapter produces.
// ID is unique per source only; no cross-source deduplication happens.
type NormalizedEvent struct {
	ID                 string
	Name               string
	StartsAt           time.Time
	Venue              string
	Category           string
	ExpectedAttendance int
	Source             string
}

// ClassifiedEvent is a NormalizedEvent with an assigned impact level and a
// distance from the property. Immutable once created.
type ClassifiedEvent struct {
	NormalizedEvent
	Impact     ImpactLevel
	DistanceKM float64
}
