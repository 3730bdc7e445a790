package domain

// PricingAdjustment is the engine's terminal output for one stay window.
// Multiplier is always within [1.0, 3.0]. PeakEvent points at the single
// highest-weight event in the window, nil when there is none.
type PricingAdjustment struct {
	Multiplier  float64
	Reason      string
	EventsCount int
	PeakEvent   *ClassifiedEvent
	Confidence  float64
}
