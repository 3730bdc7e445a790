package domain

// Traveler is one record from the customer data platform.
type Traveler struct {
	Email           string
	LoyaltyTier     string
	HomeCity        string
	DistanceMiles   float64
	LastStayDaysAgo int
	AvgSpend        float64
	TravelPurpose   string
	HasQ2Booking    bool
}

// AudienceStats summarizes a selected campaign audience.
type AudienceStats struct {
	AudienceCount    int
	PotentialRevenue float64
	Segments         []string
	Criteria         string
}
