package app

import (
	"context"

	"github.com/harriot/experience-engine/internal/domain"
)

type TravelerRepository interface {
	AtRiskBusinessTravelers(ctx context.Context) ([]domain.Traveler, error)
}

// AudienceService selects campaign audiences from the customer data platform.
type AudienceService struct {
	repo TravelerRepository
}

func NewAudienceService(repo TravelerRepository) *AudienceService {
	return &AudienceService{repo: repo}
}

// AtRiskBusinessTravelers returns business travelers within 200 miles with
// no Q2 booking, together with audience stats.
func (s *AudienceService) AtRiskBusinessTravelers(ctx context.Context) ([]domain.Traveler, domain.AudienceStats, error) {
	travelers, err := s.repo.AtRiskBusinessTravelers(ctx)
	if err != nil {
		return nil, domain.AudienceStats{}, err
	}

	var revenue float64
	for _, t := range travelers {
		revenue += t.AvgSpend
	}
	stats := domain.AudienceStats{
		AudienceCount:    len(travelers),
		PotentialRevenue: revenue,
		Segments:         []string{"Business", "Local"},
		Criteria:         "Business Travelers < 200 miles without Q2 Booking",
	}
	return travelers, stats, nil
}
