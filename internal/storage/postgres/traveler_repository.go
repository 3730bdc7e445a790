package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harriot/experience-engine/internal/domain"
)

type TravelerRepository struct {
	pool *pgxpool.Pool
}

func NewTravelerRepository(pool *pgxpool.Pool) *TravelerRepository {
	return &TravelerRepository{pool: pool}
}

// AtRiskBusinessTravelers selects business travelers within 200 miles of the
// property that have no Q2 booking yet.
func (r *TravelerRepository) AtRiskBusinessTravelers(ctx context.Context) ([]domain.Traveler, error) {
	const query = `
SELECT email, loyalty_tier, home_city, distance_miles, last_stay_days_ago, avg_spend, travel_purpose, has_q2_booking
FROM travelers
WHERE travel_purpose = 'Business'
  AND distance_miles < 200
  AND has_q2_booking = FALSE
ORDER BY email ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list at-risk travelers: %w", err)
	}
	defer rows.Close()

	var travelers []domain.Traveler
	for rows.Next() {
		var t domain.Traveler
		if err := rows.Scan(
			&t.Email,
			&t.LoyaltyTier,
			&t.HomeCity,
			&t.DistanceMiles,
			&t.LastStayDaysAgo,
			&t.AvgSpend,
			&t.TravelPurpose,
			&t.HasQ2Booking,
		); err != nil {
			return nil, fmt.Errorf("scan traveler: %w", err)
		}
		travelers = append(travelers, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate travelers: %w", rows.Err())
	}
	return travelers, nil
}

// UpsertTraveler inserts or refreshes one traveler record, keyed by email.
func (r *TravelerRepository) UpsertTraveler(ctx context.Context, t domain.Traveler) error {
	const stmt = `
INSERT INTO travelers (email, loyalty_tier, home_city, distance_miles, last_stay_days_ago, avg_spend, travel_purpose, has_q2_booking)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (email) DO UPDATE SET
	loyalty_tier = EXCLUDED.loyalty_tier,
	home_city = EXCLUDED.home_city,
	distance_miles = EXCLUDED.distance_miles,
	last_stay_days_ago = EXCLUDED.last_stay_days_ago,
	avg_spend = EXCLUDED.avg_spend,
	travel_purpose = EXCLUDED.travel_purpose,
	has_q2_booking = EXCLUDED.has_q2_booking`
	_, err := r.pool.Exec(ctx, stmt,
		t.Email, t.LoyaltyTier, t.HomeCity, t.DistanceMiles,
		t.LastStayDaysAgo, t.AvgSpend, t.TravelPurpose, t.HasQ2Booking,
	)
	if err != nil {
		return fmt.Errorf("upsert traveler: %w", err)
	}
	return nil
}
