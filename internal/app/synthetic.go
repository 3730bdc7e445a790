package app

import (
	"time"

	"github.com/harriot/experience-engine/internal/domain"
)

// syntheticEvents is the deterministic fallback set used when no source
// yields data, so pricing stays demonstrable without live credentials.
// Weekdays get just the conference; weekends the full set.
func syntheticEvents(city string, day time.Time) []domain.NormalizedEvent {
	at := func(hour, min int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.UTC)
	}

	music := domain.NormalizedEvent{
		ID:                 "mock_1",
		Name:               "Taylor Swift - Eras Tour",
		StartsAt:           at(20, 0),
		Venue:              city + " Stadium",
		Category:           "Music",
		ExpectedAttendance: 50000,
		Source:             "mock",
	}
	business := domain.NormalizedEvent{
		ID:                 "mock_2",
		Name:               "Tech Conference 2024",
		StartsAt:           at(9, 0),
		Venue:              city + " Convention Center",
		Category:           "Business",
		ExpectedAttendance: 5000,
		Source:             "mock",
	}
	sports := domain.NormalizedEvent{
		ID:                 "mock_3",
		Name:               "NBA Finals Game",
		StartsAt:           at(19, 30),
		Venue:              city + " Arena",
		Category:           "Sports",
		ExpectedAttendance: 20000,
		Source:             "mock",
	}

	wd := day.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return []domain.NormalizedEvent{music, business, sports}
	}
	return []domain.NormalizedEvent{business}
}
