package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/harriot/experience-engine/internal/clock"
	"github.com/harriot/experience-engine/internal/domain"
)

// Events are listed over a 7-day window starting at the requested date.
const eventWindowDays = 7

// EventLister is the minimal interface needed to list classified events.
type EventLister interface {
	EventsForRange(ctx context.Context, city string, start, end time.Time) ([]domain.ClassifiedEvent, error)
}

// HandleCityEvents returns an HTTP handler for GET /events/{city}.
// The optional ?date=YYYY-MM-DD query parameter anchors the window;
// it defaults to today.
func HandleCityEvents(svc EventLister, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		city := strings.TrimPrefix(r.URL.Path, "/events/")
		city = strings.Trim(city, "/")
		if city == "" || strings.Contains(city, "/") {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		start := clk.Now()
		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			parsed, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidDateFormat, "invalid date: expected YYYY-MM-DD")
				return
			}
			start = parsed
		}
		end := start.AddDate(0, 0, eventWindowDays)

		events, err := svc.EventsForRange(r.Context(), city, start, end)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		records := make([]eventRecord, 0, len(events))
		for _, ev := range events {
			records = append(records, eventRecord{
				ID:                 ev.ID,
				Name:               ev.Name,
				Date:               ev.StartsAt.Format(time.RFC3339),
				Venue:              ev.Venue,
				Category:           ev.Category,
				ExpectedAttendance: ev.ExpectedAttendance,
				ImpactLevel:        string(ev.Impact),
				DistanceKM:         ev.DistanceKM,
				Source:             ev.Source,
			})
		}

		writeJSON(w, http.StatusOK, cityEventsResponse{
			City: city,
			DateRange: dateRange{
				Start: start.Format(time.RFC3339),
				End:   end.Format(time.RFC3339),
			},
			Events:      records,
			TotalEvents: len(records),
		})
	}
}

type eventRecord struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Date               string  `json:"date"`
	Venue              string  `json:"venue"`
	Category           string  `json:"category"`
	ExpectedAttendance int     `json:"expected_attendance"`
	ImpactLevel        string  `json:"impact_level"`
	DistanceKM         float64 `json:"distance_km"`
	Source             string  `json:"source"`
}

type dateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type cityEventsResponse struct {
	City        string        `json:"city"`
	DateRange   dateRange     `json:"date_range"`
	Events      []eventRecord `json:"events"`
	TotalEvents int           `json:"total_events"`
}
