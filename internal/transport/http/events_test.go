package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harriot/experience-engine/internal/clock"
	"github.com/harriot/experience-engine/internal/domain"
)

type fakeEventLister struct {
	events []domain.ClassifiedEvent
	err    error

	gotCity  string
	gotStart time.Time
	gotEnd   time.Time
}

func (f *fakeEventLister) EventsForRange(ctx context.Context, city string, start, end time.Time) ([]domain.ClassifiedEvent, error) {
	f.gotCity = city
	f.gotStart = start
	f.gotEnd = end
	return f.events, f.err
}

func TestHandleCityEvents(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)
	clk := clock.NewFixed(now)

	t.Run("lists the seven-day window from the requested date", func(t *testing.T) {
		lister := &fakeEventLister{events: []domain.ClassifiedEvent{{
			NormalizedEvent: domain.NormalizedEvent{
				ID:                 "mock_1",
				Name:               "Summer Music Festival",
				StartsAt:           time.Date(2025, 6, 7, 20, 0, 0, 0, time.UTC),
				Venue:              "Austin Stadium",
				Category:           "music",
				ExpectedAttendance: 50000,
				Source:             "synthetic",
			},
			Impact:     domain.ImpactCritical,
			DistanceKM: 2.5,
		}}}

		req := httptest.NewRequest(http.MethodGet, "/events/Austin?date=2025-06-06", nil)
		rec := httptest.NewRecorder()
		HandleCityEvents(lister, clk)(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp cityEventsResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.City != "Austin" || resp.TotalEvents != 1 || len(resp.Events) != 1 {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if resp.DateRange.Start != "2025-06-06T00:00:00Z" || resp.DateRange.End != "2025-06-13T00:00:00Z" {
			t.Fatalf("unexpected date range: %+v", resp.DateRange)
		}

		ev := resp.Events[0]
		if ev.ID != "mock_1" || ev.ImpactLevel != "critical" || ev.DistanceKM != 2.5 {
			t.Fatalf("unexpected event record: %+v", ev)
		}
		if ev.Date != "2025-06-07T20:00:00Z" {
			t.Fatalf("unexpected event date %q", ev.Date)
		}

		if lister.gotCity != "Austin" {
			t.Fatalf("expected city Austin, got %q", lister.gotCity)
		}
		if !lister.gotStart.Equal(time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("unexpected window start %v", lister.gotStart)
		}
		if !lister.gotEnd.Equal(lister.gotStart.AddDate(0, 0, 7)) {
			t.Fatalf("unexpected window end %v", lister.gotEnd)
		}
	})

	t.Run("window defaults to now", func(t *testing.T) {
		lister := &fakeEventLister{}
		req := httptest.NewRequest(http.MethodGet, "/events/Austin", nil)
		rec := httptest.NewRecorder()
		HandleCityEvents(lister, clk)(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !lister.gotStart.Equal(now) {
			t.Fatalf("expected window anchored at %v, got %v", now, lister.gotStart)
		}
	})

	t.Run("empty listing serializes as an empty array", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/Austin", nil)
		rec := httptest.NewRecorder()
		HandleCityEvents(&fakeEventLister{}, clk)(rec, req)

		var resp map[string]json.RawMessage
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if string(resp["events"]) != "[]" {
			t.Fatalf("expected [] events, got %s", resp["events"])
		}
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/Austin?date=tomorrow", nil)
		rec := httptest.NewRecorder()
		HandleCityEvents(&fakeEventLister{}, clk)(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if resp := decodeError(t, rec); resp.Code != codeInvalidDateFormat {
			t.Fatalf("unexpected code %q", resp.Code)
		}
	})

	t.Run("missing city is a 404", func(t *testing.T) {
		for _, path := range []string{"/events/", "/events/Austin/extra"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			HandleCityEvents(&fakeEventLister{}, clk)(rec, req)
			if rec.Code != http.StatusNotFound {
				t.Fatalf("%s: expected 404, got %d", path, rec.Code)
			}
		}
	})

	t.Run("service failure is a 500", func(t *testing.T) {
		lister := &fakeEventLister{err: errors.New("upstream down")}
		req := httptest.NewRequest(http.MethodGet, "/events/Austin", nil)
		rec := httptest.NewRecorder()
		HandleCityEvents(lister, clk)(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("POST is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/events/Austin", nil)
		rec := httptest.NewRecorder()
		HandleCityEvents(&fakeEventLister{}, clk)(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}
