package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/harriot/experience-engine/internal/domain"
)

const maxStayDays = 30

// StayPricer is the minimal interface needed to price a stay.
type StayPricer interface {
	PriceStay(ctx context.Context, city string, checkIn, checkOut time.Time) (domain.PricingAdjustment, error)
}

// HandleEventPricing returns an HTTP handler computing the event-driven rate
// adjustment for a stay. Display rounding happens here, not in the engine.
func HandleEventPricing(svc StayPricer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req eventPricingRequest
		if !decodeBody(w, r, &req) {
			return
		}
		checkIn, checkOut, ok := req.validate(w)
		if !ok {
			return
		}

		adj, err := svc.PriceStay(r.Context(), req.City, checkIn, checkOut)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidDateRange) {
				writeError(w, http.StatusBadRequest, codeInvalidDateRange, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := eventPricingResponse{
			OriginalRate:    req.BaseRoomRate,
			AdjustedRate:    round2(req.BaseRoomRate * adj.Multiplier),
			Multiplier:      round3(adj.Multiplier),
			Reason:          adj.Reason,
			EventsCount:     adj.EventsCount,
			ConfidenceScore: round2(adj.Confidence),
		}
		if adj.PeakEvent != nil {
			s := adj.PeakEvent.StartsAt.Format(time.RFC3339)
			resp.PeakEventDate = &s
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type eventPricingRequest struct {
	City         string  `json:"city"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	BaseRoomRate float64 `json:"base_room_rate"`
}

// validate writes the error response itself and reports success via ok.
func (req eventPricingRequest) validate(w http.ResponseWriter) (checkIn, checkOut time.Time, ok bool) {
	if req.City == "" {
		writeError(w, http.StatusBadRequest, codeCityRequired, "city is required")
		return
	}
	checkIn, err := time.Parse("2006-01-02", req.CheckInDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidDateFormat, "invalid check_in_date: expected YYYY-MM-DD")
		return
	}
	checkOut, err = time.Parse("2006-01-02", req.CheckOutDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidDateFormat, "invalid check_out_date: expected YYYY-MM-DD")
		return
	}
	if !checkOut.After(checkIn) {
		writeError(w, http.StatusBadRequest, codeInvalidDateRange, domain.ErrInvalidDateRange.Error())
		return
	}
	if int(checkOut.Sub(checkIn).Hours()/24) > maxStayDays {
		writeError(w, http.StatusBadRequest, codeRangeTooLong, domain.ErrRangeTooLong.Error())
		return
	}
	if req.BaseRoomRate <= 0 {
		writeError(w, http.StatusBadRequest, codeInvalidBaseRate, domain.ErrInvalidBaseRate.Error())
		return
	}
	return checkIn, checkOut, true
}

type eventPricingResponse struct {
	OriginalRate    float64 `json:"original_rate"`
	AdjustedRate    float64 `json:"adjusted_rate"`
	Multiplier      float64 `json:"multiplier"`
	Reason          string  `json:"reason"`
	EventsCount     int     `json:"events_count"`
	ConfidenceScore float64 `json:"confidence_score"`
	PeakEventDate   *string `json:"peak_event_date"`
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
