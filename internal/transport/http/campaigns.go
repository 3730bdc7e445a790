package http

import (
	"context"
	"net/http"
	"time"

	"github.com/harriot/experience-engine/internal/domain"
)

// AudienceSelector is the minimal interface needed to select an audience.
type AudienceSelector interface {
	AtRiskBusinessTravelers(ctx context.Context) ([]domain.Traveler, domain.AudienceStats, error)
}

// CampaignSender is the minimal interface needed to send a campaign.
type CampaignSender interface {
	Send(ctx context.Context, subject, body string, recipients []domain.CampaignRecipient) (domain.CampaignResult, error)
}

// HandleAudience returns an HTTP handler for
// GET /campaigns/audiences/q2-business-local. A nil service answers 503:
// the audience store is an optional collaborator of the pricing core.
func HandleAudience(svc AudienceSelector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		if svc == nil {
			writeError(w, http.StatusServiceUnavailable, codeStoreUnavailable, domain.ErrStoreUnavailable.Error())
			return
		}

		travelers, stats, err := svc.AtRiskBusinessTravelers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		audience := make([]audienceMember, 0, len(travelers))
		for _, t := range travelers {
			audience = append(audience, audienceMember{
				Email:           t.Email,
				LoyaltyTier:     t.LoyaltyTier,
				HomeCity:        t.HomeCity,
				DistanceMiles:   t.DistanceMiles,
				LastStayDaysAgo: t.LastStayDaysAgo,
				AvgSpend:        t.AvgSpend,
			})
		}

		writeJSON(w, http.StatusOK, audienceResponse{
			Audience: audience,
			Stats: audienceStats{
				AudienceCount:    stats.AudienceCount,
				PotentialRevenue: stats.PotentialRevenue,
				Segments:         stats.Segments,
				Criteria:         stats.Criteria,
			},
		})
	}
}

// HandleSendCampaign returns an HTTP handler for POST /campaigns/send.
func HandleSendCampaign(svc CampaignSender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req sendCampaignRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Subject == "" {
			writeError(w, http.StatusBadRequest, codeSubjectRequired, "subject is required")
			return
		}
		if len(req.Recipients) == 0 {
			writeError(w, http.StatusBadRequest, codeNoRecipients, "at least one recipient is required")
			return
		}

		recipients := make([]domain.CampaignRecipient, 0, len(req.Recipients))
		for _, rec := range req.Recipients {
			recipients = append(recipients, domain.CampaignRecipient{Email: rec.Email})
		}

		result, err := svc.Send(r.Context(), req.Subject, req.Body, recipients)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		details := make([]sendDetail, 0, len(result.Receipts))
		for _, receipt := range result.Receipts {
			details = append(details, sendDetail{
				Email:     receipt.Email,
				Status:    receipt.Status,
				Timestamp: receipt.SentAt.Format(time.RFC3339),
			})
		}

		writeJSON(w, http.StatusOK, sendCampaignResponse{
			CampaignID: result.CampaignID,
			SentCount:  result.SentCount,
			Status:     result.Status,
			Details:    details,
		})
	}
}

type sendCampaignRequest struct {
	Subject    string              `json:"subject"`
	Body       string              `json:"body"`
	Recipients []campaignRecipient `json:"recipients"`
}

type campaignRecipient struct {
	Email string `json:"email"`
}

type audienceMember struct {
	Email           string  `json:"email"`
	LoyaltyTier     string  `json:"loyalty_tier"`
	HomeCity        string  `json:"home_city"`
	DistanceMiles   float64 `json:"distance_miles"`
	LastStayDaysAgo int     `json:"last_stay_days_ago"`
	AvgSpend        float64 `json:"avg_spend"`
}

type audienceStats struct {
	AudienceCount    int      `json:"audience_count"`
	PotentialRevenue float64  `json:"potential_revenue"`
	Segments         []string `json:"segments"`
	Criteria         string   `json:"criteria"`
}

type audienceResponse struct {
	Audience []audienceMember `json:"audience"`
	Stats    audienceStats    `json:"stats"`
}

type sendDetail struct {
	Email     string `json:"email"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type sendCampaignResponse struct {
	CampaignID string       `json:"campaign_id"`
	SentCount  int          `json:"sent_count"`
	Status     string       `json:"status"`
	Details    []sendDetail `json:"details"`
}
