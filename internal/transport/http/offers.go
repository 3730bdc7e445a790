package http

import (
	"net/http"
)

// OfferGenerator is the minimal interface needed to build offer copy.
type OfferGenerator interface {
	GenerateOffer(segmentLabel, travelPurpose string) (offerName, copy string)
}

// HandleGenerateOffer returns an HTTP handler for POST /generate-offer.
func HandleGenerateOffer(svc OfferGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req generateOfferRequest
		if !decodeBody(w, r, &req) {
			return
		}

		offerName, copyText := svc.GenerateOffer(req.SegmentLabel, req.TravelPurpose)
		writeJSON(w, http.StatusOK, generateOfferResponse{
			OfferName: offerName,
			Copy:      copyText,
		})
	}
}

type generateOfferRequest struct {
	SegmentLabel  string `json:"segment_label"`
	TravelPurpose string `json:"travel_purpose"`
}

type generateOfferResponse struct {
	OfferName string `json:"offer_name"`
	Copy      string `json:"copy"`
}
