package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeOfferGenerator struct {
	gotSegment string
	gotPurpose string
}

func (f *fakeOfferGenerator) GenerateOffer(segmentLabel, travelPurpose string) (string, string) {
	f.gotSegment = segmentLabel
	f.gotPurpose = travelPurpose
	return "Executive Suite + Lounge Access", "Upgrade your stay."
}

func TestHandleGenerateOffer(t *testing.T) {
	t.Parallel()

	t.Run("returns the generated offer", func(t *testing.T) {
		svc := &fakeOfferGenerator{}
		body := `{"segment_label":"Frequent Business","travel_purpose":"Business"}`
		rec := postJSON(t, HandleGenerateOffer(svc), "/generate-offer", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp generateOfferResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.OfferName != "Executive Suite + Lounge Access" || resp.Copy != "Upgrade your stay." {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if svc.gotSegment != "Frequent Business" || svc.gotPurpose != "Business" {
			t.Fatalf("unexpected call: %q / %q", svc.gotSegment, svc.gotPurpose)
		}
	})

	t.Run("invalid json is rejected", func(t *testing.T) {
		rec := postJSON(t, HandleGenerateOffer(&fakeOfferGenerator{}), "/generate-offer", `{`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("GET is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/generate-offer", nil)
		rec := httptest.NewRecorder()
		HandleGenerateOffer(&fakeOfferGenerator{})(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}
