package app

import "strings"

// OfferService produces templated marketing copy for a traveler segment.
type OfferService struct{}

func NewOfferService() *OfferService {
	return &OfferService{}
}

// GenerateOffer returns an offer name and personalized copy for the segment
// and travel purpose.
func (*OfferService) GenerateOffer(segmentLabel, travelPurpose string) (offerName, copy string) {
	switch {
	case strings.Contains(segmentLabel, "Luxury"):
		offerName = "Private Villa Upgrade + Butler Service"
	case strings.Contains(segmentLabel, "Budget"):
		offerName = "Standard Room + City Tour Pass"
	default:
		offerName = "Executive Suite + Lounge Access"
	}

	if travelPurpose == "Business" {
		copy = "Experience seamless productivity. " + offerName + ". Enjoy high-speed Wi-Fi and 24/7 lounge access to keep you connected."
	} else {
		copy = "Unwind in style. " + offerName + ". Discover local hidden gems and relax with our premium amenities designed just for you."
	}
	return offerName, copy
}
