package domain

import "time"

// CampaignRecipient is the minimal addressing info for one send.
type CampaignRecipient struct {
	Email string
}

// SendReceipt records the outcome of one simulated delivery.
type SendReceipt struct {
	Email  string
	Status string
	SentAt time.Time
}

// CampaignResult is the outcome of one campaign send.
type CampaignResult struct {
	CampaignID string
	SentCount  int
	Status     string
	Receipts   []SendReceipt
}
