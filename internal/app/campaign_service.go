package app

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/harriot/experience-engine/internal/clock"
	"github.com/harriot/experience-engine/internal/domain"
)

// CampaignLog records completed campaign sends.
type CampaignLog interface {
	Record(ctx context.Context, result domain.CampaignResult) error
}

// CampaignService simulates delivering an email campaign. A real sender
// would sit behind the same surface.
type CampaignService struct {
	log    CampaignLog
	clock  clock.Clock
	logger *log.Logger
}

func NewCampaignService(campaignLog CampaignLog, clk clock.Clock, logger *log.Logger) *CampaignService {
	if logger == nil {
		logger = log.Default()
	}
	return &CampaignService{log: campaignLog, clock: clk, logger: logger}
}

// Send delivers the campaign to every recipient and records the receipts.
// A log failure is warned about, not surfaced; the sends already happened.
func (s *CampaignService) Send(ctx context.Context, subject, body string, recipients []domain.CampaignRecipient) (domain.CampaignResult, error) {
	now := s.clock.Now()

	receipts := make([]domain.SendReceipt, 0, len(recipients))
	for _, r := range recipients {
		receipts = append(receipts, domain.SendReceipt{
			Email:  r.Email,
			Status: "sent",
			SentAt: now,
		})
	}

	result := domain.CampaignResult{
		CampaignID: uuid.NewString(),
		SentCount:  len(receipts),
		Status:     "completed",
		Receipts:   receipts,
	}
	s.logger.Printf("campaign %s: sent %d message(s) subject=%q", result.CampaignID, result.SentCount, subject)

	if s.log != nil {
		if err := s.log.Record(ctx, result); err != nil {
			s.logger.Printf("WARN: record campaign %s: %v", result.CampaignID, err)
		}
	}
	return result, nil
}

// MemoryCampaignLog keeps campaign results in memory; the default when no
// redis is configured.
type MemoryCampaignLog struct {
	mu      sync.Mutex
	results []domain.CampaignResult
}

func NewMemoryCampaignLog() *MemoryCampaignLog {
	return &MemoryCampaignLog{}
}

func (l *MemoryCampaignLog) Record(_ context.Context, result domain.CampaignResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, result)
	return nil
}

// Results returns a snapshot of recorded campaigns.
func (l *MemoryCampaignLog) Results() []domain.CampaignResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.CampaignResult, len(l.results))
	copy(out, l.results)
	return out
}
