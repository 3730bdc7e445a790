package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/harriot/experience-engine/internal/domain"
)

// CampaignLog persists campaign send results to redis.
// Key format: campaign:{id} hash, plus a campaigns list of ids.
type CampaignLog struct {
	client *redis.Client
}

func NewCampaignLog(client *redis.Client) *CampaignLog {
	return &CampaignLog{client: client}
}

func (l *CampaignLog) Record(ctx context.Context, result domain.CampaignResult) error {
	key := fmt.Sprintf("campaign:%s", result.CampaignID)

	fields := map[string]interface{}{
		"id":         result.CampaignID,
		"sent_count": result.SentCount,
		"status":     result.Status,
	}
	if err := l.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("store campaign %s: %w", result.CampaignID, err)
	}

	for _, receipt := range result.Receipts {
		entry := fmt.Sprintf("%s|%s|%d", receipt.Email, receipt.Status, receipt.SentAt.Unix())
		if err := l.client.RPush(ctx, key+":receipts", entry).Err(); err != nil {
			return fmt.Errorf("store campaign %s receipts: %w", result.CampaignID, err)
		}
	}

	if err := l.client.RPush(ctx, "campaigns", result.CampaignID).Err(); err != nil {
		return fmt.Errorf("index campaign %s: %w", result.CampaignID, err)
	}
	return nil
}
