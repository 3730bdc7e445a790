package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harriot/experience-engine/internal/config"
	"github.com/harriot/experience-engine/internal/domain"
)

const defaultEventbriteURL = "https://www.eventbriteapi.com/v3/events/search/"

type eventbriteSource struct {
	cfg    config.EventbriteConfig
	client *http.Client
}

func NewEventbriteSource(cfg config.EventbriteConfig) *eventbriteSource {
	return &eventbriteSource{
		cfg:    cfg,
		client: newHTTPClient(defaultDur(cfg.HTTP.Timeout, 10*time.Second)),
	}
}

func (s *eventbriteSource) Name() string { return "eventbrite" }

func (s *eventbriteSource) Enabled() bool {
	key := strings.TrimSpace(s.cfg.APIKey)
	return key != "" && key != "demo_key"
}

func (s *eventbriteSource) Fetch(ctx context.Context, city string, day time.Time) ([]domain.NormalizedEvent, error) {
	if !s.Enabled() {
		return nil, domain.ErrSourceDisabled
	}

	base := s.cfg.BaseURL
	if base == "" {
		base = defaultEventbriteURL
	}
	dateStr := day.Format("2006-01-02")

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: eventbrite url: %v", domain.ErrSourceUnavailable, err)
	}
	q := u.Query()
	q.Set("location.address", city)
	q.Set("start_date.range_start", dateStr+"T00:00:00")
	q.Set("start_date.range_end", dateStr+"T23:59:59")
	q.Set("expand", "venue")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: eventbrite request: %v", domain.ErrSourceUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	if ua := s.cfg.HTTP.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: eventbrite: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: eventbrite %d: %s", domain.ErrSourceUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: eventbrite body: %v", domain.ErrSourceUnavailable, err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: eventbrite payload: %v", domain.ErrSourceUnavailable, err)
	}

	var events []domain.NormalizedEvent
	arr, _ := payload["events"].([]any)
	for _, it := range arr {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}

		venue := digStr(m, "venue", "name")
		if venue == "" {
			venue = "Unknown"
		}
		category := digStr(m, "category", "name")
		if category == "" {
			category = "General"
		}

		events = append(events, domain.NormalizedEvent{
			ID:                 pickStr(m, "id"),
			Name:               digStr(m, "name", "text"),
			StartsAt:           parseEventTime(digStr(m, "start", "utc"), day),
			Venue:              venue,
			Category:           category,
			ExpectedAttendance: defaultAttendance,
			Source:             s.Name(),
		})
	}
	return events, nil
}
