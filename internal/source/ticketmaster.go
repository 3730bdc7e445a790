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

const defaultTicketmasterURL = "https://app.ticketmaster.com/discovery/v2/events"

type ticketmasterSource struct {
	cfg    config.TicketmasterConfig
	client *http.Client
}

func NewTicketmasterSource(cfg config.TicketmasterConfig) *ticketmasterSource {
	return &ticketmasterSource{
		cfg:    cfg,
		client: newHTTPClient(defaultDur(cfg.HTTP.Timeout, 10*time.Second)),
	}
}

func (s *ticketmasterSource) Name() string { return "ticketmaster" }

func (s *ticketmasterSource) Enabled() bool {
	key := strings.TrimSpace(s.cfg.APIKey)
	return key != "" && key != "demo_key"
}

func (s *ticketmasterSource) Fetch(ctx context.Context, city string, day time.Time) ([]domain.NormalizedEvent, error) {
	if !s.Enabled() {
		return nil, domain.ErrSourceDisabled
	}

	base := strings.TrimRight(s.cfg.BaseURL, "/")
	if base == "" {
		base = defaultTicketmasterURL
	}
	dateStr := day.Format("2006-01-02")

	pageSize := s.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: ticketmaster url: %v", domain.ErrSourceUnavailable, err)
	}
	q := u.Query()
	q.Set("apikey", s.cfg.APIKey)
	q.Set("city", city)
	q.Set("startDateTime", dateStr+"T00:00:00Z")
	q.Set("endDateTime", dateStr+"T23:59:59Z")
	q.Set("size", fmt.Sprintf("%d", pageSize))
	q.Set("sort", "date,asc")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: ticketmaster request: %v", domain.ErrSourceUnavailable, err)
	}
	if ua := s.cfg.HTTP.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ticketmaster: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: ticketmaster %d: %s", domain.ErrSourceUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: ticketmaster body: %v", domain.ErrSourceUnavailable, err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: ticketmaster payload: %v", domain.ErrSourceUnavailable, err)
	}

	var events []domain.NormalizedEvent
	arr, _ := dig(payload, "_embedded", "events").([]any)
	for _, it := range arr {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}

		venue := "Unknown"
		if vm := firstMap(dig(m, "_embedded", "venues")); vm != nil {
			if name := pickStr(vm, "name"); name != "" {
				venue = name
			}
		}

		category := "General"
		if cm := firstMap(m["classifications"]); cm != nil {
			if name := digStr(cm, "segment", "name"); name != "" {
				category = name
			}
		}

		events = append(events, domain.NormalizedEvent{
			ID:                 pickStr(m, "id"),
			Name:               pickStr(m, "name"),
			StartsAt:           parseEventTime(digStr(m, "dates", "start", "dateTime"), day),
			Venue:              venue,
			Category:           category,
			ExpectedAttendance: defaultAttendance,
			Source:             s.Name(),
		})
	}
	return events, nil
}
