package source

import (
	"context"
	"fmt"
	"time"

	"github.com/harriot/experience-engine/internal/config"
	"github.com/harriot/experience-engine/internal/domain"
)

// Source is one integration with an external event-listing provider.
// Fetch returns the provider's listings for a city on a single calendar day,
// normalized. A Source with no credential reports Enabled() == false and is
// never called.
type Source interface {
	Name() string
	Enabled() bool
	Fetch(ctx context.Context, city string, day time.Time) ([]domain.NormalizedEvent, error)
}

func NewFromConfig(c config.SourceConfig) (Source, error) {
	switch c.Type {
	case "ticketmaster":
		return NewTicketmasterSource(c.Ticketmaster), nil
	case "eventbrite":
		return NewEventbriteSource(c.Eventbrite), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", c.Type)
	}
}
