package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"weather-dashboard/internal/types"
)

// Event types
const (
	LocationCreated = "location.created"
	LocationDeleted = "location.deleted"
)

// Event describes a change to the persisted locations
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	LocationID int64           `json:"location_id"`
	Location   *types.Location `json:"location,omitempty"`
}

// NewEvent stamps a fresh id and the current time. loc may be nil for deletions.
func NewEvent(eventType string, locationID int64, loc *types.Location) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		LocationID: locationID,
		Location:   loc,
	}
}

// Publisher delivers location events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
