package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const EventColName = "events"

// EventSource identifies the external system of record for an event. The
// (provider, id) pair is the ingestion idempotency key.
type EventSource struct {
	Provider string  `bson:"provider" json:"provider" validate:"required"`
	ID       string  `bson:"id" json:"id" validate:"required"`
	URL      *string `bson:"url" json:"url"`
}

// ProviderPrice is one provider's price snapshot for an event.
type ProviderPrice struct {
	Provider string     `bson:"provider" json:"provider"`
	Min      *float64   `bson:"min,omitempty" json:"min,omitempty"`
	Max      *float64   `bson:"max,omitempty" json:"max,omitempty"`
	Currency *string    `bson:"currency,omitempty" json:"currency,omitempty"`
	SeenAt   *time.Time `bson:"seenAt,omitempty" json:"seenAt,omitempty"`
}

type SetlistRef struct {
	Provider string  `bson:"provider,omitempty" json:"provider,omitempty"`
	ID       *string `bson:"id" json:"id"`
	URL      *string `bson:"url" json:"url"`
}

const (
	EventStatusScheduled = "scheduled"
	EventStatusCancelled = "cancelled"
	EventStatusPostponed = "postponed"
)

type Event struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title    string               `bson:"title" json:"title" validate:"required"`
	Artists  []primitive.ObjectID `bson:"artists" json:"artists"` // billing order
	VenueID  primitive.ObjectID   `bson:"venueId" json:"venueId" validate:"required"`
	StartsAt time.Time            `bson:"startsAt" json:"startsAt" validate:"required"`
	DoorsAt  *time.Time           `bson:"doorsAt" json:"doorsAt"`
	TZ       *string              `bson:"tz" json:"tz"`

	PriceMin           *float64        `bson:"priceMin" json:"priceMin"`
	PriceMax           *float64        `bson:"priceMax" json:"priceMax"`
	PriceAvg           *float64        `bson:"priceAvg" json:"priceAvg"`
	Currency           *string         `bson:"currency" json:"currency"`
	PriceFromProviders []ProviderPrice `bson:"priceFromProviders" json:"priceFromProviders"`

	TourName   *string     `bson:"tourName" json:"tourName"`
	Genres     []string    `bson:"genres" json:"genres"`
	Source     EventSource `bson:"source" json:"source"`
	Setlist    *SetlistRef `bson:"setlist,omitempty" json:"setlist,omitempty"`
	Status     *string     `bson:"status" json:"status"`
	IsAllAges  *bool       `bson:"isAllAges" json:"isAllAges"`
	Images     []string    `bson:"images" json:"images"`
	Popularity *float64    `bson:"popularity" json:"popularity"`

	Extra map[string]interface{} `bson:",inline" json:"extra,omitempty"`
}

// TimeRangeFilter narrows an events range scan to a venue or artist.
type TimeRangeFilter struct {
	VenueID  *primitive.ObjectID
	ArtistID *primitive.ObjectID
}

type EventRepo interface {
	InsertEvent(ctx context.Context, event *Event) (*Event, error)
	ReingestEvent(ctx context.Context, event *Event) (*Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	FindEventsInRange(ctx context.Context, from, to time.Time, filter TimeRangeFilter, limit int64) ([]*Event, error)
	FindEventsByArtist(ctx context.Context, artistID primitive.ObjectID, after time.Time, past bool, limit int64) ([]*Event, error)
}

func (e *Event) Normalize() {
	if e.Artists == nil {
		e.Artists = []primitive.ObjectID{}
	}
	if e.Genres == nil {
		e.Genres = []string{}
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	if e.PriceFromProviders == nil {
		e.PriceFromProviders = []ProviderPrice{}
	}
}
