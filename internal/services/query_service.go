package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/upnext/internal/models"
)

const defaultQueryLimit = 100

// QueryService is the read-only side of the catalog: text search, geospatial
// lookup, and time-range scans. No method has side effects.
type QueryService struct {
	artists models.ArtistRepo
	venues  models.VenueRepo
	events  models.EventRepo
}

func NewQueryService(artists models.ArtistRepo, venues models.VenueRepo, events models.EventRepo) *QueryService {
	return &QueryService{
		artists: artists,
		venues:  venues,
		events:  events,
	}
}

// SearchArtists returns artists matching the query, best text-index score
// first. An empty query falls back to an alphabetical listing.
func (qs *QueryService) SearchArtists(ctx context.Context, query string, limit int64) ([]*models.Artist, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return qs.artists.ListArtists(ctx, limit)
	}
	return qs.artists.SearchArtistsByText(ctx, query, limit)
}

func (qs *QueryService) GetArtist(ctx context.Context, id primitive.ObjectID) (*models.Artist, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("invalid artist ID")
	}
	return qs.artists.GetArtistByID(ctx, id)
}

// VenuesNear returns venues within radiusMeters of the point, nearest first.
func (qs *QueryService) VenuesNear(ctx context.Context, lng, lat, radiusMeters float64, limit int64) ([]*models.Venue, error) {
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("radius must be positive")
	}
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	return qs.venues.FindVenuesNear(ctx, lng, lat, radiusMeters, limit)
}

func (qs *QueryService) GetVenue(ctx context.Context, id primitive.ObjectID) (*models.Venue, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("invalid venue ID")
	}
	return qs.venues.GetVenueByID(ctx, id)
}

// EventsBetween scans events with startsAt in [from, to), chronological,
// optionally narrowed to one venue or one artist.
func (qs *QueryService) EventsBetween(ctx context.Context, from, to time.Time, filter models.TimeRangeFilter, limit int64) ([]*models.Event, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("time range end must be after start")
	}
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	return qs.events.FindEventsInRange(ctx, from, to, filter, limit)
}

// EventsForArtist returns an artist's upcoming events ascending, or with
// past=true their history most recent first.
func (qs *QueryService) EventsForArtist(ctx context.Context, artistID primitive.ObjectID, past bool, limit int64) ([]*models.Event, error) {
	if artistID.IsZero() {
		return nil, fmt.Errorf("invalid artist ID")
	}
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	return qs.events.FindEventsByArtist(ctx, artistID, time.Now(), past, limit)
}

func (qs *QueryService) GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("invalid event ID")
	}
	return qs.events.GetEventByID(ctx, id)
}
