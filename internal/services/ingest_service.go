package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joshua-takyi/upnext/internal/models"
)

// maxUpsertRetries bounds retries on DuplicateKey races between concurrent
// writers of the same key. Once exhausted the error surfaces to the caller.
const maxUpsertRetries = 3

// IngestService is the idempotent write entry point the ingestion pipeline
// calls. Repeated imports of the same upstream record never create duplicates.
type IngestService struct {
	artists models.ArtistRepo
	venues  models.VenueRepo
	events  models.EventRepo
}

func NewIngestService(artists models.ArtistRepo, venues models.VenueRepo, events models.EventRepo) *IngestService {
	return &IngestService{
		artists: artists,
		venues:  venues,
		events:  events,
	}
}

// UpsertArtist stores an artist keyed on exact name, overwriting fields on a
// match. Name matching is deliberately case-sensitive here; fuzzy dedup of
// near-duplicate names belongs to the enrichment pipeline.
func (is *IngestService) UpsertArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	if artist == nil {
		return nil, fmt.Errorf("artist is nil")
	}
	if strings.TrimSpace(artist.Name) == "" {
		return nil, fmt.Errorf("%w: artist name is required", models.ErrSchemaViolation)
	}
	if err := models.Validate.Struct(artist); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSchemaViolation, err)
	}

	return retryOnDuplicate(func() (*models.Artist, error) {
		return is.artists.UpsertArtist(ctx, artist)
	})
}

// InsertVenue stores a venue keyed on exact name. An existing venue is
// returned unchanged; venue facts are treated as immutable once created.
func (is *IngestService) InsertVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if venue == nil {
		return nil, fmt.Errorf("venue is nil")
	}
	if strings.TrimSpace(venue.Name) == "" {
		return nil, fmt.Errorf("%w: venue name is required", models.ErrSchemaViolation)
	}
	if err := venue.Location.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSchemaViolation, err)
	}
	if err := models.Validate.Struct(venue); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrSchemaViolation, err)
	}

	return retryOnDuplicate(func() (*models.Venue, error) {
		return is.venues.InsertVenue(ctx, venue)
	})
}

// InsertEvent stores an event keyed on (source.provider, source.id). A
// previously-seen key returns the stored document unchanged. Venue and artist
// references are resolved before the write; the store itself never enforces
// them.
func (is *IngestService) InsertEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := is.checkEvent(ctx, event); err != nil {
		return nil, err
	}

	return retryOnDuplicate(func() (*models.Event, error) {
		return is.events.InsertEvent(ctx, event)
	})
}

// ReingestEvent is the production re-ingestion path: a source-key match
// refreshes mutable fields (prices, status, popularity, images, setlist)
// instead of skipping the record.
func (is *IngestService) ReingestEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := is.checkEvent(ctx, event); err != nil {
		return nil, err
	}

	return retryOnDuplicate(func() (*models.Event, error) {
		return is.events.ReingestEvent(ctx, event)
	})
}

func (is *IngestService) checkEvent(ctx context.Context, event *models.Event) error {
	if event == nil {
		return fmt.Errorf("event is nil")
	}
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("%w: event title is required", models.ErrSchemaViolation)
	}
	if event.StartsAt.IsZero() {
		return fmt.Errorf("%w: event startsAt is required", models.ErrSchemaViolation)
	}
	if strings.TrimSpace(event.Source.Provider) == "" || strings.TrimSpace(event.Source.ID) == "" {
		return fmt.Errorf("%w: event source provider and id are required", models.ErrSchemaViolation)
	}
	if event.TZ != nil {
		if _, err := time.LoadLocation(*event.TZ); err != nil {
			return fmt.Errorf("%w: invalid tz %q", models.ErrSchemaViolation, *event.TZ)
		}
	}
	if err := models.Validate.Struct(event); err != nil {
		return fmt.Errorf("%w: %v", models.ErrSchemaViolation, err)
	}

	if _, err := is.venues.GetVenueByID(ctx, event.VenueID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("%w: venue %s", models.ErrReferentialGap, event.VenueID.Hex())
		}
		return err
	}
	for _, artistID := range event.Artists {
		if _, err := is.artists.GetArtistByID(ctx, artistID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return fmt.Errorf("%w: artist %s", models.ErrReferentialGap, artistID.Hex())
			}
			return err
		}
	}
	return nil
}

// retryOnDuplicate re-runs an atomic upsert that lost a unique-index race.
// The upsert itself is conflict-free on retry because the winner's document
// now matches the filter.
func retryOnDuplicate[T any](op func() (*T, error)) (*T, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpsertRetries; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, models.ErrDuplicateKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("upsert retries exhausted: %w", lastErr)
}
