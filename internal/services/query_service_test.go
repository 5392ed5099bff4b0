package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/upnext/internal/models"
)

type catalogFixture struct {
	ingest *IngestService
	query  *QueryService

	artistIDs map[string]primitive.ObjectID
	venueIDs  map[string]primitive.ObjectID
}

// seedCatalog loads the sample catalog shape: three artists, three venues,
// and one event each, through the same ingest paths production uses.
func seedCatalog(t *testing.T) *catalogFixture {
	t.Helper()
	artists := newFakeArtistRepo()
	venues := newFakeVenueRepo()
	events := newFakeEventRepo()

	fx := &catalogFixture{
		ingest:    NewIngestService(artists, venues, events),
		query:     NewQueryService(artists, venues, events),
		artistIDs: make(map[string]primitive.ObjectID),
		venueIDs:  make(map[string]primitive.ObjectID),
	}
	ctx := context.Background()

	for _, name := range []string{"The Midnight", "Tame Impala", "Phoebe Bridgers"} {
		artist, err := fx.ingest.UpsertArtist(ctx, &models.Artist{Name: name})
		require.NoError(t, err)
		fx.artistIDs[name] = artist.ID
	}

	venueSpecs := []struct {
		name     string
		lng, lat float64
	}{
		{"The Greek Theatre", -118.2933, 34.1192},
		{"Madison Square Garden", -73.9934, 40.7505},
		{"Red Rocks Amphitheatre", -105.2057, 39.6654},
	}
	for _, spec := range venueSpecs {
		venue, err := fx.ingest.InsertVenue(ctx, &models.Venue{
			Name:     spec.name,
			Location: models.NewGeoPoint(spec.lng, spec.lat),
		})
		require.NoError(t, err)
		fx.venueIDs[spec.name] = venue.ID
	}

	eventSpecs := []struct {
		title    string
		artist   string
		venue    string
		startsAt time.Time
		sourceID string
	}{
		{"The Midnight at The Greek", "The Midnight", "The Greek Theatre",
			time.Date(2025, 9, 15, 19, 30, 0, 0, time.UTC), "evt-001"},
		{"Tame Impala Live at MSG", "Tame Impala", "Madison Square Garden",
			time.Date(2025, 10, 5, 20, 0, 0, 0, time.UTC), "evt-002"},
		{"Phoebe Bridgers at Red Rocks", "Phoebe Bridgers", "Red Rocks Amphitheatre",
			time.Date(2025, 8, 30, 20, 0, 0, 0, time.UTC), "evt-003"},
	}
	for _, spec := range eventSpecs {
		_, err := fx.ingest.InsertEvent(ctx, &models.Event{
			Title:    spec.title,
			Artists:  []primitive.ObjectID{fx.artistIDs[spec.artist]},
			VenueID:  fx.venueIDs[spec.venue],
			StartsAt: spec.startsAt,
			Source:   models.EventSource{Provider: "seed", ID: spec.sourceID},
		})
		require.NoError(t, err)
	}

	return fx
}

func TestSearchArtistsRanksMatch(t *testing.T) {
	fx := seedCatalog(t)

	artists, err := fx.query.SearchArtists(context.Background(), "Midnight", 10)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "The Midnight", artists[0].Name)
}

func TestSearchArtistsEmptyQueryLists(t *testing.T) {
	fx := seedCatalog(t)

	artists, err := fx.query.SearchArtists(context.Background(), "  ", 10)
	require.NoError(t, err)
	assert.Len(t, artists, 3)
}

func TestVenuesNearGreekTheatre(t *testing.T) {
	fx := seedCatalog(t)

	// 50km around Griffith Park: only The Greek Theatre qualifies.
	venues, err := fx.query.VenuesNear(context.Background(), -118.2933, 34.1192, 50000, 10)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "The Greek Theatre", venues[0].Name)
}

func TestVenuesNearRejectsBadInput(t *testing.T) {
	fx := seedCatalog(t)
	ctx := context.Background()

	_, err := fx.query.VenuesNear(ctx, -118, 34, -5, 10)
	assert.Error(t, err)

	_, err = fx.query.VenuesNear(ctx, -181, 34, 50000, 10)
	assert.Error(t, err)
}

func TestEventsBetweenChronological(t *testing.T) {
	fx := seedCatalog(t)

	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC)

	events, err := fx.query.EventsBetween(context.Background(), from, to, models.TimeRangeFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Phoebe Bridgers at Red Rocks", events[0].Title)
	assert.Equal(t, "The Midnight at The Greek", events[1].Title)
}

func TestEventsBetweenVenueFilter(t *testing.T) {
	fx := seedCatalog(t)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	venueID := fx.venueIDs["Madison Square Garden"]

	events, err := fx.query.EventsBetween(context.Background(), from, to,
		models.TimeRangeFilter{VenueID: &venueID}, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Tame Impala Live at MSG", events[0].Title)
}

func TestEventsBetweenArtistFilter(t *testing.T) {
	fx := seedCatalog(t)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	artistID := fx.artistIDs["Phoebe Bridgers"]

	events, err := fx.query.EventsBetween(context.Background(), from, to,
		models.TimeRangeFilter{ArtistID: &artistID}, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Phoebe Bridgers at Red Rocks", events[0].Title)
}

func TestEventsBetweenRejectsInvertedRange(t *testing.T) {
	fx := seedCatalog(t)

	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := fx.query.EventsBetween(context.Background(), from, from, models.TimeRangeFilter{}, 10)
	assert.Error(t, err)
}

func TestGetByIDNotFound(t *testing.T) {
	fx := seedCatalog(t)
	ctx := context.Background()

	_, err := fx.query.GetArtist(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = fx.query.GetVenue(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = fx.query.GetEvent(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
