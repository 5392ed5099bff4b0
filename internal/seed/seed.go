// Package seed loads the sample catalog: three artists, three venues, three
// events, and the built-in Attended list. Every write goes through the same
// idempotent ingest paths the pipeline uses, so re-running changes nothing.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/upnext/internal/models"
	"github.com/joshua-takyi/upnext/internal/services"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(fmt.Sprintf("seed: bad time constant %q: %v", value, err))
	}
	return t
}

// SampleArtists returns the seed artists in ingestion order.
func SampleArtists() []*models.Artist {
	return []*models.Artist{
		{
			Name: "The Midnight",
			IDs: models.ArtistIDs{
				MBID:           nil,
				WikidataID:     strPtr("Q21014274"),
				WikipediaTitle: strPtr("The_Midnight_(band)"),
			},
			Synopsis: &models.Synopsis{
				Text: "The Midnight is an American synthwave band known for nostalgic, cinematic soundscapes.",
				Source: models.SynopsisSource{
					Name:    "Wikipedia",
					URL:     "https://en.wikipedia.org/wiki/The_Midnight_(band)",
					License: "CC BY-SA",
				},
			},
		},
		{
			Name: "Tame Impala",
			IDs: models.ArtistIDs{
				MBID:           strPtr("063cf61b-28e5-4eab-94a1-71e9e9b52e7e"),
				WikidataID:     strPtr("Q152709"),
				WikipediaTitle: strPtr("Tame_Impala"),
			},
			Synopsis: &models.Synopsis{
				Text: "Tame Impala is a psychedelic music project of Australian multi-instrumentalist Kevin Parker.",
				Source: models.SynopsisSource{
					Name:    "Wikipedia",
					URL:     "https://en.wikipedia.org/wiki/Tame_Impala",
					License: "CC BY-SA",
				},
			},
		},
		{
			Name: "Phoebe Bridgers",
			IDs: models.ArtistIDs{
				MBID:           strPtr("f4e8a058-5c9e-4b9d-8b3f-0a9f3e6c62af"),
				WikidataID:     strPtr("Q42058874"),
				WikipediaTitle: strPtr("Phoebe_Bridgers"),
			},
			Synopsis: &models.Synopsis{
				Text: "Phoebe Bridgers is an American singer-songwriter known for her emotive indie folk.",
				Source: models.SynopsisSource{
					Name:    "Wikipedia",
					URL:     "https://en.wikipedia.org/wiki/Phoebe_Bridgers",
					License: "CC BY-SA",
				},
			},
		},
	}
}

// SampleVenues returns the seed venues in ingestion order.
func SampleVenues() []*models.Venue {
	return []*models.Venue{
		{
			Name: "The Greek Theatre",
			Address: &models.Address{
				Line1:   "2700 N Vermont Ave",
				City:    "Los Angeles",
				State:   "CA",
				Country: "US",
				Postal:  "90027",
			},
			Location: models.NewGeoPoint(-118.2933, 34.1192),
		},
		{
			Name: "Madison Square Garden",
			Address: &models.Address{
				Line1:   "4 Pennsylvania Plaza",
				City:    "New York",
				State:   "NY",
				Country: "US",
				Postal:  "10001",
			},
			Location: models.NewGeoPoint(-73.9934, 40.7505),
		},
		{
			Name: "Red Rocks Amphitheatre",
			Address: &models.Address{
				Line1:   "18300 W Alameda Pkwy",
				City:    "Morrison",
				State:   "CO",
				Country: "US",
				Postal:  "80465",
			},
			Location: models.NewGeoPoint(-105.2057, 39.6654),
		},
	}
}

type sampleEvent struct {
	event       models.Event
	artistNames []string
	venueName   string
}

func sampleEvents() []sampleEvent {
	return []sampleEvent{
		{
			artistNames: []string{"The Midnight"},
			venueName:   "The Greek Theatre",
			event: models.Event{
				Title:      "The Midnight at The Greek",
				StartsAt:   mustTime("2025-09-15T19:30:00-07:00"),
				DoorsAt:    timePtr(mustTime("2025-09-15T18:30:00-07:00")),
				TZ:         strPtr("America/Los_Angeles"),
				PriceMin:   f64Ptr(35),
				PriceMax:   f64Ptr(95),
				PriceAvg:   f64Ptr(60),
				Currency:   strPtr("USD"),
				TourName:   strPtr("Endless Summer Tour"),
				Genres:     []string{"Synthwave"},
				Source:     models.EventSource{Provider: "seed", ID: "evt-001"},
				Setlist:    &models.SetlistRef{Provider: "setlistfm", URL: strPtr("https://www.setlist.fm/")},
				Status:     strPtr(models.EventStatusScheduled),
				IsAllAges:  boolPtr(true),
				Popularity: f64Ptr(0.7),
			},
		},
		{
			artistNames: []string{"Tame Impala"},
			venueName:   "Madison Square Garden",
			event: models.Event{
				Title:      "Tame Impala Live at MSG",
				StartsAt:   mustTime("2025-10-05T20:00:00-04:00"),
				DoorsAt:    timePtr(mustTime("2025-10-05T19:00:00-04:00")),
				TZ:         strPtr("America/New_York"),
				PriceMin:   f64Ptr(60),
				PriceMax:   f64Ptr(180),
				PriceAvg:   f64Ptr(110),
				Currency:   strPtr("USD"),
				TourName:   strPtr("Currents Anniversary Tour"),
				Genres:     []string{"Psychedelic Rock", "Indie"},
				Source:     models.EventSource{Provider: "seed", ID: "evt-002"},
				Setlist:    &models.SetlistRef{Provider: "setlistfm", URL: strPtr("https://www.setlist.fm/")},
				Status:     strPtr(models.EventStatusScheduled),
				IsAllAges:  boolPtr(true),
				Popularity: f64Ptr(0.9),
			},
		},
		{
			artistNames: []string{"Phoebe Bridgers"},
			venueName:   "Red Rocks Amphitheatre",
			event: models.Event{
				Title:      "Phoebe Bridgers at Red Rocks",
				StartsAt:   mustTime("2025-08-30T20:00:00-06:00"),
				DoorsAt:    timePtr(mustTime("2025-08-30T19:00:00-06:00")),
				TZ:         strPtr("America/Denver"),
				PriceMin:   f64Ptr(45),
				PriceMax:   f64Ptr(150),
				PriceAvg:   f64Ptr(85),
				Currency:   strPtr("USD"),
				TourName:   strPtr("Reunion Tour"),
				Genres:     []string{"Indie Folk"},
				Source:     models.EventSource{Provider: "seed", ID: "evt-003"},
				Setlist:    &models.SetlistRef{Provider: "setlistfm", URL: strPtr("https://www.setlist.fm/")},
				Status:     strPtr(models.EventStatusScheduled),
				IsAllAges:  boolPtr(false),
				Popularity: f64Ptr(0.8),
			},
		},
	}
}

func timePtr(t time.Time) *time.Time { return &t }

// Run loads the sample catalog. Artists and venues go first so event writes
// pass referential checks. There is no rollback on partial failure; the
// whole sequence is safe to re-run.
func Run(ctx context.Context, ingest *services.IngestService, lists *services.ListService) error {
	artistIDs := make(map[string]primitive.ObjectID)
	for _, artist := range SampleArtists() {
		stored, err := ingest.UpsertArtist(ctx, artist)
		if err != nil {
			return fmt.Errorf("seeding artist %q: %w", artist.Name, err)
		}
		artistIDs[stored.Name] = stored.ID
	}

	venueIDs := make(map[string]primitive.ObjectID)
	for _, venue := range SampleVenues() {
		stored, err := ingest.InsertVenue(ctx, venue)
		if err != nil {
			return fmt.Errorf("seeding venue %q: %w", venue.Name, err)
		}
		venueIDs[stored.Name] = stored.ID
	}

	for _, sample := range sampleEvents() {
		event := sample.event
		event.VenueID = venueIDs[sample.venueName]
		for _, name := range sample.artistNames {
			event.Artists = append(event.Artists, artistIDs[name])
		}
		if _, err := ingest.InsertEvent(ctx, &event); err != nil {
			return fmt.Errorf("seeding event %q: %w", event.Title, err)
		}
	}

	if _, err := lists.UpsertSystemList(ctx, models.SystemListAttended, "Attended"); err != nil {
		return fmt.Errorf("seeding system list: %w", err)
	}

	return nil
}
