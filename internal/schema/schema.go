// Package schema owns collection creation, validation rules, and index
// definitions for the catalog. It must run before any seed or ingestion
// write; both cmd/seed and cmd/api call Ensure at startup.
package schema

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/joshua-takyi/upnext/internal/models"
)

// Ensure creates every collection and index the catalog relies on. Safe to
// call repeatedly: existing collections and indexes are left alone.
func Ensure(ctx context.Context, db *mongo.Database) error {
	if err := EnsureCollections(ctx, db); err != nil {
		return err
	}
	return EnsureIndexes(ctx, db)
}

// EnsureCollections applies the flexible validators: required fields with
// coarse types are enforced, everything else is allowed through so providers
// can add fields without a store migration.
func EnsureCollections(ctx context.Context, db *mongo.Database) error {
	validators := map[string]bson.M{
		models.ArtistColName:   artistValidator(),
		models.VenueColName:    venueValidator(),
		models.EventColName:    eventValidator(),
		models.ListColName:     listValidator(),
		models.ListItemColName: listItemValidator(),
	}

	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("error listing collections: %v", err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for name, validator := range validators {
		if present[name] {
			continue
		}
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			// Another writer may have created it between the list and here.
			if cmdErr, ok := err.(mongo.CommandError); ok && cmdErr.Code == 48 {
				continue
			}
			return fmt.Errorf("error creating collection %s: %v", name, err)
		}
	}
	return nil
}

func artistValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             bson.A{"name"},
			"additionalProperties": true,
			"properties": bson.M{
				"name":       bson.M{"bsonType": "string"},
				"normalized": bson.M{"bsonType": "string"},
				"external":   bson.M{"bsonType": "array"},
				"ids": bson.M{
					"bsonType":             "object",
					"additionalProperties": true,
					"properties": bson.M{
						"mbid":           bson.M{"bsonType": bson.A{"string", "null"}},
						"wikidataId":     bson.M{"bsonType": bson.A{"string", "null"}},
						"wikipediaTitle": bson.M{"bsonType": bson.A{"string", "null"}},
					},
				},
				"synopsis": bson.M{
					"bsonType":             bson.A{"object", "null"},
					"additionalProperties": true,
					"properties": bson.M{
						"text": bson.M{"bsonType": "string"},
						"source": bson.M{
							"bsonType":             "object",
							"additionalProperties": true,
							"properties": bson.M{
								"name":    bson.M{"bsonType": "string"},
								"url":     bson.M{"bsonType": "string"},
								"license": bson.M{"bsonType": "string"},
							},
						},
						"lastCheckedAt": bson.M{"bsonType": bson.A{"date", "null"}},
					},
				},
				"images": bson.M{"bsonType": "array"},
			},
		},
	}
}

func venueValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             bson.A{"name", "location"},
			"additionalProperties": true,
			"properties": bson.M{
				"name":    bson.M{"bsonType": "string"},
				"address": bson.M{"bsonType": bson.A{"object", "null"}},
				"location": bson.M{
					"bsonType": "object",
					"properties": bson.M{
						"type": bson.M{"enum": bson.A{"Point"}},
						"coordinates": bson.M{
							"bsonType": "array",
							"items":    bson.M{"bsonType": "double"},
						},
					},
				},
				"external": bson.M{"bsonType": "array"},
			},
		},
	}
}

func eventValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             bson.A{"title", "artists", "venueId", "startsAt", "source"},
			"additionalProperties": true,
			"properties": bson.M{
				"title":              bson.M{"bsonType": "string"},
				"artists":            bson.M{"bsonType": "array"},
				"venueId":            bson.M{"bsonType": "objectId"},
				"startsAt":           bson.M{"bsonType": "date"},
				"doorsAt":            bson.M{"bsonType": bson.A{"date", "null"}},
				"tz":                 bson.M{"bsonType": bson.A{"string", "null"}},
				"priceMin":           bson.M{"bsonType": bson.A{"double", "int", "null"}},
				"priceMax":           bson.M{"bsonType": bson.A{"double", "int", "null"}},
				"priceAvg":           bson.M{"bsonType": bson.A{"double", "int", "null"}},
				"currency":           bson.M{"bsonType": bson.A{"string", "null"}},
				"priceFromProviders": bson.M{"bsonType": "array"},
				"tourName":           bson.M{"bsonType": bson.A{"string", "null"}},
				"genres":             bson.M{"bsonType": "array"},
				"source": bson.M{
					"bsonType":             "object",
					"required":             bson.A{"provider", "id"},
					"additionalProperties": true,
					"properties": bson.M{
						"provider": bson.M{"bsonType": "string"},
						"id":       bson.M{"bsonType": "string"},
						"url":      bson.M{"bsonType": bson.A{"string", "null"}},
					},
				},
				"setlist":    bson.M{"bsonType": bson.A{"object", "null"}},
				"status":     bson.M{"bsonType": bson.A{"string", "null"}},
				"isAllAges":  bson.M{"bsonType": bson.A{"bool", "null"}},
				"images":     bson.M{"bsonType": "array"},
				"popularity": bson.M{"bsonType": bson.A{"double", "int", "null"}},
			},
		},
	}
}

func listValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             bson.A{"name"},
			"additionalProperties": true,
			"properties": bson.M{
				"name":      bson.M{"bsonType": "string"},
				"isSystem":  bson.M{"bsonType": bson.A{"bool", "null"}},
				"key":       bson.M{"bsonType": bson.A{"string", "null"}},
				"createdAt": bson.M{"bsonType": bson.A{"date", "null"}},
				"updatedAt": bson.M{"bsonType": bson.A{"date", "null"}},
			},
		},
	}
}

func listItemValidator() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             bson.A{"listId", "eventId"},
			"additionalProperties": true,
			"properties": bson.M{
				"listId":     bson.M{"bsonType": "objectId"},
				"eventId":    bson.M{"bsonType": "objectId"},
				"note":       bson.M{"bsonType": bson.A{"string", "null"}},
				"status":     bson.M{"enum": bson.A{models.ListItemStatusSaved, models.ListItemStatusAttended, nil}},
				"attendedAt": bson.M{"bsonType": bson.A{"date", "null"}},
				"addedAt":    bson.M{"bsonType": bson.A{"date", "null"}},
				"order":      bson.M{"bsonType": bson.A{"int", "null"}},
			},
		},
	}
}

// ArtistIndexes: text search over name/normalized, reverse lookup by upstream
// identity, and sparse uniqueness on mbid so null/absent values never collide.
func ArtistIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "normalized", Value: "text"},
				{Key: "name", Value: "text"},
			},
			Options: options.Index().SetName("artist_text_search"),
		},
		{
			Keys: bson.D{
				{Key: "external.provider", Value: 1},
				{Key: "external.id", Value: 1},
			},
			Options: options.Index().SetName("artist_external_ref"),
		},
		{
			Keys: bson.D{{Key: "ids.mbid", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetSparse(true).
				SetName("artist_mbid_unique"),
		},
	}
}

func VenueIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("venue_location_2dsphere"),
		},
	}
}

// EventIndexes: the unique source key is the ingestion idempotency guard; the
// two compound indexes back chronological venue scans and per-artist lookups.
func EventIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "source.provider", Value: 1},
				{Key: "source.id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("event_source_unique"),
		},
		{
			Keys: bson.D{
				{Key: "startsAt", Value: 1},
				{Key: "venueId", Value: 1},
			},
			Options: options.Index().SetName("event_starts_venue"),
		},
		{
			Keys: bson.D{
				{Key: "artists", Value: 1},
				{Key: "startsAt", Value: 1},
			},
			Options: options.Index().SetName("event_artist_starts"),
		},
	}
}

func ListItemIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "listId", Value: 1},
				{Key: "eventId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("list_event_unique"),
		},
		{
			Keys: bson.D{
				{Key: "listId", Value: 1},
				{Key: "addedAt", Value: -1},
			},
			Options: options.Index().SetName("list_added_at"),
		},
	}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	sets := map[string][]mongo.IndexModel{
		models.ArtistColName:   ArtistIndexes(),
		models.VenueColName:    VenueIndexes(),
		models.EventColName:    EventIndexes(),
		models.ListItemColName: ListItemIndexes(),
	}

	for colName, indexes := range sets {
		if _, err := db.Collection(colName).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("error creating indexes for %s: %v", colName, err)
		}
	}
	return nil
}
