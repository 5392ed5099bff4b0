package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func eventInsertFields(event *Event) bson.M {
	return mergeExtra(bson.M{
		"title":              event.Title,
		"artists":            event.Artists,
		"venueId":            event.VenueID,
		"startsAt":           event.StartsAt,
		"doorsAt":            event.DoorsAt,
		"tz":                 event.TZ,
		"priceMin":           event.PriceMin,
		"priceMax":           event.PriceMax,
		"priceAvg":           event.PriceAvg,
		"currency":           event.Currency,
		"priceFromProviders": event.PriceFromProviders,
		"tourName":           event.TourName,
		"genres":             event.Genres,
		"source":             event.Source,
		"setlist":            event.Setlist,
		"status":             event.Status,
		"isAllAges":          event.IsAllAges,
		"images":             event.Images,
		"popularity":         event.Popularity,
	}, event.Extra)
}

// eventMutableFields is the slice of an event a provider may legitimately
// change between crawls. Extra fields ride along: they are provider payload
// too, refreshed on re-ingest.
func eventMutableFields(event *Event) bson.M {
	return mergeExtra(bson.M{
		"priceMin":           event.PriceMin,
		"priceMax":           event.PriceMax,
		"priceAvg":           event.PriceAvg,
		"currency":           event.Currency,
		"priceFromProviders": event.PriceFromProviders,
		"status":             event.Status,
		"popularity":         event.Popularity,
		"images":             event.Images,
		"setlist":            event.Setlist,
	}, event.Extra)
}

func eventSourceFilter(source EventSource) bson.M {
	return bson.M{
		"source.provider": source.Provider,
		"source.id":       source.ID,
	}
}

// InsertEvent writes an event keyed on its (source.provider, source.id)
// idempotency key. If the key is already present the stored document is
// returned unchanged; nothing is overwritten. Re-ingestion that must refresh
// mutable fields goes through ReingestEvent instead.
func (mdb *MongodbRepo) InsertEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	event.Normalize()

	update := bson.M{"$setOnInsert": eventInsertFields(event)}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Event
	if err := col.FindOneAndUpdate(ctx, eventSourceFilter(event.Source), update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error inserting event: %w", MapWriteError(err))
	}

	return &result, nil
}

// ReingestEvent is the production ingestion path: on a source-key match it
// refreshes the fields a provider may legitimately change between crawls
// (prices, status, popularity, images, setlist) and leaves identity fields
// alone. A missing event is inserted whole.
func (mdb *MongodbRepo) ReingestEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	event.Normalize()

	setOnInsert := bson.M{
		"title":     event.Title,
		"artists":   event.Artists,
		"venueId":   event.VenueID,
		"startsAt":  event.StartsAt,
		"doorsAt":   event.DoorsAt,
		"tz":        event.TZ,
		"tourName":  event.TourName,
		"genres":    event.Genres,
		"source":    event.Source,
		"isAllAges": event.IsAllAges,
	}
	set := eventMutableFields(event)
	// An extra key shadowing an identity field would make $set and
	// $setOnInsert conflict; the identity field wins.
	for key := range setOnInsert {
		delete(set, key)
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": setOnInsert,
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Event
	if err := col.FindOneAndUpdate(ctx, eventSourceFilter(event.Source), update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error reingesting event: %w", MapWriteError(err))
	}

	return &result, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var event Event
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding event by ID: %v", err)
	}
	return &event, nil
}

// FindEventsInRange scans events with startsAt in [from, to), chronological,
// optionally narrowed to a single venue or artist. The filter shape rides the
// startsAt+venueId and artists+startsAt compound indexes.
func (mdb *MongodbRepo) FindEventsInRange(ctx context.Context, from, to time.Time, filter TimeRangeFilter, limit int64) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	query := bson.M{
		"startsAt": bson.M{"$gte": from, "$lt": to},
	}
	if filter.VenueID != nil {
		query["venueId"] = *filter.VenueID
	}
	if filter.ArtistID != nil {
		query["artists"] = *filter.ArtistID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "startsAt", Value: 1}}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events in range: %v", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %v", err)
	}
	return events, nil
}

// FindEventsByArtist returns an artist's events relative to a pivot time:
// upcoming events ascending, or past events most recent first.
func (mdb *MongodbRepo) FindEventsByArtist(ctx context.Context, artistID primitive.ObjectID, pivot time.Time, past bool, limit int64) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, EventColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"artists": artistID}
	sort := 1
	if past {
		filter["startsAt"] = bson.M{"$lt": pivot}
		sort = -1
	} else {
		filter["startsAt"] = bson.M{"$gte": pivot}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "startsAt", Value: sort}}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events by artist: %v", err)
	}
	defer cursor.Close(ctx)

	var events []*Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %v", err)
	}
	return events, nil
}
