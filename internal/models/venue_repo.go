package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func venueInsertFields(venue *Venue) bson.M {
	return mergeExtra(bson.M{
		"name":     venue.Name,
		"address":  venue.Address,
		"location": venue.Location,
		"external": venue.External,
	}, venue.Extra)
}

// InsertVenue creates a venue keyed on exact name if one doesn't exist, as a
// single atomic conditional write. Venue facts are treated as immutable once
// stored: an existing document is returned unchanged.
func (mdb *MongodbRepo) InsertVenue(ctx context.Context, venue *Venue) (*Venue, error) {
	col, err := mdb.GetCollection(ctx, VenueColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	venue.Normalize()

	filter := bson.M{"name": venue.Name}
	update := bson.M{"$setOnInsert": venueInsertFields(venue)}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Venue
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error inserting venue: %w", MapWriteError(err))
	}

	return &result, nil
}

func (mdb *MongodbRepo) GetVenueByID(ctx context.Context, id primitive.ObjectID) (*Venue, error) {
	col, err := mdb.GetCollection(ctx, VenueColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var venue Venue
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&venue); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding venue by ID: %v", err)
	}
	return &venue, nil
}

func (mdb *MongodbRepo) FindVenueByName(ctx context.Context, name string) (*Venue, error) {
	col, err := mdb.GetCollection(ctx, VenueColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var venue Venue
	if err := col.FindOne(ctx, bson.M{"name": name}).Decode(&venue); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding venue by name: %v", err)
	}
	return &venue, nil
}

// FindVenuesNear returns venues within maxDistanceMeters of the given point,
// nearest first, using spherical distance over the 2dsphere index.
func (mdb *MongodbRepo) FindVenuesNear(ctx context.Context, lng, lat, maxDistanceMeters float64, limit int64) ([]*Venue, error) {
	col, err := mdb.GetCollection(ctx, VenueColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	point := NewGeoPoint(lng, lat)
	if err := point.Validate(); err != nil {
		return nil, err
	}

	filter := bson.M{
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry":    point,
				"$maxDistance": maxDistanceMeters,
			},
		},
	}

	cursor, err := col.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("error finding venues near point: %v", err)
	}
	defer cursor.Close(ctx)

	var venues []*Venue
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, fmt.Errorf("error decoding venues: %v", err)
	}
	return venues, nil
}
