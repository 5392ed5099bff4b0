package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func artistSetFields(artist *Artist) bson.M {
	return mergeExtra(bson.M{
		"name":       artist.Name,
		"normalized": artist.Normalized,
		"external":   artist.External,
		"ids":        artist.IDs,
		"synopsis":   artist.Synopsis,
		"images":     artist.Images,
	}, artist.Extra)
}

// UpsertArtist writes an artist keyed on exact name as a single atomic
// operation. An existing artist's fields are overwritten with the incoming
// record; a missing one is inserted. The stored document is returned either
// way, so the caller always gets a stable identity.
func (mdb *MongodbRepo) UpsertArtist(ctx context.Context, artist *Artist) (*Artist, error) {
	col, err := mdb.GetCollection(ctx, ArtistColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	artist.Normalize()

	filter := bson.M{"name": artist.Name}
	update := bson.M{"$set": artistSetFields(artist)}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Artist
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error upserting artist: %w", MapWriteError(err))
	}

	return &result, nil
}

func (mdb *MongodbRepo) GetArtistByID(ctx context.Context, id primitive.ObjectID) (*Artist, error) {
	col, err := mdb.GetCollection(ctx, ArtistColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var artist Artist
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&artist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding artist by ID: %v", err)
	}
	return &artist, nil
}

// FindArtistByExternalRef resolves an artist from an upstream identity, riding
// the external.provider/external.id compound index.
func (mdb *MongodbRepo) FindArtistByExternalRef(ctx context.Context, provider, externalID string) (*Artist, error) {
	col, err := mdb.GetCollection(ctx, ArtistColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{
		"external": bson.M{
			"$elemMatch": bson.M{"provider": provider, "id": externalID},
		},
	}

	var artist Artist
	if err := col.FindOne(ctx, filter).Decode(&artist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding artist by external ref: %v", err)
	}
	return &artist, nil
}

// SearchArtistsByText runs a relevance-ranked $text search over the
// name/normalized text index.
func (mdb *MongodbRepo) SearchArtistsByText(ctx context.Context, query string, limit int64) ([]*Artist, error) {
	col, err := mdb.GetCollection(ctx, ArtistColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error searching artists: %v", err)
	}
	defer cursor.Close(ctx)

	var artists []*Artist
	if err := cursor.All(ctx, &artists); err != nil {
		return nil, fmt.Errorf("error decoding artists: %v", err)
	}
	return artists, nil
}

func (mdb *MongodbRepo) ListArtists(ctx context.Context, limit int64) ([]*Artist, error) {
	col, err := mdb.GetCollection(ctx, ArtistColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing artists: %v", err)
	}
	defer cursor.Close(ctx)

	var artists []*Artist
	if err := cursor.All(ctx, &artists); err != nil {
		return nil, fmt.Errorf("error decoding artists: %v", err)
	}
	return artists, nil
}
