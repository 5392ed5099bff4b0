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

// UpsertSystemList idempotently creates a system-flagged list identified by a
// stable key. An existing list is returned untouched.
func (mdb *MongodbRepo) UpsertSystemList(ctx context.Context, key, name string) (*List, error) {
	col, err := mdb.GetCollection(ctx, ListColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	filter := bson.M{"key": key, "isSystem": true}
	update := bson.M{
		"$setOnInsert": bson.M{
			"name":      name,
			"key":       key,
			"isSystem":  true,
			"createdAt": now,
			"updatedAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result List
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error upserting system list: %w", MapWriteError(err))
	}

	return &result, nil
}

func (mdb *MongodbRepo) CreateList(ctx context.Context, name string) (*List, error) {
	col, err := mdb.GetCollection(ctx, ListColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	now := time.Now()
	list := &List{
		Name:      name,
		IsSystem:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := col.InsertOne(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("error creating list: %w", MapWriteError(err))
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		list.ID = oid
	}
	return list, nil
}

func (mdb *MongodbRepo) GetListByID(ctx context.Context, id primitive.ObjectID) (*List, error) {
	col, err := mdb.GetCollection(ctx, ListColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var list List
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&list); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding list by ID: %v", err)
	}
	return &list, nil
}

// ListLists returns every list, system lists first, then by name.
func (mdb *MongodbRepo) ListLists(ctx context.Context) ([]*List, error) {
	col, err := mdb.GetCollection(ctx, ListColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "isSystem", Value: -1},
		{Key: "name", Value: 1},
	})

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing lists: %v", err)
	}
	defer cursor.Close(ctx)

	var lists []*List
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, fmt.Errorf("error decoding lists: %v", err)
	}
	return lists, nil
}

// AddItem inserts a membership row. The unique (listId, eventId) index is the
// authority on duplicates: a second insert for the same pair comes back as
// ErrAlreadyMember, never a second document.
func (mdb *MongodbRepo) AddItem(ctx context.Context, item *ListItem) (*ListItem, error) {
	col, err := mdb.GetCollection(ctx, ListItemColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if err := item.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare list item: %w", err)
	}

	now := time.Now()
	if item.AddedAt == nil {
		item.AddedAt = &now
	}
	if item.Status == nil {
		saved := ListItemStatusSaved
		item.Status = &saved
	}

	if _, err := col.InsertOne(ctx, item); err != nil {
		mapped := MapWriteError(err)
		if mapped == ErrDuplicateKey {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("error adding list item: %w", mapped)
	}

	return item, nil
}

// MarkAttended transitions a membership to attended and stamps attendedAt.
func (mdb *MongodbRepo) MarkAttended(ctx context.Context, listID, eventID primitive.ObjectID) (*ListItem, error) {
	col, err := mdb.GetCollection(ctx, ListItemColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"listId": listID, "eventId": eventID}
	update := bson.M{
		"$set": bson.M{
			"status":     ListItemStatusAttended,
			"attendedAt": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var result ListItem
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error marking item attended: %v", err)
	}
	return &result, nil
}

// RemoveItem hard-deletes a membership. Removing an absent pair is an error,
// not a silent no-op.
func (mdb *MongodbRepo) RemoveItem(ctx context.Context, listID, eventID primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, ListItemColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"listId": listID, "eventId": eventID})
	if err != nil {
		return fmt.Errorf("error removing list item: %v", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ItemsByList returns a list's items, most recently added first.
func (mdb *MongodbRepo) ItemsByList(ctx context.Context, listID primitive.ObjectID, limit int64) ([]*ListItem, error) {
	col, err := mdb.GetCollection(ctx, ListItemColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "addedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, bson.M{"listId": listID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding list items: %v", err)
	}
	defer cursor.Close(ctx)

	var items []*ListItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("error decoding list items: %v", err)
	}
	return items, nil
}
