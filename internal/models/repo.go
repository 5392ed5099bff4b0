package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

// mergeExtra folds unvalidated upstream fields into an update document so the
// open part of the schema is persisted alongside the typed fields. A key
// already claimed by a typed field, or _id, is skipped: the typed value is
// authoritative.
func mergeExtra(doc bson.M, extra map[string]interface{}) bson.M {
	for key, value := range extra {
		if key == "_id" {
			continue
		}
		if _, taken := doc[key]; taken {
			continue
		}
		doc[key] = value
	}
	return doc
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	col := mdb.mongodbClient.Database(mdb.dbName).Collection(colName)
	return col, nil
}
