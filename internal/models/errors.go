package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Storage error taxonomy. Callers branch on these with errors.Is; everything
// else coming out of a repo is a plain infrastructure failure.
var (
	// ErrSchemaViolation: a write omitted a required field or supplied a wrong
	// primitive type for a validated field.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrDuplicateKey: a unique index rejected the write. Recoverable; the
	// ingest layer retries as an upsert.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound: the targeted document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyMember: the (list, event) pair already exists in list_items.
	ErrAlreadyMember = errors.New("event already in list")

	// ErrReferentialGap: an event write references a venue or artist id that
	// does not resolve. Raised by the ingest service, never by the store.
	ErrReferentialGap = errors.New("referenced document does not exist")
)

// Mongo server code for a $jsonSchema validator rejection.
const codeDocumentValidationFailure = 121

// MapWriteError translates driver write failures into the storage taxonomy so
// services never depend on driver error types. Unknown errors pass through.
func MapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	if hasWriteErrorCode(err, codeDocumentValidationFailure) {
		return ErrSchemaViolation
	}
	return err
}

func hasWriteErrorCode(err error, code int) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == code {
				return true
			}
		}
		if we.WriteConcernError != nil && we.WriteConcernError.Code == code {
			return true
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return int(ce.Code) == code
	}
	return false
}
