package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/upnext/internal/models"
)

// parseObjectID normalizes an incoming id param: trims spaces and surrounding
// quotes which may occur when clients pass values as JSON strings or templates.
func parseObjectID(raw string) (primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "\"'")
	return primitive.ObjectIDFromHex(raw)
}

// statusForError maps the storage error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyMember), errors.Is(err, models.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, models.ErrSchemaViolation), errors.Is(err, models.ErrReferentialGap):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
