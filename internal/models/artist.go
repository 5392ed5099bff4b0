package models

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ArtistColName = "artists"

// ExternalRef ties an entity back to the upstream system it was ingested from.
type ExternalRef struct {
	Provider string `bson:"provider" json:"provider" validate:"required"`
	ID       string `bson:"id" json:"id" validate:"required"`
}

// ArtistIDs holds optional identifiers from public knowledge bases. Absent
// identifiers must be omitted from the document, not written as nulls: the
// sparse unique mbid index indexes an explicit null, so two artists without an
// mbid would collide on it.
type ArtistIDs struct {
	MBID           *string `bson:"mbid,omitempty" json:"mbid"`
	WikidataID     *string `bson:"wikidataId,omitempty" json:"wikidataId"`
	WikipediaTitle *string `bson:"wikipediaTitle,omitempty" json:"wikipediaTitle"`
}

type SynopsisSource struct {
	Name    string `bson:"name" json:"name"`
	URL     string `bson:"url" json:"url"`
	License string `bson:"license" json:"license"`
}

type Synopsis struct {
	Text          string         `bson:"text" json:"text"`
	Source        SynopsisSource `bson:"source" json:"source"`
	LastCheckedAt *time.Time     `bson:"lastCheckedAt" json:"lastCheckedAt"`
}

type Artist struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	Normalized string             `bson:"normalized" json:"normalized"`
	External   []ExternalRef      `bson:"external" json:"external"`
	IDs        ArtistIDs          `bson:"ids" json:"ids"`
	Synopsis   *Synopsis          `bson:"synopsis" json:"synopsis,omitempty"`
	Images     []string           `bson:"images" json:"images"`

	// Extra carries unvalidated upstream fields so provider payloads can grow
	// without store migrations.
	Extra map[string]interface{} `bson:",inline" json:"extra,omitempty"`
}

type ArtistRepo interface {
	UpsertArtist(ctx context.Context, artist *Artist) (*Artist, error)
	GetArtistByID(ctx context.Context, id primitive.ObjectID) (*Artist, error)
	FindArtistByExternalRef(ctx context.Context, provider, externalID string) (*Artist, error)
	SearchArtistsByText(ctx context.Context, query string, limit int64) ([]*Artist, error)
	ListArtists(ctx context.Context, limit int64) ([]*Artist, error)
}

// Normalize fills derived fields and defaults empty sequences so documents
// always carry the same shape.
func (a *Artist) Normalize() {
	a.Normalized = strings.ToLower(a.Name)
	if a.External == nil {
		a.External = []ExternalRef{}
	}
	if a.Images == nil {
		a.Images = []string{}
	}
}
