package models

import (
	"context"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const VenueColName = "venues"

// GeoPoint is a GeoJSON Point, coordinates ordered [longitude, latitude] as
// the 2dsphere index expects.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

func (p GeoPoint) Validate() error {
	if p.Type != "Point" {
		return fmt.Errorf("location type must be 'Point', got %q", p.Type)
	}
	if len(p.Coordinates) != 2 {
		return fmt.Errorf("location must have exactly 2 coordinates, got %d", len(p.Coordinates))
	}
	lng, lat := p.Coordinates[0], p.Coordinates[1]
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return fmt.Errorf("location coordinates must be finite")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180,180]", lng)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90,90]", lat)
	}
	return nil
}

type Address struct {
	Line1   string `bson:"line1,omitempty" json:"line1,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
	Postal  string `bson:"postal,omitempty" json:"postal,omitempty"`
}

type Venue struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	Address  *Address           `bson:"address,omitempty" json:"address,omitempty"`
	Location GeoPoint           `bson:"location" json:"location"`
	External []ExternalRef      `bson:"external" json:"external"`

	Extra map[string]interface{} `bson:",inline" json:"extra,omitempty"`
}

type VenueRepo interface {
	InsertVenue(ctx context.Context, venue *Venue) (*Venue, error)
	GetVenueByID(ctx context.Context, id primitive.ObjectID) (*Venue, error)
	FindVenueByName(ctx context.Context, name string) (*Venue, error)
	FindVenuesNear(ctx context.Context, lng, lat, maxDistanceMeters float64, limit int64) ([]*Venue, error)
}

func (v *Venue) Normalize() {
	if v.External == nil {
		v.External = []ExternalRef{}
	}
}
