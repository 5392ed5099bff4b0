package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ListColName     = "lists"
	ListItemColName = "list_items"
)

const (
	ListItemStatusSaved    = "saved"
	ListItemStatusAttended = "attended"
)

// SystemListAttended is the stable key of the built-in Attended list.
const SystemListAttended = "attended"

type List struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	IsSystem  bool               `bson:"isSystem" json:"isSystem"`
	Key       *string            `bson:"key,omitempty" json:"key,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ListItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ListID     primitive.ObjectID `bson:"listId" json:"listId" validate:"required"`
	EventID    primitive.ObjectID `bson:"eventId" json:"eventId" validate:"required"`
	Note       *string            `bson:"note" json:"note"`
	Status     *string            `bson:"status" json:"status"`
	AttendedAt *time.Time         `bson:"attendedAt" json:"attendedAt"`
	AddedAt    *time.Time         `bson:"addedAt" json:"addedAt"`
	Order      *int               `bson:"order" json:"order"`
}

type ListRepo interface {
	UpsertSystemList(ctx context.Context, key, name string) (*List, error)
	CreateList(ctx context.Context, name string) (*List, error)
	GetListByID(ctx context.Context, id primitive.ObjectID) (*List, error)
	ListLists(ctx context.Context) ([]*List, error)
	AddItem(ctx context.Context, item *ListItem) (*ListItem, error)
	MarkAttended(ctx context.Context, listID, eventID primitive.ObjectID) (*ListItem, error)
	RemoveItem(ctx context.Context, listID, eventID primitive.ObjectID) error
	ItemsByList(ctx context.Context, listID primitive.ObjectID, limit int64) ([]*ListItem, error)
}

func (li *ListItem) BeforeCreate() error {
	if li.ID.IsZero() {
		li.ID = primitive.NewObjectID()
	}
	return nil
}
