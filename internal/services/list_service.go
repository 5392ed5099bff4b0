package services

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/upnext/internal/models"
)

// ListService manages curated collections of events: system lists like
// Attended, user lists, and their memberships.
type ListService struct {
	lists models.ListRepo
}

func NewListService(lists models.ListRepo) *ListService {
	return &ListService{
		lists: lists,
	}
}

// UpsertSystemList idempotently creates a built-in list by stable key.
func (ls *ListService) UpsertSystemList(ctx context.Context, key, name string) (*models.List, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("list key cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("list name cannot be empty")
	}
	return ls.lists.UpsertSystemList(ctx, key, name)
}

func (ls *ListService) CreateList(ctx context.Context, name string) (*models.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("list name cannot be empty")
	}
	return ls.lists.CreateList(ctx, name)
}

func (ls *ListService) GetList(ctx context.Context, id primitive.ObjectID) (*models.List, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("invalid list ID")
	}
	return ls.lists.GetListByID(ctx, id)
}

func (ls *ListService) Lists(ctx context.Context) ([]*models.List, error) {
	return ls.lists.ListLists(ctx)
}

// AddItem saves an event into a list. Adding the same event twice fails with
// ErrAlreadyMember; the first membership stands.
func (ls *ListService) AddItem(ctx context.Context, listID, eventID primitive.ObjectID, note *string) (*models.ListItem, error) {
	if listID.IsZero() || eventID.IsZero() {
		return nil, fmt.Errorf("invalid list ID or event ID")
	}
	item := &models.ListItem{
		ListID:  listID,
		EventID: eventID,
		Note:    note,
	}
	return ls.lists.AddItem(ctx, item)
}

// MarkAttended transitions a saved membership to attended.
func (ls *ListService) MarkAttended(ctx context.Context, listID, eventID primitive.ObjectID) (*models.ListItem, error) {
	if listID.IsZero() || eventID.IsZero() {
		return nil, fmt.Errorf("invalid list ID or event ID")
	}
	return ls.lists.MarkAttended(ctx, listID, eventID)
}

// RemoveItem revokes a membership. Removing an absent membership returns
// ErrNotFound rather than succeeding silently.
func (ls *ListService) RemoveItem(ctx context.Context, listID, eventID primitive.ObjectID) error {
	if listID.IsZero() || eventID.IsZero() {
		return fmt.Errorf("invalid list ID or event ID")
	}
	return ls.lists.RemoveItem(ctx, listID, eventID)
}

// Items returns a list's memberships, most recently added first.
func (ls *ListService) Items(ctx context.Context, listID primitive.ObjectID, limit int64) ([]*models.ListItem, error) {
	if listID.IsZero() {
		return nil, fmt.Errorf("invalid list ID")
	}
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	return ls.lists.ItemsByList(ctx, listID, limit)
}
