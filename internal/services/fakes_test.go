package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/joshua-takyi/upnext/internal/models"
)

// In-memory repo doubles implementing the store contracts: upserts keyed the
// same way, duplicates detected the same way the unique indexes would.

type fakeArtistRepo struct {
	byName map[string]*models.Artist
}

func newFakeArtistRepo() *fakeArtistRepo {
	return &fakeArtistRepo{byName: make(map[string]*models.Artist)}
}

func (f *fakeArtistRepo) UpsertArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	artist.Normalize()

	// Sparse uniqueness on mbid: only non-nil values collide.
	if artist.IDs.MBID != nil {
		for name, existing := range f.byName {
			if name != artist.Name && existing.IDs.MBID != nil && *existing.IDs.MBID == *artist.IDs.MBID {
				return nil, models.ErrDuplicateKey
			}
		}
	}

	stored := *artist
	if existing, ok := f.byName[artist.Name]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = primitive.NewObjectID()
	}
	f.byName[artist.Name] = &stored
	copy := stored
	return &copy, nil
}

func (f *fakeArtistRepo) GetArtistByID(ctx context.Context, id primitive.ObjectID) (*models.Artist, error) {
	for _, artist := range f.byName {
		if artist.ID == id {
			copy := *artist
			return &copy, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeArtistRepo) FindArtistByExternalRef(ctx context.Context, provider, externalID string) (*models.Artist, error) {
	for _, artist := range f.byName {
		for _, ref := range artist.External {
			if ref.Provider == provider && ref.ID == externalID {
				copy := *artist
				return &copy, nil
			}
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeArtistRepo) SearchArtistsByText(ctx context.Context, query string, limit int64) ([]*models.Artist, error) {
	needle := strings.ToLower(query)
	var matches []*models.Artist
	for _, artist := range f.byName {
		if strings.Contains(artist.Normalized, needle) {
			copy := *artist
			matches = append(matches, &copy)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if int64(len(matches)) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (f *fakeArtistRepo) ListArtists(ctx context.Context, limit int64) ([]*models.Artist, error) {
	var all []*models.Artist
	for _, artist := range f.byName {
		copy := *artist
		all = append(all, &copy)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

type fakeVenueRepo struct {
	byName map[string]*models.Venue
}

func newFakeVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{byName: make(map[string]*models.Venue)}
}

func (f *fakeVenueRepo) InsertVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if existing, ok := f.byName[venue.Name]; ok {
		copy := *existing
		return &copy, nil
	}
	venue.Normalize()
	stored := *venue
	stored.ID = primitive.NewObjectID()
	f.byName[venue.Name] = &stored
	copy := stored
	return &copy, nil
}

func (f *fakeVenueRepo) GetVenueByID(ctx context.Context, id primitive.ObjectID) (*models.Venue, error) {
	for _, venue := range f.byName {
		if venue.ID == id {
			copy := *venue
			return &copy, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeVenueRepo) FindVenueByName(ctx context.Context, name string) (*models.Venue, error) {
	if venue, ok := f.byName[name]; ok {
		copy := *venue
		return &copy, nil
	}
	return nil, models.ErrNotFound
}

const earthRadiusMeters = 6371000

func sphericalDistanceMeters(lng1, lat1, lng2, lat2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func (f *fakeVenueRepo) FindVenuesNear(ctx context.Context, lng, lat, maxDistanceMeters float64, limit int64) ([]*models.Venue, error) {
	point := models.NewGeoPoint(lng, lat)
	if err := point.Validate(); err != nil {
		return nil, err
	}

	type scored struct {
		venue *models.Venue
		dist  float64
	}
	var hits []scored
	for _, venue := range f.byName {
		d := sphericalDistanceMeters(lng, lat, venue.Location.Coordinates[0], venue.Location.Coordinates[1])
		if d <= maxDistanceMeters {
			copy := *venue
			hits = append(hits, scored{venue: &copy, dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	var out []*models.Venue
	for _, h := range hits {
		out = append(out, h.venue)
		if int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

type fakeEventRepo struct {
	bySource map[string]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{bySource: make(map[string]*models.Event)}
}

func sourceKey(s models.EventSource) string {
	return s.Provider + "\x00" + s.ID
}

func (f *fakeEventRepo) InsertEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	key := sourceKey(event.Source)
	if existing, ok := f.bySource[key]; ok {
		copy := *existing
		return &copy, nil
	}
	event.Normalize()
	stored := *event
	stored.ID = primitive.NewObjectID()
	f.bySource[key] = &stored
	copy := stored
	return &copy, nil
}

func (f *fakeEventRepo) ReingestEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	key := sourceKey(event.Source)
	existing, ok := f.bySource[key]
	if !ok {
		return f.InsertEvent(ctx, event)
	}
	existing.PriceMin = event.PriceMin
	existing.PriceMax = event.PriceMax
	existing.PriceAvg = event.PriceAvg
	existing.Currency = event.Currency
	existing.PriceFromProviders = event.PriceFromProviders
	existing.Status = event.Status
	existing.Popularity = event.Popularity
	existing.Images = event.Images
	existing.Setlist = event.Setlist
	existing.Extra = event.Extra
	copy := *existing
	return &copy, nil
}

func (f *fakeEventRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	for _, event := range f.bySource {
		if event.ID == id {
			copy := *event
			return &copy, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeEventRepo) FindEventsInRange(ctx context.Context, from, to time.Time, filter models.TimeRangeFilter, limit int64) ([]*models.Event, error) {
	var out []*models.Event
	for _, event := range f.bySource {
		if event.StartsAt.Before(from) || !event.StartsAt.Before(to) {
			continue
		}
		if filter.VenueID != nil && event.VenueID != *filter.VenueID {
			continue
		}
		if filter.ArtistID != nil && !containsID(event.Artists, *filter.ArtistID) {
			continue
		}
		copy := *event
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEventRepo) FindEventsByArtist(ctx context.Context, artistID primitive.ObjectID, pivot time.Time, past bool, limit int64) ([]*models.Event, error) {
	var out []*models.Event
	for _, event := range f.bySource {
		if !containsID(event.Artists, artistID) {
			continue
		}
		if past && !event.StartsAt.Before(pivot) {
			continue
		}
		if !past && event.StartsAt.Before(pivot) {
			continue
		}
		copy := *event
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool {
		if past {
			return out[i].StartsAt.After(out[j].StartsAt)
		}
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type fakeListRepo struct {
	lists map[primitive.ObjectID]*models.List
	items map[string]*models.ListItem
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{
		lists: make(map[primitive.ObjectID]*models.List),
		items: make(map[string]*models.ListItem),
	}
}

func itemKey(listID, eventID primitive.ObjectID) string {
	return listID.Hex() + ":" + eventID.Hex()
}

func (f *fakeListRepo) UpsertSystemList(ctx context.Context, key, name string) (*models.List, error) {
	for _, list := range f.lists {
		if list.IsSystem && list.Key != nil && *list.Key == key {
			copy := *list
			return &copy, nil
		}
	}
	now := time.Now()
	list := &models.List{
		ID:        primitive.NewObjectID(),
		Name:      name,
		IsSystem:  true,
		Key:       &key,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.lists[list.ID] = list
	copy := *list
	return &copy, nil
}

func (f *fakeListRepo) CreateList(ctx context.Context, name string) (*models.List, error) {
	now := time.Now()
	list := &models.List{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.lists[list.ID] = list
	copy := *list
	return &copy, nil
}

func (f *fakeListRepo) GetListByID(ctx context.Context, id primitive.ObjectID) (*models.List, error) {
	if list, ok := f.lists[id]; ok {
		copy := *list
		return &copy, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeListRepo) ListLists(ctx context.Context) ([]*models.List, error) {
	var out []*models.List
	for _, list := range f.lists {
		copy := *list
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsSystem != out[j].IsSystem {
			return out[i].IsSystem
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeListRepo) AddItem(ctx context.Context, item *models.ListItem) (*models.ListItem, error) {
	key := itemKey(item.ListID, item.EventID)
	if _, ok := f.items[key]; ok {
		return nil, models.ErrAlreadyMember
	}
	if err := item.BeforeCreate(); err != nil {
		return nil, err
	}
	now := time.Now()
	if item.AddedAt == nil {
		item.AddedAt = &now
	}
	if item.Status == nil {
		saved := models.ListItemStatusSaved
		item.Status = &saved
	}
	stored := *item
	f.items[key] = &stored
	copy := stored
	return &copy, nil
}

func (f *fakeListRepo) MarkAttended(ctx context.Context, listID, eventID primitive.ObjectID) (*models.ListItem, error) {
	item, ok := f.items[itemKey(listID, eventID)]
	if !ok {
		return nil, models.ErrNotFound
	}
	attended := models.ListItemStatusAttended
	now := time.Now()
	item.Status = &attended
	item.AttendedAt = &now
	copy := *item
	return &copy, nil
}

func (f *fakeListRepo) RemoveItem(ctx context.Context, listID, eventID primitive.ObjectID) error {
	key := itemKey(listID, eventID)
	if _, ok := f.items[key]; !ok {
		return models.ErrNotFound
	}
	delete(f.items, key)
	return nil
}

func (f *fakeListRepo) ItemsByList(ctx context.Context, listID primitive.ObjectID, limit int64) ([]*models.ListItem, error) {
	var out []*models.ListItem
	for _, item := range f.items {
		if item.ListID != listID {
			continue
		}
		copy := *item
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AddedAt.After(*out[j].AddedAt)
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
