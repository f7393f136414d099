package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/njprem/TravelWisata_BackEnd/internal/catalog"
	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

// AdminEditor is an in-memory CRUD layer over a private copy of the
// catalog. Nothing it does is persisted.
type AdminEditor struct {
	mu         sync.RWMutex
	items      []domain.Destination
	categories map[string]struct{}
	ids        *util.TimestampIDs
}

func NewAdminEditor(cat *catalog.Catalog, ids *util.TimestampIDs) *AdminEditor {
	if ids == nil {
		ids = util.NewTimestampIDs(nil)
	}
	categories := make(map[string]struct{})
	for _, c := range cat.Categories() {
		categories[c.Name] = struct{}{}
	}
	return &AdminEditor{items: cat.All(), categories: categories, ids: ids}
}

func (e *AdminEditor) ListAll() []domain.Destination {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneDestinations(e.items)
}

// Search matches name or location, case-insensitive.
func (e *AdminEditor) Search(query string) []domain.Destination {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return filterDestinations(cloneDestinations(e.items), domain.DestinationFilter{Search: query})
}

func (e *AdminEditor) Get(id int64) (domain.Destination, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	idx := e.indexOf(id)
	if idx < 0 {
		return domain.Destination{}, ErrDestinationNotFound
	}
	return e.items[idx].Clone(), nil
}

func (e *AdminEditor) Create(form domain.DestinationForm) (domain.Destination, error) {
	form = form.Normalized()
	if err := validateDestinationForm(form, e.categories); err != nil {
		return domain.Destination{}, err
	}
	dest := domain.Destination{ID: e.ids.NextInt()}
	applyForm(&dest, form)

	e.mu.Lock()
	e.items = append(e.items, dest)
	e.mu.Unlock()
	return dest.Clone(), nil
}

// Update keeps the record's id, rating and review count.
func (e *AdminEditor) Update(id int64, form domain.DestinationForm) (domain.Destination, error) {
	form = form.Normalized()
	if err := validateDestinationForm(form, e.categories); err != nil {
		return domain.Destination{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.indexOf(id)
	if idx < 0 {
		return domain.Destination{}, ErrDestinationNotFound
	}
	applyForm(&e.items[idx], form)
	return e.items[idx].Clone(), nil
}

func (e *AdminEditor) Delete(id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.indexOf(id)
	if idx < 0 {
		return ErrDestinationNotFound
	}
	e.items = append(e.items[:idx], e.items[idx+1:]...)
	return nil
}

func (e *AdminEditor) Stats() domain.DestinationStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	stats := domain.DestinationStats{TotalDestinations: len(e.items)}
	if len(e.items) == 0 {
		return stats
	}
	var ratingSum float64
	for _, d := range e.items {
		stats.TotalReviews += d.Reviews
		ratingSum += d.Rating
	}
	stats.AverageRating = roundTenth(ratingSum / float64(len(e.items)))
	return stats
}

func (e *AdminEditor) indexOf(id int64) int {
	for i := range e.items {
		if e.items[i].ID == id {
			return i
		}
	}
	return -1
}

func applyForm(dest *domain.Destination, form domain.DestinationForm) {
	dest.Name = form.Basic.Name
	dest.Location = form.Basic.Location
	dest.Category = form.Basic.Category
	dest.Price = form.Basic.Price
	dest.Description = form.Basic.Description
	dest.LongDescription = form.Basic.LongDescription
	dest.Gallery = append([]string(nil), form.Images.Gallery...)
	dest.Image = ""
	if len(dest.Gallery) > 0 {
		dest.Image = dest.Gallery[0]
	}
	if form.Hours != nil {
		dest.Hours = *form.Hours
	} else {
		dest.Hours = domain.DefaultOperatingHours()
	}
	dest.Facilities = append([]string(nil), form.Facilities...)
	dest.Address = form.Location.Address
	dest.Coordinates = form.Location.Coordinates
}

func validateDestinationForm(form domain.DestinationForm, categories map[string]struct{}) error {
	var problems []string
	required := []struct {
		label string
		value string
	}{
		{"name", form.Basic.Name},
		{"location", form.Basic.Location},
		{"category", form.Basic.Category},
		{"price", form.Basic.Price},
	}
	for _, field := range required {
		if field.value == "" {
			problems = append(problems, field.label+" is required")
		}
	}
	if c := form.Basic.Category; c != "" {
		if _, ok := categories[c]; !ok {
			problems = append(problems, fmt.Sprintf("category %q is not one of the catalog categories", c))
		}
	}

	if form.Hours != nil {
		days := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
		for i, day := range form.Hours.Days() {
			if day.IsClosed {
				continue
			}
			if !domain.ValidClock(day.Open) || !domain.ValidClock(day.Close) {
				problems = append(problems, fmt.Sprintf("hours.%s must be in HH:MM (24h) format", days[i]))
				continue
			}
			if day.Close < day.Open {
				problems = append(problems, fmt.Sprintf("hours.%s close must not be before open", days[i]))
			}
		}
	}

	if lat := form.Location.Coordinates.Lat; lat < -90 || lat > 90 {
		problems = append(problems, "latitude must be between -90 and 90")
	}
	if lng := form.Location.Coordinates.Lng; lng < -180 || lng > 180 {
		problems = append(problems, "longitude must be between -180 and 180")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrDestinationValidation, strings.Join(problems, "; "))
	}
	return nil
}

func cloneDestinations(items []domain.Destination) []domain.Destination {
	out := make([]domain.Destination, len(items))
	for i, d := range items {
		out[i] = d.Clone()
	}
	return out
}

// adminEditorIdleTTL bounds how long an untouched editor is kept. Anyone can
// mint client ids, so editors are evicted instead of living for the process.
const adminEditorIdleTTL = 12 * time.Hour

// AdminEditors keeps one editor per client profile until it has been idle
// for adminEditorIdleTTL; the next request after that starts from the catalog.
type AdminEditors struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	ids     *util.TimestampIDs
	idleTTL time.Duration
	now     func() time.Time
	editors map[string]*editorEntry
}

type editorEntry struct {
	editor   *AdminEditor
	lastUsed time.Time
}

func NewAdminEditors(cat *catalog.Catalog, ids *util.TimestampIDs) *AdminEditors {
	return &AdminEditors{
		catalog: cat,
		ids:     ids,
		idleTTL: adminEditorIdleTTL,
		now:     time.Now,
		editors: make(map[string]*editorEntry),
	}
}

func (r *AdminEditors) For(clientID string) *AdminEditor {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.evictIdle(now)
	entry, ok := r.editors[clientID]
	if !ok {
		entry = &editorEntry{editor: NewAdminEditor(r.catalog, r.ids)}
		r.editors[clientID] = entry
	}
	entry.lastUsed = now
	return entry.editor
}

func (r *AdminEditors) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.editors)
}

func (r *AdminEditors) evictIdle(now time.Time) {
	for id, entry := range r.editors {
		if now.Sub(entry.lastUsed) > r.idleTTL {
			delete(r.editors, id)
		}
	}
}
