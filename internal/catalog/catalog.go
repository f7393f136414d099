// Package catalog holds the read-only destination seed shipped with the
// binary. Every accessor returns copies.
package catalog

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ghodss/yaml"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
)

//go:embed destinations.yaml
var seedYAML []byte

type seed struct {
	Categories   []domain.Category    `json:"categories"`
	Destinations []domain.Destination `json:"destinations"`
}

type Catalog struct {
	categories   []domain.Category
	destinations []domain.Destination
	byID         map[int64]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded sample catalog, parsed once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(seedYAML)
	})
	return defaultCatalog, defaultErr
}

// MustDefault panics when the embedded seed cannot be parsed.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var s seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(s.Destinations, s.Categories)
}

func New(destinations []domain.Destination, categories []domain.Category) (*Catalog, error) {
	c := &Catalog{
		categories:   append([]domain.Category(nil), categories...),
		destinations: make([]domain.Destination, 0, len(destinations)),
		byID:         make(map[int64]int, len(destinations)),
	}
	for _, d := range destinations {
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate destination id %d", d.ID)
		}
		if d.Image == "" && len(d.Gallery) > 0 {
			d.Image = d.Gallery[0]
		}
		c.byID[d.ID] = len(c.destinations)
		c.destinations = append(c.destinations, d.Clone())
	}
	return c, nil
}

func (c *Catalog) All() []domain.Destination {
	out := make([]domain.Destination, len(c.destinations))
	for i, d := range c.destinations {
		out[i] = d.Clone()
	}
	return out
}

func (c *Catalog) Categories() []domain.Category {
	return append([]domain.Category(nil), c.categories...)
}

func (c *Catalog) Get(id int64) (domain.Destination, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Destination{}, false
	}
	return c.destinations[idx].Clone(), true
}

// Lookup resolves the string id form used by wishlist and review keys.
func (c *Catalog) Lookup(id string) (domain.Destination, bool) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return domain.Destination{}, false
	}
	return c.Get(parsed)
}

func (c *Catalog) Len() int {
	return len(c.destinations)
}
