package service

import (
	"strings"
	"unicode/utf8"

	"github.com/njprem/TravelWisata_BackEnd/internal/catalog"
	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
)

const maxSearchLength = 100

// DestinationService is the read side of the catalog used by the browsing
// pages.
type DestinationService struct {
	catalog *catalog.Catalog
}

func NewDestinationService(cat *catalog.Catalog) *DestinationService {
	return &DestinationService{catalog: cat}
}

func (s *DestinationService) List(filter domain.DestinationFilter) []domain.Destination {
	return filterDestinations(s.catalog.All(), filter)
}

func (s *DestinationService) Get(id int64) (domain.Destination, error) {
	dest, ok := s.catalog.Get(id)
	if !ok {
		return domain.Destination{}, ErrDestinationNotFound
	}
	return dest, nil
}

func (s *DestinationService) Categories() []domain.Category {
	return s.catalog.Categories()
}

func filterDestinations(items []domain.Destination, filter domain.DestinationFilter) []domain.Destination {
	category := strings.TrimSpace(filter.Category)
	needle := strings.ToLower(normalizeSearch(filter.Search))

	out := make([]domain.Destination, 0, len(items))
	for _, dest := range items {
		if category != "" && dest.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(dest.Name), needle) &&
			!strings.Contains(strings.ToLower(dest.Location), needle) {
			continue
		}
		out = append(out, dest)
	}
	return out
}

func normalizeSearch(raw string) string {
	query := strings.TrimSpace(raw)
	if utf8.RuneCountInString(query) <= maxSearchLength {
		return query
	}
	return strings.TrimSpace(string([]rune(query)[:maxSearchLength]))
}
