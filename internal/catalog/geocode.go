package catalog

import (
	"strings"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
)

type knownPlace struct {
	key     string
	address string
	coords  domain.Coordinates
}

// Ordered so the first substring hit wins, matching the admin location picker.
var knownPlaces = []knownPlace{
	{key: "bali", address: "Bali, Indonesia", coords: domain.Coordinates{Lat: -8.4095, Lng: 115.1889}},
	{key: "jakarta", address: "Jakarta, Indonesia", coords: domain.Coordinates{Lat: -6.2088, Lng: 106.8456}},
	{key: "yogyakarta", address: "Yogyakarta, Indonesia", coords: domain.Coordinates{Lat: -7.7956, Lng: 110.3695}},
	{key: "lombok", address: "Lombok, NTB, Indonesia", coords: domain.Coordinates{Lat: -8.65, Lng: 116.3249}},
	{key: "malang", address: "Malang, Jawa Timur, Indonesia", coords: domain.Coordinates{Lat: -7.9666, Lng: 112.6326}},
	{key: "bandung", address: "Bandung, Jawa Barat, Indonesia", coords: domain.Coordinates{Lat: -6.9175, Lng: 107.6191}},
}

// Geocode is a fixed-table stand-in for a geocoding provider.
func Geocode(query string) domain.GeocodeResult {
	trimmed := strings.TrimSpace(query)
	lower := strings.ToLower(trimmed)
	for _, p := range knownPlaces {
		if lower != "" && strings.Contains(lower, p.key) {
			return domain.GeocodeResult{Query: trimmed, Found: true, Address: p.address, Coordinates: p.coords}
		}
	}
	return domain.GeocodeResult{Query: trimmed, Found: false, Address: trimmed}
}
