package service

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
)

var (
	weatherConditions = []string{"Cerah", "Berawan", "Hujan Ringan", "Sunny", "Cloudy"}
	weatherIcons      = []string{"☀️", "⛅", "🌤️", "🌧️", "☁️"}
)

// WeatherService stands in for a forecast provider and returns randomized
// readings after an artificial delay.
type WeatherService struct {
	delay time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewWeatherService(delay time.Duration, seed uint64) *WeatherService {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &WeatherService{delay: delay, rnd: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (s *WeatherService) Lookup(ctx context.Context, location string) (domain.Weather, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.Weather{}, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Weather{
		Location:    strings.TrimSpace(location),
		Temperature: 25 + s.rnd.IntN(10),
		Condition:   weatherConditions[s.rnd.IntN(len(weatherConditions))],
		Humidity:    60 + s.rnd.IntN(30),
		WindSpeed:   5 + s.rnd.IntN(15),
		Icon:        weatherIcons[s.rnd.IntN(len(weatherIcons))],
	}, nil
}
