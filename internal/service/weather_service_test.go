package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWeatherService_LookupRanges(t *testing.T) {
	svc := NewWeatherService(0, 42)
	conditions := map[string]bool{}
	for _, c := range weatherConditions {
		conditions[c] = true
	}

	for i := 0; i < 200; i++ {
		w, err := svc.Lookup(context.Background(), " Bali ")
		if err != nil {
			t.Fatalf("Lookup returned error: %v", err)
		}
		if w.Location != "Bali" {
			t.Fatalf("unexpected location %q", w.Location)
		}
		if w.Temperature < 25 || w.Temperature > 34 {
			t.Fatalf("temperature out of range: %d", w.Temperature)
		}
		if w.Humidity < 60 || w.Humidity > 89 {
			t.Fatalf("humidity out of range: %d", w.Humidity)
		}
		if w.WindSpeed < 5 || w.WindSpeed > 19 {
			t.Fatalf("wind speed out of range: %d", w.WindSpeed)
		}
		if !conditions[w.Condition] || w.Icon == "" {
			t.Fatalf("unexpected condition %+v", w)
		}
	}
}

func TestWeatherService_HonorsContext(t *testing.T) {
	svc := NewWeatherService(time.Hour, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Lookup(ctx, "Bali"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
