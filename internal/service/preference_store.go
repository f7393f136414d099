package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/localstore"
)

// PreferenceStore holds per-client display settings. Only the locale exists today.
type PreferenceStore struct {
	client *localstore.Client
	opts   StoreOptions
}

// Locale returns the saved locale, or the default when none is saved or the
// saved value is not a supported locale.
func (s *PreferenceStore) Locale(ctx context.Context) (domain.Locale, error) {
	var saved domain.Locale
	found, err := s.client.ReadJSON(ctx, localstore.KeyLocale, &saved)
	if err != nil {
		return "", err
	}
	if !found || !saved.Valid() {
		return domain.DefaultLocale, nil
	}
	return saved, nil
}

func (s *PreferenceStore) SetLocale(ctx context.Context, value string) (domain.Locale, error) {
	locale := domain.Locale(strings.TrimSpace(value))
	if !locale.Valid() {
		return "", fmt.Errorf("%w: locale must be %q or %q", ErrPreferenceValidation, domain.LocaleID, domain.LocaleEN)
	}
	s.client.Lock()
	err := s.client.WriteJSON(ctx, localstore.KeyLocale, locale)
	s.client.Unlock()
	if err != nil {
		return "", err
	}
	publish(ctx, s.opts, s.client.ID(), domain.EventLocaleChanged, map[string]any{"locale": string(locale)})
	return locale, nil
}
