package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/localstore"
)

// WishlistStore keeps one client's favourite destination ids. The list is
// not tied to the logged-in account; switching sessions keeps it. Adding an
// id that is already present does nothing.
type WishlistStore struct {
	client *localstore.Client
	opts   StoreOptions
}

func (s *WishlistStore) Add(ctx context.Context, destinationID string) error {
	id, err := normalizeWishlistID(destinationID)
	if err != nil {
		return err
	}

	s.client.Lock()
	ids, err := s.load(ctx)
	if err != nil {
		s.client.Unlock()
		return err
	}
	for _, existing := range ids {
		if existing == id {
			s.client.Unlock()
			return nil
		}
	}
	ids = append(ids, id)
	err = s.client.WriteJSON(ctx, localstore.KeyWishlist, ids)
	s.client.Unlock()
	if err != nil {
		return err
	}

	publish(ctx, s.opts, s.client.ID(), domain.EventWishlistChanged, map[string]any{
		"action":         "add",
		"destination_id": id,
		"size":           len(ids),
	})
	return nil
}

// Remove drops every occurrence of the id. Removing an absent id is a no-op.
func (s *WishlistStore) Remove(ctx context.Context, destinationID string) error {
	id, err := normalizeWishlistID(destinationID)
	if err != nil {
		return err
	}

	s.client.Lock()
	ids, err := s.load(ctx)
	if err != nil {
		s.client.Unlock()
		return err
	}
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		s.client.Unlock()
		return nil
	}
	err = s.client.WriteJSON(ctx, localstore.KeyWishlist, kept)
	s.client.Unlock()
	if err != nil {
		return err
	}

	publish(ctx, s.opts, s.client.ID(), domain.EventWishlistChanged, map[string]any{
		"action":         "remove",
		"destination_id": id,
		"size":           len(kept),
	})
	return nil
}

func (s *WishlistStore) Contains(ctx context.Context, destinationID string) (bool, error) {
	id := strings.TrimSpace(destinationID)
	if id == "" {
		return false, nil
	}
	ids, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range ids {
		if existing == id {
			return true, nil
		}
	}
	return false, nil
}

// All returns ids in insertion order.
func (s *WishlistStore) All(ctx context.Context) ([]string, error) {
	return s.load(ctx)
}

// Destinations resolves the wishlist against the catalog in catalog order.
// Ids with no catalog entry are skipped.
func (s *WishlistStore) Destinations(ctx context.Context) ([]domain.Destination, error) {
	ids, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]domain.Destination, 0, len(ids))
	for _, dest := range s.opts.Catalog.All() {
		if _, ok := wanted[dest.IDString()]; ok {
			out = append(out, dest)
		}
	}
	return out, nil
}

func (s *WishlistStore) load(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := s.client.ReadJSON(ctx, localstore.KeyWishlist, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func normalizeWishlistID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: destination_id is required", ErrWishlistValidation)
	}
	return id, nil
}
