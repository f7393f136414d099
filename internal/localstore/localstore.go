// Package localstore emulates browser local storage on top of a shared
// key-value backend. Every client profile owns a private key namespace and
// values are JSON documents that are always rewritten in full.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/njprem/TravelWisata_BackEnd/internal/repository/ports"
)

// Keys used by the stores, unchanged from the web client so exported data stays readable.
const (
	KeyAccounts = "travelwisata_users"
	KeySession  = "travelwisata_current_user"
	KeyWishlist = "travelwisata_wishlist"
	KeyLocale   = "travelwisata_locale"

	reviewsKeyPrefix = "reviews_"
)

func ReviewsKey(destinationID string) string {
	return reviewsKeyPrefix + destinationID
}

type Store struct {
	kv  ports.KeyValueStore
	log logrus.FieldLogger

	mu    sync.Mutex
	locks map[string]*clientLock
}

// clientLock is dropped from Store.locks once no caller holds or waits on
// it, so the map only ever holds ids with a read-modify-write in flight.
type clientLock struct {
	mu   sync.Mutex
	refs int
}

func New(kv ports.KeyValueStore, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{kv: kv, log: log, locks: make(map[string]*clientLock)}
}

// Client returns the namespace for one client profile. Clients for the same
// id share one mutex while it is in use, so read-modify-write sequences
// within this process are serialised.
func (s *Store) Client(clientID string) *Client {
	return &Client{store: s, id: clientID}
}

func (s *Store) lock(clientID string) {
	s.mu.Lock()
	l, ok := s.locks[clientID]
	if !ok {
		l = &clientLock{}
		s.locks[clientID] = l
	}
	l.refs++
	s.mu.Unlock()
	l.mu.Lock()
}

func (s *Store) unlock(clientID string) {
	s.mu.Lock()
	l := s.locks[clientID]
	l.refs--
	if l.refs == 0 {
		delete(s.locks, clientID)
	}
	s.mu.Unlock()
	l.mu.Unlock()
}

func (s *Store) heldLocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

type Client struct {
	store *Store
	id    string
}

func (c *Client) ID() string { return c.id }

func (c *Client) Lock()   { c.store.lock(c.id) }
func (c *Client) Unlock() { c.store.unlock(c.id) }

func (c *Client) storageKey(key string) string {
	return "client:" + c.id + ":" + key
}

// ReadJSON decodes the value at key into dst. It reports false when the key
// is absent or holds malformed JSON; the malformed value is left in place
// and replaced by the next write.
func (c *Client) ReadJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.store.kv.Get(ctx, c.storageKey(key))
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	return c.decode(key, raw, dst), nil
}

func (c *Client) WriteJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.store.kv.Set(ctx, c.storageKey(key), raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (c *Client) Remove(ctx context.Context, key string) error {
	if err := c.store.kv.Delete(ctx, c.storageKey(key)); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (c *Client) decode(key string, raw []byte, dst any) bool {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.store.log.WithFields(logrus.Fields{
			"client_id": c.id,
			"key":       key,
		}).WithError(err).Warn("discarding malformed local storage value")
		return false
	}
	return true
}

// ReadMany loads several keys of the same shape in one backend round trip.
// Absent and malformed keys are omitted from the result.
func ReadMany[T any](ctx context.Context, c *Client, keys []string) (map[string]T, error) {
	storageKeys := make([]string, len(keys))
	byStorageKey := make(map[string]string, len(keys))
	for i, key := range keys {
		storageKeys[i] = c.storageKey(key)
		byStorageKey[storageKeys[i]] = key
	}
	raw, err := c.store.kv.GetMany(ctx, storageKeys)
	if err != nil {
		return nil, fmt.Errorf("read many: %w", err)
	}
	out := make(map[string]T, len(raw))
	for storageKey, value := range raw {
		key := byStorageKey[storageKey]
		var decoded T
		if c.decode(key, value, &decoded) {
			out[key] = decoded
		}
	}
	return out, nil
}
