package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/njprem/TravelWisata_BackEnd/internal/catalog"
	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/events"
	"github.com/njprem/TravelWisata_BackEnd/internal/localstore"
	"github.com/njprem/TravelWisata_BackEnd/internal/repository/ports"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

// StoreOptions are the collaborators shared by every per-client store.
type StoreOptions struct {
	Catalog     *catalog.Catalog
	Events      ports.EventPublisher
	Logger      logrus.FieldLogger
	IDs         *util.TimestampIDs
	AdminEmails []string
	Now         func() time.Time
}

func (o StoreOptions) withDefaults() StoreOptions {
	if o.Events == nil {
		o.Events = events.Noop{}
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.IDs == nil {
		o.IDs = util.NewTimestampIDs(o.Now)
	}
	if o.Catalog == nil {
		o.Catalog = catalog.MustDefault()
	}
	return o
}

// Stores builds the session, wishlist, review and preference stores of one client
// profile. Stores for the same client share its lock and id generator.
type Stores struct {
	local  *localstore.Store
	opts   StoreOptions
	admins map[string]struct{}
}

func NewStores(local *localstore.Store, opts StoreOptions) *Stores {
	opts = opts.withDefaults()
	admins := make(map[string]struct{}, len(opts.AdminEmails))
	for _, email := range opts.AdminEmails {
		if email = strings.TrimSpace(email); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &Stores{local: local, opts: opts, admins: admins}
}

func (s *Stores) Catalog() *catalog.Catalog { return s.opts.Catalog }

func (s *Stores) Session(clientID string) *SessionStore {
	return &SessionStore{client: s.local.Client(clientID), opts: s.opts, admins: s.admins}
}

func (s *Stores) Wishlist(clientID string) *WishlistStore {
	return &WishlistStore{client: s.local.Client(clientID), opts: s.opts}
}

func (s *Stores) Reviews(clientID string) *ReviewStore {
	return &ReviewStore{client: s.local.Client(clientID), opts: s.opts}
}

func (s *Stores) Preferences(clientID string) *PreferenceStore {
	return &PreferenceStore{client: s.local.Client(clientID), opts: s.opts}
}

// publish never fails the caller; the mutation is already persisted.
func publish(ctx context.Context, opts StoreOptions, clientID string, eventType domain.EventType, data map[string]any) {
	event := domain.Event{Type: eventType, ClientID: clientID, At: opts.Now().UTC(), Data: data}
	if err := opts.Events.Publish(ctx, event); err != nil {
		opts.Logger.WithFields(logrus.Fields{
			"client_id": clientID,
			"event":     string(eventType),
		}).WithError(err).Warn("event publish failed")
	}
}
