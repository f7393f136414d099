package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/njprem/TravelWisata_BackEnd/internal/catalog"
	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/localstore"
	"github.com/njprem/TravelWisata_BackEnd/internal/repository/memory"
	"github.com/njprem/TravelWisata_BackEnd/internal/util"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type storeFixture struct {
	kv     *memory.KeyValueStore
	local  *localstore.Store
	stores *Stores
	events *recordingPublisher
	logs   *test.Hook
	now    time.Time
}

func newStoreFixture(t *testing.T, admins ...string) *storeFixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	fixed := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	kv := memory.NewKeyValueStore()
	local := localstore.New(kv, logger)
	pub := &recordingPublisher{}
	stores := NewStores(local, StoreOptions{
		Catalog:     catalog.MustDefault(),
		Events:      pub,
		Logger:      logger,
		IDs:         util.NewTimestampIDs(now),
		AdminEmails: admins,
		Now:         now,
	})
	return &storeFixture{kv: kv, local: local, stores: stores, events: pub, logs: hook, now: fixed}
}

type fakeStorage struct {
	bucket      string
	objectName  string
	contentType string
	body        []byte
	err         error
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", err
	}
	if int64(buf.Len()) != size {
		return "", errors.New("size mismatch")
	}
	f.bucket = bucket
	f.objectName = objectName
	f.contentType = contentType
	f.body = buf.Bytes()
	return "https://cdn.example.com/" + bucket + "/" + objectName, nil
}
