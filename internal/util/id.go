package util

import (
	"strconv"
	"sync"
	"time"
)

// TimestampIDs hands out decimal Unix-millisecond ids. Ids never repeat
// within one generator: a second call in the same millisecond gets the
// previous value plus one.
type TimestampIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewTimestampIDs(now func() time.Time) *TimestampIDs {
	if now == nil {
		now = time.Now
	}
	return &TimestampIDs{now: now}
}

func (g *TimestampIDs) NextInt() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := g.now().UnixMilli()
	if next <= g.last {
		next = g.last + 1
	}
	g.last = next
	return next
}

func (g *TimestampIDs) Next() string {
	return strconv.FormatInt(g.NextInt(), 10)
}
