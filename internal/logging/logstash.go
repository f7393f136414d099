package logging

import (
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// LogstashHook mirrors every log entry to a Logstash TCP input as one JSON
// line. Fire never blocks the caller: entries queue in a bounded buffer, a
// single goroutine owns the connection, and entries are dropped while the
// buffer is full or Logstash is unreachable.
type LogstashHook struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration
	formatter     logrus.Formatter

	queue chan []byte
	done  chan struct{}
	once  sync.Once

	mu      sync.Mutex
	dropped uint64
}

type Option func(*LogstashHook)

// WithDialTimeout overrides the TCP dial timeout. Defaults to 2 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(h *LogstashHook) { h.dialTimeout = d }
}

// WithWriteTimeout overrides the TCP write timeout. Defaults to 1 second.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *LogstashHook) { h.writeTimeout = d }
}

// WithRetryInterval is the cool-down after a failed connect or write.
// Defaults to 5 seconds.
func WithRetryInterval(d time.Duration) Option {
	return func(h *LogstashHook) { h.retryInterval = d }
}

func WithBufferSize(n int) Option {
	return func(h *LogstashHook) {
		if n > 0 {
			h.queue = make(chan []byte, n)
		}
	}
}

func NewLogstashHook(addr string, opts ...Option) (*LogstashHook, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}
	h := &LogstashHook{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		formatter:     &logrus.JSONFormatter{},
		queue:         make(chan []byte, 1024),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	go h.run()
	return h, nil
}

func (h *LogstashHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *LogstashHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}
	select {
	case <-h.done:
	case h.queue <- line:
	default:
		h.drop()
	}
	return nil
}

func (h *LogstashHook) drop() {
	h.mu.Lock()
	h.dropped++
	h.mu.Unlock()
}

// Dropped counts entries discarded because the buffer was full or Logstash
// could not be reached.
func (h *LogstashHook) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close stops the sender. Queued entries not yet written are discarded.
func (h *LogstashHook) Close() error {
	h.once.Do(func() { close(h.done) })
	return nil
}

func (h *LogstashHook) run() {
	var (
		conn      net.Conn
		nextRetry time.Time
	)
	defer func() {
		if conn != nil {
			_ = conn.Close()
		}
	}()

	for {
		var line []byte
		select {
		case <-h.done:
			return
		case line = <-h.queue:
		}

		if conn == nil {
			if time.Now().Before(nextRetry) {
				h.drop()
				continue
			}
			c, err := net.DialTimeout("tcp", h.addr, h.dialTimeout)
			if err != nil {
				nextRetry = time.Now().Add(h.retryInterval)
				h.drop()
				continue
			}
			conn = c
		}
		if h.writeTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		}
		if _, err := conn.Write(line); err != nil {
			_ = conn.Close()
			conn = nil
			nextRetry = time.Now().Add(h.retryInterval)
			h.drop()
		}
	}
}
