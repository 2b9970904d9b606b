// Package cache holds fetched per-film metadata with a freshness window.
//
// A Store keeps the whole table in memory and writes through to a Backend on
// every Put, so a crash loses at most the put that was in flight. Expired
// entries read as misses until Sweep removes them.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/actuallystonmai/film-recommender/internal/domain"
	"github.com/actuallystonmai/film-recommender/internal/metrics"
)

const DefaultTTL = 30 * 24 * time.Hour

// Backend persists encoded entries keyed by identifier.
type Backend interface {
	// Load calls fn once per persisted key.
	Load(ctx context.Context, fn func(key string, raw []byte)) error
	Save(ctx context.Context, key string, raw []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Entry struct {
	Key       string
	Payload   []byte
	FetchedAt time.Time
}

// record is the persisted shape of an Entry.
type record struct {
	Payload   []byte    `json:"payload"`
	FetchedAt time.Time `json:"fetched_at"`
}

type Store struct {
	// mu guards entries; writeMu serializes backend writes so the table and
	// the backend agree on the last write for every key.
	mu      sync.RWMutex
	writeMu sync.Mutex
	entries map[string]Entry
	closed  bool

	backend Backend
	ttl     time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mainly so tests can age entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads every persisted entry from backend. Entries that cannot be
// decoded are skipped; if the backend cannot be read at all the store
// starts empty.
//
//nolint:gocritic // zerolog.Logger is passed by value
func Open(ctx context.Context, backend Backend, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]Entry),
		backend: backend,
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  logger.With().Str("component", "cache").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	skipped := 0
	err := backend.Load(ctx, func(key string, raw []byte) {
		e, err := decodeEntry(key, raw)
		if err != nil {
			skipped++
			metrics.CacheCorrupt.Inc()
			s.logger.Warn().Err(err).Str("key", key).Msg("skipping malformed cache entry")
			return
		}
		s.entries[key] = e
	})
	if err != nil {
		s.entries = make(map[string]Entry)
		s.logger.Error().Err(err).Msg("cache load failed, starting empty")
		return s
	}

	s.logger.Info().
		Int("entries", len(s.entries)).
		Int("skipped", skipped).
		Dur("ttl", s.ttl).
		Msg("cache loaded")
	return s
}

func decodeEntry(key string, raw []byte) (Entry, error) {
	if key == "" {
		return Entry{}, errors.New("empty key")
	}
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Entry{}, fmt.Errorf("decode entry: %w", err)
	}
	if r.FetchedAt.IsZero() {
		return Entry{}, errors.New("missing fetched_at")
	}
	return Entry{Key: key, Payload: r.Payload, FetchedAt: r.FetchedAt}, nil
}

// Get returns the payload for key, or false when it is absent or expired.
// Expired entries are left in place for Sweep.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.expired(e) {
		metrics.CacheMisses.Inc()
		return nil, false
	}
	metrics.CacheHits.Inc()
	return append([]byte(nil), e.Payload...), true
}

// Put stores payload under key with fetched_at set to now, overwriting any
// previous entry.
func (s *Store) Put(ctx context.Context, key string, payload []byte) error {
	if key == "" {
		return errors.New("cache put: empty key")
	}

	e := Entry{
		Key:       key,
		Payload:   append([]byte(nil), payload...),
		FetchedAt: s.now().UTC(),
	}
	raw, err := json.Marshal(record{Payload: e.Payload, FetchedAt: e.FetchedAt})
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.isClosed() {
		return domain.ErrCacheClosed
	}
	if err := s.backend.Save(ctx, key, raw); err != nil {
		return fmt.Errorf("persist cache entry %s: %w", key, err)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

// Sweep removes every expired entry and returns how many were removed.
// Readers see each key either before or after its removal.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.isClosed() {
		return 0, domain.ErrCacheClosed
	}

	s.mu.RLock()
	var expired []string
	for key, e := range s.entries {
		if s.expired(e) {
			expired = append(expired, key)
		}
	}
	s.mu.RUnlock()

	removed := 0
	for _, key := range expired {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := s.backend.Delete(ctx, key); err != nil {
			return removed, fmt.Errorf("delete cache entry %s: %w", key, err)
		}
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		removed++
	}

	metrics.CacheSwept.Add(float64(removed))
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("cache sweep complete")
	}
	return removed, nil
}

// Len counts stored entries, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Close() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.backend.Close()
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Store) expired(e Entry) bool {
	return s.now().Sub(e.FetchedAt) >= s.ttl
}
