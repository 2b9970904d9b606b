package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/film-recommender/internal/domain"
)

// FilmMetadata is the payload cached per film by the metadata fetcher. Both
// fields are optional.
type FilmMetadata struct {
	PosterURL string `json:"poster_url,omitempty"`
	Overview  string `json:"overview,omitempty"`
}

func (s *Service) CacheGet(key string) (json.RawMessage, bool) {
	payload, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	return json.RawMessage(payload), true
}

// CachePut stores payload, which must be valid JSON, under key.
func (s *Service) CachePut(ctx context.Context, key string, payload json.RawMessage) error {
	if !json.Valid(payload) {
		return fmt.Errorf("cache payload for %s is not valid JSON", key)
	}
	return s.cache.Put(ctx, key, payload)
}

func (s *Service) CacheSweep(ctx context.Context) (int, error) {
	return s.cache.Sweep(ctx)
}

// RunSweeper sweeps the cache every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.cache.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error().Err(err).Msg("cache sweep failed")
			}
		}
	}
}

// enrich fills missing poster and overview from fresh cached metadata.
// Unreadable payloads are ignored.
func (s *Service) enrich(f *domain.FilmRecord) {
	if f.PosterURL != "" && f.Overview != "" {
		return
	}
	payload, ok := s.cache.Get(f.ExternalID)
	if !ok {
		return
	}
	var meta FilmMetadata
	if err := json.Unmarshal(payload, &meta); err != nil {
		s.logger.Debug().Err(err).Str("external_id", f.ExternalID).Msg("ignoring unreadable film metadata")
		return
	}
	if f.PosterURL == "" {
		f.PosterURL = meta.PosterURL
	}
	if f.Overview == "" {
		f.Overview = meta.Overview
	}
}
