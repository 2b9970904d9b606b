// Package service ties the catalog, the engine and the metadata cache
// together behind the operations the HTTP layer and the CLI call.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/actuallystonmai/film-recommender/internal/cache"
	"github.com/actuallystonmai/film-recommender/internal/catalog"
	"github.com/actuallystonmai/film-recommender/internal/domain"
	"github.com/actuallystonmai/film-recommender/internal/engine"
	"github.com/actuallystonmai/film-recommender/internal/metrics"
	"github.com/actuallystonmai/film-recommender/internal/profile"
)

const (
	DefaultLimit     = 10
	MaxLimit         = 50
	MaxBatchSize     = 100
	batchConcurrency = 10
)

// CatalogSource yields raw catalog records. Records it could not decode are
// returned as validation errors rather than failing the load.
type CatalogSource interface {
	Films(ctx context.Context) ([]domain.FilmRecord, []catalog.ValidationError, error)
	String() string
}

type Service struct {
	source  CatalogSource
	engine  *engine.Engine
	cache   *cache.Store
	catalog atomic.Pointer[catalog.Index]
	logger  zerolog.Logger
}

//nolint:gocritic // zerolog.Logger is passed by value
func NewService(source CatalogSource, eng *engine.Engine, store *cache.Store, logger zerolog.Logger) *Service {
	return &Service{
		source: source,
		engine: eng,
		cache:  store,
		logger: logger.With().Str("component", "service").Logger(),
	}
}

// Reload reads the catalog source and swaps in a freshly built index. When
// the source fails and a catalog is already loaded, the current one is kept
// and the error returned. On first load a failing source falls back to the
// seed catalog.
func (s *Service) Reload(ctx context.Context) (catalog.Report, error) {
	films, decodeRejected, err := s.source.Films(ctx)
	if err != nil {
		if s.catalog.Load() != nil {
			s.logger.Error().Err(err).Str("source", s.source.String()).Msg("catalog reload failed, keeping current catalog")
			return catalog.Report{}, fmt.Errorf("load catalog from %s: %w", s.source, err)
		}
		s.logger.Error().Err(err).Str("source", s.source.String()).Msg("catalog source unavailable")
		films, decodeRejected = nil, nil
	}

	for i := range decodeRejected {
		s.logger.Warn().
			Int("index", decodeRejected[i].Index).
			Str("field", decodeRejected[i].Field).
			Str("reason", decodeRejected[i].Reason).
			Msg("skipping undecodable catalog record")
	}

	idx, report := catalog.Build(films, s.logger)
	report.Total += len(decodeRejected)
	rejected := make([]catalog.ValidationError, 0, len(decodeRejected)+len(report.Rejected))
	rejected = append(rejected, decodeRejected...)
	report.Rejected = append(rejected, report.Rejected...)

	s.catalog.Store(idx)

	metrics.CatalogFilms.Set(float64(idx.Len()))
	metrics.CatalogRejected.Add(float64(len(report.Rejected)))
	if report.UsedSeed {
		metrics.CatalogSeedFallbacks.Inc()
	}
	return report, nil
}

// Catalog returns the current snapshot, or nil before the first Reload.
func (s *Service) Catalog() *catalog.Index {
	return s.catalog.Load()
}

func (s *Service) CatalogStats() (catalog.Stats, error) {
	idx := s.catalog.Load()
	if idx == nil {
		return catalog.Stats{}, domain.ErrCatalogNotReady
	}
	return idx.Stats(), nil
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Recommend builds a profile from raw and ranks the current catalog for it.
func (s *Service) Recommend(ctx context.Context, raw domain.RawStats, limit int) (*domain.RecommendationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx := s.catalog.Load()
	if idx == nil {
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, domain.ErrCatalogNotReady
	}

	start := time.Now()
	limit = ClampLimit(limit)

	p := profile.Build(raw, s.logger)
	if p.Incomplete {
		metrics.IncompleteProfiles.Inc()
		s.logger.Warn().Str("username", p.Username).Msg("profile built from incomplete stats")
	}

	result := s.engine.Recommend(idx, p, limit)
	for _, name := range result.Starved {
		metrics.StrategyStarved.WithLabelValues(name).Inc()
	}
	for i := range result.Recommendations {
		s.enrich(&result.Recommendations[i].Film)
	}

	outcome := "ok"
	if result.ReasonCode != "" {
		outcome = result.ReasonCode
	}
	metrics.RecommendationRequests.WithLabelValues(outcome).Inc()
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug().
		Str("username", p.Username).
		Int("returned", len(result.Recommendations)).
		Str("reason", result.ReasonCode).
		Dur("took", time.Since(start)).
		Msg("recommendations generated")

	return &domain.RecommendationResponse{
		Recommendations: result.Recommendations,
		Metadata: domain.RecommendationMeta{
			RequestID:         uuid.NewString(),
			GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
			TotalCount:        len(result.Recommendations),
			CatalogSize:       idx.Len(),
			ReasonCode:        result.ReasonCode,
			ActiveWeights:     result.ActiveWeights,
			Starved:           result.Starved,
			ProfileIncomplete: result.ProfileIncomplete,
		},
	}, nil
}

// RecommendBatch runs Recommend for every request with bounded concurrency.
// A failed entry is reported in place and never fails the batch.
func (s *Service) RecommendBatch(ctx context.Context, reqs []domain.BatchRequest) *domain.BatchResponse {
	start := time.Now()

	results := make([]domain.BatchUserResult, len(reqs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i := range reqs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[i] = s.processBatchEntry(ctx, reqs[i])
		}(i)
	}
	wg.Wait()

	summary := domain.BatchSummary{}
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			summary.SuccessCount++
		} else {
			summary.FailedCount++
		}
	}
	summary.ProcessingTimeMs = time.Since(start).Milliseconds()

	return &domain.BatchResponse{
		Results: results,
		Summary: summary,
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func (s *Service) processBatchEntry(ctx context.Context, req domain.BatchRequest) domain.BatchUserResult {
	resp, err := s.Recommend(ctx, req.Stats, req.Limit)
	if err != nil {
		s.logger.Error().Err(err).Str("username", req.Stats.Username).Msg("batch entry failed")
		code, msg := categorizeError(err)
		return domain.BatchUserResult{
			Username: req.Stats.Username,
			Status:   domain.StatusFailed,
			Error:    code,
			Message:  msg,
		}
	}
	return domain.BatchUserResult{
		Username:        req.Stats.Username,
		Recommendations: resp.Recommendations,
		ReasonCode:      resp.Metadata.ReasonCode,
		Status:          domain.StatusSuccess,
	}
}

// categorizeError maps an error to a stable code and a client-safe message.
func categorizeError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrCatalogNotReady):
		return "catalog_not_ready", "the film catalog has not been loaded yet"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout", "the request was cancelled before completing"
	default:
		return "internal_error", "an unexpected error occurred"
	}
}

// CategorizeError is categorizeError for the HTTP layer.
func CategorizeError(err error) (string, string) {
	return categorizeError(err)
}
