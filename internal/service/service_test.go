package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/film-recommender/internal/cache"
	"github.com/actuallystonmai/film-recommender/internal/catalog"
	"github.com/actuallystonmai/film-recommender/internal/domain"
	"github.com/actuallystonmai/film-recommender/internal/engine"
)

type fakeSource struct {
	films    []domain.FilmRecord
	rejected []catalog.ValidationError
	err      error
}

func (f *fakeSource) Films(context.Context) ([]domain.FilmRecord, []catalog.ValidationError, error) {
	return f.films, f.rejected, f.err
}

func (f *fakeSource) String() string { return "fake" }

func film(id, title string, year int, director string, genres ...string) domain.FilmRecord {
	return domain.FilmRecord{
		Title:      title,
		Year:       year,
		Director:   director,
		Genres:     genres,
		Rating:     8.0,
		NumVotes:   1000,
		Runtime:    120,
		ExternalID: id,
	}
}

func testFilms() []domain.FilmRecord {
	return []domain.FilmRecord{
		film("tt0000001", "Heat", 1995, "Michael Mann", "Crime", "Drama"),
		film("tt0000002", "Collateral", 2004, "Michael Mann", "Crime", "Thriller"),
		film("tt0000003", "Amelie", 2001, "Jean-Pierre Jeunet", "Comedy", "Romance"),
		film("tt0000004", "Alien", 1979, "Ridley Scott", "Horror", "Sci-Fi"),
	}
}

type fixture struct {
	svc    *Service
	source *fakeSource
	store  *cache.Store
	now    time.Time
}

func newFixture(t *testing.T, films []domain.FilmRecord) *fixture {
	t.Helper()
	f := &fixture{
		source: &fakeSource{films: films},
		now:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.store = cache.Open(context.Background(), cache.NewMemoryBackend(), zerolog.Nop(),
		cache.WithClock(func() time.Time { return f.now }))
	t.Cleanup(func() { _ = f.store.Close() })

	eng, err := engine.New(engine.DefaultConfig(), zerolog.Nop())
	require.NoError(t, err)

	f.svc = NewService(f.source, eng, f.store, zerolog.Nop())
	return f
}

func crimeFan() domain.RawStats {
	return domain.RawStats{
		Username:     "mann_fan",
		TotalFilms:   40,
		TopGenres:    map[string]int{"Crime": 8, "Drama": 2},
		TopDirectors: map[string]int{"Michael Mann": 5},
		TopDecades:   map[string]int{"1990s": 3},
		WatchedIDs:   []string{"tt0000001"},
	}
}

func TestRecommendBeforeReload(t *testing.T) {
	f := newFixture(t, testFilms())

	_, err := f.svc.Recommend(context.Background(), crimeFan(), 5)
	assert.ErrorIs(t, err, domain.ErrCatalogNotReady)

	_, err = f.svc.CatalogStats()
	assert.ErrorIs(t, err, domain.ErrCatalogNotReady)
}

func TestRecommend(t *testing.T) {
	f := newFixture(t, testFilms())
	_, err := f.svc.Reload(context.Background())
	require.NoError(t, err)

	resp, err := f.svc.Recommend(context.Background(), crimeFan(), 2)
	require.NoError(t, err)

	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Collateral", resp.Recommendations[0].Film.Title)
	for _, r := range resp.Recommendations {
		assert.NotEqual(t, "tt0000001", r.Film.ExternalID)
	}
	assert.Equal(t, 2, resp.Metadata.TotalCount)
	assert.Equal(t, 4, resp.Metadata.CatalogSize)
	assert.NotEmpty(t, resp.Metadata.RequestID)
	assert.Empty(t, resp.Metadata.ReasonCode)
}

func TestRecommendClampsLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-3))
	assert.Equal(t, MaxLimit, ClampLimit(500))
	assert.Equal(t, 7, ClampLimit(7))

	var films []domain.FilmRecord
	for i := 0; i < 60; i++ {
		films = append(films, film(fmt.Sprintf("tt%07d", i+1), fmt.Sprintf("Film %02d", i), 1990, "Someone", "Drama"))
	}
	f := newFixture(t, films)
	_, err := f.svc.Reload(context.Background())
	require.NoError(t, err)

	resp, err := f.svc.Recommend(context.Background(), domain.RawStats{TopGenres: map[string]int{"Drama": 1}}, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, DefaultLimit)

	resp, err = f.svc.Recommend(context.Background(), domain.RawStats{TopGenres: map[string]int{"Drama": 1}}, 1000)
	require.NoError(t, err)
	assert.Len(t, resp.Recommendations, MaxLimit)
}

func TestRecommendIncompleteProfile(t *testing.T) {
	f := newFixture(t, testFilms())
	_, err := f.svc.Reload(context.Background())
	require.NoError(t, err)

	raw := crimeFan()
	raw.Incomplete = true
	resp, err := f.svc.Recommend(context.Background(), raw, 3)
	require.NoError(t, err)
	assert.True(t, resp.Metadata.ProfileIncomplete)
	assert.NotEmpty(t, resp.Recommendations)
}

func TestRecommendNewUserOnSeedCatalog(t *testing.T) {
	f := newFixture(t, catalog.SeedFilms())
	_, err := f.svc.Reload(context.Background())
	require.NoError(t, err)

	resp, err := f.svc.Recommend(context.Background(), domain.RawStats{Username: "new"}, 5)
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 5)
	assert.Empty(t, resp.Metadata.ReasonCode)

	top := resp.Recommendations[0]
	assert.Equal(t, "12 Angry Men", top.Film.Title)
	assert.Equal(t, []string{"highly-rated discovery (9.0/10)"}, top.Reasons)
}

func TestRecommendCancelledContext(t *testing.T) {
	f := newFixture(t, testFilms())
	_, err := f.svc.Reload(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.svc.Recommend(ctx, crimeFan(), 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReloadFallsBackToSeed(t *testing.T) {
	f := newFixture(t, nil)
	f.source.err = errors.New("connection refused")

	report, err := f.svc.Reload(context.Background())
	require.NoError(t, err)
	assert.True(t, report.UsedSeed)
	assert.Equal(t, len(catalog.SeedFilms()), f.svc.Catalog().Len())
}

func TestReloadKeepsCurrentCatalogOnSourceError(t *testing.T) {
	f := newFixture(t, testFilms())
	_, err := f.svc.Reload(context.Background())
	require.NoError(t, err)
	before := f.svc.Catalog()

	f.source.err = errors.New("connection refused")
	_, err = f.svc.Reload(context.Background())
	assert.Error(t, err)
	assert.Same(t, before, f.svc.Catalog())
}

func TestReloadSwapsSnapshot(t *testing.T) {
	f := newFixture(t, testFilms())
	_, err := f.svc.Reload(context.Background())
	require.NoError(t, err)
	old := f.svc.Catalog()

	f.source.films = testFilms()[:2]
	f.source.rejected = []catalog.ValidationError{{Index: 9, Field: "title", Reason: "missing"}}
	report, err := f.svc.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Accepted)
	assert.Len(t, report.Rejected, 1)
	assert.Equal(t, 2, f.svc.Catalog().Len())
	assert.Equal(t, 4, old.Len())

	stats, err := f.svc.CatalogStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalFilms)
}

func TestReloadLeavesSourceRejectionsUntouched(t *testing.T) {
	films := testFilms()
	films[3].Title = "  "
	f := newFixture(t, films)

	decoded := make([]catalog.ValidationError, 1, 4)
	decoded[0] = catalog.ValidationError{Index: 7, Field: "record", Reason: "bad json"}
	f.source.rejected = decoded

	report, err := f.svc.Reload(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Rejected, 2)
	assert.Equal(t, "record", report.Rejected[0].Field)
	assert.Equal(t, "title", report.Rejected[1].Field)
	assert.Equal(t, catalog.ValidationError{}, decoded[:2][1])
}

func TestRecommendBatch(t *testing.T) {
	f := newFixture(t, testFilms())
	_, err := f.svc.Reload(context.Background())
	require.NoError(t, err)

	var reqs []domain.BatchRequest
	for i := 0; i < 25; i++ {
		raw := crimeFan()
		raw.Username = fmt.Sprintf("user%02d", i)
		reqs = append(reqs, domain.BatchRequest{Stats: raw, Limit: 2})
	}
	reqs = append(reqs, domain.BatchRequest{Stats: domain.RawStats{Username: "empty"}})

	resp := f.svc.RecommendBatch(context.Background(), reqs)

	require.Len(t, resp.Results, 26)
	assert.Equal(t, 26, resp.Summary.SuccessCount)
	assert.Zero(t, resp.Summary.FailedCount)
	for i := 0; i < 25; i++ {
		assert.Equal(t, fmt.Sprintf("user%02d", i), resp.Results[i].Username)
		assert.Len(t, resp.Results[i].Recommendations, 2)
	}

	empty := resp.Results[25]
	assert.Equal(t, domain.StatusSuccess, empty.Status)
	assert.Empty(t, empty.ReasonCode)
	assert.NotEmpty(t, empty.Recommendations)
}

func TestRecommendBatchWithoutCatalog(t *testing.T) {
	f := newFixture(t, testFilms())

	resp := f.svc.RecommendBatch(context.Background(), []domain.BatchRequest{{Stats: crimeFan()}})
	require.Len(t, resp.Results, 1)
	assert.Equal(t, domain.StatusFailed, resp.Results[0].Status)
	assert.Equal(t, "catalog_not_ready", resp.Results[0].Error)
	assert.Equal(t, 1, resp.Summary.FailedCount)
}

func TestCategorizeError(t *testing.T) {
	code, _ := categorizeError(fmt.Errorf("wrap: %w", domain.ErrCatalogNotReady))
	assert.Equal(t, "catalog_not_ready", code)
	code, _ = categorizeError(context.DeadlineExceeded)
	assert.Equal(t, "timeout", code)
	code, _ = categorizeError(errors.New("boom"))
	assert.Equal(t, "internal_error", code)
}

func TestCachePassthroughAndSweep(t *testing.T) {
	f := newFixture(t, testFilms())
	ctx := context.Background()

	assert.Error(t, f.svc.CachePut(ctx, "tt0000001", json.RawMessage(`{not json`)))
	require.NoError(t, f.svc.CachePut(ctx, "tt0000001", json.RawMessage(`{"poster_url":"p.jpg"}`)))

	got, ok := f.svc.CacheGet("tt0000001")
	require.True(t, ok)
	assert.JSONEq(t, `{"poster_url":"p.jpg"}`, string(got))

	f.now = f.now.Add(f.store.TTL())
	_, ok = f.svc.CacheGet("tt0000001")
	assert.False(t, ok)

	removed, err := f.svc.CacheSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Zero(t, f.store.Len())
}

func TestRecommendEnrichesFromCache(t *testing.T) {
	f := newFixture(t, testFilms())
	ctx := context.Background()
	_, err := f.svc.Reload(ctx)
	require.NoError(t, err)

	require.NoError(t, f.svc.CachePut(ctx, "tt0000002", json.RawMessage(`{"poster_url":"https://img/collateral.jpg","overview":"A cab ride."}`)))

	resp, err := f.svc.Recommend(ctx, crimeFan(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "https://img/collateral.jpg", resp.Recommendations[0].Film.PosterURL)
	assert.Equal(t, "A cab ride.", resp.Recommendations[0].Film.Overview)

	// the catalog snapshot itself is untouched
	stored, ok := f.svc.Catalog().Film("tt0000002")
	require.True(t, ok)
	assert.Empty(t, stored.PosterURL)
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	f := newFixture(t, testFilms())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.svc.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
