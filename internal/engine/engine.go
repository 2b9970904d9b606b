// Package engine scores catalog films against a user profile with several
// strategies and merges them into one ranked, explained list.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/film-recommender/internal/catalog"
	"github.com/actuallystonmai/film-recommender/internal/domain"
)

type Engine struct {
	cfg        Config
	strategies []Strategy
	logger     zerolog.Logger
}

// New builds an engine running the genre, director, era and discovery
// strategies.
//
//nolint:gocritic // zerolog.Logger is passed by value
func New(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	q := Quality{IdealMin: cfg.IdealRuntimeMin, IdealMax: cfg.IdealRuntimeMax, Bonus: cfg.RuntimeBonus}
	return &Engine{
		cfg: cfg,
		strategies: []Strategy{
			NewGenreStrategy(q),
			NewDirectorStrategy(q),
			NewEraStrategy(q),
			NewDiscoveryStrategy(q, cfg.DiscoveryVotesPercentile, cfg.DiscoveryRatingPercentile),
		},
		logger: logger.With().Str("component", "engine").Logger(),
	}, nil
}

type strategyRun struct {
	strategy Strategy
	scores   Scores
	max      float64
}

// Recommend ranks unwatched catalog films for p and returns at most limit of
// them. It never fails: starved strategies lose their weight to the others,
// and a profile nothing can be scored for yields an empty result with a
// reason code.
func (e *Engine) Recommend(idx *catalog.Index, p *domain.UserProfile, limit int) domain.RecommendationResult {
	result := domain.RecommendationResult{
		Recommendations:   []domain.Recommendation{},
		ActiveWeights:     map[string]float64{},
		ProfileIncomplete: p.Incomplete,
	}

	runs := e.score(idx, p)

	var active []string
	for _, run := range runs {
		if len(run.scores) == 0 {
			result.Starved = append(result.Starved, run.strategy.Name())
			continue
		}
		active = append(active, run.strategy.Name())
	}
	weights := e.cfg.Weights.Redistribute(active)
	result.ActiveWeights = weights

	if len(weights) == 0 {
		result.ReasonCode = domain.ReasonNoCandidates
		e.logger.Debug().Strs("starved", result.Starved).Msg("no strategy produced candidates")
		return result
	}

	type ranked struct {
		film  domain.FilmRecord
		score float64
		per   map[string]float64
	}
	var candidates []ranked
	for _, id := range idx.IDs() {
		if p.HasWatched(id) {
			continue
		}
		f, _ := idx.Film(id)
		c := ranked{film: f, per: map[string]float64{}}
		for _, run := range runs {
			w, ok := weights[run.strategy.Name()]
			raw, scored := run.scores[id]
			if !ok || !scored {
				continue
			}
			norm := raw / run.max
			c.per[run.strategy.Name()] = norm
			c.score += w * norm
		}
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		result.ReasonCode = domain.ReasonAllWatched
		return result
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		at, bt := strings.ToLower(a.film.Title), strings.ToLower(b.film.Title)
		if at != bt {
			return at < bt
		}
		return a.film.ExternalID < b.film.ExternalID
	})

	if limit < 0 {
		limit = 0
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	for _, c := range candidates {
		result.Recommendations = append(result.Recommendations, domain.Recommendation{
			Film:              c.film,
			AggregateScore:    c.score,
			PerStrategyScores: c.per,
			Reasons:           e.reasons(runs, c.film, c.per, p),
		})
	}
	return result
}

// score runs every strategy, concurrently when configured. Results keep the
// strategy order.
func (e *Engine) score(idx *catalog.Index, p *domain.UserProfile) []strategyRun {
	runs := make([]strategyRun, len(e.strategies))
	for i, s := range e.strategies {
		runs[i].strategy = s
	}

	if e.cfg.Parallel {
		var wg sync.WaitGroup
		for i := range runs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				runs[i].scores = runs[i].strategy.Score(idx, p)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range runs {
			runs[i].scores = runs[i].strategy.Score(idx, p)
		}
	}

	for i := range runs {
		for _, v := range runs[i].scores {
			if v > runs[i].max {
				runs[i].max = v
			}
		}
	}
	return runs
}

func (e *Engine) reasons(runs []strategyRun, f domain.FilmRecord, per map[string]float64, p *domain.UserProfile) []string {
	reasons := []string{}
	for _, run := range runs {
		if per[run.strategy.Name()] <= e.cfg.ReasonThreshold {
			continue
		}
		if r := run.strategy.Reason(f, p); r != "" {
			reasons = append(reasons, r)
		}
	}
	return reasons
}
