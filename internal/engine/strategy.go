package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/actuallystonmai/film-recommender/internal/catalog"
	"github.com/actuallystonmai/film-recommender/internal/domain"
)

// Scores maps external id to a strategy's raw score. Only positive scores
// are present.
type Scores map[string]float64

// Strategy scores catalog films against a profile. Implementations are pure
// functions of their inputs and never look at the watched set.
type Strategy interface {
	Name() string
	Score(idx *catalog.Index, p *domain.UserProfile) Scores
	// Reason phrases why f matched, for films the strategy scored.
	Reason(f domain.FilmRecord, p *domain.UserProfile) string
}

// Quality is rating × ln(1 + votes), boosted for films in the ideal
// runtime band.
type Quality struct {
	IdealMin int
	IdealMax int
	Bonus    float64
}

func (q Quality) Of(f domain.FilmRecord) float64 {
	v := f.Rating * math.Log1p(float64(f.NumVotes))
	if f.Runtime >= q.IdealMin && f.Runtime <= q.IdealMax && q.Bonus > 0 {
		v *= q.Bonus
	}
	return v
}

// foldWeights re-keys profile weights by catalog lookup key, dropping
// non-positive weights.
func foldWeights(weights map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(weights))
	for name, w := range weights {
		if w <= 0 {
			continue
		}
		if key := catalog.NormalizeKey(name); key != "" {
			out[key] += w
		}
	}
	return out
}

type GenreStrategy struct {
	quality Quality
}

func NewGenreStrategy(q Quality) *GenreStrategy {
	return &GenreStrategy{quality: q}
}

func (s *GenreStrategy) Name() string { return StrategyGenre }

func (s *GenreStrategy) Score(idx *catalog.Index, p *domain.UserProfile) Scores {
	weights := foldWeights(p.GenreWeights)
	candidates := make(catalog.IDSet)
	for genre := range weights {
		for id := range idx.ByGenre(genre) {
			candidates[id] = struct{}{}
		}
	}

	scores := make(Scores, len(candidates))
	for id := range candidates {
		f, _ := idx.Film(id)
		sum := 0.0
		seen := make(map[string]bool, len(f.Genres))
		for _, g := range f.Genres {
			key := catalog.NormalizeKey(g)
			if seen[key] {
				continue
			}
			seen[key] = true
			sum += weights[key]
		}
		if raw := sum * s.quality.Of(f); raw > 0 {
			scores[id] = raw
		}
	}
	return scores
}

// Reason names the film's genre the user weights most.
func (s *GenreStrategy) Reason(f domain.FilmRecord, p *domain.UserProfile) string {
	filmGenres := make(map[string]bool, len(f.Genres))
	for _, g := range f.Genres {
		filmGenres[catalog.NormalizeKey(g)] = true
	}

	names := make([]string, 0, len(p.GenreWeights))
	for name := range p.GenreWeights {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestWeight := "", 0.0
	for _, name := range names {
		if w := p.GenreWeights[name]; filmGenres[catalog.NormalizeKey(name)] && w > bestWeight {
			best, bestWeight = name, w
		}
	}
	if best == "" {
		return ""
	}
	return "matches your preferred genre: " + best
}

type DirectorStrategy struct {
	quality Quality
}

func NewDirectorStrategy(q Quality) *DirectorStrategy {
	return &DirectorStrategy{quality: q}
}

func (s *DirectorStrategy) Name() string { return StrategyDirector }

func (s *DirectorStrategy) Score(idx *catalog.Index, p *domain.UserProfile) Scores {
	scores := make(Scores)
	for director, w := range foldWeights(p.DirectorWeights) {
		for id := range idx.ByDirector(director) {
			f, _ := idx.Film(id)
			if raw := w * s.quality.Of(f); raw > 0 {
				scores[id] = raw
			}
		}
	}
	return scores
}

func (s *DirectorStrategy) Reason(f domain.FilmRecord, _ *domain.UserProfile) string {
	return fmt.Sprintf("directed by %s, a director you enjoy", f.Director)
}

type EraStrategy struct {
	quality Quality
}

func NewEraStrategy(q Quality) *EraStrategy {
	return &EraStrategy{quality: q}
}

func (s *EraStrategy) Name() string { return StrategyEra }

func (s *EraStrategy) Score(idx *catalog.Index, p *domain.UserProfile) Scores {
	scores := make(Scores)
	for decade, w := range p.DecadeWeights {
		if w <= 0 {
			continue
		}
		for id := range idx.ByDecade(decade) {
			f, _ := idx.Film(id)
			if raw := w * s.quality.Of(f); raw > 0 {
				scores[id] = raw
			}
		}
	}
	return scores
}

func (s *EraStrategy) Reason(f domain.FilmRecord, _ *domain.UserProfile) string {
	return fmt.Sprintf("from the %ds, an era you enjoy", f.Decade())
}

// DiscoveryStrategy surfaces well-rated films few people have voted on. It
// ignores the profile. When no film is both under-voted and well-rated, the
// least-voted of the well-rated films are used instead, so the strategy only
// starves on a catalog whose well-rated films all have zero quality.
type DiscoveryStrategy struct {
	quality          Quality
	votesPercentile  float64
	ratingPercentile float64
}

func NewDiscoveryStrategy(q Quality, votesPercentile, ratingPercentile float64) *DiscoveryStrategy {
	return &DiscoveryStrategy{
		quality:          q,
		votesPercentile:  votesPercentile,
		ratingPercentile: ratingPercentile,
	}
}

func (s *DiscoveryStrategy) Name() string { return StrategyDiscovery }

func (s *DiscoveryStrategy) Score(idx *catalog.Index, _ *domain.UserProfile) Scores {
	maxVotes := idx.VotesPercentile(s.votesPercentile)
	minRating := idx.RatingPercentile(s.ratingPercentile)

	scores := make(Scores)
	var wellRated []domain.FilmRecord
	for _, id := range idx.IDs() {
		f, _ := idx.Film(id)
		if f.Rating < minRating {
			continue
		}
		raw := s.quality.Of(f)
		if raw <= 0 {
			continue
		}
		wellRated = append(wellRated, f)
		if f.NumVotes <= maxVotes {
			scores[id] = raw
		}
	}
	if len(scores) > 0 || len(wellRated) == 0 {
		return scores
	}

	fewest := wellRated[0].NumVotes
	for _, f := range wellRated[1:] {
		fewest = min(fewest, f.NumVotes)
	}
	for _, f := range wellRated {
		if f.NumVotes == fewest {
			scores[f.ExternalID] = s.quality.Of(f)
		}
	}
	return scores
}

func (s *DiscoveryStrategy) Reason(f domain.FilmRecord, _ *domain.UserProfile) string {
	return fmt.Sprintf("highly-rated discovery (%.1f/10)", f.Rating)
}
