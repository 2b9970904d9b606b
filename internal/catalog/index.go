// Package catalog validates film records and indexes them for the
// recommendation strategies.
//
// An Index is immutable once built. Reloading the catalog means building a
// new Index and swapping it in; lookups on a live Index never observe a
// partial build.
package catalog

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/film-recommender/internal/domain"
)

// IDSet is a set of external ids.
type IDSet map[string]struct{}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type Index struct {
	films map[string]domain.FilmRecord
	order []string

	byGenre    map[string]IDSet
	byDirector map[string]IDSet
	byDecade   map[int]IDSet
	byCast     map[string]IDSet

	// sorted copies of the catalog distributions, for percentile queries
	votes   []int
	ratings []float64

	genreNames map[string]string
	usedSeed   bool
	builtAt    time.Time
}

// Report summarizes a Build.
type Report struct {
	Total    int
	Accepted int
	Rejected []ValidationError
	UsedSeed bool
}

// Build validates records and indexes the valid ones. Rejected records are
// logged and listed in the report. When nothing valid remains the seed
// catalog is indexed instead.
//
//nolint:gocritic // zerolog.Logger is passed by value
func Build(records []domain.FilmRecord, logger zerolog.Logger) (*Index, Report) {
	valid, rejected := Validate(records)
	report := Report{Total: len(records), Accepted: len(valid), Rejected: rejected}

	for i := range rejected {
		logger.Warn().
			Int("index", rejected[i].Index).
			Str("external_id", rejected[i].ExternalID).
			Str("title", rejected[i].Title).
			Str("field", rejected[i].Field).
			Str("reason", rejected[i].Reason).
			Msg("skipping catalog record")
	}

	if len(valid) == 0 {
		logger.Warn().Err(domain.ErrEmptyCatalog).Int("records", len(records)).Msg("falling back to seed catalog")
		valid, _ = Validate(SeedFilms())
		report.UsedSeed = true
	}

	idx := newIndex(valid)
	idx.usedSeed = report.UsedSeed

	logger.Info().
		Int("films", idx.Len()).
		Int("rejected", len(rejected)).
		Bool("seed", report.UsedSeed).
		Msg("catalog indexed")
	return idx, report
}

// newIndex expects records that already passed Validate.
func newIndex(films []domain.FilmRecord) *Index {
	idx := &Index{
		films:      make(map[string]domain.FilmRecord, len(films)),
		order:      make([]string, 0, len(films)),
		byGenre:    make(map[string]IDSet),
		byDirector: make(map[string]IDSet),
		byDecade:   make(map[int]IDSet),
		byCast:     make(map[string]IDSet),
		votes:      make([]int, 0, len(films)),
		ratings:    make([]float64, 0, len(films)),
		genreNames: make(map[string]string),
		builtAt:    time.Now().UTC(),
	}

	for _, f := range films {
		id := f.ExternalID
		idx.films[id] = f
		idx.order = append(idx.order, id)

		for _, g := range f.Genres {
			key := NormalizeKey(g)
			add(idx.byGenre, key, id)
			if _, ok := idx.genreNames[key]; !ok {
				idx.genreNames[key] = strings.TrimSpace(g)
			}
		}
		if d := NormalizeKey(f.Director); d != "" && d != "unknown" {
			add(idx.byDirector, d, id)
		}
		decade := f.Decade()
		if idx.byDecade[decade] == nil {
			idx.byDecade[decade] = make(IDSet)
		}
		idx.byDecade[decade][id] = struct{}{}
		for _, actor := range f.Cast {
			if a := NormalizeKey(actor); a != "" {
				add(idx.byCast, a, id)
			}
		}

		idx.votes = append(idx.votes, f.NumVotes)
		idx.ratings = append(idx.ratings, f.Rating)
	}

	sort.Ints(idx.votes)
	sort.Float64s(idx.ratings)
	return idx
}

func add(m map[string]IDSet, key, id string) {
	set, ok := m[key]
	if !ok {
		set = make(IDSet)
		m[key] = set
	}
	set[id] = struct{}{}
}

// NormalizeKey is the case-folded form used for genre, director and cast
// lookups.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (idx *Index) ByGenre(genre string) IDSet {
	return clone(idx.byGenre[NormalizeKey(genre)])
}

func (idx *Index) ByDirector(director string) IDSet {
	return clone(idx.byDirector[NormalizeKey(director)])
}

func (idx *Index) ByDecade(decade int) IDSet {
	return clone(idx.byDecade[decade])
}

func (idx *Index) ByCast(name string) IDSet {
	return clone(idx.byCast[NormalizeKey(name)])
}

func clone(src IDSet) IDSet {
	out := make(IDSet, len(src))
	for id := range src {
		out[id] = struct{}{}
	}
	return out
}

func (idx *Index) Film(id string) (domain.FilmRecord, bool) {
	f, ok := idx.films[id]
	return f, ok
}

// IDs returns every external id in catalog order.
func (idx *Index) IDs() []string {
	return append([]string(nil), idx.order...)
}

func (idx *Index) Len() int {
	return len(idx.order)
}

func (idx *Index) UsedSeed() bool {
	return idx.usedSeed
}

func (idx *Index) BuiltAt() time.Time {
	return idx.builtAt
}

// VotesPercentile returns the nearest-rank p-th percentile (0 < p <= 1) of
// the catalog's vote counts.
func (idx *Index) VotesPercentile(p float64) int {
	if len(idx.votes) == 0 {
		return 0
	}
	return idx.votes[rank(p, len(idx.votes))]
}

// RatingPercentile is VotesPercentile for ratings.
func (idx *Index) RatingPercentile(p float64) float64 {
	if len(idx.ratings) == 0 {
		return 0
	}
	return idx.ratings[rank(p, len(idx.ratings))]
}

func rank(p float64, n int) int {
	r := int(math.Ceil(p*float64(n))) - 1
	if r < 0 {
		return 0
	}
	if r >= n {
		return n - 1
	}
	return r
}
