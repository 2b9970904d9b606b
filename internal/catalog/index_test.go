package catalog

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/film-recommender/internal/domain"
)

func film(id, title string, year int, director string, genres ...string) domain.FilmRecord {
	return domain.FilmRecord{
		Title:      title,
		Year:       year,
		Director:   director,
		Genres:     genres,
		Rating:     7.0,
		NumVotes:   100,
		Runtime:    100,
		ExternalID: id,
	}
}

func TestBuildIndexesLookups(t *testing.T) {
	a := film("tt0000001", "A", 1990, "DirX", "Drama")
	a.Cast = []string{"Jane Doe", "John Roe"}
	b := film("tt0000002", "B", 2005, "DirY", "Comedy")
	c := film("tt0000003", "C", 1994, "DirX", "Drama", "Crime")
	c.Cast = []string{"Jane Doe"}

	idx, report := Build([]domain.FilmRecord{a, b, c}, zerolog.Nop())
	require.False(t, report.UsedSeed)
	assert.Equal(t, 3, idx.Len())

	assert.ElementsMatch(t, []string{"tt0000001", "tt0000003"}, idx.ByGenre("Drama").Sorted())
	assert.ElementsMatch(t, []string{"tt0000003"}, idx.ByGenre("crime").Sorted())
	assert.ElementsMatch(t, []string{"tt0000001", "tt0000003"}, idx.ByDirector("dirx").Sorted())
	assert.ElementsMatch(t, []string{"tt0000001", "tt0000003"}, idx.ByDecade(1990).Sorted())
	assert.ElementsMatch(t, []string{"tt0000002"}, idx.ByDecade(2000).Sorted())
	assert.ElementsMatch(t, []string{"tt0000001", "tt0000003"}, idx.ByCast(" jane doe ").Sorted())

	assert.Empty(t, idx.ByGenre("Western"))
	assert.Empty(t, idx.ByDecade(1950))
	assert.Equal(t, []string{"tt0000001", "tt0000002", "tt0000003"}, idx.IDs())
}

func TestLookupReturnsCopy(t *testing.T) {
	idx, _ := Build([]domain.FilmRecord{film("tt0000001", "A", 1990, "DirX", "Drama")}, zerolog.Nop())

	set := idx.ByGenre("Drama")
	delete(set, "tt0000001")

	assert.True(t, idx.ByGenre("Drama").Has("tt0000001"))
}

func TestUnknownDirectorNotIndexed(t *testing.T) {
	idx, _ := Build([]domain.FilmRecord{
		film("tt0000001", "A", 1990, "Unknown", "Drama"),
		film("tt0000002", "B", 1990, "", "Drama"),
	}, zerolog.Nop())

	assert.Empty(t, idx.ByDirector("unknown"))
	assert.Empty(t, idx.ByDirector(""))
}

// Every genre lookup returns exactly the records carrying that genre.
func TestGenreLookupMatchesCatalog(t *testing.T) {
	genres := []string{"Drama", "Comedy", "Horror", "Western", "Animation", "Thriller"}
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		var records []domain.FilmRecord
		n := 1 + rng.Intn(60)
		for i := 0; i < n; i++ {
			picked := map[string]bool{}
			for len(picked) == 0 || rng.Intn(3) == 0 {
				picked[genres[rng.Intn(len(genres))]] = true
			}
			var gs []string
			for g := range picked {
				gs = append(gs, g)
			}
			records = append(records, film(fmt.Sprintf("tt%07d", i+1), fmt.Sprintf("Film %d", i), 1900+rng.Intn(131), "Dir", gs...))
		}

		idx, _ := Build(records, zerolog.Nop())
		for _, g := range genres {
			want := IDSet{}
			for _, r := range records {
				for _, rg := range r.Genres {
					if rg == g {
						want[r.ExternalID] = struct{}{}
					}
				}
			}
			assert.Equal(t, want, idx.ByGenre(g), "round %d genre %s", round, g)
		}
	}
}

func TestBuildFallsBackToSeed(t *testing.T) {
	bad := film("bogus", "", 1800, "", "")

	idx, report := Build([]domain.FilmRecord{bad}, zerolog.Nop())

	assert.True(t, report.UsedSeed)
	assert.True(t, idx.UsedSeed())
	assert.Equal(t, len(SeedFilms()), idx.Len())
	assert.Len(t, report.Rejected, 1)

	idx, report = Build(nil, zerolog.Nop())
	assert.True(t, report.UsedSeed)
	assert.Positive(t, idx.Len())
}

func TestSeedFilmsAreValid(t *testing.T) {
	valid, rejected := Validate(SeedFilms())
	assert.Empty(t, rejected)
	assert.Len(t, valid, len(SeedFilms()))
}

func TestPercentiles(t *testing.T) {
	a := film("tt0000001", "A", 1990, "DirX", "Drama")
	a.Rating, a.NumVotes = 9.0, 1000
	b := film("tt0000002", "B", 2005, "DirY", "Comedy")
	b.Rating, b.NumVotes = 6.0, 10
	c := film("tt0000003", "C", 1990, "DirX", "Drama")
	c.Rating, c.NumVotes = 7.0, 5

	idx, _ := Build([]domain.FilmRecord{a, b, c}, zerolog.Nop())

	assert.Equal(t, 10, idx.VotesPercentile(0.5))
	assert.Equal(t, 5, idx.VotesPercentile(0.01))
	assert.Equal(t, 1000, idx.VotesPercentile(1))
	assert.InDelta(t, 9.0, idx.RatingPercentile(0.75), 1e-9)
	assert.InDelta(t, 7.0, idx.RatingPercentile(0.5), 1e-9)
}

func TestStats(t *testing.T) {
	a := film("tt0000001", "A", 1990, "DirX", "Drama")
	a.Rating = 8
	b := film("tt0000002", "B", 2005, "DirY", "Comedy", "drama")
	b.Rating = 6
	c := film("tt0000003", "C", 1972, "DirX", "Drama")
	c.Rating = 0

	idx, _ := Build([]domain.FilmRecord{a, b, c}, zerolog.Nop())
	st := idx.Stats()

	assert.Equal(t, 3, st.TotalFilms)
	assert.Equal(t, 1972, st.MinYear)
	assert.Equal(t, 2005, st.MaxYear)
	assert.InDelta(t, 7.0, st.AverageRating, 1e-9)
	assert.Equal(t, 2, st.Directors)
	require.Len(t, st.TopGenres, 2)
	assert.Equal(t, GenreCount{Genre: "Drama", Count: 3}, st.TopGenres[0])
	assert.Equal(t, GenreCount{Genre: "Comedy", Count: 1}, st.TopGenres[1])
}
