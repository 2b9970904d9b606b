package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/actuallystonmai/film-recommender/internal/catalog"
	"github.com/actuallystonmai/film-recommender/internal/domain"
	"github.com/actuallystonmai/film-recommender/internal/logging"
)

// FilmWriter is the part of the repository seeding needs.
type FilmWriter interface {
	Truncate(ctx context.Context) error
	UpsertFilms(ctx context.Context, films []domain.FilmRecord) error
}

// Setup replaces the films table with the curated seed catalog plus n
// generated films. Output is deterministic.
func Setup(ctx context.Context, repo FilmWriter, n int) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	logging.Info().Msg("[seed] truncating existing films")
	if err := repo.Truncate(ctx); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	films := append(catalog.SeedFilms(), Films(rng, n)...)

	logging.Info().Int("films", len(films)).Msg("[seed] inserting films")
	if err := repo.UpsertFilms(ctx, films); err != nil {
		return fmt.Errorf("seed films: %w", err)
	}

	logging.Info().Msg("[seed] seeding complete")
	return nil
}

var (
	genres = []string{"Action", "Drama", "Comedy", "Thriller", "Sci-Fi"}

	titles = map[string][]string{
		"Action": {
			"Die Hard", "Mad Max: Fury Road", "John Wick", "Gladiator",
			"Top Gun: Maverick", "The Raid", "Mission: Impossible",
			"Casino Royale", "The Avengers", "Heat",
		},
		"Drama": {
			"Forrest Gump", "Schindler's List", "A Beautiful Mind",
			"Parasite", "Moonlight", "Whiplash", "The Green Mile",
			"Amadeus", "Rain Man", "Manchester by the Sea",
		},
		"Comedy": {
			"Superbad", "The Hangover", "Bridesmaids", "Step Brothers",
			"Anchorman", "Mean Girls", "Borat", "Hot Fuzz",
			"Groundhog Day", "The Grand Budapest Hotel",
		},
		"Thriller": {
			"Se7en", "Gone Girl", "Zodiac", "Prisoners",
			"Sicario", "No Country for Old Men", "Nightcrawler",
			"Shutter Island", "The Silence of the Lambs", "Oldboy",
		},
		"Sci-Fi": {
			"Blade Runner 2049", "Interstellar", "The Matrix", "Arrival",
			"Dune", "Ex Machina", "Alien", "Inception",
			"Edge of Tomorrow", "2001: A Space Odyssey",
		},
	}

	directors = []string{
		"Kathryn Bigelow", "Denis Villeneuve", "David Fincher", "Bong Joon-ho",
		"Edgar Wright", "Greta Gerwig", "Michael Mann", "Agnès Varda",
		"Akira Kurosawa", "Sofia Coppola", "unknown",
	}

	actors = []string{
		"Frances McDormand", "Toshiro Mifune", "Tilda Swinton", "Song Kang-ho",
		"Viola Davis", "Mads Mikkelsen", "Cate Blanchett", "Oscar Isaac",
	}

	decades       = []int{1950, 1960, 1970, 1980, 1990, 2000, 2010, 2020}
	decadeWeights = []float64{0.05, 0.05, 0.10, 0.15, 0.20, 0.20, 0.15, 0.10}
)

// Films generates n synthetic catalog records from rng. Ids start at
// tt9000001 so they never collide with real ones.
func Films(rng *rand.Rand, n int) []domain.FilmRecord {
	films := make([]domain.FilmRecord, 0, n)
	for i := range n {
		genre := genres[i%len(genres)]
		titleList := titles[genre]
		title := titleList[(i/len(genres))%len(titleList)]

		if i >= len(genres)*len(titleList) {
			title = fmt.Sprintf("%s %d", title, i/(len(genres)*len(titleList))+1)
		}

		filmGenres := []string{genre}
		if second := genres[rng.Intn(len(genres))]; second != genre {
			filmGenres = append(filmGenres, second)
		}

		decade := weightedChoice(rng, decades, decadeWeights)
		year := min(decade+rng.Intn(10), 2025)

		cast := make([]string, 0, 2)
		for _, j := range rng.Perm(len(actors))[:2] {
			cast = append(cast, actors[j])
		}

		films = append(films, domain.FilmRecord{
			Title:      title,
			Year:       year,
			Director:   directors[rng.Intn(len(directors))],
			Genres:     filmGenres,
			Cast:       cast,
			Rating:     math.Round((4+rng.Float64()*5.5)*10) / 10,
			NumVotes:   int(powerLawScore(rng) * 2_000_000),
			Runtime:    75 + rng.Intn(110),
			Overview:   fmt.Sprintf("A %s film from the %ds.", genre, decade),
			ExternalID: fmt.Sprintf("tt%07d", 9_000_001+i),
		})
	}
	return films
}

// powerLawScore skews towards small values, like vote counts do.
func powerLawScore(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 2.0)
	if raw < 0.0001 {
		raw = 0.0001
	}
	return raw
}

func weightedChoice[T any](rng *rand.Rand, choices []T, weights []float64) T {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
