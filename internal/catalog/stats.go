package catalog

import (
	"math"
	"sort"
	"time"
)

const topGenreLimit = 10

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalFilms    int          `json:"total_films"`
	MinYear       int          `json:"min_year"`
	MaxYear       int          `json:"max_year"`
	AverageRating float64      `json:"average_rating"`
	TopGenres     []GenreCount `json:"top_genres"`
	Directors     int          `json:"directors"`
	UsedSeed      bool         `json:"used_seed"`
	BuiltAt       time.Time    `json:"built_at"`
}

// Stats summarizes the indexed catalog. The average ignores unrated films.
func (idx *Index) Stats() Stats {
	st := Stats{
		TotalFilms: idx.Len(),
		Directors:  len(idx.byDirector),
		UsedSeed:   idx.usedSeed,
		BuiltAt:    idx.builtAt,
	}

	var ratingSum float64
	rated := 0
	for i, id := range idx.order {
		f := idx.films[id]
		if i == 0 || f.Year < st.MinYear {
			st.MinYear = f.Year
		}
		if f.Year > st.MaxYear {
			st.MaxYear = f.Year
		}
		if f.Rating > 0 {
			ratingSum += f.Rating
			rated++
		}
	}
	if rated > 0 {
		st.AverageRating = math.Round(ratingSum/float64(rated)*100) / 100
	}

	for key, ids := range idx.byGenre {
		st.TopGenres = append(st.TopGenres, GenreCount{Genre: idx.genreNames[key], Count: len(ids)})
	}
	sort.Slice(st.TopGenres, func(i, j int) bool {
		if st.TopGenres[i].Count != st.TopGenres[j].Count {
			return st.TopGenres[i].Count > st.TopGenres[j].Count
		}
		return st.TopGenres[i].Genre < st.TopGenres[j].Genre
	})
	if len(st.TopGenres) > topGenreLimit {
		st.TopGenres = st.TopGenres[:topGenreLimit]
	}
	return st
}
