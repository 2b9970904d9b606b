package domain

// RawStats is the viewing summary produced by the stats collaborator.
// Counts are raw frequencies; decade keys may be "1990" or "1990s".
type RawStats struct {
	Username           string         `json:"username"`
	TotalFilms         int            `json:"total_films"`
	AverageRating      float64        `json:"average_rating"`
	TopGenres          map[string]int `json:"top_genres"`
	TopDirectors       map[string]int `json:"top_directors"`
	TopDecades         map[string]int `json:"top_decades"`
	RatingDistribution map[string]int `json:"rating_distribution"`
	WatchedIDs         []string       `json:"watched_ids"`

	// Incomplete is set when an upstream fetch failed and the stats only
	// cover part of the user's history.
	Incomplete bool `json:"incomplete"`
}
