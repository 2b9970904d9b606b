package domain

type RatingTendency string

const (
	TendencyGenerous RatingTendency = "generous"
	TendencyCritical RatingTendency = "critical"
	TendencyBalanced RatingTendency = "balanced"
)

// UserProfile is the preference snapshot a recommendation runs against.
// Weight maps hold normalized frequencies. It is not modified once built.
type UserProfile struct {
	Username        string              `json:"username,omitempty"`
	TotalFilms      int                 `json:"total_films"`
	AverageRating   float64             `json:"average_rating"`
	GenreWeights    map[string]float64  `json:"genre_weights"`
	DirectorWeights map[string]float64  `json:"director_weights"`
	DecadeWeights   map[int]float64     `json:"decade_weights"`
	RatingTendency  RatingTendency      `json:"rating_tendency"`
	WatchedIDs      map[string]struct{} `json:"-"`
	Incomplete      bool                `json:"incomplete,omitempty"`
}

func (p *UserProfile) HasWatched(externalID string) bool {
	_, ok := p.WatchedIDs[externalID]
	return ok
}
