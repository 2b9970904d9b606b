package domain

// FilmRecord is one catalog entry. ExternalID is the catalog identity key.
type FilmRecord struct {
	Title      string   `json:"title" validate:"notblank"`
	Year       int      `json:"year" validate:"gte=1900,lte=2030"`
	Director   string   `json:"director"`
	Genres     []string `json:"genres" validate:"required,min=1,dive,notblank"`
	Cast       []string `json:"cast"`
	Rating     float64  `json:"rating" validate:"gte=0,lte=10"`
	NumVotes   int      `json:"num_votes" validate:"gte=0"`
	Runtime    int      `json:"runtime" validate:"gt=0"`
	Overview   string   `json:"overview"`
	ExternalID string   `json:"external_id" validate:"required,externalid"`
	PosterURL  string   `json:"poster_url,omitempty"`
}

// Decade returns the year rounded down to a multiple of ten.
func (f FilmRecord) Decade() int {
	return DecadeOf(f.Year)
}

func DecadeOf(year int) int {
	return year - year%10
}
