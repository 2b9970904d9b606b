package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/film-recommender/internal/domain"
)

// fileRecord mirrors one catalog file element. Pointers distinguish a
// missing field from a zero value.
type fileRecord struct {
	Title      *string  `json:"title"`
	Year       *int     `json:"year"`
	Director   *string  `json:"director"`
	Genres     []string `json:"genres"`
	Cast       []string `json:"cast"`
	Rating     *float64 `json:"rating"`
	NumVotes   *int     `json:"num_votes"`
	Runtime    *int     `json:"runtime"`
	Overview   *string  `json:"overview"`
	ExternalID *string  `json:"external_id"`
	IMDbID     *string  `json:"imdb_id"`
	PosterURL  *string  `json:"poster_url"`
}

func (r *fileRecord) missing() []string {
	var fields []string
	check := func(name string, present bool) {
		if !present {
			fields = append(fields, name)
		}
	}
	check("title", r.Title != nil)
	check("year", r.Year != nil)
	check("director", r.Director != nil)
	check("genres", r.Genres != nil)
	check("rating", r.Rating != nil)
	check("num_votes", r.NumVotes != nil)
	check("runtime", r.Runtime != nil)
	check("overview", r.Overview != nil)
	check("external_id", r.ExternalID != nil || r.IMDbID != nil)
	return fields
}

func (r *fileRecord) toFilm() domain.FilmRecord {
	f := domain.FilmRecord{
		Title:    *r.Title,
		Year:     *r.Year,
		Director: *r.Director,
		Genres:   r.Genres,
		Cast:     r.Cast,
		Rating:   *r.Rating,
		NumVotes: *r.NumVotes,
		Runtime:  *r.Runtime,
		Overview: *r.Overview,
	}
	if r.ExternalID != nil {
		f.ExternalID = *r.ExternalID
	} else {
		f.ExternalID = *r.IMDbID
	}
	if f.Cast == nil {
		f.Cast = []string{}
	}
	if r.PosterURL != nil {
		f.PosterURL = *r.PosterURL
	}
	return f
}

// Decode parses a catalog document. Elements that are not objects of the
// expected shape, or that lack a required field, are reported and skipped.
// Range checks are left to Validate.
func Decode(data []byte) ([]domain.FilmRecord, []ValidationError, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, nil, fmt.Errorf("catalog must be a JSON array of films: %w", err)
	}

	films := make([]domain.FilmRecord, 0, len(elems))
	var rejected []ValidationError
	for i, raw := range elems {
		var rec fileRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			rejected = append(rejected, ValidationError{Index: i, Field: "record", Reason: err.Error()})
			continue
		}
		if missing := rec.missing(); len(missing) > 0 {
			ve := ValidationError{Index: i, Field: strings.Join(missing, ","), Reason: "missing required fields"}
			if rec.Title != nil {
				ve.Title = *rec.Title
			}
			rejected = append(rejected, ve)
			continue
		}
		films = append(films, rec.toFilm())
	}
	return films, rejected, nil
}

// FileSource reads the catalog from a JSON file.
type FileSource struct {
	Path string
}

func (s FileSource) Films(_ context.Context) ([]domain.FilmRecord, []ValidationError, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog %s: %w", s.Path, err)
	}
	films, rejected, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode catalog %s: %w", s.Path, err)
	}
	return films, rejected, nil
}

func (s FileSource) String() string {
	return "file:" + s.Path
}
