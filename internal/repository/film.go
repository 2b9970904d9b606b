package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/actuallystonmai/film-recommender/internal/catalog"
	"github.com/actuallystonmai/film-recommender/internal/domain"
)

const filmColumns = `external_id, title, year, director, genres, cast_members,
	rating, num_votes, runtime, overview, poster_url`

// Films loads the whole catalog. Rows are returned as stored; validation
// happens when the index is built.
func (r *Repository) Films(ctx context.Context) ([]domain.FilmRecord, []catalog.ValidationError, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+filmColumns+`
		FROM films
		ORDER BY external_id`,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("query films: %w", err)
	}
	defer rows.Close()

	var films []domain.FilmRecord
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, nil, err
		}
		films = append(films, f)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate over films: %w", err)
	}
	return films, nil, nil
}

func scanFilm(row pgx.Row) (domain.FilmRecord, error) {
	var (
		f         domain.FilmRecord
		director  *string
		overview  *string
		posterURL *string
	)
	err := row.Scan(&f.ExternalID, &f.Title, &f.Year, &director, &f.Genres, &f.Cast,
		&f.Rating, &f.NumVotes, &f.Runtime, &overview, &posterURL)
	if err != nil {
		return domain.FilmRecord{}, fmt.Errorf("scan film: %w", err)
	}
	if director != nil {
		f.Director = *director
	}
	if overview != nil {
		f.Overview = *overview
	}
	if posterURL != nil {
		f.PosterURL = *posterURL
	}
	if f.Cast == nil {
		f.Cast = []string{}
	}
	return f, nil
}

// UpsertFilms inserts films, replacing rows with the same external id, in a
// single batch.
func (r *Repository) UpsertFilms(ctx context.Context, films []domain.FilmRecord) error {
	if len(films) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range films {
		f := &films[i]
		batch.Queue(
			`INSERT INTO films (`+filmColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (external_id) DO UPDATE SET
				title = EXCLUDED.title,
				year = EXCLUDED.year,
				director = EXCLUDED.director,
				genres = EXCLUDED.genres,
				cast_members = EXCLUDED.cast_members,
				rating = EXCLUDED.rating,
				num_votes = EXCLUDED.num_votes,
				runtime = EXCLUDED.runtime,
				overview = EXCLUDED.overview,
				poster_url = EXCLUDED.poster_url,
				updated_at = now()`,
			f.ExternalID, f.Title, f.Year, f.Director, f.Genres, nonNil(f.Cast),
			f.Rating, f.NumVotes, f.Runtime, f.Overview, f.PosterURL,
		)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert %d films: %w", len(films), err)
	}
	return nil
}

// Count total films
func (r *Repository) CountFilms(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM films`,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("count films: %w", err)
	}
	return total, nil
}

// Truncate removes every film.
func (r *Repository) Truncate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `TRUNCATE films`); err != nil {
		return fmt.Errorf("truncate films: %w", err)
	}
	return nil
}

func (r *Repository) String() string {
	return "postgres:films"
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
