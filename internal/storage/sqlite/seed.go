package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hetulpatel/moviecatalog/internal/models"
)

// Dataset is a batch of rows for every table.
type Dataset struct {
	Directors   []models.Director
	Movies      []models.Movie
	Genres      []models.Genre
	MovieGenres []models.MovieGenre
}

// SampleData returns the deterministic rows used by the example and report queries.
func SampleData() Dataset {
	return Dataset{
		Directors: []models.Director{
			{ID: 1, Name: "Alice"},
			{ID: 2, Name: "Bob"},
			{ID: 3, Name: "Charlie"},
		},
		Movies: []models.Movie{
			{ID: 1, Title: "Alpha", DirectorID: 1, ReleaseDate: "2020-05-01", Budget: 1000000},
			{ID: 2, Title: "Beta", DirectorID: 1, ReleaseDate: "2022-09-10", Budget: 1500000},
			{ID: 3, Title: "Gamma", DirectorID: 2, ReleaseDate: "2021-03-20", Budget: 750000},
			{ID: 4, Title: "Delta", DirectorID: 3, ReleaseDate: "2023-01-15", Budget: 500000},
			{ID: 5, Title: "Epsilon", DirectorID: 2, ReleaseDate: "2019-07-07", Budget: 300000},
		},
		Genres: []models.Genre{
			{ID: 1, Name: "Drama"},
			{ID: 2, Name: "Action"},
			{ID: 3, Name: "Sci-Fi"},
			{ID: 4, Name: "Comedy"},
		},
		MovieGenres: []models.MovieGenre{
			{MovieID: 1, GenreID: 1},
			{MovieID: 1, GenreID: 3},
			{MovieID: 2, GenreID: 2},
			{MovieID: 3, GenreID: 1},
			{MovieID: 4, GenreID: 4},
			{MovieID: 2, GenreID: 1},
			{MovieID: 5, GenreID: 2},
		},
	}
}

const (
	insertDirectorSQL = `INSERT OR IGNORE INTO directors(id, name) VALUES (?, ?)`
	insertGenreSQL    = `INSERT OR IGNORE INTO genres(id, name) VALUES (?, ?)`
	insertMovieSQL    = `INSERT OR IGNORE INTO movies(id, title, director_id, release_date, budget) VALUES (?, ?, ?, ?, ?)`
	// movie_genres has no key to conflict on, so skip pairs that are already present.
	insertMovieGenreSQL = `
INSERT INTO movie_genres(movie_id, genre_id)
SELECT ?, ?
WHERE NOT EXISTS (SELECT 1 FROM movie_genres WHERE movie_id = ? AND genre_id = ?)`
)

// EnsureSeedData inserts the sample rows, skipping any that already exist.
func (s *Store) EnsureSeedData(ctx context.Context) error {
	return s.Seed(ctx, SampleData())
}

// Seed inserts ds in one transaction with insert-or-skip semantics.
// Either every row is applied or none is.
func (s *Store) Seed(ctx context.Context, ds Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := execEach(ctx, tx, insertDirectorSQL, len(ds.Directors), func(i int) []any {
		d := ds.Directors[i]
		return []any{d.ID, d.Name}
	}); err != nil {
		return fmt.Errorf("seed directors: %w", err)
	}
	if err := execEach(ctx, tx, insertGenreSQL, len(ds.Genres), func(i int) []any {
		g := ds.Genres[i]
		return []any{g.ID, g.Name}
	}); err != nil {
		return fmt.Errorf("seed genres: %w", err)
	}
	if err := execEach(ctx, tx, insertMovieSQL, len(ds.Movies), func(i int) []any {
		m := ds.Movies[i]
		return []any{m.ID, m.Title, m.DirectorID, m.ReleaseDate, m.Budget}
	}); err != nil {
		return fmt.Errorf("seed movies: %w", err)
	}
	if err := execEach(ctx, tx, insertMovieGenreSQL, len(ds.MovieGenres), func(i int) []any {
		mg := ds.MovieGenres[i]
		return []any{mg.MovieID, mg.GenreID, mg.MovieID, mg.GenreID}
	}); err != nil {
		return fmt.Errorf("seed movie genres: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func execEach(ctx context.Context, tx *sql.Tx, query string, n int, args func(int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	return nil
}
