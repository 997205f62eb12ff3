package repository

import (
	"context"
	"time"
)

type genres interface {
	GetAllGenres() ([]string, error)
}

// GetAllGenres retrieves the distinct set of genres across all book records.
func (r *repository) GetAllGenres() ([]string, error) {
	query := `
		SELECT DISTINCT genre
		FROM books
		WHERE genre <> ''
		ORDER BY genre ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	genres := []string{}
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			return nil, err
		}
		genres = append(genres, genre)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}
