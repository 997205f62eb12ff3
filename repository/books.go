package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bookshelf/data"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(bookID int64) (*data.Book, error)
	GetAllBooks(search, genre string, filters data.Filters) ([]*data.Book, int, error)
	UpdateBook(book *data.Book) error
	DeleteBook(bookID int64) (*data.Book, error)
}

// CreateBook creates a new book record.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (title, author, genre, description, publication_year, rating, cover_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	args := []interface{}{book.Title, book.Author, book.Genre, book.Description, book.PublicationYear, book.Rating, book.CoverImageURL}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(bookID int64) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, title, author, genre, description, publication_year, rating, cover_image_url, created_at, updated_at
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.Description,
		&book.PublicationYear,
		&book.Rating,
		&book.CoverImageURL,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves one window of filtered, sorted book records together
// with the total number of records matching the filter before pagination.
// The count and the window are read in two statements without a shared
// snapshot, so a write that lands between them may be visible in one and not
// the other.
func (r *repository) GetAllBooks(search, genre string, filters data.Filters) ([]*data.Book, int, error) {
	where, args := bookFilter(search, genre)

	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM books
		WHERE %s`, where)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var totalRecords int
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalRecords)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, title, author, genre, description, publication_year, rating, cover_image_url, created_at, updated_at
		FROM books
		WHERE %s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d`,
		where, filters.SortColumn(), filters.SortDirection(), len(args)+1, len(args)+2,
	)
	args = append(args, filters.Limit(), filters.Offset())
	ctx, cancel = context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Genre,
			&book.Description,
			&book.PublicationYear,
			&book.Rating,
			&book.CoverImageURL,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return books, totalRecords, nil
}

// UpdateBook updates a book record. The store refreshes updated_at on every
// successful mutation.
func (r *repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, genre = $3, description = $4, publication_year = $5, rating = $6, cover_image_url = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at`
	args := []interface{}{
		book.Title,
		book.Author,
		book.Genre,
		book.Description,
		book.PublicationYear,
		book.Rating,
		book.CoverImageURL,
		book.ID,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// DeleteBook deletes a book record and returns the deleted record.
func (r *repository) DeleteBook(bookID int64) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1
		RETURNING id, title, author, genre, description, publication_year, rating, cover_image_url, created_at, updated_at`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.Description,
		&book.PublicationYear,
		&book.Rating,
		&book.CoverImageURL,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}
