package data

import (
	"time"

	"bookshelf/internal/validator"
)

// Book defines a book model.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Genre           string    `json:"genre,omitempty"`
	Description     string    `json:"description,omitempty"`
	PublicationYear int32     `json:"publicationYear,omitempty"`
	Rating          int32     `json:"rating,omitempty"`
	CoverImageURL   string    `json:"coverImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 500, "title", "must not be more than 500 bytes long")
	v.Check(book.Author != "", "author", "must be provided")
	v.Check(len(book.Author) <= 500, "author", "must not be more than 500 bytes long")
	v.Check(len(book.Genre) <= 100, "genre", "must not be more than 100 bytes long")
	v.Check(len(book.Description) <= 2000, "description", "must not be more than 2000 bytes long")
	v.Check(book.Rating == 0 || (book.Rating >= 1 && book.Rating <= 5), "rating", "must be between 1 and 5")
	v.Check(len(book.CoverImageURL) <= 2048, "coverImageUrl", "must not be more than 2048 bytes long")
}
