package dto

import "bookshelf/data"

// QsListBooks defines the query strings used for listing books.
type QsListBooks struct {
	Search  string
	Genre   string
	Filters data.Filters
}

// CreateBookRequestBody defines the request body for CreateBook service.
// ID, CreatedAt and UpdatedAt are accepted so a client may echo back a full
// record, but they are server-assigned and never read.
type CreateBookRequestBody struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	Description     string `json:"description"`
	PublicationYear int32  `json:"publicationYear"`
	Rating          int32  `json:"rating"`
	CoverImageURL   string `json:"coverImageUrl"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// UpdateBookRequestBody defines the request body for UpdateBook service. The
// fields are set to a pointer type to allow partial updates based on whether
// the value is set to nil. ID and the timestamps are accepted but ignored.
type UpdateBookRequestBody struct {
	ID              *int64  `json:"id"`
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Genre           *string `json:"genre"`
	Description     *string `json:"description"`
	PublicationYear *int32  `json:"publicationYear"`
	Rating          *int32  `json:"rating"`
	CoverImageURL   *string `json:"coverImageUrl"`
	CreatedAt       *string `json:"createdAt"`
	UpdatedAt       *string `json:"updatedAt"`
}
