package service

import (
	"errors"
	"net/http"
	"strings"

	"bookshelf/clients"
	"bookshelf/data"
	"bookshelf/data/dto"
	"bookshelf/internal/validator"
	"bookshelf/repository"
)

type books interface {
	CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error)
	GetBook(bookID int64) (*data.Book, error)
	ListBooks(search, genre string, filters data.Filters) ([]*data.Book, int, error)
	UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error)
	UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error)
	DeleteBook(bookID int64) (*data.Book, error)
}

// CreateBook service creates a new book. The store assigns the ID and both
// timestamps; any client-supplied values for them are ignored.
func (s *service) CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	book := &data.Book{
		Title:           strings.TrimSpace(requestBody.Title),
		Author:          strings.TrimSpace(requestBody.Author),
		Genre:           strings.TrimSpace(requestBody.Genre),
		Description:     strings.TrimSpace(requestBody.Description),
		PublicationYear: requestBody.PublicationYear,
		Rating:          requestBody.Rating,
		CoverImageURL:   strings.TrimSpace(requestBody.CoverImageURL),
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.CreateBook(book)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves one page of books together with the total
// number of matches before pagination. Malformed pagination values are
// coerced to their defaults rather than rejected, so a syntactically valid
// descriptor always succeeds; an empty result set is not an error.
func (s *service) ListBooks(search, genre string, filters data.Filters) ([]*data.Book, int, error) {
	books, totalCount, err := s.repo.GetAllBooks(search, genre, filters.Normalize())
	if err != nil {
		return nil, 0, err
	}
	return books, totalCount, nil
}

// UpdateBook service updates the details of a specific book. Only fields
// present in the request body are changed; the same validators as CreateBook
// run against the merged record.
func (s *service) UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.Title != nil {
		book.Title = strings.TrimSpace(*requestBody.Title)
	}
	if requestBody.Author != nil {
		book.Author = strings.TrimSpace(*requestBody.Author)
	}
	if requestBody.Genre != nil {
		book.Genre = strings.TrimSpace(*requestBody.Genre)
	}
	if requestBody.Description != nil {
		book.Description = strings.TrimSpace(*requestBody.Description)
	}
	if requestBody.PublicationYear != nil {
		book.PublicationYear = *requestBody.PublicationYear
	}
	if requestBody.Rating != nil {
		book.Rating = *requestBody.Rating
	}
	if requestBody.CoverImageURL != nil {
		book.CoverImageURL = strings.TrimSpace(*requestBody.CoverImageURL)
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// UpdateBookCover service uploads a new cover image for a book to object
// storage and records its URL on the book.
func (s *service) UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	// Parse form data
	err = r.ParseMultipartForm(5000)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			return nil, ErrContentTooLarge
		default:
			return nil, ErrBadRequest
		}
	}
	file, fileHeader, err := r.FormFile("cover")
	if err != nil {
		return nil, ErrBadRequest
	}
	defer file.Close()
	// Detect file Mime type
	buffer, mtype, err := s.detectMimeType(file, fileHeader)
	if err != nil {
		return nil, err
	}
	// Check whether Mime type is supported
	supportedMediaType := []string{
		"image/jpeg",
		"image/png",
	}
	if validMime := validator.Mime(mtype, supportedMediaType...); !validMime {
		return nil, ErrUnsupportedMediaType
	}
	// Upload file to s3 object storage
	s3Client, err := clients.NewS3Client(s.config)
	if err != nil {
		return nil, err
	}
	coverURL, err := s.uploadCoverToS3(s3Client, buffer, mtype, fileHeader)
	if err != nil {
		return nil, err
	}
	// Remove the replaced cover object, if this app's bucket holds one
	oldKey := s.coverKeyFromURL(book.CoverImageURL)
	book.CoverImageURL = coverURL
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if oldKey != "" {
		s.background(func() {
			if err := s.deleteCoverFromS3(s3Client, oldKey); err != nil {
				s.logger.PrintError(err, map[string]string{
					"s3_key": oldKey,
				})
			}
		})
	}
	return book, nil
}

// DeleteBook service deletes a book and returns the deleted record. A cover
// object stored in this app's bucket is removed in the background.
func (s *service) DeleteBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if key := s.coverKeyFromURL(book.CoverImageURL); key != "" {
		s.background(func() {
			s3Client, err := clients.NewS3Client(s.config)
			if err != nil {
				s.logger.PrintError(err, nil)
				return
			}
			if err := s.deleteCoverFromS3(s3Client, key); err != nil {
				s.logger.PrintError(err, map[string]string{
					"s3_key": key,
				})
			}
		})
	}
	return book, nil
}
