// Package client provides a typed HTTP client for the bookshelf API,
// including the query composition used by list views.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"bookshelf/clients"
	"bookshelf/data"
	"bookshelf/data/dto"
)

// Client calls the bookshelf API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    clients.NewHTTPClient(),
	}
}

// BookList is the response of the list endpoint: one window of books plus
// the total number of matches before pagination.
type BookList struct {
	Books      []*data.Book `json:"books"`
	TotalCount int          `json:"totalCount"`
}

type deleteResponse struct {
	Message string     `json:"message"`
	Book    *data.Book `json:"book"`
}

// APIError is an error response returned by the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded with status %d: %s", e.StatusCode, e.Message)
}

// ListBooks fetches one window of books for the given query parameters.
func (c *Client) ListBooks(ctx context.Context, query url.Values) (*BookList, error) {
	var list BookList
	err := c.do(ctx, http.MethodGet, "/books?"+query.Encode(), nil, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetBook fetches a single book by its ID.
func (c *Client) GetBook(ctx context.Context, bookID int64) (*data.Book, error) {
	var book data.Book
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", bookID), nil, &book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook creates a new book and returns the stored record.
func (c *Client) CreateBook(ctx context.Context, requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	var book data.Book
	err := c.do(ctx, http.MethodPost, "/books", requestBody, &book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook applies a partial or full update to a book and returns the
// updated record.
func (c *Client) UpdateBook(ctx context.Context, bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	var book data.Book
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/books/%d", bookID), requestBody, &book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook deletes a book and returns the deleted record.
func (c *Client) DeleteBook(ctx context.Context, bookID int64) (*data.Book, error) {
	var deleted deleteResponse
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", bookID), nil, &deleted)
	if err != nil {
		return nil, err
	}
	return deleted.Book, nil
}

// ListGenres fetches the distinct genres in the catalog.
func (c *Client) ListGenres(ctx context.Context) ([]string, error) {
	var response struct {
		Genres []string `json:"genres"`
	}
	err := c.do(ctx, http.MethodGet, "/genres", nil, &response)
	if err != nil {
		return nil, err
	}
	return response.Genres, nil
}

// do issues one request and decodes the JSON response into dst. A non-2xx
// status is returned as an *APIError carrying the server's error message.
func (c *Client) do(ctx context.Context, method, path string, requestBody, dst interface{}) error {
	var body *bytes.Reader
	if requestBody != nil {
		js, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(js)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResponse struct {
			Error interface{} `json:"error"`
		}
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&errResponse); err == nil && errResponse.Error != nil {
			message = fmt.Sprintf("%v", errResponse.Error)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}
	if dst == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
