package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"bookshelf/config"
	"bookshelf/data"
	"bookshelf/data/dto"
	"bookshelf/internal/jsonlog"
	"bookshelf/service"
)

// mockService is a canned service layer. Each field, when set, overrides the
// default behaviour of the corresponding method.
type mockService struct {
	createBookFn  func(dto.CreateBookRequestBody) (*data.Book, error)
	getBookFn     func(int64) (*data.Book, error)
	listBooksFn   func(search, genre string, filters data.Filters) ([]*data.Book, int, error)
	updateBookFn  func(int64, dto.UpdateBookRequestBody) (*data.Book, error)
	deleteBookFn  func(int64) (*data.Book, error)
	listGenresFn  func() ([]string, error)
	genresQueries int
}

func (m *mockService) CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	if m.createBookFn != nil {
		return m.createBookFn(requestBody)
	}
	return nil, service.ErrRecordNotFound
}

func (m *mockService) GetBook(bookID int64) (*data.Book, error) {
	if m.getBookFn != nil {
		return m.getBookFn(bookID)
	}
	return nil, service.ErrRecordNotFound
}

func (m *mockService) ListBooks(search, genre string, filters data.Filters) ([]*data.Book, int, error) {
	if m.listBooksFn != nil {
		return m.listBooksFn(search, genre, filters)
	}
	return []*data.Book{}, 0, nil
}

func (m *mockService) UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	if m.updateBookFn != nil {
		return m.updateBookFn(bookID, requestBody)
	}
	return nil, service.ErrRecordNotFound
}

func (m *mockService) UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error) {
	return nil, service.ErrRecordNotFound
}

func (m *mockService) DeleteBook(bookID int64) (*data.Book, error) {
	if m.deleteBookFn != nil {
		return m.deleteBookFn(bookID)
	}
	return nil, service.ErrRecordNotFound
}

func (m *mockService) ListGenres() ([]string, error) {
	m.genresQueries++
	if m.listGenresFn != nil {
		return m.listGenresFn()
	}
	return []string{"Fantasy"}, nil
}

func newTestHandler(svc service.Service) *Handler {
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	cache := ttlcache.New(ttlcache.WithTTL[string, []string](time.Minute))
	return New(config.Config{}, logger, cache, svc)
}

func testBook() *data.Book {
	return &data.Book{
		ID:              1,
		Title:           "The Hobbit",
		Author:          "J.R.R. Tolkien",
		Genre:           "Fantasy",
		PublicationYear: 1937,
		Rating:          5,
		CreatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateBookHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &mockService{
			createBookFn: func(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
				book := testBook()
				book.Title = requestBody.Title
				return book, nil
			},
		}
		ts := httptest.NewServer(newTestHandler(svc).Routes())
		defer ts.Close()

		body := `{"title": "The Hobbit", "author": "J.R.R. Tolkien"}`
		res, err := http.Post(ts.URL+"/books", "application/json", bytes.NewBufferString(body))
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusCreated {
			t.Errorf("expected status %d; got %d", http.StatusCreated, res.StatusCode)
		}
		if location := res.Header.Get("Location"); location != "/books/1" {
			t.Errorf("expected Location /books/1; got %q", location)
		}
		var got data.Book
		if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got.ID != 1 || got.Title != "The Hobbit" {
			t.Errorf("unexpected response body: %+v", got)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		svc := &mockService{
			createBookFn: func(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
				return nil, service.ValidationError{Fields: map[string]string{"title": "must be provided"}}
			},
		}
		ts := httptest.NewServer(newTestHandler(svc).Routes())
		defer ts.Close()

		res, err := http.Post(ts.URL+"/books", "application/json", bytes.NewBufferString(`{"author": "Someone"}`))
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status %d; got %d", http.StatusBadRequest, res.StatusCode)
		}
		var got struct {
			Error map[string]string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got.Error["title"] != "must be provided" {
			t.Errorf("expected a title field error; got %v", got.Error)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := httptest.NewServer(newTestHandler(&mockService{}).Routes())
		defer ts.Close()

		res, err := http.Post(ts.URL+"/books", "application/json", bytes.NewBufferString(`{"title":`))
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status %d; got %d", http.StatusBadRequest, res.StatusCode)
		}
	})
}

func TestShowBookHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &mockService{
			getBookFn: func(bookID int64) (*data.Book, error) {
				if bookID != 1 {
					return nil, service.ErrRecordNotFound
				}
				return testBook(), nil
			},
		}
		ts := httptest.NewServer(newTestHandler(svc).Routes())
		defer ts.Close()

		res, err := http.Get(ts.URL + "/books/1")
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Errorf("expected status %d; got %d", http.StatusOK, res.StatusCode)
		}
		var got data.Book
		if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got.Title != "The Hobbit" {
			t.Errorf("unexpected response body: %+v", got)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		ts := httptest.NewServer(newTestHandler(&mockService{}).Routes())
		defer ts.Close()

		res, err := http.Get(ts.URL + "/books/42")
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status %d; got %d", http.StatusNotFound, res.StatusCode)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		ts := httptest.NewServer(newTestHandler(&mockService{}).Routes())
		defer ts.Close()

		res, err := http.Get(ts.URL + "/books/abc")
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status %d; got %d", http.StatusNotFound, res.StatusCode)
		}
	})
}

func TestListBooksHandler(t *testing.T) {
	t.Run("envelope and query mapping", func(t *testing.T) {
		var gotSearch, gotGenre string
		var gotFilters data.Filters
		svc := &mockService{
			listBooksFn: func(search, genre string, filters data.Filters) ([]*data.Book, int, error) {
				gotSearch, gotGenre, gotFilters = search, genre, filters
				return []*data.Book{testBook()}, 42, nil
			},
		}
		ts := httptest.NewServer(newTestHandler(svc).Routes())
		defer ts.Close()

		res, err := http.Get(ts.URL + "/books?search=tolkien&genre=Fantasy&sortBy=rating&sortOrder=desc&pageIndex=2&pageSize=5")
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Errorf("expected status %d; got %d", http.StatusOK, res.StatusCode)
		}
		if gotSearch != "tolkien" || gotGenre != "Fantasy" {
			t.Errorf("expected search and genre mapped; got %q %q", gotSearch, gotGenre)
		}
		if gotFilters.SortBy != "rating" || gotFilters.SortOrder != "desc" || gotFilters.PageIndex != 2 || gotFilters.PageSize != 5 {
			t.Errorf("unexpected filters: %+v", gotFilters)
		}
		var got struct {
			Books      []*data.Book `json:"books"`
			TotalCount int          `json:"totalCount"`
		}
		if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if len(got.Books) != 1 || got.TotalCount != 42 {
			t.Errorf("expected 1 book and totalCount 42; got %d and %d", len(got.Books), got.TotalCount)
		}
	})

	t.Run("malformed pagination falls back to defaults", func(t *testing.T) {
		var gotFilters data.Filters
		svc := &mockService{
			listBooksFn: func(search, genre string, filters data.Filters) ([]*data.Book, int, error) {
				gotFilters = filters
				return []*data.Book{}, 0, nil
			},
		}
		ts := httptest.NewServer(newTestHandler(svc).Routes())
		defer ts.Close()

		res, err := http.Get(ts.URL + "/books?pageIndex=abc&pageSize=-3")
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Errorf("expected status %d; got %d", http.StatusOK, res.StatusCode)
		}
		if gotFilters.PageIndex != 0 || gotFilters.PageSize != 10 {
			t.Errorf("expected default pagination 0/10; got %d/%d", gotFilters.PageIndex, gotFilters.PageSize)
		}
	})
}

func TestUpdateBookHandler(t *testing.T) {
	t.Run("partial body reaches the service", func(t *testing.T) {
		var gotBody dto.UpdateBookRequestBody
		svc := &mockService{
			updateBookFn: func(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
				gotBody = requestBody
				book := testBook()
				book.Rating = *requestBody.Rating
				return book, nil
			},
		}
		ts := httptest.NewServer(newTestHandler(svc).Routes())
		defer ts.Close()

		req, err := http.NewRequest(http.MethodPut, ts.URL+"/books/1", bytes.NewBufferString(`{"rating": 3}`))
		if err != nil {
			t.Fatal(err)
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Errorf("expected status %d; got %d", http.StatusOK, res.StatusCode)
		}
		if gotBody.Rating == nil || *gotBody.Rating != 3 {
			t.Errorf("expected rating pointer 3; got %+v", gotBody)
		}
		if gotBody.Title != nil {
			t.Error("expected absent fields to stay nil")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		ts := httptest.NewServer(newTestHandler(&mockService{}).Routes())
		defer ts.Close()

		req, err := http.NewRequest(http.MethodPut, ts.URL+"/books/42", bytes.NewBufferString(`{"rating": 3}`))
		if err != nil {
			t.Fatal(err)
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status %d; got %d", http.StatusNotFound, res.StatusCode)
		}
	})
}

func TestDeleteBookHandler(t *testing.T) {
	t.Run("returns the deleted record", func(t *testing.T) {
		svc := &mockService{
			deleteBookFn: func(bookID int64) (*data.Book, error) {
				return testBook(), nil
			},
		}
		ts := httptest.NewServer(newTestHandler(svc).Routes())
		defer ts.Close()

		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/books/1", nil)
		if err != nil {
			t.Fatal(err)
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Errorf("expected status %d; got %d", http.StatusOK, res.StatusCode)
		}
		var got struct {
			Message string     `json:"message"`
			Book    *data.Book `json:"book"`
		}
		if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got.Message != "book successfully deleted" {
			t.Errorf("unexpected message %q", got.Message)
		}
		if got.Book == nil || got.Book.ID != 1 {
			t.Errorf("expected the deleted book in the envelope; got %+v", got.Book)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		ts := httptest.NewServer(newTestHandler(&mockService{}).Routes())
		defer ts.Close()

		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/books/42", nil)
		if err != nil {
			t.Fatal(err)
		}
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status %d; got %d", http.StatusNotFound, res.StatusCode)
		}
	})
}

func TestListGenresHandler(t *testing.T) {
	svc := &mockService{}
	ts := httptest.NewServer(newTestHandler(svc).Routes())
	defer ts.Close()

	for i := 0; i < 2; i++ {
		res, err := http.Get(ts.URL + "/genres")
		if err != nil {
			t.Fatal(err)
		}
		var got struct {
			Genres []string `json:"genres"`
		}
		err = json.NewDecoder(res.Body).Decode(&got)
		res.Body.Close()
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Genres) != 1 || got.Genres[0] != "Fantasy" {
			t.Errorf("unexpected genres: %v", got.Genres)
		}
	}
	// The second request must be served from the cache.
	if svc.genresQueries != 1 {
		t.Errorf("expected 1 service query; got %d", svc.genresQueries)
	}
}
