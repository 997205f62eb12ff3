package client

import (
	"context"
	"net/url"
	"strconv"

	"bookshelf/data"
)

// Composer holds the list-view query state: search text, selected genre,
// active sort column and direction, and the current page. Every state change
// except pure page navigation resets the page index to 0, and every Load
// sends the full current state as a query string, never a diff, so stale
// server-side defaults can't silently reappear.
type Composer struct {
	client    *Client
	search    string
	genre     string
	sortBy    string
	sortOrder string
	pageIndex int
	pageSize  int
}

// NewComposer creates a Composer with the default descriptor: no search, no
// genre filter, default ordering, first page.
func NewComposer(client *Client) *Composer {
	return &Composer{
		client:    client,
		sortOrder: "asc",
		pageSize:  data.DefaultPageSize,
	}
}

// SetSearch replaces the search term and returns to the first page.
func (qc *Composer) SetSearch(term string) {
	qc.search = term
	qc.pageIndex = 0
}

// SetGenre replaces the genre filter and returns to the first page. An empty
// genre clears the filter.
func (qc *Composer) SetGenre(genre string) {
	qc.genre = genre
	qc.pageIndex = 0
}

// SortBy activates sorting on a column, ascending. Selecting the column that
// is already active flips the direction instead. Either way the view returns
// to the first page.
func (qc *Composer) SortBy(column string) {
	if qc.sortBy == column {
		if qc.sortOrder == "asc" {
			qc.sortOrder = "desc"
		} else {
			qc.sortOrder = "asc"
		}
	} else {
		qc.sortBy = column
		qc.sortOrder = "asc"
	}
	qc.pageIndex = 0
}

// SetPage navigates to a page. Pure page navigation keeps the rest of the
// descriptor and does not reset anything.
func (qc *Composer) SetPage(pageIndex int) {
	qc.pageIndex = pageIndex
}

// SetPageSize changes the window length and returns to the first page.
func (qc *Composer) SetPageSize(pageSize int) {
	qc.pageSize = pageSize
	qc.pageIndex = 0
}

// Values renders the full current descriptor as query parameters.
func (qc *Composer) Values() url.Values {
	values := url.Values{}
	values.Set("search", qc.search)
	values.Set("genre", qc.genre)
	values.Set("sortBy", qc.sortBy)
	values.Set("sortOrder", qc.sortOrder)
	values.Set("pageIndex", strconv.Itoa(qc.pageIndex))
	values.Set("pageSize", strconv.Itoa(qc.pageSize))
	return values
}

// Load fetches the window described by the current state.
func (qc *Composer) Load(ctx context.Context) (*BookList, error) {
	return qc.client.ListBooks(ctx, qc.Values())
}
