package data

// DefaultPageSize is the window length used when the caller supplies none.
const DefaultPageSize = 10

// MaxPageSize caps the window length a caller may request.
const MaxPageSize = 100

// MaxPageIndex caps the page a caller may request, keeping the OFFSET
// computation well inside the int range.
const MaxPageIndex = 10_000_000

// sortColumns enumerates the sortable attributes and maps each request
// parameter value to its column. Anything outside this set falls back to
// the default ordering.
var sortColumns = map[string]string{
	"title":           "title",
	"author":          "author",
	"genre":           "genre",
	"publicationYear": "publication_year",
	"rating":          "rating",
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
}

// Filters defines the sort and pagination parameters of one list request.
// PageIndex is zero-based.
type Filters struct {
	SortBy    string
	SortOrder string
	PageIndex int
	PageSize  int
}

// Normalize coerces malformed pagination values to their defaults rather
// than rejecting them: an out-of-range page index becomes 0, a non-positive
// page size becomes DefaultPageSize, and an oversized page size is capped.
func (f Filters) Normalize() Filters {
	if f.PageIndex < 0 || f.PageIndex > MaxPageIndex {
		f.PageIndex = 0
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// SortColumn returns the column to sort by. An empty or unrecognized SortBy
// yields the default ordering column, created_at.
func (f Filters) SortColumn() string {
	if column, ok := sortColumns[f.SortBy]; ok {
		return column
	}
	return "created_at"
}

// SortDirection returns "ASC" or "DESC". The default ordering is newest
// first, so it is DESC whenever no recognized sort column was requested;
// an explicit sort column is ascending unless the caller asked for "desc".
func (f Filters) SortDirection() string {
	if _, ok := sortColumns[f.SortBy]; !ok {
		return "DESC"
	}
	if f.SortOrder == "desc" {
		return "DESC"
	}
	return "ASC"
}

// Limit returns the LIMIT value for the result window.
func (f Filters) Limit() int {
	return f.PageSize
}

// Offset returns the OFFSET value for the result window.
func (f Filters) Offset() int {
	return f.PageIndex * f.PageSize
}
