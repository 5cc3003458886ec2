// Package pagination turns a page of results into the list envelope shared
// by every collection endpoint.
package pagination

import (
	"errors"
	"math"
	"net/url"
	"strconv"
)

// ErrInvalidPageSize is returned for a page size below 1.
var ErrInvalidPageSize = errors.New("page size must be at least 1")

// MaxPage is the highest page a list operation accepts.
const MaxPage = 1_000_000

// Query is the query schema embedded by list operations.
type Query struct {
	Page     int `query:"page" default:"1" validate:"min=1,max=1000000" description:"Page number, starting at 1."`
	PageSize int `query:"pageSize" default:"20" validate:"min=1,max=100" description:"Number of results per page."`
}

// Skip is the number of rows before the requested page. It saturates at
// math.MaxInt instead of overflowing, which selects an empty page.
func (q Query) Skip() int {
	if q.Page < 1 || q.PageSize < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PageSize
}

// Take is the maximum number of rows in the requested page.
func (q Query) Take() int {
	return q.PageSize
}

// PageLinks are the navigation links of an Envelope. Next and Prev are
// omitted on the last and first pages.
type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Next  *string `json:"next,omitempty"`
	Prev  *string `json:"prev,omitempty"`
}

// Envelope is the body of every list response.
type Envelope[T any] struct {
	Results []T       `json:"results"`
	Count   int       `json:"count"`
	Total   int64     `json:"total"`
	Links   PageLinks `json:"_links"`
}

// LinkFunc renders the link to a page.
type LinkFunc func(page int) string

// Paginate wraps one page of items. total is the size of the whole
// collection. The last link points at page 1 when the collection is empty.
func Paginate[T any](items []T, total int64, q Query, link LinkFunc) (Envelope[T], error) {
	if q.PageSize < 1 {
		return Envelope[T]{}, ErrInvalidPageSize
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	lastPage := max(totalPages, 1)

	if items == nil {
		items = []T{}
	}

	env := Envelope[T]{
		Results: items,
		Count:   len(items),
		Total:   total,
		Links: PageLinks{
			First: link(1),
			Last:  link(lastPage),
		},
	}
	if q.Page < totalPages {
		next := link(q.Page + 1)
		env.Links.Next = &next
	}
	if q.Page > 1 {
		prev := link(q.Page - 1)
		env.Links.Prev = &prev
	}
	return env, nil
}

// Links returns a LinkFunc for base that keeps the other query parameters
// of the request and replaces page.
func Links(base string, query url.Values) LinkFunc {
	kept := make(url.Values, len(query))
	for k, v := range query {
		if k == "page" {
			continue
		}
		kept[k] = append([]string(nil), v...)
	}

	return func(page int) string {
		values := make(url.Values, len(kept)+1)
		for k, v := range kept {
			values[k] = v
		}
		values.Set("page", strconv.Itoa(page))
		return base + "?" + values.Encode()
	}
}
