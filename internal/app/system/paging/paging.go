// internal/app/system/paging/paging.go

// Package paging implements page-number pagination with the
// {results, page, limit, totalPages, totalResults} envelope the
// dashboard clients already consume. Sort specs use the
// "field:asc|desc" form.
package paging

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultLimit is the page size used when the request does not specify
// one. MaxLimit caps what a client can ask for.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are the pagination inputs for a list query.
type Params struct {
	SortBy string // "field:asc" or "field:desc"; empty means natural order
	Limit  int
	Page   int // 1-based
}

// Parse extracts sortBy/limit/page query parameters, clamping limit and
// page to sane values.
func Parse(r *http.Request) Params {
	p := Params{
		SortBy: strings.TrimSpace(query.Get(r, "sortBy")),
		Limit:  DefaultLimit,
		Page:   1,
	}
	if n, err := strconv.Atoi(query.Get(r, "limit")); err == nil && n > 0 {
		p.Limit = n
		if p.Limit > MaxLimit {
			p.Limit = MaxLimit
		}
	}
	if n, err := strconv.Atoi(query.Get(r, "page")); err == nil && n > 0 {
		p.Page = n
	}
	return p
}

// Normalize fills zero values with defaults so stores can accept a
// zero Params and still behave.
func (p Params) Normalize() Params {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	p = p.Normalize()
	return int64(p.Page-1) * int64(p.Limit)
}

// Sort parses the SortBy spec into a Mongo sort document. An
// unrecognized direction defaults to ascending.
func (p Params) Sort() bson.D {
	if p.SortBy == "" {
		return nil
	}
	field, dir, _ := strings.Cut(p.SortBy, ":")
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	order := 1
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		order = -1
	}
	return bson.D{{Key: field, Value: order}}
}

// FindOptions builds the Find options (sort, skip, limit) for this page.
func (p Params) FindOptions() *options.FindOptions {
	p = p.Normalize()
	opts := options.Find().SetSkip(p.Skip()).SetLimit(int64(p.Limit))
	if sort := p.Sort(); sort != nil {
		opts.SetSort(sort)
	}
	return opts
}

// Page is the pagination envelope returned by list endpoints.
type Page[T any] struct {
	Results      []T   `json:"results"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
}

// NewPage wraps results in the envelope, computing totalPages from the
// collection count. Results is never nil so the JSON field encodes as
// [] rather than null.
func NewPage[T any](results []T, p Params, total int64) Page[T] {
	p = p.Normalize()
	if results == nil {
		results = []T{}
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return Page[T]{
		Results:      results,
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   pages,
		TotalResults: total,
	}
}
