// Package listing derives searchable, sortable, paginated views over an
// in-memory record set. A Controller owns the view state for one list and
// recomputes its view on demand; the source records are never mutated.
package listing

import (
	"math"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/JaimeStill/backoffice/pkg/record"
)

// DefaultPageSize is used when a Config leaves PageSize unset.
const DefaultPageSize = 5

// Direction is the ordering applied to the active sort field.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Sort names the active sort field and its direction. An empty Field means
// records are shown in source order.
type Sort struct {
	Field     string    `json:"field,omitempty"`
	Direction Direction `json:"direction"`
}

// Accessor reads a named field from a record.
type Accessor[T any] func(item T, field string) (any, bool)

// Config describes how a Controller searches, sorts and pages its records.
type Config[T any] struct {
	// SearchFields are the fields matched against the search query.
	SearchFields []string

	// SortFields restricts which fields may be sorted on. Empty allows any field.
	SortFields []string

	PageSize int

	// Value reads fields from a record. Defaults to map lookup for
	// record.Record and map[string]any element types.
	Value Accessor[T]

	// Language selects the collation used for string ordering.
	// Defaults to English.
	Language language.Tag
}

// Controller holds the query, sort and page state for a list of records.
// It is not safe for concurrent use.
type Controller[T any] struct {
	source   []T
	cfg      Config[T]
	query    string
	sort     Sort
	page     int
	pageSize int
	collator *collate.Collator
}

// New creates a Controller over records. The slice is retained but never modified.
func New[T any](records []T, cfg Config[T]) *Controller[T] {
	if cfg.Value == nil {
		cfg.Value = mapAccessor[T]
	}
	if cfg.Language == language.Und {
		cfg.Language = language.English
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Controller[T]{
		source:   records,
		cfg:      cfg,
		page:     1,
		pageSize: pageSize,
		collator: collate.New(cfg.Language),
	}
}

// Replace swaps the source records wholesale, keeping query and sort and
// returning to the first page.
func (c *Controller[T]) Replace(records []T) {
	c.source = records
	c.page = 1
}

// SetQuery replaces the search text and returns to the first page.
func (c *Controller[T]) SetQuery(text string) {
	c.query = text
	c.page = 1
}

// SetSort toggles the direction when field is already active, otherwise
// sorts on field ascending. Fields outside Config.SortFields are ignored.
// The current page is kept.
func (c *Controller[T]) SetSort(field string) {
	if !c.sortable(field) {
		return
	}

	if c.sort.Field == field {
		if c.sort.Direction == Ascending {
			c.sort.Direction = Descending
		} else {
			c.sort.Direction = Ascending
		}
		return
	}

	c.sort = Sort{Field: field, Direction: Ascending}
}

// SortBy sets the sort field and direction explicitly. An empty field clears
// the sort. Fields outside Config.SortFields are ignored.
func (c *Controller[T]) SortBy(field string, dir Direction) {
	if field == "" {
		c.sort = Sort{}
		return
	}
	if !c.sortable(field) {
		return
	}
	c.sort = Sort{Field: field, Direction: dir}
}

// SetPage moves to page n when 1 <= n <= TotalPages; otherwise it does nothing.
func (c *Controller[T]) SetPage(n int) {
	if n < 1 || n > c.totalPages(len(c.filtered())) {
		return
	}
	c.page = n
}

// SetPageSize changes the page size and returns to the first page.
// Non-positive sizes are ignored.
func (c *Controller[T]) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.pageSize = n
	c.page = 1
}

func (c *Controller[T]) Query() string { return c.query }
func (c *Controller[T]) Sort() Sort    { return c.sort }
func (c *Controller[T]) Page() int     { return c.page }
func (c *Controller[T]) PageSize() int { return c.pageSize }

// View computes the current page. It has no side effects.
func (c *Controller[T]) View() View[T] {
	sorted := c.sorted(c.filtered())

	start := (c.page - 1) * c.pageSize
	end := min(start+c.pageSize, len(sorted))

	rows := []T{}
	if start < len(sorted) {
		rows = slices.Clone(sorted[start:end])
	}

	return View[T]{
		Rows:       rows,
		TotalCount: len(sorted),
		Page:       c.page,
		PageSize:   c.pageSize,
		TotalPages: c.totalPages(len(sorted)),
		Query:      c.query,
		Sort:       c.sort,
	}
}

func (c *Controller[T]) filtered() []T {
	if c.query == "" {
		return c.source
	}

	needle := strings.ToLower(c.query)
	out := make([]T, 0, len(c.source))
	for _, item := range c.source {
		if c.matches(item, needle) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Controller[T]) matches(item T, needle string) bool {
	for _, field := range c.cfg.SearchFields {
		v, ok := c.cfg.Value(item, field)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(record.Format(v)), needle) {
			return true
		}
	}
	return false
}

func (c *Controller[T]) sorted(items []T) []T {
	out := slices.Clone(items)
	if c.sort.Field == "" {
		return out
	}

	field := c.sort.Field
	desc := c.sort.Direction == Descending

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := c.cfg.Value(out[i], field)
		b, _ := c.cfg.Value(out[j], field)
		cmp := c.compare(a, b)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return out
}

func (c *Controller[T]) sortable(field string) bool {
	if field == "" {
		return false
	}
	if len(c.cfg.SortFields) == 0 {
		return true
	}
	return slices.Contains(c.cfg.SortFields, field)
}

func (c *Controller[T]) totalPages(count int) int {
	return int(math.Ceil(float64(count) / float64(c.pageSize)))
}

func mapAccessor[T any](item T, field string) (any, bool) {
	switch m := any(item).(type) {
	case record.Record:
		return m.Value(field)
	case map[string]any:
		v, ok := m[field]
		return v, ok
	}
	return nil, false
}
