// Package store is the generic table API the application talks to. Two
// implementations exist: a PostgREST client for the hosted backend and a gorm
// store for the self-hosted one.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Table names shared by both backends.
const (
	Clients        = "clients"
	Quotes         = "quotes"
	Jobs           = "jobs"
	EmailTemplates = "email_templates"
	PortfolioItems = "portfolio_items"
)

// ErrNotFound is returned by single-row lookups that matched nothing.
var ErrNotFound = errors.New("record not found")

// Filter is an equality predicate on one column.
type Filter struct {
	Column string
	Value  string
}

// Eq builds a Filter.
func Eq(column, value string) Filter { return Filter{Column: column, Value: value} }

// Order sorts by one column.
type Order struct {
	Column string
	Desc   bool
}

// Expand embeds a related collection, e.g. clients(name,email).
type Expand struct {
	Table   string
	Columns []string
}

// Query describes a read.
type Query struct {
	Columns []string // empty selects every column
	Filters []Filter
	Order   []Order
	Expand  []Expand
	Limit   int
}

// Store is the table API.
type Store interface {
	// Select decodes matching rows into dest, a pointer to a slice.
	Select(ctx context.Context, table string, q Query, dest any) error
	// Count returns the exact number of matching rows.
	Count(ctx context.Context, table string, filters ...Filter) (int64, error)
	// Insert stores one row.
	Insert(ctx context.Context, table string, row any) error
	// Update replaces the columns of the rows matching filters with row.
	Update(ctx context.Context, table string, row any, filters ...Filter) error
	// Delete removes the rows matching filters. At least one filter is required.
	Delete(ctx context.Context, table string, filters ...Filter) error
}

// Error is a failure reported by the backend. Message is the backend's own
// text and is safe to show to the user.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store: %s (status %d, code %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("store: %s (status %d)", e.Message, e.Status)
}

// MessageOf returns the backend message carried by err, or fallback when err
// is not a backend error.
func MessageOf(err error, fallback string) string {
	var se *Error
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidIdent reports whether name is safe to use as a table or column name.
func ValidIdent(name string) bool {
	return identRe.MatchString(name)
}

// CheckQuery rejects identifiers that are not plain snake_case names.
func CheckQuery(table string, q Query) error {
	if !ValidIdent(table) {
		return fmt.Errorf("store: invalid table %q", table)
	}
	for _, c := range q.Columns {
		if c != "*" && !ValidIdent(c) {
			return fmt.Errorf("store: invalid column %q", c)
		}
	}
	if err := checkFilters(q.Filters); err != nil {
		return err
	}
	for _, o := range q.Order {
		if !ValidIdent(o.Column) {
			return fmt.Errorf("store: invalid order column %q", o.Column)
		}
	}
	for _, e := range q.Expand {
		if !ValidIdent(e.Table) {
			return fmt.Errorf("store: invalid expand table %q", e.Table)
		}
		for _, c := range e.Columns {
			if !ValidIdent(c) {
				return fmt.Errorf("store: invalid expand column %q", c)
			}
		}
	}
	if q.Limit < 0 {
		return fmt.Errorf("store: negative limit %d", q.Limit)
	}
	return nil
}

// CheckWrite validates the table and filters of a write.
func CheckWrite(table string, filters []Filter, requireFilter bool) error {
	if !ValidIdent(table) {
		return fmt.Errorf("store: invalid table %q", table)
	}
	if requireFilter && len(filters) == 0 {
		return fmt.Errorf("store: refusing unfiltered write on %s", table)
	}
	return checkFilters(filters)
}

func checkFilters(filters []Filter) error {
	for _, f := range filters {
		if !ValidIdent(f.Column) {
			return fmt.Errorf("store: invalid filter column %q", f.Column)
		}
	}
	return nil
}
