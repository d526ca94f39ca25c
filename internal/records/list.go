// Package records holds the state behind every list page: the loaded rows,
// the live search and the single pending deletion.
package records

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrUnknownRow is returned when arming a row that is not loaded.
	ErrUnknownRow = errors.New("records: row not loaded")
	// ErrNothingArmed is returned by Confirm without a prior Arm.
	ErrNothingArmed = errors.New("records: no deletion armed")
)

// Fetch loads the rows of the current account.
type Fetch[T any] func(ctx context.Context) ([]T, error)

// DeleteFunc removes one row by id.
type DeleteFunc func(ctx context.Context, id string) error

// List is the state of one list page. It is built per request and is not
// safe for concurrent use.
type List[T any] struct {
	id     func(T) string
	fields func(T) []string

	rows    []T
	visible []T
	query   string
	armed   string
	loading bool
	err     error
}

// NewList builds an empty list. id extracts the row id and fields returns
// the texts matched by Search.
func NewList[T any](id func(T) string, fields func(T) []string) *List[T] {
	return &List[T]{id: id, fields: fields}
}

// Load replaces the rows with the result of fetch. A failed fetch leaves the
// list empty and is kept in Err. When ctx is already done as fetch returns
// the result is dropped and the list keeps its previous state.
func (l *List[T]) Load(ctx context.Context, fetch Fetch[T]) error {
	l.loading = true
	rows, err := fetch(ctx)
	l.loading = false
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	l.armed = ""
	if err != nil {
		l.rows, l.visible, l.err = nil, nil, err
		return err
	}
	l.rows, l.err = rows, nil
	l.visible = l.filter(l.query)
	return nil
}

// Search narrows the visible rows to those with a field containing q,
// ignoring case. An empty q shows every loaded row. The store is not queried.
func (l *List[T]) Search(q string) []T {
	l.query = q
	l.visible = l.filter(q)
	return l.visible
}

func (l *List[T]) filter(q string) []T {
	if q == "" {
		out := make([]T, len(l.rows))
		copy(out, l.rows)
		return out
	}
	needle := strings.ToLower(q)
	out := make([]T, 0, len(l.rows))
	for _, row := range l.rows {
		for _, f := range l.fields(row) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// Find returns the loaded row with the given id.
func (l *List[T]) Find(id string) (T, bool) {
	for _, row := range l.rows {
		if l.id(row) == id {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// Arm marks a row for deletion, replacing any earlier choice. Nothing is
// deleted until Confirm.
func (l *List[T]) Arm(id string) error {
	if _, ok := l.Find(id); !ok {
		return ErrUnknownRow
	}
	l.armed = id
	return nil
}

// Cancel drops the pending deletion.
func (l *List[T]) Cancel() { l.armed = "" }

// Armed returns the id waiting for confirmation.
func (l *List[T]) Armed() (string, bool) {
	return l.armed, l.armed != ""
}

// Confirm deletes the armed row through del. The row leaves the list only
// when del succeeds. Either way nothing is armed afterwards.
func (l *List[T]) Confirm(ctx context.Context, del DeleteFunc) error {
	id := l.armed
	if id == "" {
		return ErrNothingArmed
	}
	l.armed = ""
	if err := del(ctx, id); err != nil {
		return err
	}
	l.rows = l.without(l.rows, id)
	l.visible = l.without(l.visible, id)
	return nil
}

func (l *List[T]) without(rows []T, id string) []T {
	out := rows[:0:0]
	for _, row := range rows {
		if l.id(row) != id {
			out = append(out, row)
		}
	}
	return out
}

// Rows returns every loaded row.
func (l *List[T]) Rows() []T { return l.rows }

// Visible returns the rows matching the current query.
func (l *List[T]) Visible() []T { return l.visible }

func (l *List[T]) Query() string { return l.query }

func (l *List[T]) Loading() bool { return l.loading }

// Err is the failure of the last Load, if any.
func (l *List[T]) Err() error { return l.err }
