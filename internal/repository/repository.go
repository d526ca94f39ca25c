// Package repository maps each entity onto its backend table. Every read and
// write is scoped to one account.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/diewo77/go-photodesk/internal/policy"
	"github.com/diewo77/go-photodesk/internal/store"
)

// ErrNoOwner is returned when a row reaches Create without its account id.
var ErrNoOwner = errors.New("repository: row has no owner")

// Repo is the account-scoped CRUD shared by all tables.
type Repo[T any] struct {
	store  store.Store
	table  string
	order  []store.Order
	expand []store.Expand
}

func newRepo[T any](s store.Store, table string, order []store.Order, expand ...store.Expand) Repo[T] {
	return Repo[T]{store: s, table: table, order: order, expand: expand}
}

var newestFirst = []store.Order{{Column: "created_at", Desc: true}}

// Table is the backend table name.
func (r Repo[T]) Table() string { return r.table }

// List returns every row of the account.
func (r Repo[T]) List(ctx context.Context, userID string) ([]T, error) {
	var rows []T
	q := store.Query{
		Filters: []store.Filter{store.Eq("user_id", userID)},
		Order:   r.order,
		Expand:  r.expand,
	}
	if err := r.store.Select(ctx, r.table, q, &rows); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	return policy.FilterOwned(userID, rows), nil
}

// Get returns one row of the account or store.ErrNotFound.
func (r Repo[T]) Get(ctx context.Context, userID, id string) (*T, error) {
	var rows []T
	q := store.Query{
		Filters: []store.Filter{store.Eq("id", id), store.Eq("user_id", userID)},
		Expand:  r.expand,
		Limit:   1,
	}
	if err := r.store.Select(ctx, r.table, q, &rows); err != nil {
		return nil, fmt.Errorf("get %s %s: %w", r.table, id, err)
	}
	if len(rows) == 0 || !policy.Owns(userID, &rows[0]) {
		return nil, store.ErrNotFound
	}
	return &rows[0], nil
}

// Count returns the exact number of rows of the account.
func (r Repo[T]) Count(ctx context.Context, userID string) (int64, error) {
	n, err := r.store.Count(ctx, r.table, store.Eq("user_id", userID))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}
	return n, nil
}

// Create inserts row. The row must already carry its owner.
func (r Repo[T]) Create(ctx context.Context, row *T) error {
	owned, ok := any(row).(policy.Ownable)
	if !ok || owned.GetUserID() == "" {
		return ErrNoOwner
	}
	if err := r.store.Insert(ctx, r.table, row); err != nil {
		return fmt.Errorf("create %s: %w", r.table, err)
	}
	return nil
}

// Update replaces every column of the row with the given id.
func (r Repo[T]) Update(ctx context.Context, userID, id string, row *T) error {
	if !policy.Owns(userID, row) {
		return ErrNoOwner
	}
	err := r.store.Update(ctx, r.table, row, store.Eq("id", id), store.Eq("user_id", userID))
	if err != nil {
		return fmt.Errorf("update %s %s: %w", r.table, id, err)
	}
	return nil
}

// Delete removes the row with the given id. Deleting a missing row is not
// an error, matching the REST backend.
func (r Repo[T]) Delete(ctx context.Context, userID, id string) error {
	if err := r.store.Delete(ctx, r.table, store.Eq("id", id), store.Eq("user_id", userID)); err != nil {
		return fmt.Errorf("delete %s %s: %w", r.table, id, err)
	}
	return nil
}
