// Package gormstore implements store.Store on gorm for the self-hosted
// backend (PostgreSQL in production, SQLite for tests and single-user use).
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/store"
)

type Store struct {
	db        *gorm.DB
	models    map[string]reflect.Type
	relations map[string]string
}

var _ store.Store = (*Store)(nil)

// New registers the application tables. Expansions of "clients" preload the
// Client field of the parent row.
func New(db *gorm.DB) *Store {
	s := &Store{
		db:        db,
		models:    map[string]reflect.Type{},
		relations: map[string]string{},
	}
	s.Register(store.Clients, &models.Client{})
	s.Register(store.Quotes, &models.Quote{})
	s.Register(store.Jobs, &models.Job{})
	s.Register(store.EmailTemplates, &models.EmailTemplate{})
	s.Register(store.PortfolioItems, &models.PortfolioItem{})
	s.RegisterRelation(store.Clients, "Client")
	return s
}

// Register maps a table to its model. model must be a pointer to a struct.
func (s *Store) Register(table string, model any) {
	s.models[table] = reflect.TypeOf(model).Elem()
}

// RegisterRelation maps an expanded table to the struct field that holds it.
func (s *Store) RegisterRelation(table, field string) {
	s.relations[table] = field
}

func (s *Store) newModel(table string) (any, error) {
	t, ok := s.models[table]
	if !ok {
		return nil, fmt.Errorf("gormstore: unknown table %q", table)
	}
	return reflect.New(t).Interface(), nil
}

func (s *Store) Select(ctx context.Context, table string, q store.Query, dest any) error {
	if err := store.CheckQuery(table, q); err != nil {
		return err
	}
	model, err := s.newModel(table)
	if err != nil {
		return err
	}
	tx := s.db.WithContext(ctx).Model(model)
	if cols := projection(q.Columns); len(cols) > 0 {
		tx = tx.Select(cols)
	}
	tx = where(tx, q.Filters)
	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	for _, e := range q.Expand {
		field, ok := s.relations[e.Table]
		if !ok {
			return fmt.Errorf("gormstore: no relation registered for %q", e.Table)
		}
		cols := e.Columns
		tx = tx.Preload(field, func(db *gorm.DB) *gorm.DB {
			if len(cols) == 0 {
				return db
			}
			return db.Select(append([]string{"id"}, cols...))
		})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return wrap("select", table, tx.Find(dest).Error)
}

func (s *Store) Count(ctx context.Context, table string, filters ...store.Filter) (int64, error) {
	if err := store.CheckWrite(table, filters, false); err != nil {
		return 0, err
	}
	model, err := s.newModel(table)
	if err != nil {
		return 0, err
	}
	var n int64
	err = where(s.db.WithContext(ctx).Model(model), filters).Count(&n).Error
	return n, wrap("count", table, err)
}

func (s *Store) Insert(ctx context.Context, table string, row any) error {
	if err := store.CheckWrite(table, nil, false); err != nil {
		return err
	}
	if err := s.checkRow(table, row); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error
	return wrap("insert", table, err)
}

// Update writes every column of row except the identity columns, zero values
// included.
func (s *Store) Update(ctx context.Context, table string, row any, filters ...store.Filter) error {
	if err := store.CheckWrite(table, filters, true); err != nil {
		return err
	}
	model, err := s.newModel(table)
	if err != nil {
		return err
	}
	tx := where(s.db.WithContext(ctx).Model(model), filters)
	if _, isMap := row.(map[string]any); isMap {
		return wrap("update", table, tx.Updates(row).Error)
	}
	if err := s.checkRow(table, row); err != nil {
		return err
	}
	err = tx.Select("*").Omit("id", "user_id", "created_at", clause.Associations).Updates(row).Error
	return wrap("update", table, err)
}

func (s *Store) Delete(ctx context.Context, table string, filters ...store.Filter) error {
	if err := store.CheckWrite(table, filters, true); err != nil {
		return err
	}
	model, err := s.newModel(table)
	if err != nil {
		return err
	}
	err = where(s.db.WithContext(ctx), filters).Delete(model).Error
	return wrap("delete", table, err)
}

func (s *Store) checkRow(table string, row any) error {
	want, ok := s.models[table]
	if !ok {
		return fmt.Errorf("gormstore: unknown table %q", table)
	}
	got := reflect.TypeOf(row)
	if got == nil || got.Kind() != reflect.Pointer || got.Elem() != want {
		return fmt.Errorf("gormstore: %s expects *%s, got %v", table, want.Name(), got)
	}
	return nil
}

func projection(cols []string) []string {
	if len(cols) == 1 && cols[0] == "*" {
		return nil
	}
	return cols
}

func where(tx *gorm.DB, filters []store.Filter) *gorm.DB {
	for _, f := range filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	return tx
}

// wrap turns database failures into *store.Error so callers see the same
// shape as with the hosted backend. Context errors pass through untouched.
func wrap(op, table string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("gormstore %s %s: %w", op, table, err)
	}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		status = http.StatusConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	}
	return &store.Error{Status: status, Message: err.Error()}
}
