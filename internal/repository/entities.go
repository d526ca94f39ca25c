package repository

import (
	"context"
	"fmt"

	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/store"
)

type Clients struct {
	Repo[models.Client]
}

func NewClients(s store.Store) *Clients {
	return &Clients{newRepo[models.Client](s, store.Clients, newestFirst)}
}

// Options lists id and name of every client, sorted by name, for dropdowns.
func (r *Clients) Options(ctx context.Context, userID string) ([]models.ClientOption, error) {
	var opts []models.ClientOption
	q := store.Query{
		Columns: []string{"id", "name"},
		Filters: []store.Filter{store.Eq("user_id", userID)},
		Order:   []store.Order{{Column: "name"}},
	}
	if err := r.store.Select(ctx, r.table, q, &opts); err != nil {
		return nil, fmt.Errorf("client options: %w", err)
	}
	return opts, nil
}

type Quotes struct {
	Repo[models.Quote]
}

// NewQuotes reads quotes with their client's name and e-mail embedded.
func NewQuotes(s store.Store) *Quotes {
	return &Quotes{newRepo[models.Quote](s, store.Quotes, newestFirst,
		store.Expand{Table: store.Clients, Columns: []string{"name", "email"}})}
}

type Jobs struct {
	Repo[models.Job]
}

func NewJobs(s store.Store) *Jobs {
	return &Jobs{newRepo[models.Job](s, store.Jobs, newestFirst,
		store.Expand{Table: store.Clients, Columns: []string{"name"}})}
}

type Templates struct {
	Repo[models.EmailTemplate]
}

func NewTemplates(s store.Store) *Templates {
	return &Templates{newRepo[models.EmailTemplate](s, store.EmailTemplates, newestFirst)}
}

type Portfolio struct {
	Repo[models.PortfolioItem]
}

// NewPortfolio sorts items by their display position.
func NewPortfolio(s store.Store) *Portfolio {
	return &Portfolio{newRepo[models.PortfolioItem](s, store.PortfolioItems,
		[]store.Order{{Column: "order"}, {Column: "created_at"}})}
}

// Public lists the items of one photographer for the public page. It takes
// no session; the hosted backend must allow anonymous reads of this table.
func (r *Portfolio) Public(ctx context.Context, userID string) ([]models.PortfolioItem, error) {
	return r.List(ctx, userID)
}

// Set groups the repositories handed to the handlers.
type Set struct {
	Clients   *Clients
	Quotes    *Quotes
	Jobs      *Jobs
	Templates *Templates
	Portfolio *Portfolio
}

func NewSet(s store.Store) *Set {
	return &Set{
		Clients:   NewClients(s),
		Quotes:    NewQuotes(s),
		Jobs:      NewJobs(s),
		Templates: NewTemplates(s),
		Portfolio: NewPortfolio(s),
	}
}
