package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/repository"
)

// Counter counts the rows of one account.
type Counter interface {
	Table() string
	Count(ctx context.Context, userID string) (int64, error)
}

// Counts is what the dashboard cards show.
type Counts struct {
	Clients   int64 `json:"clients"`
	Quotes    int64 `json:"quotes"`
	Jobs      int64 `json:"jobs"`
	Portfolio int64 `json:"portfolio_items"`
}

type DashboardService struct {
	clients, quotes, jobs, portfolio Counter
	log                              logger.Logger
}

func NewDashboardService(set *repository.Set, log logger.Logger) *DashboardService {
	return &DashboardService{
		clients:   set.Clients,
		quotes:    set.Quotes,
		jobs:      set.Jobs,
		portfolio: set.Portfolio,
		log:       log,
	}
}

// Counts runs the four counts concurrently. A failed count reads as zero and
// is logged; the failures are also returned joined.
func (s *DashboardService) Counts(ctx context.Context, userID string) (Counts, error) {
	var out Counts
	targets := []struct {
		c   Counter
		dst *int64
	}{
		{s.clients, &out.Clients},
		{s.quotes, &out.Quotes},
		{s.jobs, &out.Jobs},
		{s.portfolio, &out.Portfolio},
	}
	errs := make([]error, len(targets))

	var g errgroup.Group
	for i, tg := range targets {
		g.Go(func() error {
			n, err := tg.c.Count(ctx, userID)
			if err != nil {
				s.log.WithFields(map[string]any{"table": tg.c.Table(), "error": err.Error()}).Warn("Dashboard count failed")
				errs[i] = err
				return nil
			}
			*tg.dst = n
			return nil
		})
	}
	_ = g.Wait()
	return out, errors.Join(errs...)
}
