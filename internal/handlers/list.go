package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diewo77/go-photodesk/httpx"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/records"
)

// lister is the slice of a repository a list page needs.
type lister[T any] interface {
	List(ctx context.Context, userID string) ([]T, error)
	Delete(ctx context.Context, userID, id string) error
}

// listPage serves the list of one table: GET shows the rows filtered by ?q,
// ?excluir=<id> arms the deletion of one row and asks for confirmation, and
// POST <base>/{id}/delete confirms it.
type listPage[T any] struct {
	repo     lister[T]
	base     string
	template string
	log      logger.Logger

	id     func(T) string
	fields func(T) []string
	label  func(T) string

	// extend adds page specific data, e.g. totals.
	extend func(r *http.Request, l *records.List[T], data map[string]any)
}

func (p *listPage[T]) newList() *records.List[T] {
	return records.NewList(p.id, p.fields)
}

// load builds the list of the signed-in account with q applied.
func (p *listPage[T]) load(r *http.Request, userID, q string) (*records.List[T], error) {
	l := p.newList()
	l.Search(q)
	err := l.Load(r.Context(), func(ctx context.Context) ([]T, error) {
		return p.repo.List(ctx, userID)
	})
	return l, err
}

// Index handles GET <base>.
func (p *listPage[T]) Index(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	l, err := p.load(r, s.UserID, q)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		p.log.WithFields(map[string]any{"path": r.URL.Path, "error": err.Error()}).Error("List load failed")
		p.respond(w, r, storeStatus(err), l, storeMessage(r, err, "list.load_failed"))
		return
	}
	if id := r.URL.Query().Get("excluir"); id != "" {
		if err := l.Arm(id); err != nil {
			notFound(w, r, p.log)
			return
		}
	}
	p.respond(w, r, http.StatusOK, l, "")
}

// Delete handles POST <base>/{id}/delete. The row must belong to the loaded
// list of the account; anything else is a 404 and nothing is deleted.
func (p *listPage[T]) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	q := r.FormValue("q")
	l, err := p.load(r, s.UserID, q)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		p.log.WithFields(map[string]any{"path": r.URL.Path, "error": err.Error()}).Error("List load failed")
		p.respond(w, r, storeStatus(err), l, storeMessage(r, err, "list.load_failed"))
		return
	}
	if err := l.Arm(id); err != nil {
		notFound(w, r, p.log)
		return
	}
	err = l.Confirm(r.Context(), func(ctx context.Context, id string) error {
		return p.repo.Delete(ctx, s.UserID, id)
	})
	if err != nil {
		p.log.WithFields(map[string]any{"path": r.URL.Path, "id": id, "error": err.Error()}).Error("Delete failed")
		p.respond(w, r, storeStatus(err), l, storeMessage(r, err, "list.delete_failed"))
		return
	}
	p.log.WithFields(map[string]any{"path": r.URL.Path, "id": id}).Info("Record deleted")

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
		return
	}
	target := p.base
	if q != "" {
		target += "?q=" + url.QueryEscape(q)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (p *listPage[T]) respond(w http.ResponseWriter, r *http.Request, status int, l *records.List[T], errMsg string) {
	items := l.Visible()
	if items == nil {
		items = []T{}
	}
	if httpx.WantsJSON(r) {
		if errMsg != "" {
			httpx.JSONError(w, status, errMsg, nil)
			return
		}
		httpx.JSON(w, status, map[string]any{"items": items, "total": len(l.Rows()), "query": l.Query()})
		return
	}

	data := map[string]any{
		"Items":   items,
		"Total":   len(l.Rows()),
		"Query":   l.Query(),
		"Base":    p.base,
		"ArmedID": "",
		"Error":   errMsg,
	}
	if id, ok := l.Armed(); ok {
		data["ArmedID"] = id
		if row, found := l.Find(id); found && p.label != nil {
			data["ArmedLabel"] = p.label(row)
		}
	}
	if p.extend != nil {
		p.extend(r, l, data)
	}
	render(w, r, p.log, status, p.template, data)
}
