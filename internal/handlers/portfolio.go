package handlers

import (
	"net/http"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/httpx"
	"github.com/diewo77/go-photodesk/internal/forms"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/records"
	"github.com/diewo77/go-photodesk/internal/repository"
)

const portfolioPath = "/dashboard/portfolio"

// PublicPortfolioPath is the anonymous gallery of one photographer.
func PublicPortfolioPath(userID string) string { return "/portfolio/" + userID }

type PortfolioHandler struct {
	*listPage[models.PortfolioItem]
	items *repository.Portfolio
	log   logger.Logger
}

func NewPortfolioHandler(items *repository.Portfolio, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		listPage: &listPage[models.PortfolioItem]{
			repo:     items,
			base:     portfolioPath,
			template: "portfolio/index.html",
			log:      log,
			id:       func(p models.PortfolioItem) string { return p.ID },
			fields:   models.PortfolioItem.SearchFields,
			label:    func(p models.PortfolioItem) string { return p.Title },
			extend: func(r *http.Request, _ *records.List[models.PortfolioItem], data map[string]any) {
				if s, ok := auth.SessionFromContext(r.Context()); ok {
					data["PublicURL"] = PublicPortfolioPath(s.UserID)
				}
			},
		},
		items: items,
		log:   log,
	}
}

func (h *PortfolioHandler) New(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentSession(w, r); !ok {
		return
	}
	render(w, r, h.log, http.StatusOK, "portfolio/form.html", map[string]any{"Form": forms.Portfolio{}})
}

func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	f := forms.PortfolioFromValues(formValues(r))
	data := map[string]any{"Form": f}
	if v := f.Validate(); !v.Empty() {
		formFailed(w, r, h.log, "portfolio/form.html", data, v)
		return
	}
	row := f.Model(s.UserID)
	if err := h.items.Create(r.Context(), row); err != nil {
		saveFailed(w, r, h.log, "portfolio/form.html", data, err)
		return
	}
	h.log.WithFields(map[string]any{"user_id": s.UserID, "item_id": row.ID}).Info("Portfolio item created")
	saved(w, r, http.StatusCreated, portfolioPath, row)
}

// Public serves /portfolio/{userID} without a session.
func (h *PortfolioHandler) Public(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		notFound(w, r, h.log)
		return
	}
	items, err := h.items.Public(r.Context(), userID)
	if items == nil {
		items = []models.PortfolioItem{}
	}
	status := http.StatusOK
	data := map[string]any{"Items": items}
	if err != nil {
		h.log.WithFields(map[string]any{"owner": userID, "error": err.Error()}).Error("Public portfolio failed")
		status = storeStatus(err)
		data["Error"] = storeMessage(r, err, "list.load_failed")
	}
	if httpx.WantsJSON(r) {
		if err != nil {
			httpx.JSONError(w, status, data["Error"].(string), nil)
			return
		}
		httpx.JSON(w, status, map[string]any{"items": items})
		return
	}
	render(w, r, h.log, status, "portfolio/public.html", data)
}
