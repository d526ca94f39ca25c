package handlers

import (
	"net/http"

	"github.com/diewo77/go-photodesk/httpx"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/services"
)

type DashboardHandler struct {
	svc *services.DashboardService
	log logger.Logger
}

func NewDashboardHandler(svc *services.DashboardService, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: log}
}

// Show renders the four counters. Counts that failed read as zero and the
// page says the data could not be loaded.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	counts, err := h.svc.Counts(r.Context(), s.UserID)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, counts)
		return
	}
	data := map[string]any{"Counts": counts}
	if err != nil {
		data["Error"] = storeMessage(r, err, "list.load_failed")
	}
	render(w, r, h.log, http.StatusOK, "dashboard.html", data)
}
