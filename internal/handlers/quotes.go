package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/go-photodesk/httpx"
	"github.com/diewo77/go-photodesk/internal/forms"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/records"
	"github.com/diewo77/go-photodesk/internal/repository"
	"github.com/diewo77/go-photodesk/internal/services"
	"github.com/diewo77/go-photodesk/pdf"
	"github.com/diewo77/go-photodesk/validation"
)

const quotesPath = "/dashboard/orcamentos"

type QuoteHandler struct {
	*listPage[models.Quote]
	quotes  *repository.Quotes
	clients *repository.Clients
	loc     *time.Location
	log     logger.Logger
}

// NewQuoteHandler builds the quote pages. loc is the time zone of the date
// printed on exported quotes.
func NewQuoteHandler(quotes *repository.Quotes, clients *repository.Clients, loc *time.Location, log logger.Logger) *QuoteHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &QuoteHandler{
		listPage: &listPage[models.Quote]{
			repo:     quotes,
			base:     quotesPath,
			template: "quotes/index.html",
			log:      log,
			id:       func(q models.Quote) string { return q.ID },
			fields:   models.Quote.SearchFields,
			label: func(q models.Quote) string {
				return q.PhotographyType + " · " + q.ClientName()
			},
			extend: func(_ *http.Request, l *records.List[models.Quote], data map[string]any) {
				data["Totals"] = services.ComputeQuoteTotals(l.Visible())
			},
		},
		quotes:  quotes,
		clients: clients,
		loc:     loc,
		log:     log,
	}
}

func (h *QuoteHandler) formData(f forms.Quote, opts []models.ClientOption) map[string]any {
	if opts == nil {
		opts = []models.ClientOption{}
	}
	return map[string]any{
		"Form":      f,
		"Clients":   opts,
		"NoClients": len(opts) == 0,
		"Types":     models.PhotographyTypes,
		"Statuses":  models.QuoteStatuses(),
	}
}

// New shows the form with the account's clients in the dropdown. With no
// clients the form is shown disabled with a link to create one.
func (h *QuoteHandler) New(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	f := forms.Quote{ClientID: r.URL.Query().Get("client"), Status: models.QuoteDraft}
	opts, err := h.clients.Options(r.Context(), s.UserID)
	data := h.formData(f, opts)
	if err != nil {
		h.log.WithFields(map[string]any{"user_id": s.UserID, "error": err.Error()}).Error("Client options failed")
		data["Error"] = storeMessage(r, err, "list.load_failed")
	}
	render(w, r, h.log, http.StatusOK, "quotes/form.html", data)
}

// Create validates before any store call. A client that is not in the
// account's dropdown, including every client when the account has none, is
// refused without inserting. The dropdown of a rejected form is reloaded on a
// best-effort basis.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	f := forms.QuoteFromValues(formValues(r))
	if v := f.Validate(); !v.Empty() {
		opts, loaded := dropdownOptions(r, h.clients, s.UserID, h.log)
		data := h.formData(f, opts)
		data["NoClients"] = loaded && len(opts) == 0
		formFailed(w, r, h.log, "quotes/form.html", data, v)
		return
	}

	opts, err := h.clients.Options(r.Context(), s.UserID)
	data := h.formData(f, opts)
	if err != nil {
		saveFailed(w, r, h.log, "quotes/form.html", data, err)
		return
	}
	if !hasOption(opts, f.ClientID) {
		formFailed(w, r, h.log, "quotes/form.html", data, validation.Violations{"client_id": "quote.client_required"})
		return
	}

	row := f.Model(s.UserID)
	if err := h.quotes.Create(r.Context(), row); err != nil {
		saveFailed(w, r, h.log, "quotes/form.html", data, err)
		return
	}
	h.log.WithFields(map[string]any{"user_id": s.UserID, "quote_id": row.ID, "price": row.Price}).Info("Quote created")
	saved(w, r, http.StatusCreated, quotesPath, row)
}

// PDF exports one quote of the account as orcamento-<id>.pdf.
func (h *QuoteHandler) PDF(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	q, err := h.quotes.Get(r.Context(), s.UserID, id)
	if err != nil {
		lookupFailed(w, r, h.log, err)
		return
	}

	data, err := pdf.Quote(pdf.QuoteDocument{
		ID:              q.ID,
		ClientName:      q.ClientName(),
		ClientEmail:     q.ClientEmail(),
		PhotographyType: q.PhotographyType,
		Description:     q.Description,
		Price:           q.Price,
		Date:            q.CreatedAt.In(h.loc),
	})
	if err != nil {
		h.log.WithFields(map[string]any{"quote_id": id, "error": err.Error()}).Error("PDF generation failed")
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
			return
		}
		renderError(w, r, h.log, http.StatusInternalServerError, "error.pdf_failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(q.ID)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// dropdownOptions reloads the client dropdown of a rejected form. A failed
// read is logged and reported as not loaded; the field errors still show.
func dropdownOptions(r *http.Request, clients *repository.Clients, userID string, log logger.Logger) ([]models.ClientOption, bool) {
	if httpx.WantsJSON(r) {
		return nil, false
	}
	opts, err := clients.Options(r.Context(), userID)
	if err != nil {
		log.WithFields(map[string]any{"user_id": userID, "error": err.Error()}).Warn("Client options failed")
		return nil, false
	}
	return opts, true
}

func hasOption(opts []models.ClientOption, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}
