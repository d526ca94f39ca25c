package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/diewo77/go-photodesk/internal/forms"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/repository"
	"github.com/diewo77/go-photodesk/internal/store"
	"github.com/diewo77/go-photodesk/validation"
)

const jobsPath = "/dashboard/jobs"

type JobHandler struct {
	*listPage[models.Job]
	jobs    *repository.Jobs
	quotes  *repository.Quotes
	clients *repository.Clients
	log     logger.Logger
}

func NewJobHandler(jobs *repository.Jobs, quotes *repository.Quotes, clients *repository.Clients, log logger.Logger) *JobHandler {
	return &JobHandler{
		listPage: &listPage[models.Job]{
			repo:     jobs,
			base:     jobsPath,
			template: "jobs/index.html",
			log:      log,
			id:       func(j models.Job) string { return j.ID },
			fields:   models.Job.SearchFields,
			label:    func(j models.Job) string { return j.Title },
		},
		jobs:    jobs,
		quotes:  quotes,
		clients: clients,
		log:     log,
	}
}

func (h *JobHandler) formData(f forms.Job, opts []models.ClientOption) map[string]any {
	if opts == nil {
		opts = []models.ClientOption{}
	}
	return map[string]any{
		"Form":      f,
		"Clients":   opts,
		"NoClients": len(opts) == 0,
		"Statuses":  models.JobStatuses(),
	}
}

// New accepts ?quote= and ?client= so an accepted quote can be turned into
// a job in one step.
func (h *JobHandler) New(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	f := forms.Job{
		ClientID: r.URL.Query().Get("client"),
		QuoteID:  r.URL.Query().Get("quote"),
		Status:   models.JobScheduled,
	}
	opts, err := h.clients.Options(r.Context(), s.UserID)
	data := h.formData(f, opts)
	if err != nil {
		h.log.WithFields(map[string]any{"user_id": s.UserID, "error": err.Error()}).Error("Client options failed")
		data["Error"] = storeMessage(r, err, "list.load_failed")
	}
	render(w, r, h.log, http.StatusOK, "jobs/form.html", data)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	f := forms.JobFromValues(formValues(r))
	if v := f.Validate(); !v.Empty() {
		opts, loaded := dropdownOptions(r, h.clients, s.UserID, h.log)
		data := h.formData(f, opts)
		data["NoClients"] = loaded && len(opts) == 0
		formFailed(w, r, h.log, "jobs/form.html", data, v)
		return
	}

	opts, err := h.clients.Options(r.Context(), s.UserID)
	data := h.formData(f, opts)
	if err != nil {
		saveFailed(w, r, h.log, "jobs/form.html", data, err)
		return
	}
	if !hasOption(opts, f.ClientID) {
		formFailed(w, r, h.log, "jobs/form.html", data, validation.Violations{"client_id": "job.client_required"})
		return
	}
	if f.QuoteID != "" {
		own, err := h.ownQuote(r, s.UserID, f.QuoteID)
		if err != nil {
			saveFailed(w, r, h.log, "jobs/form.html", data, err)
			return
		}
		if !own {
			h.log.WithFields(map[string]any{"user_id": s.UserID, "quote_id": f.QuoteID}).Warn("Unknown quote dropped from job")
			f.QuoteID = ""
		}
	}

	row := f.Model(s.UserID)
	if err := h.jobs.Create(r.Context(), row); err != nil {
		saveFailed(w, r, h.log, "jobs/form.html", data, err)
		return
	}
	h.log.WithFields(map[string]any{"user_id": s.UserID, "job_id": row.ID}).Info("Job created")
	saved(w, r, http.StatusCreated, jobsPath, row)
}

// ownQuote reports whether id names a quote of the account. Malformed ids
// are never looked up.
func (h *JobHandler) ownQuote(r *http.Request, userID, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	_, err := h.quotes.Get(r.Context(), userID, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	}
	return false, err
}
