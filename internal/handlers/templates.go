package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/go-photodesk/httpx"
	"github.com/diewo77/go-photodesk/internal/forms"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/repository"
	"github.com/diewo77/go-photodesk/internal/services"
	"github.com/diewo77/go-photodesk/internal/store"
)

const templatesPath = "/dashboard/templates"

// TemplateHandler serves the e-mail templates and their preview.
type TemplateHandler struct {
	*listPage[models.EmailTemplate]
	templates *repository.Templates
	clients   *repository.Clients
	svc       *services.TemplateService
	log       logger.Logger
}

func NewTemplateHandler(templates *repository.Templates, clients *repository.Clients, svc *services.TemplateService, log logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		listPage: &listPage[models.EmailTemplate]{
			repo:     templates,
			base:     templatesPath,
			template: "templates/index.html",
			log:      log,
			id:       func(t models.EmailTemplate) string { return t.ID },
			fields:   models.EmailTemplate.SearchFields,
			label:    func(t models.EmailTemplate) string { return t.Name },
		},
		templates: templates,
		clients:   clients,
		svc:       svc,
		log:       log,
	}
}

func (h *TemplateHandler) formData(f forms.Template) map[string]any {
	return map[string]any{"Form": f, "Types": models.TemplateTypes()}
}

func (h *TemplateHandler) New(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentSession(w, r); !ok {
		return
	}
	render(w, r, h.log, http.StatusOK, "templates/form.html", h.formData(forms.Template{Type: models.TemplateCustom}))
}

// Create refuses subjects and bodies that do not parse as Liquid.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	f := forms.TemplateFromValues(formValues(r))
	data := h.formData(f)
	if v := f.Validate(h.svc.Check); !v.Empty() {
		formFailed(w, r, h.log, "templates/form.html", data, v)
		return
	}
	row := f.Model(s.UserID)
	if err := h.templates.Create(r.Context(), row); err != nil {
		saveFailed(w, r, h.log, "templates/form.html", data, err)
		return
	}
	h.log.WithFields(map[string]any{"user_id": s.UserID, "template_id": row.ID}).Info("Template created")
	saved(w, r, http.StatusCreated, templatesPath, row)
}

// Preview renders a template for ?client=<id>, or with blank client fields
// when no client is chosen. An unknown client is ignored.
func (h *TemplateHandler) Preview(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	tpl, err := h.templates.Get(r.Context(), s.UserID, r.PathValue("id"))
	if err != nil {
		lookupFailed(w, r, h.log, err)
		return
	}

	data := map[string]any{"Template": *tpl, "ClientID": "", "Clients": []models.ClientOption{}}
	opts, err := h.clients.Options(r.Context(), s.UserID)
	if err != nil {
		h.log.WithFields(map[string]any{"user_id": s.UserID, "error": err.Error()}).Warn("Client options failed")
	} else {
		data["Clients"] = opts
	}

	var client *models.Client
	if id := r.URL.Query().Get("client"); id != "" {
		c, err := h.clients.Get(r.Context(), s.UserID, id)
		switch {
		case err == nil:
			client = c
			data["ClientID"] = id
		case !errors.Is(err, store.ErrNotFound):
			h.log.WithFields(map[string]any{"client_id": id, "error": err.Error()}).Warn("Preview client lookup failed")
		}
	}

	preview, err := h.svc.Preview(r.Context(), *tpl, client, s.Email)
	if err != nil {
		h.log.WithFields(map[string]any{"template_id": tpl.ID, "error": err.Error()}).Warn("Template preview failed")
		data["Error"] = tr(r, "invalid_template")
	}
	data["Preview"] = preview

	if httpx.WantsJSON(r) {
		if err != nil {
			httpx.JSONError(w, http.StatusUnprocessableEntity, "invalid_template", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"subject": preview.Subject, "body": preview.Body})
		return
	}
	render(w, r, h.log, http.StatusOK, "templates/preview.html", data)
}
