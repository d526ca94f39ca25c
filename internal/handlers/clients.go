package handlers

import (
	"net/http"

	"github.com/diewo77/go-photodesk/internal/forms"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/repository"
)

const clientsPath = "/dashboard/clientes"

type ClientHandler struct {
	*listPage[models.Client]
	clients *repository.Clients
	log     logger.Logger
}

func NewClientHandler(clients *repository.Clients, log logger.Logger) *ClientHandler {
	return &ClientHandler{
		listPage: &listPage[models.Client]{
			repo:     clients,
			base:     clientsPath,
			template: "clients/index.html",
			log:      log,
			id:       func(c models.Client) string { return c.ID },
			fields:   models.Client.SearchFields,
			label:    func(c models.Client) string { return c.Name },
		},
		clients: clients,
		log:     log,
	}
}

func (h *ClientHandler) formData(title, action string, f forms.Client) map[string]any {
	return map[string]any{
		"Title":    title,
		"Action":   action,
		"Form":     f,
		"Statuses": models.ClientStatuses(),
	}
}

func (h *ClientHandler) New(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentSession(w, r); !ok {
		return
	}
	data := h.formData("clients.new", clientsPath+"/novo", forms.Client{Status: models.ClientLead})
	render(w, r, h.log, http.StatusOK, "clients/form.html", data)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	f := forms.ClientFromValues(formValues(r))
	data := h.formData("clients.new", clientsPath+"/novo", f)
	if v := f.Validate(); !v.Empty() {
		formFailed(w, r, h.log, "clients/form.html", data, v)
		return
	}

	row := &models.Client{Owned: models.Owned{UserID: s.UserID}}
	f.Apply(row)
	if err := h.clients.Create(r.Context(), row); err != nil {
		saveFailed(w, r, h.log, "clients/form.html", data, err)
		return
	}
	h.log.WithFields(map[string]any{"user_id": s.UserID, "client_id": row.ID}).Info("Client created")
	saved(w, r, http.StatusCreated, clientsPath, row)
}

func (h *ClientHandler) Edit(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	row, err := h.clients.Get(r.Context(), s.UserID, id)
	if err != nil {
		lookupFailed(w, r, h.log, err)
		return
	}
	data := h.formData("clients.edit", clientsPath+"/"+id+"/editar", forms.ClientFromModel(*row))
	render(w, r, h.log, http.StatusOK, "clients/form.html", data)
}

// Update replaces the editable columns of a client the account owns.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	row, err := h.clients.Get(r.Context(), s.UserID, id)
	if err != nil {
		lookupFailed(w, r, h.log, err)
		return
	}

	f := forms.ClientFromValues(formValues(r))
	data := h.formData("clients.edit", clientsPath+"/"+id+"/editar", f)
	if v := f.Validate(); !v.Empty() {
		formFailed(w, r, h.log, "clients/form.html", data, v)
		return
	}
	f.Apply(row)
	if err := h.clients.Update(r.Context(), s.UserID, id, row); err != nil {
		saveFailed(w, r, h.log, "clients/form.html", data, err)
		return
	}
	h.log.WithFields(map[string]any{"user_id": s.UserID, "client_id": id}).Info("Client updated")
	saved(w, r, http.StatusOK, clientsPath, row)
}
