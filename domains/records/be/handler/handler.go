package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/httpapi"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// Handler exposes the current-records collection over HTTP.
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc *service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("records service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the records endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{recordId}", h.update)
	r.Delete("/{recordId}", h.delete)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body record.Record
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpapi.BadRequest(w, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/records/"+created.ID)
	httpapi.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var patch record.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpapi.BadRequest(w, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), chi.URLParam(r, "recordId"), patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "recordId")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpapi.BadRequest(w, verr.Reason)
	case errors.Is(err, service.ErrNotFound):
		httpapi.NotFound(w, err.Error())
	default:
		h.logger.Error("records operation failed", zap.Error(err))
		httpapi.Internal(w)
	}
}
