package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/httpapi"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// CurrentLister supplies the records to be archived by a month close.
type CurrentLister interface {
	List(ctx context.Context) ([]record.Record, error)
}

// Handler exposes archive months over HTTP.
type Handler struct {
	svc     *service.Service
	current CurrentLister
	logger  *zap.Logger
}

// New constructs a Handler instance.
func New(svc *service.Service, current CurrentLister, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("archives service is required")
	}
	if current == nil {
		panic("current records lister is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, current: current, logger: logger}
}

// Routes mounts the archive endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listMonths)
	r.Get("/{month}", h.loadMonth)
	r.Post("/{month}:close", h.closeMonth)
	r.Patch("/{month}/records/{recordId}", h.updateRecord)
	return r
}

func (h *Handler) listMonths(w http.ResponseWriter, r *http.Request) {
	months, err := h.svc.ListMonths(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"months": months})
}

func (h *Handler) loadMonth(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.LoadMonth(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) closeMonth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current, err := h.current.List(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.svc.CloseMonth(ctx, chi.URLParam(r, "month"), current)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	var patch record.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpapi.BadRequest(w, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateRecord(r.Context(), chi.URLParam(r, "month"), chi.URLParam(r, "recordId"), patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpapi.BadRequest(w, verr.Reason)
	case errors.Is(err, service.ErrMonthAlreadyClosed):
		httpapi.Conflict(w, err.Error())
	case errors.Is(err, service.ErrNothingToArchive):
		httpapi.Conflict(w, err.Error())
	case errors.Is(err, service.ErrRecordNotFound):
		httpapi.NotFound(w, err.Error())
	default:
		h.logger.Error("archive operation failed", zap.Error(err))
		httpapi.Internal(w)
	}
}
