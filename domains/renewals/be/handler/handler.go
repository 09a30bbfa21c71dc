package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	archivesservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/renewals/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/httpapi"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

// ArchivedLoader fetches the archived record a renewal starts from.
type ArchivedLoader interface {
	GetRecord(ctx context.Context, month, id string) (record.Record, error)
}

// RenewRequest identifies the archived record to renew plus the edits to
// overlay on its snapshot.
type RenewRequest struct {
	Month    string       `json:"month"`
	RecordID string       `json:"recordId"`
	Fields   record.Patch `json:"fields"`
}

// Handler exposes renewals over HTTP.
type Handler struct {
	svc      *service.Service
	archives ArchivedLoader
	logger   *zap.Logger
}

// New constructs a Handler instance.
func New(svc *service.Service, archives ArchivedLoader, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("renewals service is required")
	}
	if archives == nil {
		panic("archived record loader is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, archives: archives, logger: logger}
}

// Routes mounts the renewal endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{entityKey}", h.getLatest)
	r.Post("/", h.renew)
	return r
}

func (h *Handler) getLatest(w http.ResponseWriter, r *http.Request) {
	renewal, err := h.svc.GetLatest(r.Context(), chi.URLParam(r, "entityKey"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, renewal)
}

func (h *Handler) renew(w http.ResponseWriter, r *http.Request) {
	var req RenewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.BadRequest(w, "invalid request body")
		return
	}

	ctx := r.Context()
	old, err := h.archives.GetRecord(ctx, req.Month, req.RecordID)
	if err != nil {
		h.writeArchiveError(w, err)
		return
	}

	result, err := h.svc.Renew(ctx, old, req.Fields)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpapi.BadRequest(w, verr.Reason)
	case errors.Is(err, service.ErrNotFound):
		httpapi.NotFound(w, err.Error())
	default:
		h.logger.Error("renewal operation failed", zap.Error(err))
		httpapi.Internal(w)
	}
}

func (h *Handler) writeArchiveError(w http.ResponseWriter, err error) {
	var verr *archivesservice.ValidationError
	switch {
	case errors.As(err, &verr):
		httpapi.BadRequest(w, verr.Reason)
	case errors.Is(err, archivesservice.ErrRecordNotFound):
		httpapi.NotFound(w, err.Error())
	default:
		h.logger.Error("load archived record failed", zap.Error(err))
		httpapi.Internal(w)
	}
}
