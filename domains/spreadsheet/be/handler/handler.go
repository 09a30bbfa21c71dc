package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	archivesservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/archives/be/service"
	recordsservice "github.com/Ashhiii/BFPSYSTEM-sub000/domains/records/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/spreadsheet/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/httpapi"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/record"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CurrentLister supplies the records for a full export.
type CurrentLister interface {
	List(ctx context.Context) ([]record.Record, error)
}

// Handler exposes workbook export and import over HTTP.
type Handler struct {
	svc     *service.Service
	current CurrentLister
	logger  *zap.Logger
}

// New constructs a Handler instance.
func New(svc *service.Service, current CurrentLister, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("spreadsheet service is required")
	}
	if current == nil {
		panic("current records lister is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, current: current, logger: logger}
}

// Routes mounts the spreadsheet endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/records:export", h.exportRecords)
	r.Post("/records:import", h.importRecords)
	r.Post("/archives/{month}:export", h.exportMonth)
	return r
}

func (h *Handler) exportRecords(w http.ResponseWriter, r *http.Request) {
	items, err := h.current.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	data, err := h.svc.Export(items)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="records.xlsx"`)
	_, _ = w.Write(data)
}

func (h *Handler) importRecords(w http.ResponseWriter, r *http.Request) {
	// Accept either a raw workbook body or a multipart "file" field.
	body := r.Body
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		body = file
	}

	result, err := h.svc.Import(r.Context(), body)
	if err != nil {
		httpapi.BadRequest(w, err.Error())
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) exportMonth(w http.ResponseWriter, r *http.Request) {
	key, err := h.svc.ExportMonth(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"key": key})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var recordsVErr *recordsservice.ValidationError
	var archivesVErr *archivesservice.ValidationError
	switch {
	case errors.As(err, &recordsVErr):
		httpapi.BadRequest(w, recordsVErr.Reason)
	case errors.As(err, &archivesVErr):
		httpapi.BadRequest(w, archivesVErr.Reason)
	default:
		h.logger.Error("spreadsheet operation failed", zap.Error(err))
		httpapi.Internal(w)
	}
}
