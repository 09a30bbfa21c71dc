package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ashhiii/BFPSYSTEM-sub000/domains/certificates/be/service"
	"github.com/Ashhiii/BFPSYSTEM-sub000/platform/go/httpapi"
)

// Handler exposes certificate link building over HTTP.
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// New constructs a Handler instance.
func New(svc *service.Service, logger *zap.Logger) *Handler {
	if svc == nil {
		panic("certificates service is required")
	}
	if logger == nil {
		panic("logger is required")
	}
	return &Handler{svc: svc, logger: logger}
}

// Routes mounts the certificate endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{kind}/{recordId}", h.buildURL)
	return r
}

func (h *Handler) buildURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.BuildURL(chi.URLParam(r, "kind"), chi.URLParam(r, "recordId"))
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			httpapi.BadRequest(w, verr.Reason)
			return
		}
		h.logger.Error("certificate link failed", zap.Error(err))
		httpapi.Internal(w)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
