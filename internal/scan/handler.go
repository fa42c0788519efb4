// AngelaMos | 2026
// handler.go

package scan

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azzedinedj/winner-product-inno/internal/core"
	"github.com/azzedinedj/winner-product-inno/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/scan", func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/", h.Scan)
		r.Get("/last", h.LastScan)
	})
}

func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetUserID(r.Context())
	if accountID == "" {
		core.Unauthorized(w, "")
		return
	}

	result, err := h.service.Scan(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "scanning requires an approved account")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "account")
		case errors.Is(err, ErrScanFailed):
			core.BadGateway(w, "product scan is temporarily unavailable")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, result)
}

func (h *Handler) LastScan(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetUserID(r.Context())
	if accountID == "" {
		core.Unauthorized(w, "")
		return
	}

	result, err := h.service.LastScan(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "scan result")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}
