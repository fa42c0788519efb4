// AngelaMos | 2026
// handler.go

package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/azzedinedj/winner-product-inno/internal/core"
	"github.com/azzedinedj/winner-product-inno/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/profile", func(r chi.Router) {
		r.Use(authenticator)

		r.Put("/plan", h.SelectPlan)
		r.Put("/contact", h.SubmitContact)
	})

	r.With(optionalAuth).Get("/session/view", h.SessionView)
}

func (h *Handler) SelectPlan(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SelectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, err := h.service.SelectPlan(r.Context(), userID, req.Plan)
	if err != nil {
		h.writeProfileError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(acct))
}

func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SubmitContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, err := h.service.SubmitContact(r.Context(), userID, req.WhatsApp)
	if err != nil {
		h.writeProfileError(w, err)
		return
	}

	core.OK(w, ToAccountResponse(acct))
}

// SessionView reports which screen the client should render. Works logged
// out too, where only the navigation intent matters.
func (h *Handler) SessionView(w http.ResponseWriter, r *http.Request) {
	var acct *Account

	if userID := middleware.GetUserID(r.Context()); userID != "" {
		found, err := h.service.Get(r.Context(), userID)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			core.InternalServerError(w, err)
			return
		}
		acct = found
	}

	screen := SelectScreen(acct, Nav(r.URL.Query().Get("nav")))

	resp := ViewResponse{Screen: screen}
	if acct != nil {
		accountResp := ToAccountResponse(acct)
		resp.Account = &accountResp
	}

	core.OK(w, resp)
}

func (h *Handler) writeProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "account")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrInvalidTransition):
		core.Conflict(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}
