// AngelaMos | 2026
// handler.go

package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/middleware"
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
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/profiles", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.GetMyProfile)
		r.With(middleware.RequireJobSeeker).
			Put("/me/user", h.UpdateMyUserProfile)
		r.With(middleware.RequireEmployer).
			Put("/me/employer", h.UpdateMyEmployerProfile)
	})
}

// RegisterAdminRoutes registers admin-only account management.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListUsers)
		r.Put("/{profileID}/active", h.SetUserActive)
	})

	r.Route("/admin/employers", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListEmployers)
		r.Put("/{profileID}/approve", h.SetEmployerApproved)
		r.Put("/{profileID}/active", h.SetEmployerActive)
	})
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	identityID := middleware.GetIdentityID(r.Context())

	profile, err := h.service.MyProfile(r.Context(), identityID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, profile)
}

func (h *Handler) UpdateMyUserProfile(w http.ResponseWriter, r *http.Request) {
	identityID := middleware.GetIdentityID(r.Context())

	var req UpdateUserProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.UpdateMyUserProfile(r.Context(), identityID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) UpdateMyEmployerProfile(
	w http.ResponseWriter,
	r *http.Request,
) {
	identityID := middleware.GetIdentityID(r.Context())

	var req UpdateEmployerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.UpdateMyEmployerProfile(r.Context(), identityID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, p)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := ListUsersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", defaultPageSize),
		Search:   r.URL.Query().Get("search"),
	}

	users, total, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, users, params.Page, params.PageSize, total)
}

func (h *Handler) ListEmployers(w http.ResponseWriter, r *http.Request) {
	params := ListEmployersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", defaultPageSize),
		Search:   r.URL.Query().Get("search"),
	}

	if v := r.URL.Query().Get("approved"); v != "" {
		approved, err := strconv.ParseBool(v)
		if err != nil {
			core.BadRequest(w, "approved must be a boolean")
			return
		}
		params.Approved = &approved
	}

	employers, total, err := h.service.ListEmployers(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, employers, params.Page, params.PageSize, total)
}

func (h *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.SetUserActive(r.Context(), profileID, *req.IsActive)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) SetEmployerActive(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.SetEmployerActive(r.Context(), profileID, *req.IsActive)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "employer profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) SetEmployerApproved(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	var req SetApprovedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.SetEmployerApproved(
		r.Context(),
		profileID,
		*req.IsApproved,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "employer profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
