// AngelaMos | 2026
// handler.go

package application

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
	r.Route("/applications", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequireJobSeeker).Post("/", h.Apply)
		r.With(middleware.RequireJobSeeker).Get("/mine", h.Mine)
		r.With(middleware.RequireJobSeeker).
			Delete("/{applicationID}", h.Withdraw)

		r.With(middleware.RequireEmployer).Get("/received", h.Received)
		r.With(middleware.RequireEmployer).
			Put("/{applicationID}/status", h.UpdateStatus)
	})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetIdentityID(r.Context())

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Apply(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrAlreadyApplied) {
			core.Conflict(w, "you already applied to this job")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, a)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetIdentityID(r.Context())
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", defaultPageSize)

	applications, total, err := h.service.Mine(
		r.Context(),
		userID,
		page,
		pageSize,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, applications, page, pageSize, total)
}

func (h *Handler) Received(w http.ResponseWriter, r *http.Request) {
	employerID := middleware.GetIdentityID(r.Context())

	params := ReceivedParams{
		JobID:    r.URL.Query().Get("job_id"),
		Status:   Status(r.URL.Query().Get("status")),
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", defaultPageSize),
	}

	applications, total, err := h.service.Received(
		r.Context(),
		employerID,
		params,
	)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid status filter")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, applications, params.Page, params.PageSize, total)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	employerID := middleware.GetIdentityID(r.Context())
	applicationID := chi.URLParam(r, "applicationID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.UpdateStatus(
		r.Context(),
		employerID,
		applicationID,
		Status(req.Status),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "application")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid status")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetIdentityID(r.Context())
	applicationID := chi.URLParam(r, "applicationID")

	err := h.service.Withdraw(r.Context(), userID, applicationID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "application")
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
