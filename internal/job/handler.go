// AngelaMos | 2026
// handler.go

package job

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
	r.Route("/jobs", func(r chi.Router) {
		// public surface: anyone can browse approved postings
		r.Get("/", h.Search)
		r.Get("/categories", h.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.With(middleware.RequireEmployer).Post("/", h.Create)
			r.With(middleware.RequireEmployer).Get("/mine", h.ListMine)

			r.With(middleware.RequireJobSeeker).Get("/saved", h.ListSaved)

			r.With(middleware.RequireEmployer).Put("/{jobID}", h.Update)
			r.With(middleware.RequireEmployer).Delete("/{jobID}", h.Delete)
			r.With(middleware.RequireEmployer).
				Post("/{jobID}/close", h.Close)

			r.With(middleware.RequireJobSeeker).
				Post("/{jobID}/save", h.Save)
			r.With(middleware.RequireJobSeeker).
				Delete("/{jobID}/save", h.Unsave)
		})

		r.Get("/{jobID}", h.Get)
	})
}

// RegisterAdminRoutes registers the moderation queue.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/jobs", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ModerationQueue)
		r.Put("/{jobID}/status", h.SetStatus)
	})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := SearchParams{
		Keyword:    q.Get("keyword"),
		Location:   q.Get("location"),
		CategoryID: q.Get("category"),
		JobType:    q.Get("job_type"),
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", defaultPageSize),
	}

	jobs, total, err := h.service.Search(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, jobs, params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	j, err := h.service.GetVisible(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, j)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, categories)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	employerID := middleware.GetIdentityID(r.Context())

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	j, err := h.service.Create(r.Context(), employerID, req)
	if err != nil {
		if errors.Is(err, ErrEmployerNotApproved) {
			core.Forbidden(w, "employer account is awaiting approval")
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "salary_min exceeds salary_max")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "employer profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, j)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	employerID := middleware.GetIdentityID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	j, err := h.service.Update(r.Context(), employerID, jobID, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "salary_min exceeds salary_max")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, j)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	employerID := middleware.GetIdentityID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	if err := h.service.Delete(r.Context(), employerID, jobID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	employerID := middleware.GetIdentityID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	if err := h.service.Close(r.Context(), employerID, jobID); err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "cannot close another employer's job")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	employerID := middleware.GetIdentityID(r.Context())
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", defaultPageSize)

	jobs, total, err := h.service.ListMine(
		r.Context(),
		employerID,
		page,
		pageSize,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, jobs, page, pageSize, total)
}

func (h *Handler) ModerationQueue(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	if status == "" {
		status = StatusPending
	}

	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", defaultPageSize)

	jobs, total, err := h.service.ModerationQueue(
		r.Context(),
		status,
		page,
		pageSize,
	)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid status filter")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, jobs, page, pageSize, total)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.SetStatus(r.Context(), jobID, Status(req.Status))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
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

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetIdentityID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	if err := h.service.Save(r.Context(), userID, jobID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Unsave(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetIdentityID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	if err := h.service.Unsave(r.Context(), userID, jobID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "saved job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetIdentityID(r.Context())
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", defaultPageSize)

	jobs, total, err := h.service.ListSaved(
		r.Context(),
		userID,
		page,
		pageSize,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, jobs, page, pageSize, total)
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
