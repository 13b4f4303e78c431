// AngelaMos | 2026
// handler.go

package message

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
	r.Route("/messages", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Send)
		r.Get("/", h.Inbox)
		r.Get("/unread", h.UnreadCount)
		r.Put("/{messageID}/read", h.MarkRead)
	})
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	senderID := middleware.GetIdentityID(r.Context())

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	m, err := h.service.Send(r.Context(), senderID, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "cannot message yourself")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "receiver")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, m)
}

func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	identityID := middleware.GetIdentityID(r.Context())
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", defaultPageSize)

	messages, total, err := h.service.Inbox(
		r.Context(),
		identityID,
		page,
		pageSize,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, messages, page, pageSize, total)
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	identityID := middleware.GetIdentityID(r.Context())

	count, err := h.service.UnreadCount(r.Context(), identityID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UnreadCountResponse{Unread: count})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identityID := middleware.GetIdentityID(r.Context())
	messageID := chi.URLParam(r, "messageID")

	if err := h.service.MarkRead(r.Context(), identityID, messageID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "message")
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
