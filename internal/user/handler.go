// AngelaMos | 2026
// handler.go

package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/storeratings/internal/core"
)

// DashboardConfig supplies the counts the user package does not own.
type DashboardConfig struct {
	StoreCount  func(ctx context.Context) (int, error)
	RatingCount func(ctx context.Context) (int, error)
}

type Handler struct {
	service   *Service
	validator *validator.Validate
	dashboard DashboardConfig
}

func NewHandler(service *Service, dashboard DashboardConfig) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
		dashboard: dashboard,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/stats/dashboard", h.Dashboard)
		r.Get("/{userID}", h.GetUser)
	})
}

// ListUsers returns all users matching the filters, sorted as requested.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListUsersParams{
		Name:    q.Get("name"),
		Email:   q.Get("email"),
		Address: q.Get("address"),
		Role:    q.Get("role"),
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortDir"),
	}

	users, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponseList(users))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponse(user))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid role")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToUserResponse(user))
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userCount, err := h.service.CountUsers(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	storeCount, err := h.dashboard.StoreCount(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	ratingCount, err := h.dashboard.RatingCount(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, DashboardStats{
		UserCount:   userCount,
		StoreCount:  storeCount,
		RatingCount: ratingCount,
	})
}
