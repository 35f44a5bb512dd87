// AngelaMos | 2026
// handler.go

package rating

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/storeratings/internal/core"
	"github.com/angelamos/storeratings/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/ratings", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.SubmitRating)
		r.Get("/my", h.MyRatings)
		r.Get("/store/{storeID}", h.GetUserRating)
	})
}

// SubmitRating creates the caller's rating for a store, or replaces it
// if one already exists.
func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	rating, err := h.service.SubmitRating(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRatingResponse(rating))
}

func (h *Handler) MyRatings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	ratings, err := h.service.ListUserRatings(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserRatingResponseList(ratings))
}

// GetUserRating returns the caller's own rating for one store.
func (h *Handler) GetUserRating(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	storeID := chi.URLParam(r, "storeID")

	rating, err := h.service.GetUserRating(r.Context(), userID, storeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "rating")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRatingResponse(rating))
}
