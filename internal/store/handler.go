// AngelaMos | 2026
// handler.go

package store

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
	ratings   RatingSource
	validator *validator.Validate
}

func NewHandler(service *Service, ratings RatingSource) *Handler {
	return &Handler{
		service:   service,
		ratings:   ratings,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optionalAuth, adminOnly, ownerOnly func(http.Handler) http.Handler,
) {
	r.Route("/stores", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/", h.ListStores)
			r.Get("/{storeID}", h.GetStore)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)
			r.Post("/", h.CreateStore)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(ownerOnly)
			r.Get("/my/stores", h.MyStores)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/{storeID}/raters", h.StoreRaters)
		})
	})
}

// ListStores returns all stores matching the filters. Authenticated
// callers additionally get their own rating on each store.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListStoresParams{
		Name:    q.Get("name"),
		Email:   q.Get("email"),
		Address: q.Get("address"),
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortDir"),
	}

	stores, err := h.service.ListStores(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	responses := ToStoreResponseList(stores)

	if userID := middleware.GetUserID(r.Context()); userID != "" {
		if err := h.attachUserRatings(r, userID, responses); err != nil {
			core.InternalServerError(w, err)
			return
		}
	}

	core.OK(w, responses)
}

func (h *Handler) GetStore(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	store, err := h.service.GetStore(r.Context(), storeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	responses := []StoreResponse{ToStoreResponse(store)}

	if userID := middleware.GetUserID(r.Context()); userID != "" {
		if err := h.attachUserRatings(r, userID, responses); err != nil {
			core.InternalServerError(w, err)
			return
		}
	}

	core.OK(w, responses[0])
}

func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	store, err := h.service.CreateStore(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			core.NotFound(w, "owner")
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToStoreResponse(store))
}

// MyStores returns the calling store owner's stores with averages.
func (h *Handler) MyStores(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	stores, err := h.service.ListByOwner(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToStoreResponseList(stores))
}

// StoreRaters returns who rated a store. Only admins and the store's
// own owner may see it.
func (h *Handler) StoreRaters(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	userID := middleware.GetUserID(r.Context())

	store, err := h.service.GetStore(r.Context(), storeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "store")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	if !middleware.IsAdmin(r.Context()) && !store.IsOwnedBy(userID) {
		core.Forbidden(w, "not this store's owner")
		return
	}

	raters, err := h.ratings.RatersForStore(r.Context(), storeID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, raters)
}

func (h *Handler) attachUserRatings(
	r *http.Request,
	userID string,
	responses []StoreResponse,
) error {
	storeIDs := make([]string, 0, len(responses))
	for _, resp := range responses {
		storeIDs = append(storeIDs, resp.ID)
	}

	ratings, err := h.ratings.UserRatings(r.Context(), userID, storeIDs)
	if err != nil {
		return err
	}

	for i := range responses {
		if rating, ok := ratings[responses[i].ID]; ok {
			responses[i].UserRating = &rating
		}
	}

	return nil
}
