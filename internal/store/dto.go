// AngelaMos | 2026
// dto.go

package store

import (
	"time"
)

type CreateStoreRequest struct {
	Name    string  `json:"name"     validate:"required,min=20,max=60"`
	Email   string  `json:"email"    validate:"required,email,max=255"`
	Address string  `json:"address"  validate:"required,max=400"`
	OwnerID *string `json:"owner_id" validate:"omitempty,uuid"`
}

type StoreResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       *string   `json:"owner_id"`
	AverageRating *float64  `json:"average_rating"`
	UserRating    *int      `json:"user_rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListStoresParams struct {
	Name    string
	Email   string
	Address string
	SortBy  string
	SortDir string
}

var storeSortColumns = map[string]string{
	"id":             "s.id",
	"name":           "s.name",
	"email":          "s.email",
	"address":        "s.address",
	"average_rating": "average_rating",
}

func (p *ListStoresParams) Normalize() {
	if _, ok := storeSortColumns[p.SortBy]; !ok {
		p.SortBy = "id"
	}
	if p.SortDir != "desc" {
		p.SortDir = "asc"
	}
}

func (p *ListStoresParams) OrderBy() string {
	return storeSortColumns[p.SortBy] + " " + p.SortDir
}

func ToStoreResponse(s *Store) StoreResponse {
	return StoreResponse{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Address:       s.Address,
		OwnerID:       s.OwnerID,
		AverageRating: s.AverageRating,
		CreatedAt:     s.CreatedAt,
	}
}

func ToStoreResponseList(stores []Store) []StoreResponse {
	responses := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		responses = append(responses, ToStoreResponse(&s))
	}
	return responses
}
