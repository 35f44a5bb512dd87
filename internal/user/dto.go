// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=20,max=60"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=16,password"`
	Address  string `json:"address"  validate:"required,max=400"`
	Role     string `json:"role"     validate:"required,oneof=admin normal_user store_owner"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	Rating    *float64  `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardStats struct {
	UserCount   int `json:"userCount"`
	StoreCount  int `json:"storeCount"`
	RatingCount int `json:"ratingCount"`
}

type ListUsersParams struct {
	Name    string
	Email   string
	Address string
	Role    string
	SortBy  string
	SortDir string
}

var userSortColumns = map[string]string{
	"id":      "u.id",
	"name":    "u.name",
	"email":   "u.email",
	"address": "u.address",
	"role":    "u.role",
}

// Normalize clamps the sort parameters to the whitelist so they can be
// interpolated into ORDER BY safely.
func (p *ListUsersParams) Normalize() {
	if _, ok := userSortColumns[p.SortBy]; !ok {
		p.SortBy = "id"
	}
	if p.SortDir != "desc" {
		p.SortDir = "asc"
	}
}

func (p *ListUsersParams) OrderBy() string {
	return userSortColumns[p.SortBy] + " " + p.SortDir
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		Rating:    u.Rating,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
