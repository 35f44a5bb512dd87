// AngelaMos | 2026
// dto.go

package rating

import (
	"time"
)

type SubmitRatingRequest struct {
	StoreID string `json:"store_id" validate:"required,uuid"`
	Rating  int    `json:"rating"   validate:"required,gte=1,lte=5"`
}

type RatingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRatingResponse struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	StoreName string    `json:"store_name"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToRatingResponse(r *Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func ToUserRatingResponseList(ratings []UserRating) []UserRatingResponse {
	responses := make([]UserRatingResponse, 0, len(ratings))
	for _, r := range ratings {
		responses = append(responses, UserRatingResponse{
			ID:        r.ID,
			StoreID:   r.StoreID,
			StoreName: r.StoreName,
			Rating:    r.Rating,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return responses
}
