// AngelaMos | 2026
// entity.go

package store

import (
	"time"
)

type Store struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Address       string    `db:"address"`
	OwnerID       *string   `db:"owner_id"`
	AverageRating *float64  `db:"average_rating"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (s *Store) IsOwnedBy(userID string) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}
