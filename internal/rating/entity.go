// AngelaMos | 2026
// entity.go

package rating

import (
	"time"
)

type Rating struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	StoreID   string    `db:"store_id"`
	Rating    int       `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// UserRating is a rating joined with the store it belongs to, for the
// caller's own-ratings listing.
type UserRating struct {
	ID        string    `db:"id"`
	StoreID   string    `db:"store_id"`
	StoreName string    `db:"store_name"`
	Rating    int       `db:"rating"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// storeRater is the scan target for the raters join; it is converted
// to the transport shape the store package expects.
type storeRater struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Rating    int       `db:"rating"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}
