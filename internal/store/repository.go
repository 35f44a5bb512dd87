// AngelaMos | 2026
// repository.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/angelamos/storeratings/internal/core"
)

const averageRating = `
	(SELECT AVG(r.rating)::float
	 FROM ratings r
	 WHERE r.store_id = s.id) AS average_rating`

type Repository interface {
	Create(ctx context.Context, store *Store, promoteOwner bool) error
	GetByID(ctx context.Context, id string) (*Store, error)
	List(ctx context.Context, params ListStoresParams) ([]Store, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Store, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the store and, when promoteOwner is set, flips the
// owner's role to store_owner in the same transaction so a failed
// insert never leaves a half-promoted user.
func (r *repository) Create(
	ctx context.Context,
	store *Store,
	promoteOwner bool,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO stores (id, name, email, address, owner_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`

		err := tx.GetContext(ctx, store, query,
			store.ID,
			store.Name,
			store.Email,
			store.Address,
			store.OwnerID,
		)
		if err != nil {
			if core.IsDuplicateKeyError(err) {
				return fmt.Errorf("create store: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("create store: %w", err)
		}

		if promoteOwner {
			promote := `
				UPDATE users
				SET role = 'store_owner', updated_at = NOW()
				WHERE id = $1`

			result, err := tx.ExecContext(ctx, promote, *store.OwnerID)
			if err != nil {
				return fmt.Errorf("promote owner: %w", err)
			}

			rows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("promote owner: %w", err)
			}

			if rows == 0 {
				return fmt.Errorf("promote owner: %w", core.ErrNotFound)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Store, error) {
	query := `
		SELECT s.id, s.name, s.email, s.address, s.owner_id,
		       s.created_at, s.updated_at,` + averageRating + `
		FROM stores s
		WHERE s.id = $1`

	var store Store
	err := r.db.GetContext(ctx, &store, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get store: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}

	return &store, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListStoresParams,
) ([]Store, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	if params.Name != "" {
		conditions = append(conditions,
			fmt.Sprintf("s.name ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Name)+"%")
		argIdx++
	}

	if params.Email != "" {
		conditions = append(conditions,
			fmt.Sprintf("s.email ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Email)+"%")
		argIdx++
	}

	if params.Address != "" {
		conditions = append(conditions,
			fmt.Sprintf("s.address ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(params.Address)+"%")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.name, s.email, s.address, s.owner_id,
		       s.created_at, s.updated_at,`+averageRating+`
		FROM stores s
		%s
		ORDER BY %s`,
		whereClause, params.OrderBy())

	var stores []Store
	if err := r.db.SelectContext(ctx, &stores, query, args...); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	return stores, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
) ([]Store, error) {
	query := `
		SELECT s.id, s.name, s.email, s.address, s.owner_id,
		       s.created_at, s.updated_at,` + averageRating + `
		FROM stores s
		WHERE s.owner_id = $1
		ORDER BY s.id ASC`

	var stores []Store
	if err := r.db.SelectContext(ctx, &stores, query, ownerID); err != nil {
		return nil, fmt.Errorf("list stores by owner: %w", err)
	}

	return stores, nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM stores WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check store exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM stores`)
	if err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}

	return count, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
