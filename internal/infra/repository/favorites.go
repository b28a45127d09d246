package repository

import (
	"context"

	"roomscout/internal/infra"
	"roomscout/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

const insertFavoriteQuery = `
INSERT INTO favorites (id, device_id, business_id, biz_item_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (device_id, business_id, biz_item_id) DO NOTHING`

// Add is idempotent: saving an already-saved room reports created=false
// instead of failing on the unique constraint.
func (r *FavoriteRepository) Add(ctx context.Context, fav usecase.Favorite) (bool, error) {
	tag, err := r.pool.Exec(ctx, insertFavoriteQuery,
		uuid.New(), fav.DeviceID, fav.BusinessID, fav.BizItemID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert favorite", err)
	}
	return tag.RowsAffected() > 0, nil
}

const deleteFavoriteQuery = `
DELETE FROM favorites
WHERE device_id = $1 AND business_id = $2 AND biz_item_id = $3`

func (r *FavoriteRepository) Remove(ctx context.Context, fav usecase.Favorite) error {
	if _, err := r.pool.Exec(ctx, deleteFavoriteQuery,
		fav.DeviceID, fav.BusinessID, fav.BizItemID); err != nil {
		return infra.WrapRepoErr("failed to delete favorite", err)
	}
	return nil
}

const listFavoritesQuery = `
SELECT device_id, business_id, biz_item_id
FROM favorites
WHERE device_id = $1
ORDER BY created_at`

func (r *FavoriteRepository) ListByDevice(ctx context.Context, deviceID string) ([]usecase.Favorite, error) {
	rows, err := r.pool.Query(ctx, listFavoritesQuery, deviceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query favorites", err)
	}
	defer rows.Close()

	favorites := []usecase.Favorite{}
	for rows.Next() {
		var fav usecase.Favorite
		if err := rows.Scan(&fav.DeviceID, &fav.BusinessID, &fav.BizItemID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan favorite row", err)
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate favorite rows", err)
	}

	return favorites, nil
}
