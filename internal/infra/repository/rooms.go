package repository

import (
	"context"
	"encoding/json"

	"roomscout/internal/domain/pricing"
	"roomscout/internal/domain/room"
	"roomscout/internal/infra"
	"roomscout/internal/usecase"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoomCatalogRepository reads room metadata from the denormalized
// v_full_info view. The view joins rooms to their branch so one row carries
// everything a result entry needs.
type RoomCatalogRepository struct {
	pool *pgxpool.Pool
}

func NewRoomCatalogRepository(pool *pgxpool.Pool) *RoomCatalogRepository {
	return &RoomCatalogRepository{pool: pool}
}

const findRoomsQuery = `
SELECT
    room_name,
    branch_name,
    branch_id,
    room_id,
    image_urls,
    max_capacity,
    recommend_capacity,
    price_per_hour,
    base_capacity,
    extra_charge,
    price_config,
    can_reserve_one_hour,
    requires_call_on_sameday,
    lat,
    lng
FROM v_full_info
WHERE max_capacity >= $1
  AND lat BETWEEN $2 AND $3
  AND lng BETWEEN $4 AND $5
ORDER BY branch_name, room_name`

func (r *RoomCatalogRepository) FindByCriteria(ctx context.Context, criteria usecase.RoomCriteria) ([]room.Detail, error) {
	rows, err := r.pool.Query(ctx, findRoomsQuery,
		criteria.Capacity, criteria.SwLat, criteria.NeLat, criteria.SwLng, criteria.NeLng)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query room catalog", err)
	}
	defer rows.Close()

	var details []room.Detail
	for rows.Next() {
		var (
			d            room.Detail
			baseCapacity pgtype.Int4
			extraCharge  pgtype.Int4
			priceConfig  []byte
		)
		if err := rows.Scan(
			&d.Name,
			&d.Branch,
			&d.BusinessID,
			&d.BizItemID,
			&d.ImageURLs,
			&d.MaxCapacity,
			&d.RecommendCapacity,
			&d.PricePerHour,
			&baseCapacity,
			&extraCharge,
			&priceConfig,
			&d.CanReserveOneHour,
			&d.RequiresCallOnSameDay,
			&d.Lat,
			&d.Lng,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}

		d.BaseCapacity = intPtrFromPgtype(baseCapacity)
		d.ExtraCharge = intPtrFromPgtype(extraCharge)

		if len(priceConfig) > 0 {
			var rules []pricing.Rule
			if err := json.Unmarshal(priceConfig, &rules); err != nil {
				return nil, infra.WrapRepoErr("failed to decode price rules", err)
			}
			d.PriceRules = rules
		}

		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}

	return details, nil
}

func intPtrFromPgtype(pi pgtype.Int4) *int {
	if !pi.Valid {
		return nil
	}
	v := int(pi.Int32)
	return &v
}
