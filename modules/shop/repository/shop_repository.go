package repository

import (
	"context"
	"database/sql"

	"garage-api/core/database"
	"garage-api/core/logger"
	"garage-api/modules/shop/entity"
)

type ShopRepositoryInterface interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Shop, error)
}

type ShopRepository struct {
	DB database.IDatabase
}

func NewShopRepository(db database.IDatabase) *ShopRepository {
	return &ShopRepository{DB: db}
}

// GetBySlug returns nil, nil when no shop owns the slug.
func (r *ShopRepository) GetBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	query := `
		SELECT id, name, slug, address, phone, timezone, booking_enabled,
		       business_hours, slot_duration, buffer_time, max_days_ahead, services,
		       created_at, updated_at
		FROM shops
		WHERE slug = $1
	`

	var shop entity.Shop
	err := r.DB.GetContext(ctx, &shop, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ShopRepository:GetBySlug", err, "slug", slug)
		return nil, err
	}

	return &shop, nil
}
