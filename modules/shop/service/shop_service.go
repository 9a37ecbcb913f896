package service

import (
	"context"

	"garage-api/core/errors"
	"garage-api/core/logger"
	"garage-api/modules/shop/entity"
	"garage-api/modules/shop/repository"

	"github.com/gosimple/slug"
)

// DirectoryInterface resolves a public booking slug to shop configuration.
type DirectoryInterface interface {
	ResolveBookingSlug(ctx context.Context, rawSlug string) (*entity.Shop, *errors.AppError)
}

type ShopService struct {
	repo repository.ShopRepositoryInterface
}

func NewShopService(repo repository.ShopRepositoryInterface) *ShopService {
	return &ShopService{repo: repo}
}

// ResolveBookingSlug looks up the shop addressed by a public booking URL and
// enforces the booking gate. Stored slugs are canonical, so anything that is
// not already in canonical form cannot match and is rejected before the
// database round trip.
func (s *ShopService) ResolveBookingSlug(ctx context.Context, rawSlug string) (*entity.Shop, *errors.AppError) {
	if rawSlug == "" || !slug.IsSlug(rawSlug) {
		return nil, errors.NewAppError(errors.ErrNotFound, "Shop not found", nil)
	}

	shop, err := s.repo.GetBySlug(ctx, rawSlug)
	if err != nil {
		logger.Error("ShopService:ResolveBookingSlug:GetBySlug", "error", err, "slug", rawSlug)
		return nil, errors.NewAppError(errors.ErrInternalServer, "internal server error", nil)
	}
	if shop == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Shop not found", nil)
	}
	if !shop.BookingEnabled {
		return nil, errors.NewAppError(errors.ErrForbidden, "Online booking is not enabled for this shop", nil)
	}

	return shop, nil
}
