package service

import (
	"context"
	stderrors "errors"
	"testing"

	"garage-api/core/errors"
	"garage-api/modules/shop/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShopRepo struct {
	shop    *entity.Shop
	err     error
	queried []string
}

func (f *fakeShopRepo) GetBySlug(ctx context.Context, slug string) (*entity.Shop, error) {
	f.queried = append(f.queried, slug)
	return f.shop, f.err
}

func enabledShop() *entity.Shop {
	return &entity.Shop{Name: "Acme Tires", Slug: "acme-tires", BookingEnabled: true}
}

func TestResolveBookingSlug_Found(t *testing.T) {
	svc := NewShopService(&fakeShopRepo{shop: enabledShop()})

	shop, appErr := svc.ResolveBookingSlug(context.Background(), "acme-tires")

	require.Nil(t, appErr)
	assert.Equal(t, "Acme Tires", shop.Name)
}

func TestResolveBookingSlug_Unknown(t *testing.T) {
	svc := NewShopService(&fakeShopRepo{})

	_, appErr := svc.ResolveBookingSlug(context.Background(), "no-such-shop")

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestResolveBookingSlug_BookingDisabled(t *testing.T) {
	shop := enabledShop()
	shop.BookingEnabled = false
	svc := NewShopService(&fakeShopRepo{shop: shop})

	_, appErr := svc.ResolveBookingSlug(context.Background(), "acme-tires")

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestResolveBookingSlug_NonCanonicalSkipsLookup(t *testing.T) {
	repo := &fakeShopRepo{shop: enabledShop()}
	svc := NewShopService(repo)

	for _, raw := range []string{"", "Acme Tires", "acme_tires!", "../etc/passwd"} {
		_, appErr := svc.ResolveBookingSlug(context.Background(), raw)
		require.NotNil(t, appErr, "raw slug %q", raw)
		assert.Equal(t, errors.ErrNotFound, appErr.Code)
	}
	assert.Empty(t, repo.queried, "non-canonical slugs must not reach the database")
}

func TestResolveBookingSlug_RepoError(t *testing.T) {
	svc := NewShopService(&fakeShopRepo{err: stderrors.New("connection refused")})

	_, appErr := svc.ResolveBookingSlug(context.Background(), "acme-tires")

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInternalServer, appErr.Code)
}
