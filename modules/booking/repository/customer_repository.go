package repository

import (
	"context"
	"database/sql"

	"garage-api/core/database"
	"garage-api/core/logger"
	"garage-api/modules/booking/entity"

	"github.com/google/uuid"
)

type CustomerRepositoryInterface interface {
	GetByShopAndPhone(ctx context.Context, shopID uuid.UUID, phone string) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
}

type CustomerRepository struct {
	DB database.IDatabase
}

func NewCustomerRepository(db database.IDatabase) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

// GetByShopAndPhone returns nil, nil when the shop has never seen the phone
// number.
//
// Known race: lookup-or-create is not atomic with the appointment insert, so
// two concurrent first-time bookings from one phone can each miss here and
// create two customer rows. The slot uniqueness invariant is unaffected.
func (r *CustomerRepository) GetByShopAndPhone(ctx context.Context, shopID uuid.UUID, phone string) (*entity.Customer, error) {
	query := `
		SELECT id, shop_id, name, phone, email, notes, created_at, updated_at
		FROM customers
		WHERE shop_id = $1 AND phone = $2
		ORDER BY created_at
		LIMIT 1
	`

	var customer entity.Customer
	err := r.DB.GetContext(ctx, &customer, query, shopID, phone)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CustomerRepository:GetByShopAndPhone", err, "shop_id", shopID)
		return nil, err
	}

	return &customer, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	query := `
		INSERT INTO customers (shop_id, name, phone, email, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, shop_id, name, phone, email, notes, created_at, updated_at
	`

	var created entity.Customer
	err := r.DB.GetContext(ctx, &created, query,
		customer.ShopID, customer.Name, customer.Phone, customer.Email, customer.Notes)
	if err != nil {
		logger.Error("CustomerRepository:Create", err, "shop_id", customer.ShopID)
		return nil, err
	}

	return &created, nil
}
