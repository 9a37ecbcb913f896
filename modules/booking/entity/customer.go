package entity

import (
	coreEntity "garage-api/core/entity"

	"github.com/google/uuid"
)

// Customer is identified within a shop by phone number. The booking core
// only ever resolves-or-creates; record management lives elsewhere.
type Customer struct {
	ShopID uuid.UUID `db:"shop_id" json:"shop_id"`
	Name   string    `db:"name" json:"name"`
	Phone  string    `db:"phone" json:"phone"`
	Email  *string   `db:"email" json:"email,omitempty"`
	Notes  *string   `db:"notes" json:"notes,omitempty"`
	coreEntity.BaseEntity
}
