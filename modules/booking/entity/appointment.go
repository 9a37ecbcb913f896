package entity

import (
	coreEntity "garage-api/core/entity"

	"github.com/google/uuid"
)

// Appointment is created here in status "pending"; every later transition
// belongs to the shop-facing order management app.
type Appointment struct {
	ShopID        uuid.UUID `db:"shop_id" json:"shop_id"`
	CustomerID    uuid.UUID `db:"customer_id" json:"customer_id"`
	Reference     string    `db:"reference" json:"reference"`
	ServiceType   string    `db:"service_type" json:"service_type"`
	ScheduledDate string    `db:"scheduled_date" json:"scheduled_date"` // YYYY-MM-DD
	ScheduledTime string    `db:"scheduled_time" json:"scheduled_time"` // HH:MM
	Status        string    `db:"status" json:"status"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	coreEntity.BaseEntity
}
