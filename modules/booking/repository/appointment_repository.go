package repository

import (
	"context"
	stderrors "errors"

	"garage-api/core/database"
	"garage-api/core/logger"
	"garage-api/modules/booking/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SlotUniqueConstraint is the partial unique index over
// (shop_id, scheduled_date, scheduled_time) WHERE status <> 'cancelled'.
// It is the only concurrency guarantee the booking flow relies on.
const SlotUniqueConstraint = "uq_appointments_active_slot"

const uniqueViolationCode = "23505"

type AppointmentRepositoryInterface interface {
	Create(ctx context.Context, appt *entity.Appointment) (*entity.Appointment, error)
	GetBookedTimes(ctx context.Context, shopID uuid.UUID, date string) ([]string, error)
}

type AppointmentRepository struct {
	DB database.IDatabase
}

func NewAppointmentRepository(db database.IDatabase) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

// Create inserts the appointment. There is deliberately no availability
// pre-check: concurrent requests for the same slot both reach the insert and
// the unique index lets exactly one through. Callers classify the loser with
// IsSlotConflict.
func (r *AppointmentRepository) Create(ctx context.Context, appt *entity.Appointment) (*entity.Appointment, error) {
	query := `
		INSERT INTO appointments (shop_id, customer_id, reference, service_type,
		                          scheduled_date, scheduled_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, shop_id, customer_id, reference, service_type,
		          to_char(scheduled_date, 'YYYY-MM-DD') AS scheduled_date,
		          to_char(scheduled_time, 'HH24:MI') AS scheduled_time,
		          status, notes, created_at, updated_at
	`

	var created entity.Appointment
	err := r.DB.GetContext(ctx, &created, query,
		appt.ShopID, appt.CustomerID, appt.Reference, appt.ServiceType,
		appt.ScheduledDate, appt.ScheduledTime, appt.Status, appt.Notes)
	if err != nil {
		if !IsSlotConflict(err) {
			logger.Error("AppointmentRepository:Create", err, "shop_id", appt.ShopID)
		}
		return nil, err
	}

	return &created, nil
}

// GetBookedTimes returns the HH:MM start times already taken on a date,
// excluding cancelled appointments.
func (r *AppointmentRepository) GetBookedTimes(ctx context.Context, shopID uuid.UUID, date string) ([]string, error) {
	query := `
		SELECT to_char(scheduled_time, 'HH24:MI')
		FROM appointments
		WHERE shop_id = $1 AND scheduled_date = $2 AND status <> 'cancelled'
		ORDER BY scheduled_time
	`

	var times []string
	err := r.DB.SelectContext(ctx, &times, query, shopID, date)
	if err != nil {
		logger.Error("AppointmentRepository:GetBookedTimes", err, "shop_id", shopID, "date", date)
		return nil, err
	}

	return times, nil
}

// IsSlotConflict reports whether err is the storage layer rejecting a
// double-booked slot. Postgres signals this as SQLSTATE 23505 on the slot
// index; the constraint name is checked when the driver reports one so that
// unrelated unique violations are not misread as slot conflicts.
func IsSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolationCode {
		return false
	}
	return pqErr.Constraint == "" || pqErr.Constraint == SlotUniqueConstraint
}
