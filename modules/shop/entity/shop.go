package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	coreEntity "garage-api/core/entity"
)

// DayHours is the configured window for one weekday. Open/Close are "HH:MM".
type DayHours struct {
	Open    string `json:"open"`
	Close   string `json:"close"`
	Enabled bool   `json:"enabled"`
}

// BusinessHours maps lowercase weekday names ("monday".."sunday") to their
// windows. Shop settings write all seven keys.
type BusinessHours map[string]DayHours

func (h BusinessHours) Value() (driver.Value, error) {
	return json.Marshal(h)
}

func (h *BusinessHours) Scan(value any) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, h)
}

// ServiceList is the shop-chosen set of offerable service names. Free text,
// not validated against a catalog.
type ServiceList []string

func (s ServiceList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ServiceList) Scan(value any) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, s)
}

// Shop is the schedule configuration and public identity of one tenant.
// Owned by shop settings; read-only to the booking core.
type Shop struct {
	Name           string        `db:"name" json:"name"`
	Slug           string        `db:"slug" json:"slug"`
	Address        string        `db:"address" json:"address"`
	Phone          string        `db:"phone" json:"phone"`
	Timezone       string        `db:"timezone" json:"timezone"`
	BookingEnabled bool          `db:"booking_enabled" json:"booking_enabled"`
	BusinessHours  BusinessHours `db:"business_hours" json:"business_hours"`
	SlotDuration   int           `db:"slot_duration" json:"slot_duration"`
	BufferTime     int           `db:"buffer_time" json:"buffer_time"`
	MaxDaysAhead   int           `db:"max_days_ahead" json:"max_days_ahead"`
	Services       ServiceList   `db:"services" json:"services"`
	coreEntity.BaseEntity
}

// Location resolves the shop's operating timezone, falling back to UTC when
// unset or invalid. "Today" for booking-range checks is computed here.
func (s *Shop) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
