package dto

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"garage-api/core/constants"
	"garage-api/core/errors"
)

// CreateBookingRequest is the public booking form body.
type CreateBookingRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	ServiceType   string `json:"serviceType"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
	Notes         string `json:"notes,omitempty"`
	VehicleInfo   string `json:"vehicleInfo,omitempty"`
}

// Validate checks every field before any side effect runs. The returned
// error names the first invalid field.
func (r *CreateBookingRequest) Validate() *errors.AppError {
	name := strings.TrimSpace(r.CustomerName)
	if name == "" {
		return invalidField("customerName", "customer name is required")
	}
	if len(name) > constants.MaxCustomerNameLen {
		return invalidField("customerName",
			fmt.Sprintf("customer name must be at most %d characters", constants.MaxCustomerNameLen))
	}

	phone := strings.TrimSpace(r.CustomerPhone)
	if len(phone) > constants.MaxPhoneLen {
		return invalidField("customerPhone",
			fmt.Sprintf("phone number must be at most %d characters", constants.MaxPhoneLen))
	}
	if digitCount(phone) < constants.MinPhoneDigits {
		return invalidField("customerPhone",
			fmt.Sprintf("phone number must contain at least %d digits", constants.MinPhoneDigits))
	}

	if email := strings.TrimSpace(r.CustomerEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return invalidField("customerEmail", "email address is not valid")
		}
	}

	if strings.TrimSpace(r.ServiceType) == "" {
		return invalidField("serviceType", "service type is required")
	}

	if _, err := time.Parse("2006-01-02", r.ScheduledDate); err != nil {
		return invalidField("scheduledDate", "scheduled date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("15:04", r.ScheduledTime); err != nil {
		return invalidField("scheduledTime", "scheduled time must be in HH:MM format")
	}

	if len(r.Notes) > constants.MaxNotesLen {
		return invalidField("notes",
			fmt.Sprintf("notes must be at most %d characters", constants.MaxNotesLen))
	}
	if len(r.VehicleInfo) > constants.MaxVehicleInfoLen {
		return invalidField("vehicleInfo",
			fmt.Sprintf("vehicle info must be at most %d characters", constants.MaxVehicleInfoLen))
	}

	return nil
}

func invalidField(field, message string) *errors.AppError {
	return errors.NewAppError(errors.ErrInvalidInput, message, map[string]string{"field": field})
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// SlotSettings echoes the parts of the shop schedule a booking page needs.
type SlotSettings struct {
	Services     []string `json:"services"`
	SlotDuration int      `json:"slot_duration"`
}

// SlotsResponse is the availability payload for one date.
type SlotsResponse struct {
	Slots    []string     `json:"slots"`
	Settings SlotSettings `json:"settings"`
}

// BookingDetails echoes shop contact info back to the customer.
type BookingDetails struct {
	ShopName string `json:"shopName"`
	Service  string `json:"service"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// BookingConfirmation is the success payload of the create endpoint.
type BookingConfirmation struct {
	Success   bool           `json:"success"`
	BookingID string         `json:"bookingId"`
	Message   string         `json:"message"`
	Details   BookingDetails `json:"details"`
}
