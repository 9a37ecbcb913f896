package dto

import (
	"strings"
	"testing"

	"garage-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid() CreateBookingRequest {
	return CreateBookingRequest{
		CustomerName:  "Jordan Baker",
		CustomerPhone: "+1 555 010 2030",
		CustomerEmail: "jordan@example.com",
		ServiceType:   "Oil change",
		ScheduledDate: "2025-06-02",
		ScheduledTime: "08:00",
		Notes:         "squeaky brakes",
		VehicleInfo:   "2019 Corolla",
	}
}

func TestValidate_OK(t *testing.T) {
	req := valid()
	assert.Nil(t, req.Validate())
}

func TestValidate_OptionalFieldsMayBeEmpty(t *testing.T) {
	req := valid()
	req.CustomerEmail = ""
	req.Notes = ""
	req.VehicleInfo = ""
	assert.Nil(t, req.Validate())
}

func TestValidate_FirstInvalidField(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateBookingRequest)
		field   string
	}{
		{"empty name", func(r *CreateBookingRequest) { r.CustomerName = "  " }, "customerName"},
		{"name too long", func(r *CreateBookingRequest) { r.CustomerName = strings.Repeat("x", 101) }, "customerName"},
		{"too few digits", func(r *CreateBookingRequest) { r.CustomerPhone = "555-0102" }, "customerPhone"},
		{"phone too long", func(r *CreateBookingRequest) { r.CustomerPhone = strings.Repeat("1", 21) }, "customerPhone"},
		{"bad email", func(r *CreateBookingRequest) { r.CustomerEmail = "not-an-email" }, "customerEmail"},
		{"empty service", func(r *CreateBookingRequest) { r.ServiceType = "" }, "serviceType"},
		{"bad date", func(r *CreateBookingRequest) { r.ScheduledDate = "06/02/2025" }, "scheduledDate"},
		{"bad time", func(r *CreateBookingRequest) { r.ScheduledTime = "8am" }, "scheduledTime"},
		{"notes too long", func(r *CreateBookingRequest) { r.Notes = strings.Repeat("n", 501) }, "notes"},
		{"vehicle too long", func(r *CreateBookingRequest) { r.VehicleInfo = strings.Repeat("v", 201) }, "vehicleInfo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			appErr := req.Validate()
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

			details, ok := appErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.field, details["field"])
		})
	}
}

func TestValidate_PhoneCountsDigitsNotLength(t *testing.T) {
	req := valid()
	// 10 digits spread across formatting characters.
	req.CustomerPhone = "(555) 010-2030"
	assert.Nil(t, req.Validate())
}
