package constants

import "time"

// Database pool tuning.
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Rate-limit endpoint classes and their sliding windows.
const (
	RateLimitClassBooking = "booking"
	RateLimitClassWebhook = "webhook"

	BookingRateLimit  = 10
	WebhookRateLimit  = 100
	RateLimitWindow   = 60 * time.Second
	RateLimitKeySpace = "ratelimit"
)

// Appointment statuses. Only StatusPending is ever written by this service;
// the remaining transitions belong to the shop-facing order management app.
const (
	AppointmentStatusPending    = "pending"
	AppointmentStatusInProgress = "in_progress"
	AppointmentStatusCompleted  = "completed"
	AppointmentStatusCancelled  = "cancelled"
)

// Outbound call bounds.
const (
	NotificationTimeout = 10 * time.Second
	ShutdownTimeout     = 15 * time.Second
)

// Public booking input limits.
const (
	MaxCustomerNameLen = 100
	MaxPhoneLen        = 20
	MinPhoneDigits     = 10
	MaxNotesLen        = 500
	MaxVehicleInfoLen  = 200
)
