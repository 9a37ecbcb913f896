package service

import (
	"context"
	"strings"
	"time"

	"garage-api/core/constants"
	"garage-api/core/errors"
	"garage-api/core/logger"
	"garage-api/core/utils"
	"garage-api/modules/booking/dto"
	"garage-api/modules/booking/entity"
	"garage-api/modules/booking/repository"
	notifdto "garage-api/modules/notification/dto"
	notifservice "garage-api/modules/notification/service"
	shopservice "garage-api/modules/shop/service"

	"github.com/google/uuid"
)

type BookingServiceInterface interface {
	GetAvailableSlots(ctx context.Context, slug, date string) (*dto.SlotsResponse, *errors.AppError)
	CreateBooking(ctx context.Context, slug string, req *dto.CreateBookingRequest) (*dto.BookingConfirmation, *errors.AppError)
}

type BookingService struct {
	shops        shopservice.DirectoryInterface
	customers    repository.CustomerRepositoryInterface
	appointments repository.AppointmentRepositoryInterface
	notifier     notifservice.DispatcherInterface
	slots        *SlotGenerator
}

func NewBookingService(
	shops shopservice.DirectoryInterface,
	customers repository.CustomerRepositoryInterface,
	appointments repository.AppointmentRepositoryInterface,
	notifier notifservice.DispatcherInterface,
) *BookingService {
	return &BookingService{
		shops:        shops,
		customers:    customers,
		appointments: appointments,
		notifier:     notifier,
		slots:        NewSlotGenerator(),
	}
}

// GetAvailableSlots returns the offerable start times for a date. Dates
// before today (in the shop's timezone) or past the shop's booking horizon
// short-circuit to an empty list without touching the generator.
func (s *BookingService) GetAvailableSlots(ctx context.Context, slug, dateStr string) (*dto.SlotsResponse, *errors.AppError) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date must be in YYYY-MM-DD format",
			map[string]string{"field": "date"})
	}

	shop, appErr := s.shops.ResolveBookingSlug(ctx, slug)
	if appErr != nil {
		return nil, appErr
	}

	services := shop.Services
	if services == nil {
		services = []string{}
	}
	resp := &dto.SlotsResponse{
		Slots: []string{},
		Settings: dto.SlotSettings{
			Services:     services,
			SlotDuration: shop.SlotDuration,
		},
	}

	// ISO dates compare correctly as strings, which avoids any timezone
	// drift from comparing a parsed UTC date against local midnight.
	today := time.Now().In(shop.Location())
	if dateStr < today.Format("2006-01-02") ||
		dateStr > today.AddDate(0, 0, shop.MaxDaysAhead).Format("2006-01-02") {
		return resp, nil
	}

	bookedTimes, err := s.appointments.GetBookedTimes(ctx, shop.ID, dateStr)
	if err != nil {
		logger.Error("BookingService:GetAvailableSlots:GetBookedTimes", "error", err, "slug", slug, "date", dateStr)
		return nil, errors.NewAppError(errors.ErrInternalServer, "internal server error", nil)
	}

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	resp.Slots = s.slots.Generate(shop.BusinessHours, shop.SlotDuration, shop.BufferTime, date, booked)
	return resp, nil
}

// CreateBooking runs the public booking flow: validate, resolve shop,
// resolve-or-create the customer, insert the appointment, then queue
// confirmations. The slot uniqueness invariant lives in the appointments
// table; a rejected insert comes back as a conflict.
func (s *BookingService) CreateBooking(ctx context.Context, slug string, req *dto.CreateBookingRequest) (*dto.BookingConfirmation, *errors.AppError) {
	if appErr := req.Validate(); appErr != nil {
		return nil, appErr
	}

	shop, appErr := s.shops.ResolveBookingSlug(ctx, slug)
	if appErr != nil {
		return nil, appErr
	}

	logger.Info("BookingService:CreateBooking:Start",
		"shop_id", shop.ID, "date", req.ScheduledDate, "time", req.ScheduledTime)

	customer, appErr := s.resolveCustomer(ctx, shop.ID, req)
	if appErr != nil {
		return nil, appErr
	}

	appt := &entity.Appointment{
		ShopID:        shop.ID,
		CustomerID:    customer.ID,
		Reference:     utils.GenerateBookingReference(),
		ServiceType:   strings.TrimSpace(req.ServiceType),
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		Status:        constants.AppointmentStatusPending,
		Notes:         optional(req.Notes),
	}

	created, err := s.appointments.Create(ctx, appt)
	if err != nil {
		if repository.IsSlotConflict(err) {
			return nil, errors.NewAppError(errors.ErrAlreadyExists,
				"This time slot was just booked. Please choose another time.", nil)
		}
		logger.Error("BookingService:CreateBooking:Insert", "error", err, "shop_id", shop.ID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "internal server error", nil)
	}

	logger.Info("BookingService:CreateBooking:Success",
		"appointment_id", created.ID, "reference", created.Reference, "shop_id", shop.ID)

	displayDate, displayTime := formatSchedule(created.ScheduledDate, created.ScheduledTime)

	// Confirmations are queued only after the insert committed, so a crash
	// before this point can never produce a false confirmation.
	s.notifier.BookingConfirmed(ctx, notifdto.BookingConfirmationPayload{
		ShopName:      shop.Name,
		ShopPhone:     shop.Phone,
		ShopAddress:   shop.Address,
		CustomerName:  customer.Name,
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: customer.Phone,
		Service:       created.ServiceType,
		Date:          displayDate,
		Time:          displayTime,
		Reference:     created.Reference,
	})

	return &dto.BookingConfirmation{
		Success:   true,
		BookingID: created.ID.String(),
		Message:   "Your appointment is booked. Reference: " + created.Reference,
		Details: dto.BookingDetails{
			ShopName: shop.Name,
			Service:  created.ServiceType,
			Date:     displayDate,
			Time:     displayTime,
			Address:  shop.Address,
			Phone:    shop.Phone,
		},
	}, nil
}

// resolveCustomer looks the customer up by (shop, phone) and creates the
// record on first contact. A repeat phone number always reattaches to the
// existing record, whatever name was submitted this time.
//
// Lookup and create are two statements, not one atomic operation, so two
// concurrent first-time bookings from the same phone can race into two
// customer rows. Kept as-is; the slot invariant does not depend on it.
func (s *BookingService) resolveCustomer(ctx context.Context, shopID uuid.UUID, req *dto.CreateBookingRequest) (*entity.Customer, *errors.AppError) {
	phone := strings.TrimSpace(req.CustomerPhone)

	customer, err := s.customers.GetByShopAndPhone(ctx, shopID, phone)
	if err != nil {
		logger.Error("BookingService:ResolveCustomer:Lookup", "error", err, "shop_id", shopID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "internal server error", nil)
	}
	if customer != nil {
		return customer, nil
	}

	var notes *string
	if v := strings.TrimSpace(req.VehicleInfo); v != "" {
		vehicleNote := "Vehicle: " + v
		notes = &vehicleNote
	}

	created, err := s.customers.Create(ctx, &entity.Customer{
		ShopID: shopID,
		Name:   strings.TrimSpace(req.CustomerName),
		Phone:  phone,
		Email:  optional(req.CustomerEmail),
		Notes:  notes,
	})
	if err != nil {
		logger.Error("BookingService:ResolveCustomer:Create", "error", err, "shop_id", shopID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "internal server error", nil)
	}

	logger.Info("BookingService:ResolveCustomer:Created", "customer_id", created.ID, "shop_id", shopID)
	return created, nil
}

func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func formatSchedule(dateStr, timeStr string) (string, string) {
	displayDate := dateStr
	if d, err := time.Parse("2006-01-02", dateStr); err == nil {
		displayDate = d.Format("Monday, January 2, 2006")
	}
	displayTime := timeStr
	if t, err := time.Parse("15:04", timeStr); err == nil {
		displayTime = t.Format("3:04 PM")
	}
	return displayDate, displayTime
}
