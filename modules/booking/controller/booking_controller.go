package controller

import (
	"net/http"

	"garage-api/core/controller"
	"garage-api/core/errors"
	"garage-api/modules/booking/dto"
	"garage-api/modules/booking/service"

	"github.com/labstack/echo/v4"
)

type BookingController struct {
	service service.BookingServiceInterface
	controller.BaseController
}

func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

// GetSlots returns the offerable start times for one date
// @Summary Available booking slots
// @Description Lists open time slots for a shop on a given date
// @Tags Booking
// @Produce json
// @Param slug path string true "Shop booking slug"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.SlotsResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 429 {object} controller.ErrorResponse
// @Router /booking/{slug}/slots [get]
func (ctrl *BookingController) GetSlots(c echo.Context) error {
	slug := c.Param("slug")
	date := c.QueryParam("date")
	if date == "" {
		return ctrl.BadRequest(errors.ErrInvalidInput, "date query parameter is required",
			map[string]string{"field": "date"})
	}

	resp, appErr := ctrl.service.GetAvailableSlots(c.Request().Context(), slug, date)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return c.JSON(http.StatusOK, resp)
}

// CreateBooking books one slot for an anonymous customer
// @Summary Create a booking
// @Description Books an appointment slot; exactly one of two racing requests for the same slot wins
// @Tags Booking
// @Accept json
// @Produce json
// @Param slug path string true "Shop booking slug"
// @Param request body dto.CreateBookingRequest true "Booking form"
// @Success 200 {object} dto.BookingConfirmation
// @Failure 400 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Failure 429 {object} controller.ErrorResponse
// @Router /booking/{slug}/create [post]
func (ctrl *BookingController) CreateBooking(c echo.Context) error {
	slug := c.Param("slug")

	req := new(dto.CreateBookingRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	confirmation, appErr := ctrl.service.CreateBooking(c.Request().Context(), slug, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return c.JSON(http.StatusOK, confirmation)
}
