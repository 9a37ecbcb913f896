package router

import (
	"garage-api/core/constants"
	"garage-api/core/middleware"
	"garage-api/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	Controller *controller.BookingController
}

func NewBookingRouter(ctrl *controller.BookingController) *BookingRouter {
	return &BookingRouter{Controller: ctrl}
}

func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	public := e.Group("/booking", mw.RateLimit(constants.RateLimitClassBooking))
	public.GET("/:slug/slots", r.Controller.GetSlots)
	public.POST("/:slug/create", r.Controller.CreateBooking)
}
