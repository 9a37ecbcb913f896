package booking

import (
	"garage-api/core/database"
	"garage-api/core/middleware"
	"garage-api/modules/booking/controller"
	"garage-api/modules/booking/repository"
	"garage-api/modules/booking/router"
	bookingservice "garage-api/modules/booking/service"
	notifservice "garage-api/modules/notification/service"
	shoprepository "garage-api/modules/shop/repository"
	shopservice "garage-api/modules/shop/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, notifier notifservice.DispatcherInterface) {
	shopRepo := shoprepository.NewShopRepository(db)
	shopSvc := shopservice.NewShopService(shopRepo)

	customerRepo := repository.NewCustomerRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)

	svc := bookingservice.NewBookingService(shopSvc, customerRepo, apptRepo, notifier)
	ctrl := controller.NewBookingController(svc)

	router.NewBookingRouter(ctrl).Setup(e, mw)
}
