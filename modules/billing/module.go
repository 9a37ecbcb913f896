package billing

import (
	"garage-api/core/config"
	"garage-api/core/middleware"
	"garage-api/modules/billing/controller"
	"garage-api/modules/billing/router"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, mw *middleware.Middleware, cfg config.BillingConfig) {
	ctrl := controller.NewWebhookController(cfg)
	router.NewBillingRouter(ctrl).Setup(e, mw)
}
