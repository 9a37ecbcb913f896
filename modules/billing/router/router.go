package router

import (
	"garage-api/core/constants"
	"garage-api/core/middleware"
	"garage-api/modules/billing/controller"

	"github.com/labstack/echo/v4"
)

type BillingRouter struct {
	Controller *controller.WebhookController
}

func NewBillingRouter(ctrl *controller.WebhookController) *BillingRouter {
	return &BillingRouter{Controller: ctrl}
}

func (r *BillingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	// The payment platform retries in batches, hence the wider window.
	e.POST("/webhooks/billing", r.Controller.HandleEvent,
		mw.RateLimit(constants.RateLimitClassWebhook))
}
