package controller

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"garage-api/core/config"
	"garage-api/core/controller"
	"garage-api/core/errors"
	"garage-api/core/logger"

	"github.com/labstack/echo/v4"
)

const maxWebhookBody = 1 << 20 // 1 MiB

// WebhookController acknowledges billing platform events. Subscription
// state handling lives in the billing service; this endpoint only verifies,
// logs and acks so the platform stops retrying.
type WebhookController struct {
	secret string
	controller.BaseController
}

func NewWebhookController(cfg config.BillingConfig) *WebhookController {
	return &WebhookController{
		secret:         cfg.WebhookSecret,
		BaseController: controller.NewBaseController(),
	}
}

func (ctrl *WebhookController) HandleEvent(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "unable to read request body", nil)
	}

	if ctrl.secret != "" {
		signature := c.Request().Header.Get("X-Webhook-Signature")
		if !ctrl.verifySignature(body, signature) {
			logger.Warn("WebhookController:HandleEvent:BadSignature")
			return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid webhook signature", nil)
		}
	}

	var event struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid webhook payload", nil)
	}

	logger.Info("WebhookController:HandleEvent:Received", "event_id", event.ID, "event_type", event.Type)

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

func (ctrl *WebhookController) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(ctrl.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
