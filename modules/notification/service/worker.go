package service

import (
	"context"
	"encoding/json"
	"fmt"

	"garage-api/core/logger"
	"garage-api/modules/notification/dto"

	"github.com/hibiken/asynq"
)

// Worker consumes queued notification tasks. Handler errors are surfaced to
// asynq, which retries up to maxRetries before parking the task; failures
// never flow back into the booking that enqueued them.
type Worker struct {
	mailer Mailer
	texter Texter
}

func NewWorker(mailer Mailer, texter Texter) *Worker {
	return &Worker{mailer: mailer, texter: texter}
}

func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeBookingEmail, w.HandleBookingEmail)
	mux.HandleFunc(TypeBookingSMS, w.HandleBookingSMS)
}

func (w *Worker) HandleBookingEmail(ctx context.Context, t *asynq.Task) error {
	var payload dto.BookingConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// Malformed payloads never succeed; skip retries.
		logger.Error("NotificationWorker:HandleBookingEmail:Unmarshal", "error", err)
		return fmt.Errorf("unmarshal booking email payload: %w: %w", err, asynq.SkipRetry)
	}

	subject := fmt.Sprintf("Appointment confirmed at %s", payload.ShopName)
	body := bookingEmailBody(payload)

	if err := w.mailer.Send(ctx, payload.CustomerEmail, subject, body); err != nil {
		logger.Error("NotificationWorker:HandleBookingEmail:Send",
			"reference", payload.Reference, "error", err)
		return err
	}

	logger.Info("NotificationWorker:HandleBookingEmail:Success", "reference", payload.Reference)
	return nil
}

func (w *Worker) HandleBookingSMS(ctx context.Context, t *asynq.Task) error {
	var payload dto.BookingConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("NotificationWorker:HandleBookingSMS:Unmarshal", "error", err)
		return fmt.Errorf("unmarshal booking sms payload: %w: %w", err, asynq.SkipRetry)
	}

	message := fmt.Sprintf("%s: your %s appointment is confirmed for %s at %s. Ref %s.",
		payload.ShopName, payload.Service, payload.Date, payload.Time, payload.Reference)

	if err := w.texter.Send(ctx, payload.CustomerPhone, message); err != nil {
		logger.Error("NotificationWorker:HandleBookingSMS:Send",
			"reference", payload.Reference, "error", err)
		return err
	}

	logger.Info("NotificationWorker:HandleBookingSMS:Success", "reference", payload.Reference)
	return nil
}

func bookingEmailBody(p dto.BookingConfirmationPayload) string {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour appointment at %s is confirmed.\n\nService: %s\nDate: %s\nTime: %s\nReference: %s\n",
		p.CustomerName, p.ShopName, p.Service, p.Date, p.Time, p.Reference)
	if p.ShopAddress != "" {
		body += fmt.Sprintf("Address: %s\n", p.ShopAddress)
	}
	if p.ShopPhone != "" {
		body += fmt.Sprintf("\nQuestions? Call us at %s.\n", p.ShopPhone)
	}
	return body
}
