package service

import (
	"context"
	"encoding/json"

	"garage-api/core/constants"
	"garage-api/core/logger"
	"garage-api/modules/notification/dto"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingEmail = "notification:booking_email"
	TypeBookingSMS   = "notification:booking_sms"

	QueueName  = "notifications"
	maxRetries = 3
)

// DispatcherInterface is what the booking flow depends on. Dispatch happens
// after the appointment is committed and is strictly best-effort: no method
// here ever fails the booking.
type DispatcherInterface interface {
	BookingConfirmed(ctx context.Context, payload dto.BookingConfirmationPayload)
}

// Dispatcher enqueues confirmation tasks. A nil asynq client means the queue
// backend is not configured; dispatch then degrades to a log line so the
// booking response is never blocked on notification infrastructure.
type Dispatcher struct {
	client *asynq.Client
}

func NewDispatcher(client *asynq.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

// BookingConfirmed queues a confirmation email (when an address was given)
// and a confirmation SMS. Each enqueue is independent; failures are logged
// and swallowed.
func (d *Dispatcher) BookingConfirmed(ctx context.Context, payload dto.BookingConfirmationPayload) {
	if d.client == nil {
		logger.Warn("NotificationDispatcher:BookingConfirmed:Degraded",
			"reason", "queue not configured", "reference", payload.Reference)
		return
	}

	if payload.CustomerEmail != "" {
		d.enqueue(ctx, TypeBookingEmail, payload)
	}
	d.enqueue(ctx, TypeBookingSMS, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, taskType string, payload dto.BookingConfirmationPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("NotificationDispatcher:Enqueue:Marshal", "type", taskType, "error", err)
		return
	}

	task := asynq.NewTask(taskType, body,
		asynq.Queue(QueueName),
		asynq.MaxRetry(maxRetries),
		asynq.Timeout(constants.NotificationTimeout),
	)

	info, err := d.client.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error("NotificationDispatcher:Enqueue", "type", taskType, "reference", payload.Reference, "error", err)
		return
	}

	logger.Info("NotificationDispatcher:Enqueue:Success",
		"type", taskType, "task_id", info.ID, "reference", payload.Reference)
}
