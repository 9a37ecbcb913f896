package notification

import (
	"garage-api/core/config"
	"garage-api/modules/notification/service"

	"github.com/hibiken/asynq"
)

// Init builds the dispatcher the booking module enqueues through. The asynq
// client may be nil (queue backend unconfigured); the dispatcher degrades to
// log-only in that case.
func Init(client *asynq.Client) *service.Dispatcher {
	return service.NewDispatcher(client)
}

// RegisterWorker wires the task handlers with their outbound senders.
func RegisterWorker(mux *asynq.ServeMux, cfg *config.Config) {
	worker := service.NewWorker(
		service.NewSMTPMailer(cfg.SMTP),
		service.NewGatewaySMSSender(cfg.SMS),
	)
	worker.Register(mux)
}
