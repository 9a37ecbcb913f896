package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garage-api/core/cache"
	"garage-api/core/config"
	"garage-api/core/constants"
	"garage-api/core/database"
	"garage-api/core/logger"
	"garage-api/core/middleware"
	"garage-api/core/ratelimit"
	"garage-api/modules/billing"
	"garage-api/modules/booking"
	"garage-api/modules/notification"
	notifservice "garage-api/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run builds every client once, injects them into the modules, and serves
// until SIGINT/SIGTERM.
func Run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Logger.Level)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.SQLx().Close()

	redisClient := cache.NewRedisClient(cfg.Redis)

	var store ratelimit.CounterStore
	if redisClient != nil {
		store = ratelimit.NewRedisStore(redisClient)
	}
	limiter := ratelimit.NewLimiter(store,
		ratelimit.Class{
			Name:   constants.RateLimitClassBooking,
			Limit:  cfg.RateLimit.BookingLimit,
			Window: windowDuration(cfg.RateLimit.WindowSeconds),
		},
		ratelimit.Class{
			Name:   constants.RateLimitClassWebhook,
			Limit:  cfg.RateLimit.WebhookLimit,
			Window: windowDuration(cfg.RateLimit.WindowSeconds),
		},
	)
	mw := middleware.NewMiddleware(limiter)

	// Notification queue shares the redis backend with the limiter; without
	// redis, dispatch degrades to log-only and no worker runs.
	var (
		asynqClient *asynq.Client
		asynqServer *asynq.Server
	)
	if redisClient != nil {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		asynqClient = asynq.NewClient(redisOpt)
		defer asynqClient.Close()

		asynqServer = asynq.NewServer(redisOpt, asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{notifservice.QueueName: 1},
		})
		mux := asynq.NewServeMux()
		notification.RegisterWorker(mux, cfg)
		go func() {
			if err := asynqServer.Run(mux); err != nil {
				logger.Error("Server:NotificationWorker", "error", err)
			}
		}()
	}
	dispatcher := notification.Init(asynqClient)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	e.GET("/health", func(c echo.Context) error {
		if err := db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	booking.Init(e, db, mw, dispatcher)
	billing.Init(e, mw, cfg.Billing)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start", "error", err)
		}
	}()
	logger.Info("Server:Run:Started", "host", cfg.Server.Host, "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server:Run:ShuttingDown")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if asynqServer != nil {
		asynqServer.Shutdown()
	}
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func windowDuration(seconds int) time.Duration {
	if seconds <= 0 {
		return constants.RateLimitWindow
	}
	return time.Duration(seconds) * time.Second
}
