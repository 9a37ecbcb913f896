package ratelimit

import (
	"context"
	"time"

	"garage-api/core/logger"
)

// Class is one endpoint class with its own sliding window.
type Class struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Decision is the outcome of a single check. Limit/Remaining/Reset feed the
// X-RateLimit-* response headers; RetryAfter is only meaningful when blocked.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

// CounterStore records one request for a key and reports how many requests
// fall inside the trailing window, including this one, together with the
// timestamp of the oldest request still counted. Implementations must be
// atomic under concurrent callers.
type CounterStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, oldest time.Time, err error)
}

// Limiter is the sliding-window throttle. A nil store means the counter
// backend is not configured; checks then always allow, per contract, so
// callers never branch on configuration themselves.
type Limiter struct {
	store   CounterStore
	classes map[string]Class
}

func NewLimiter(store CounterStore, classes ...Class) *Limiter {
	byName := make(map[string]Class, len(classes))
	for _, c := range classes {
		byName[c.Name] = c
	}
	return &Limiter{store: store, classes: byName}
}

// Check records the request and decides whether it may proceed.
func (l *Limiter) Check(ctx context.Context, class, identity string) Decision {
	cls, ok := l.classes[class]
	if !ok {
		logger.Warn("RateLimiter:Check:UnknownClass", "class", class)
		return Decision{Allowed: true}
	}

	if l.store == nil {
		logger.Warn("RateLimiter:Check:Degraded", "class", class, "reason", "store not configured")
		return allowedDecision(cls, time.Now())
	}

	key := class + ":" + identity
	count, oldest, err := l.store.Hit(ctx, key, cls.Window)
	if err != nil {
		// Availability over throttling when the backend is down.
		logger.Warn("RateLimiter:Check:Degraded", "class", class, "identity", identity, "error", err)
		return allowedDecision(cls, time.Now())
	}

	now := time.Now()
	reset := oldest.Add(cls.Window)
	remaining := cls.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	if count > int64(cls.Limit) {
		retryAfter := time.Until(reset)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return Decision{
			Allowed:    false,
			Limit:      cls.Limit,
			Remaining:  0,
			Reset:      reset,
			RetryAfter: retryAfter,
		}
	}

	if reset.Before(now) {
		reset = now.Add(cls.Window)
	}
	return Decision{
		Allowed:   true,
		Limit:     cls.Limit,
		Remaining: remaining,
		Reset:     reset,
	}
}

func allowedDecision(cls Class, now time.Time) Decision {
	return Decision{
		Allowed:   true,
		Limit:     cls.Limit,
		Remaining: cls.Limit,
		Reset:     now.Add(cls.Window),
	}
}
