package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"garage-api/core/controller"
	"garage-api/core/errors"
	"garage-api/core/ratelimit"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	limiter *ratelimit.Limiter
}

func NewMiddleware(limiter *ratelimit.Limiter) *Middleware {
	return &Middleware{limiter: limiter}
}

// RateLimit throttles an endpoint class. Limit headers are set on every
// response the limiter could account for; blocked requests get 429 with
// Retry-After.
func (m *Middleware) RateLimit(class string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := ClientIdentity(c.Request())
			decision := m.limiter.Check(c.Request().Context(), class, identity)

			h := c.Response().Header()
			if decision.Limit > 0 {
				h.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
				h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
				h.Set("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))
			}

			if !decision.Allowed {
				retryAfter := int(decision.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				return controller.NewErrorResponse(http.StatusTooManyRequests, errors.ErrRateLimited,
					"Too many requests. Please retry later.",
					map[string]int{"retry_after_seconds": retryAfter})
			}

			return next(c)
		}
	}
}

// ClientIdentity derives the throttling bucket for a request: first address
// in X-Forwarded-For, then X-Real-Ip, then a shared "unknown" bucket for
// deployments without a proxy setting either header.
func ClientIdentity(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := fwd
		if idx := strings.Index(fwd, ","); idx >= 0 {
			first = fwd[:idx]
		}
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-Ip")); ip != "" {
		return ip
	}
	return "unknown"
}
