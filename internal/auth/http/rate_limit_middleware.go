package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/httputil"
)

// rateLimiterStore holds per-key rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // map[string]*rateLimiterEntry
	rps      float64
	burst    int
}

// rateLimiterEntry holds a rate limiter and last access time for cleanup.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// newRateLimiterStore creates a store and starts its background cleanup.
func newRateLimiterStore(rps float64, burst int) *rateLimiterStore {
	store := &rateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	// Cleanup goroutine for stale limiters (every 5 minutes)
	go store.cleanupStale(context.Background(), 5*time.Minute)

	return store
}

// RateLimitMiddleware enforces per-account rate limiting on authenticated requests.
//
// MUST be used after AuthenticationMiddleware. Uses the token bucket algorithm
// via golang.org/x/time/rate; each account gets an independent limiter keyed by
// its account ID.
//
// Returns 429 Too Many Requests with a Retry-After header when the limit is
// exceeded.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(rps, burst)

	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok || identity == nil {
			// Should never happen if AuthenticationMiddleware runs first
			logger.Error("rate limit middleware: no authenticated identity in context")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		if !allowRequest(c, store, identity.AccountID.String(), logger) {
			return
		}

		c.Next()
	}
}

// SignInRateLimitMiddleware enforces per-IP rate limiting on the sign-in
// endpoint. Sign-in is unauthenticated, so the client IP is the only stable
// key available; this throttles credential stuffing attempts.
func SignInRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newRateLimiterStore(rps, burst)

	return func(c *gin.Context) {
		if !allowRequest(c, store, c.ClientIP(), logger) {
			return
		}

		c.Next()
	}
}

// allowRequest checks the limiter for the given key, writing the 429 response
// and aborting when the request is not allowed.
func allowRequest(c *gin.Context, store *rateLimiterStore, key string, logger *slog.Logger) bool {
	limiter := store.getLimiter(key)

	if !limiter.Allow() {
		reservation := limiter.Reserve()
		retryAfter := int(reservation.Delay().Seconds())
		reservation.Cancel()

		logger.Debug("rate limit exceeded",
			slog.String("key", key),
			slog.Int("retry_after", retryAfter))

		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.JSON(http.StatusTooManyRequests, httputil.ErrorResponse{
			Error:   "rate_limit_exceeded",
			Message: "Too many requests. Please retry after the specified delay.",
		})
		c.Abort()
		return false
	}

	return true
}

// getLimiter retrieves or creates a rate limiter for a key.
func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	if val, ok := s.limiters.Load(key); ok {
		entry := val.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(s.rps), s.burst)
	entry := &rateLimiterEntry{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	s.limiters.Store(key, entry)
	return limiter
}

// cleanupStale removes rate limiters that haven't been accessed recently.
// Runs periodically to prevent unbounded memory growth.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			threshold := time.Now().Add(-1 * time.Hour)
			s.limiters.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimiterEntry)
				entry.mu.Lock()
				shouldDelete := entry.lastAccess.Before(threshold)
				entry.mu.Unlock()

				if shouldDelete {
					s.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
