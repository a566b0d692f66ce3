package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/deppfellow/lvr-calculator/internal/config"
	"github.com/deppfellow/lvr-calculator/internal/errs"
	"github.com/deppfellow/lvr-calculator/internal/server"
)

// RateLimitedMessage is the error body of a rejected request.
const RateLimitedMessage = "Too many requests"

// RateLimitMiddleware limits requests per client IP.
//
// The store is shared through Redis when the server has a Redis client,
// and kept in memory otherwise.
type RateLimitMiddleware struct {
	server *server.Server
	store  middleware.RateLimiterStore
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	cfg := s.Config.RateLimit

	var store middleware.RateLimiterStore
	if s.Redis != nil {
		store = NewRedisRateLimiterStore(s.Redis, cfg, s.Logger)
	} else {
		store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.Rate),
			Burst:     cfg.Burst,
			ExpiresIn: time.Duration(cfg.ExpiresIn) * time.Second,
		})
	}

	return &RateLimitMiddleware{
		server: s,
		store:  store,
	}
}

// Limit returns the Echo middleware. Denied requests get a 429.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("identifier", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError(RateLimitedMessage)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError().WithInternal(err)
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// RedisRateLimiterStore counts requests per identifier in fixed windows.
// At most Rate*Window requests are allowed per Window, across every
// instance sharing the Redis.
//
// Redis failures fail open: the request is allowed and the error logged.
type RedisRateLimiterStore struct {
	client  *redis.Client
	logger  *zerolog.Logger
	limit   int64
	window  time.Duration
	timeout time.Duration
	prefix  string
	now     func() time.Time
}

func NewRedisRateLimiterStore(client *redis.Client, cfg config.RateLimitConfig, logger *zerolog.Logger) *RedisRateLimiterStore {
	limit := int64(cfg.Rate * float64(cfg.Window))
	if limit < 1 {
		limit = 1
	}

	return &RedisRateLimiterStore{
		client:  client,
		logger:  logger,
		limit:   limit,
		window:  time.Duration(cfg.Window) * time.Second,
		timeout: 500 * time.Millisecond,
		prefix:  config.ServiceName + ":ratelimit:",
		now:     time.Now,
	}
}

// Allow implements middleware.RateLimiterStore.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	bucket := s.now().UnixNano() / int64(s.window)
	key := s.prefix + identifier + ":" + strconv.FormatInt(bucket, 10)

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)

	if _, err := pipe.Exec(ctx); err != nil {
		if s.logger != nil {
			s.logger.Error().Err(fmt.Errorf("rate limit store: %w", err)).Msg("allowing request")
		}
		return true, nil
	}

	return count.Val() <= s.limit, nil
}
