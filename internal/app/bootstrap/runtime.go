package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/paramount-detail-site/internal/config"
	"github.com/wolfman30/paramount-detail-site/internal/forwarder"
	"github.com/wolfman30/paramount-detail-site/internal/session"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStore picks the page-view store from SESSION_STORE. Asking for
// redis when it is unreachable is a startup error, not a silent fallback.
func BuildSessionStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (session.Store, io.Closer, error) {
	switch cfg.SessionStore {
	case "", "memory":
		store := session.NewMemoryStore(cfg.SessionTTL)
		return store, store, nil
	case "redis":
		client := BuildRedisClient(ctx, cfg, logger, true)
		if client == nil {
			return nil, nil, fmt.Errorf("bootstrap: redis session store requested but %s is unreachable", cfg.RedisAddr)
		}
		return session.NewRedisStore(client, cfg.SessionTTL), client, nil
	default:
		return nil, nil, fmt.Errorf("bootstrap: unknown SESSION_STORE %q", cfg.SessionStore)
	}
}

// BuildForwarder returns the session option for the submission client. With no
// endpoint configured the service gets no forwarder at all, never a typed nil.
func BuildForwarder(cfg *appconfig.Config, logger *logging.Logger) session.Option {
	client := forwarder.NewClient(cfg.BookingSubmitEndpoint,
		forwarder.WithTimeout(cfg.BookingSubmitTimeout),
		forwarder.WithLogger(logger),
	)
	if client == nil {
		return session.WithForwarder(nil)
	}
	return session.WithForwarder(client)
}
