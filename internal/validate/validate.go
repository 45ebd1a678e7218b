// Package validate holds fail-fast startup checks for runtime configuration.
package validate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Env validates required configuration before the server starts serving.
func Env() error {
	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_USERNAME") == "" {
		return errors.New("set DATABASE_URL or the DB_USERNAME/DB_PASSWORD/DB_HOST/DB_NAME fields")
	}

	if v := os.Getenv("MAX_BODY_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("MAX_BODY_SIZE: must be a positive byte count, got %q", v)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("PORT: invalid port %q", v)
		}
	}

	if u := os.Getenv("REDIS_URL"); u != "" {
		if _, err := redis.ParseURL(u); err != nil {
			return fmt.Errorf("REDIS_URL: %w", err)
		}
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings worth logging on startup.
func HardeningWarnings(appEnv string) []string {
	var warns []string

	if strings.EqualFold(appEnv, "production") {
		if os.Getenv("REDIS_URL") == "" {
			warns = append(warns, "REDIS_URL not set; rate limiting is disabled")
		}
		if u := os.Getenv("REDIS_URL"); strings.HasPrefix(u, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss://")
		}
		if os.Getenv("CORS_ALLOWED_ORIGINS") == "" {
			warns = append(warns, "CORS_ALLOWED_ORIGINS not set; only localhost dev origins are allowed")
		}
	}

	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}
