package tokencache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DriverRedis   = "redis"
	DriverUpstash = "upstash"
)

var (
	ErrTokenNotFound = errors.New("auth token not found")
	ErrInvalidUser   = errors.New("user id is empty")
)

// Cache keeps the most recent bearer token of each user so the chat turn
// can hand it to tool calls.
type Cache interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID string, token string, ttl time.Duration) error
}

type Config struct {
	Driver string        `envconfig:"DRIVER" split_words:"true" default:"redis"`
	TTL    time.Duration `envconfig:"TTL" split_words:"true" default:"1800s"`
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case DriverRedis, DriverUpstash:
	default:
		return fmt.Errorf("unsupported token cache driver %q", c.Driver)
	}
	if c.TTL <= 0 {
		return errors.New("token cache ttl must be > 0")
	}
	return nil
}

// Key is the cache key holding userID's token.
func Key(userID string) (string, error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return "", ErrInvalidUser
	}
	return "user:" + id + ":auth_token", nil
}
