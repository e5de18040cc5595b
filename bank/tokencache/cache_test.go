package tokencache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	t.Parallel()

	key, err := Key("42")
	require.NoError(t, err)
	assert.Equal(t, "user:42:auth_token", key)

	_, err = Key("  ")
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&Config{Driver: "Redis", TTL: time.Minute}).Validate())
	assert.Error(t, (&Config{Driver: "memcached", TTL: time.Minute}).Validate())
	assert.Error(t, (&Config{Driver: DriverUpstash}).Validate())
}

func TestUpstashCacheSetAndGet(t *testing.T) {
	t.Parallel()

	var commands [][]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var cmd []any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cmd))
		commands = append(commands, cmd)
		switch cmd[0] {
		case "SET":
			fmt.Fprint(w, `{"result":"OK"}`)
		case "GET":
			fmt.Fprint(w, `{"result":"jwt-token"}`)
		}
	}))
	t.Cleanup(server.Close)

	cache, err := NewUpstashCache(UpstashConfig{URL: server.URL, Token: "secret"}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	require.NoError(t, cache.Set(context.Background(), "u1", "jwt-token", 1800*time.Second))
	token, err := cache.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	require.Len(t, commands, 2)
	assert.Equal(t, []any{"SET", "user:u1:auth_token", "jwt-token", "EX", float64(1800)}, commands[0])
	assert.Equal(t, []any{"GET", "user:u1:auth_token"}, commands[1])
}

func TestUpstashCacheMiss(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":null}`)
	}))
	t.Cleanup(server.Close)

	cache, err := NewUpstashCache(UpstashConfig{URL: server.URL, Token: "secret"}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestUpstashCacheErrorResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"WRONGPASS"}`)
	}))
	t.Cleanup(server.Close)

	cache, err := NewUpstashCache(UpstashConfig{URL: server.URL, Token: "secret"}, WithHTTPClient(server.Client()))
	require.NoError(t, err)

	err = cache.Set(context.Background(), "u1", "t", time.Minute)
	assert.EqualError(t, err, "WRONGPASS")
}

func TestNewUpstashCacheValidation(t *testing.T) {
	t.Parallel()

	_, err := NewUpstashCache(UpstashConfig{Token: "x"})
	assert.Error(t, err)
	_, err = NewUpstashCache(UpstashConfig{URL: "https://example.upstash.io"})
	assert.Error(t, err)
}

type fakeRedis struct {
	redis.UniversalClient
	values map[string]string
	ttls   map[string]time.Duration
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.values[key] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func TestRedisCache(t *testing.T) {
	t.Parallel()

	fake := &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
	cache := NewRedisCacheFromClient(fake)

	_, err := cache.Get(context.Background(), "7")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, cache.Set(context.Background(), "7", "tok", 30*time.Minute))
	assert.Equal(t, 30*time.Minute, fake.ttls["user:7:auth_token"])

	token, err := cache.Get(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}
