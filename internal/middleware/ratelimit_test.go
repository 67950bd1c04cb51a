package middleware

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T) (*RedisLimiter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLimiter(client), mr
}

func TestRedisLimiterAllow(t *testing.T) {
	limiter, _ := newTestLimiter(t)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("ratelimit:1.2.3.4", 3, time.Minute), "request %d should pass", i+1)
	}
	assert.False(t, limiter.Allow("ratelimit:1.2.3.4", 3, time.Minute))

	// A different client keeps its own window.
	assert.True(t, limiter.Allow("ratelimit:5.6.7.8", 3, time.Minute))
}

func TestRedisLimiterWindowExpiry(t *testing.T) {
	limiter, mr := newTestLimiter(t)

	require.True(t, limiter.Allow("ratelimit:1.2.3.4", 1, time.Minute))
	require.False(t, limiter.Allow("ratelimit:1.2.3.4", 1, time.Minute))

	mr.FastForward(time.Minute + time.Second)

	assert.True(t, limiter.Allow("ratelimit:1.2.3.4", 1, time.Minute))
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	limiter, mr := newTestLimiter(t)
	mr.Close()

	assert.True(t, limiter.Allow("ratelimit:1.2.3.4", 1, time.Minute))
}

func TestRedisLimiterNilLimiter(t *testing.T) {
	var limiter *RedisLimiter

	assert.True(t, limiter.Allow("ratelimit:1.2.3.4", 1, time.Minute))
}
