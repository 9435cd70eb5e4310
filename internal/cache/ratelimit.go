package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// loginLimitPrefix is the Redis key prefix for login attempt limits.
	loginLimitPrefix = "ratelimit:login:"
	// loginLimitTTL bounds how long attempt state lives without traffic.
	loginLimitTTL = 120 * time.Second
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// tokenBucketScript implements the token bucket algorithm atomically:
// refill and consumption happen in a single Redis round trip.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])      -- tokens per second
	local burst = tonumber(ARGV[2])     -- max tokens (bucket capacity)
	local now = tonumber(ARGV[3])       -- current time in seconds
	local ttl = tonumber(ARGV[4])       -- TTL in seconds

	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	local elapsed = now - last_update
	tokens = math.min(burst, tokens + (elapsed * rate))

	local allowed = 0
	local retry_after = 0

	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// CheckLoginRateLimit checks and updates the login attempt allowance
// for a client address. The address is hashed so raw IPs never land
// in Redis. Callers should treat an error as an allow.
func (c *Cache) CheckLoginRateLimit(ctx context.Context, clientAddr string, perMinute, burst int) (*RateLimitResult, error) {
	key := loginLimitPrefix + hashAddr(clientAddr)
	ratePerSecond := float64(perMinute) / 60.0
	now := time.Now().Unix()

	result, err := tokenBucketScript.Run(ctx, c.client,
		[]string{key},
		ratePerSecond, burst, now, int(loginLimitTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("run rate limit script: %w", err)
	}

	return &RateLimitResult{
		Allowed:    result[0] == 1,
		RetryAfter: time.Duration(result[1]) * time.Second,
		Remaining:  result[2],
	}, nil
}

// hashAddr creates a truncated SHA256 hash of a client address.
func hashAddr(addr string) string {
	sum := sha256.Sum256([]byte(addr))
	return hex.EncodeToString(sum[:16])
}
