// Package ratelimit provides Redis-backed rate limiting using the INCR +
// EXPIRE window algorithm, throttling moderation calls per client so that a
// misbehaving integration cannot starve the gateway.
package ratelimit

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rule defines a rate limiting policy: the Redis key prefix, maximum number
// of requests allowed in the window, and the window duration.
type Rule struct {
	Key    string        // Redis key prefix (e.g., "rl:mod:", "rl:stream:")
	Limit  int           // max count in the window
	Window time.Duration // time window
}

// Standard rules for the moderation gateway.
var (
	// RuleModerate allows 30 synchronous moderate calls per 10 seconds per
	// client: generous for a human typing into profile fields, tight
	// enough to stop scripted scans of the deny-list.
	RuleModerate = Rule{Key: "rl:mod:", Limit: 30, Window: 10 * time.Second}

	// RuleStream allows 5 WebSocket stream connections per minute per IP.
	RuleStream = Rule{Key: "rl:stream:", Limit: 5, Window: 1 * time.Minute}
)

// Limiter performs rate limiting checks against Redis. A nil Limiter allows
// everything, so the gateway runs unthrottled when Redis is not configured.
type Limiter struct {
	client *redis.Client
}

// NewLimiter creates a Limiter backed by the given Redis client.
func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow checks whether the given identifier is within the rate limit defined
// by rule. It increments the counter in Redis and sets the expiry on first
// access.
//
// Returns true if the request is allowed, false if rate limited. On Redis
// errors the method fails open (returns true) so that a Redis outage does
// not block legitimate traffic.
func (l *Limiter) Allow(ctx context.Context, identifier string, rule Rule) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}

	key := rule.Key + identifier

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("[ratelimit] redis INCR error key=%s: %v (failing open)", key, err)
		return true, err
	}

	// On the first increment, set the expiry to define the window boundary.
	if count == 1 {
		if err := l.client.Expire(ctx, key, rule.Window).Err(); err != nil {
			log.Printf("[ratelimit] redis EXPIRE error key=%s: %v", key, err)
		}
	}

	return count <= int64(rule.Limit), nil
}

// RetryAfter returns the seconds remaining in the current window for the
// identifier, for the rate_limited response. Returns the full window on
// Redis errors.
func (l *Limiter) RetryAfter(ctx context.Context, identifier string, rule Rule) int {
	if l == nil || l.client == nil {
		return 0
	}

	ttl, err := l.client.TTL(ctx, rule.Key+identifier).Result()
	if err != nil || ttl < 0 {
		return int(rule.Window.Seconds())
	}
	return int(ttl.Seconds())
}
