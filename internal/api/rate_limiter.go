package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientRateLimiter keeps one token bucket per client key. Buckets idle for
// longer than clientIdleTTL are dropped on the next pass.
type clientRateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	lastPrune time.Time
	now       func() time.Time
}

func newClientRateLimiter(limit rate.Limit, burst int) *clientRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &clientRateLimiter{
		clients: make(map[string]*clientBucket),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

func (limiter *clientRateLimiter) allow(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if now.Sub(limiter.lastPrune) >= clientIdleTTL {
		limiter.pruneLocked(now)
	}

	bucket, ok := limiter.clients[key]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.clients[key] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.AllowN(now, 1)
}

func (limiter *clientRateLimiter) pruneLocked(now time.Time) {
	threshold := now.Add(-clientIdleTTL)
	for key, bucket := range limiter.clients {
		if bucket.lastSeen.Before(threshold) {
			delete(limiter.clients, key)
		}
	}
	limiter.lastPrune = now
}

func (limiter *clientRateLimiter) size() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.clients)
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
