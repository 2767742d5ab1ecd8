package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/tesfafund/api/internal/model"
)

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate    int           // Write requests per window (default 100)
	Window  time.Duration // Time window (default 1 minute)
	Burst   int           // Extra requests allowed on top of Rate (default 20)
	Cleanup time.Duration // Sweep interval for idle clients (default 5 minutes)
}

// RateLimiter is a per-client token bucket. Clients are keyed by host, so
// every connection from one address shares a bucket.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	burst   int
	cleanup time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// bucket tracks the tokens left for one client since its last refill
type bucket struct {
	tokens     int
	refilledAt time.Time
}

// NewRateLimiter creates a rate limiter and starts its sweeper
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate == 0 {
		cfg.Rate = 100
	}
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst == 0 {
		cfg.Burst = 20
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    cfg.Rate,
		window:  cfg.Window,
		burst:   cfg.Burst,
		cleanup: cfg.Cleanup,
		done:    make(chan struct{}),
	}
	go rl.sweep()

	return rl
}

// Limit is the advertised number of writes per window
func (rl *RateLimiter) Limit() int {
	return rl.rate
}

// Stop ends the sweeper. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.done)
	})
}

// Len returns the number of clients currently tracked
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropIdle(time.Now())
		case <-rl.done:
			return
		}
	}
}

// dropIdle forgets clients that have not been refilled for two windows.
// Such a client would start from a full bucket anyway.
func (rl *RateLimiter) dropIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-2 * rl.window)
	for key, b := range rl.buckets {
		if b.refilledAt.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// Allow takes a token for key. It reports whether the request may proceed,
// the tokens left, and when the bucket is next full.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, resetTime time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity(), refilledAt: now}
		rl.buckets[key] = b
	} else {
		rl.refill(b, now)
	}

	resetTime = b.refilledAt.Add(rl.window)
	if b.tokens <= 0 {
		return false, 0, resetTime
	}
	b.tokens--
	return true, b.tokens, resetTime
}

func (rl *RateLimiter) capacity() int {
	return rl.rate + rl.burst
}

// refill credits tokens earned since the last refill, capped at capacity.
// A whole elapsed window restores the bucket in full.
func (rl *RateLimiter) refill(b *bucket, now time.Time) {
	elapsed := now.Sub(b.refilledAt)
	if elapsed >= rl.window {
		b.tokens = rl.capacity()
		b.refilledAt = now
		return
	}

	earned := int(float64(rl.rate) * float64(elapsed) / float64(rl.window))
	if earned == 0 {
		return
	}
	b.tokens = min(b.tokens+earned, rl.capacity())
	b.refilledAt = now
}

// limited reports whether requests with method consume tokens
func limited(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// RateLimit returns a middleware that limits writes per client.
// Reads pass through without rate limit headers.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limited(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, resetTime := limiter.Allow(ClientKey(r))

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				retryAfter := max(int(time.Until(resetTime).Seconds()), 1)
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
