package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pulseboard/pulseboard/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters for a route.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the window.
	RequestsPerWindow int
	// Window is the time window for rate limiting.
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit.
	Burst int
}

// Common rate limit profiles. Overridable via environment variables
// (RATELIMIT_{PROFILE}_REQUESTS / _WINDOW_SEC / _BURST), which tests and
// load tooling rely on.
var (
	// StrictLimit for credential endpoints (brute force prevention).
	StrictLimit = RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Minute,
		Burst:             5,
	}

	// ModerateLimit for authenticated operations.
	ModerateLimit = RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		Burst:             20,
	}

	// LenientLimit for cheap read-only endpoints.
	LenientLimit = RateLimitConfig{
		RequestsPerWindow: 100,
		Window:            time.Minute,
		Burst:             100,
	}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
}

// ParseRateLimitFromEnv reads a rate limit profile override from environment
// variables of the form RATELIMIT_{prefix}_{field}.
func ParseRateLimitFromEnv(prefix string, defaults RateLimitConfig) RateLimitConfig {
	config := defaults

	if val := os.Getenv("RATELIMIT_" + prefix + "_REQUESTS"); val != "" {
		if requests, err := strconv.Atoi(val); err == nil && requests > 0 {
			config.RequestsPerWindow = requests
		}
	}
	if val := os.Getenv("RATELIMIT_" + prefix + "_WINDOW_SEC"); val != "" {
		if windowSec, err := strconv.Atoi(val); err == nil && windowSec > 0 {
			config.Window = time.Duration(windowSec) * time.Second
		}
	}
	if val := os.Getenv("RATELIMIT_" + prefix + "_BURST"); val != "" {
		if burst, err := strconv.Atoi(val); err == nil && burst > 0 {
			config.Burst = burst
		}
	}

	return config
}

// KeyExtractor derives the rate-limit bucket key from a request (client IP,
// account ID, and so on).
type KeyExtractor func(*http.Request) string

// IPKeyExtractor extracts the client IP address, honouring X-Forwarded-For
// and X-Real-IP for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AccountKeyExtractor keys on the authenticated account ID, falling back to
// IP for unauthenticated requests. Must run after AuthnMiddleware.
func AccountKeyExtractor(r *http.Request) string {
	if id := AccountIDFromCtx(r.Context()); id != "" {
		return "account:" + id
	}
	return "ip:" + IPKeyExtractor(r)
}

// limiterRegistry keeps one token bucket per key and forgets idle keys so
// the map doesn't grow without bound.
type limiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterRegistry(cfg RateLimitConfig) *limiterRegistry {
	reg := &limiterRegistry{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(cfg.Window / time.Duration(cfg.RequestsPerWindow)),
		burst:    cfg.Burst,
	}

	// Sweep idle buckets in the background. The registry lives as long as
	// the route it guards, so the goroutine runs for the process lifetime.
	go reg.sweep(10*time.Minute, 3*time.Minute)

	return reg
}

func (reg *limiterRegistry) allow(key string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	entry, ok := reg.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(reg.limit, reg.burst)}
		reg.limiters[key] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

func (reg *limiterRegistry) sweep(maxIdle, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-maxIdle)

		reg.mu.Lock()
		for key, entry := range reg.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(reg.limiters, key)
			}
		}
		reg.mu.Unlock()
	}
}

// RateLimit returns a middleware enforcing cfg per key.
func RateLimit(cfg RateLimitConfig, extract KeyExtractor) Middleware {
	reg := newLimiterRegistry(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extract(r)
			if !reg.allow(key) {
				log := slogx.FromContext(r.Context())
				log.Warn("rate limit exceeded", "key", key)

				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP enforces cfg per client IP.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimit(cfg, IPKeyExtractor)
}

// RateLimitByAccount enforces cfg per authenticated account.
func RateLimitByAccount(cfg RateLimitConfig) Middleware {
	return RateLimit(cfg, AccountKeyExtractor)
}
