package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hallgate/adminbase/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines a token bucket per rate-limit key.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

var (
	// StrictLimit guards credential-bearing endpoints against brute force.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit suits authenticated mutations.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit suits page views and monitoring probes.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}
)

// KeyExtractor groups requests for rate limiting (IP, form field, ...).
type KeyExtractor func(*http.Request) string

// IPKey limits by originating client address.
func IPKey(r *http.Request) string { return ClientIP(r) }

// FormFieldKey limits by a form field value, e.g. the login username.
func FormFieldKey(field string) KeyExtractor {
	return func(r *http.Request) string {
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return r.FormValue(field)
	}
}

// CompositeKey joins several extractors into one key.
func CompositeKey(extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if k := extract(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, ":")
	}
}

type keyedLimiter struct {
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	lastCleanup time.Time
}

func (kl *keyedLimiter) get(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	// Drop idle buckets now and then so ephemeral keys don't accumulate.
	if time.Since(kl.lastCleanup) > 5*time.Minute {
		kl.lastCleanup = time.Now()
		for k, l := range kl.limiters {
			if l.Tokens() >= float64(kl.burst) {
				delete(kl.limiters, k)
			}
		}
	}

	l, ok := kl.limiters[key]
	if !ok {
		l = rate.NewLimiter(kl.rate, kl.burst)
		kl.limiters[key] = l
	}
	return l
}

// RateLimit returns middleware enforcing cfg per key produced by
// extract. Requests with no derivable key pass through.
func RateLimit(cfg RateLimitConfig, extract KeyExtractor) Middleware {
	kl := &keyedLimiter{
		limiters:    make(map[string]*rate.Limiter),
		rate:        rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := extract(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !kl.get(key).Allow() {
				slogx.FromContext(r.Context()).Warn("rate limit exceeded",
					"key", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP limits by client IP only.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimit(cfg, IPKey)
}

// RateLimitByIPAndFormField limits by client IP plus a form field,
// e.g. login attempts per IP+username.
func RateLimitByIPAndFormField(cfg RateLimitConfig, field string) Middleware {
	return RateLimit(cfg, CompositeKey(IPKey, FormFieldKey(field)))
}
