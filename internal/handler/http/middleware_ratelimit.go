package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"golang.org/x/time/rate"
)

// staleLimiterAge is how long an idle client entry survives before the
// sweep drops it.
const staleLimiterAge = 10 * time.Minute

// ipLimiter is one client's token bucket plus its last-seen stamp.
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// withRateLimit throttles requests per client IP with a token bucket.
// A zero RPS config disables the middleware entirely.
func (h *Handler) withRateLimit() func(http.Handler) http.Handler {
	if h.limits.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	var (
		mu        sync.Mutex
		clients   = make(map[string]*ipLimiter)
		lastSweep = time.Now()
	)

	allow := func(ip string) bool {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()

		// Sweep stale entries opportunistically so the map does not grow
		// with every IP ever seen.
		if now.Sub(lastSweep) > staleLimiterAge {
			for key, client := range clients {
				if now.Sub(client.lastSeen) > staleLimiterAge {
					delete(clients, key)
				}
			}
			lastSweep = now
		}

		client, ok := clients[ip]
		if !ok {
			client = &ipLimiter{limiter: rate.NewLimiter(rate.Limit(h.limits.RPS), h.limits.Burst)}
			clients[ip] = client
		}
		client.lastSeen = now

		return client.limiter.Allow()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !allow(ip) {
				if h.metrics != nil {
					h.metrics.RateLimitHits.Inc()
				}
				logger.FromRequest(r).Warn().Str("ip", ip).Msg("request throttled")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the caller's address, ignoring the port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
