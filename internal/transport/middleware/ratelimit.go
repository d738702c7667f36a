package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter tracks a token bucket per remote address. Entries idle for
// longer than staleAfter are dropped on the next sweep.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const staleAfter = 10 * time.Minute

// RateLimit caps requests per client IP. Used on the login route to slow
// credential stuffing; everything else stays unthrottled.
func RateLimit(perMinute int, logger *slog.Logger) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		perMinute = 10
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)

	limit := rate.Every(time.Minute / time.Duration(perMinute))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			mu.Lock()
			cl, ok := clients[host]
			if !ok {
				cl = &clientLimiter{limiter: rate.NewLimiter(limit, perMinute)}
				clients[host] = cl
			}
			cl.lastSeen = time.Now()
			for addr, c := range clients {
				if time.Since(c.lastSeen) > staleAfter {
					delete(clients, addr)
				}
			}
			mu.Unlock()

			if !cl.limiter.Allow() {
				logger.Warn("rate limit exceeded", "remote_addr", host, "path", r.URL.Path)
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
