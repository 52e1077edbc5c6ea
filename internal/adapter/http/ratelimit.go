package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	logger   logger.Logger
}

func NewRateLimiter(perSecond float64, burst int, logger logger.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		logger:   logger,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !rl.limiter(key).Allow() {
			rl.logger.Warn("rate_limit_exceeded", "Too many requests", requestID(r.Context()),
				map[string]interface{}{"client": key, "path": r.URL.Path})
			respondError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup forgets clients idle for longer than idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, v := range rl.visitors {
		if time.Since(v.lastSeen) > idle {
			delete(rl.visitors, key)
		}
	}
}

// StartCleanup runs Cleanup every interval until stop is closed.
func (rl *RateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup(interval)
			case <-stop:
				return
			}
		}
	}()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
