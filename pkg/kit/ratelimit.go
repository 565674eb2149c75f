package kit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// sweep stale windows once the table grows past this many IPs.
const limiterSweepSize = 4096

type ipWindow struct {
	start time.Time
	count int
}

// IPRateLimiter enforces a fixed-window per-IP request cap.
type IPRateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	seen   map[string]*ipWindow
	now    func() time.Time
}

func NewIPRateLimiter(limit int, windowSeconds int) *IPRateLimiter {
	return &IPRateLimiter{
		limit:  limit,
		window: time.Duration(windowSeconds) * time.Second,
		seen:   make(map[string]*ipWindow),
		now:    time.Now,
	}
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.seen[ip]
	if !ok || now.Sub(w.start) >= l.window {
		if len(l.seen) >= limiterSweepSize {
			l.sweepLocked(now)
		}
		l.seen[ip] = &ipWindow{start: now, count: 1}
		return true
	}

	w.count++
	return w.count <= l.limit
}

func (l *IPRateLimiter) sweepLocked(now time.Time) {
	for ip, w := range l.seen {
		if now.Sub(w.start) >= l.window {
			delete(l.seen, ip)
		}
	}
}

// clientIP prefers the first X-Forwarded-For hop over the socket peer.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
