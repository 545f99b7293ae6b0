package limiter

import (
	"context"
	"net/http"
	"sync"
	"time"

	"walletweb/internal/util"

	"golang.org/x/time/rate"
)

const (
	clientLifetime  = 5 * time.Minute
	cleanupInterval = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Store hands out one token bucket per client IP so a single client
// hammering the connect page cannot starve the rest.
type Store struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
}

func NewStore(rps float64, burst int) *Store {
	return &Store{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (s *Store) limiterFor(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[key]; ok {
		c.lastSeen = time.Now()
		return c.limiter
	}
	c := &client{limiter: rate.NewLimiter(s.rps, s.burst), lastSeen: time.Now()}
	s.clients[key] = c
	return c.limiter
}

// CleanupLoop evicts idle clients until ctx is cancelled.
func (s *Store) CleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *Store) evictIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, c := range s.clients {
		if time.Since(c.lastSeen) > clientLifetime {
			delete(s.clients, k)
		}
	}
}

// Middleware enforces the per-IP limit, answering 429 when the
// client's bucket is empty.
func (s *Store) Middleware(trustedHeader string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := util.RealClientIP(r, trustedHeader)
			if !s.limiterFor(ip).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
