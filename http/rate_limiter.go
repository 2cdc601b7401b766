package http

import (
	"sync"
	"time"
)

// minSweepInterval keeps short windows from waking the sweeper constantly.
const minSweepInterval = time.Minute

type clientBucket struct {
	remaining int
	resetAt   time.Time
}

// RateLimiter grants each client capacity requests per window. The window
// starts with a client's first request and the bucket refills in full once
// it ends.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	clients  map[string]*clientBucket
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := newRateLimiter(capacity, window, time.Now)
	go rl.sweepEvery(max(window, minSweepInterval))
	return rl
}

func newRateLimiter(capacity int, window time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		capacity: capacity,
		window:   window,
		clients:  make(map[string]*clientBucket),
		now:      now,
		done:     make(chan struct{}),
	}
}

func (r *RateLimiter) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// sweep forgets clients whose window has ended. Their next request would
// start a fresh bucket anyway. It returns the number of clients removed.
func (r *RateLimiter) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for client, b := range r.clients {
		if !now.Before(b.resetAt) {
			delete(r.clients, client)
			removed++
		}
	}
	return removed
}

// Stop ends the background sweep. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Allow takes a token from client's bucket. When the bucket is empty it
// returns false and the time until the bucket refills.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.clients[client]
	if !ok || !now.Before(b.resetAt) {
		b = &clientBucket{remaining: r.capacity, resetAt: now.Add(r.window)}
		r.clients[client] = b
	}

	if b.remaining <= 0 {
		return false, b.resetAt.Sub(now)
	}
	b.remaining--
	return true, 0
}
