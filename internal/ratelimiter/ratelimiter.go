package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

// Limiter decides whether a client may make another request right now.
type Limiter interface {
	Allow(clientID string) (bool, time.Duration)
}

// FixedWindowRateLimiter counts requests per client in fixed windows.
// Check and increment happen under one lock so concurrent callers cannot
// overshoot the limit, and each client carries its own window start so a
// window only resets once it has actually elapsed.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
}

type clientWindow struct {
	count     int
	startedAt time.Time
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
	}
}

func (rl *FixedWindowRateLimiter) Allow(clientID string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := time.Now()

	c, exists := rl.clients[clientID]
	if !exists || now.Sub(c.startedAt) >= rl.window {
		rl.clients[clientID] = &clientWindow{count: 1, startedAt: now}
		return true, 0
	}

	if c.count < rl.limit {
		c.count++
		return true, 0
	}

	return false, rl.window - now.Sub(c.startedAt)
}
