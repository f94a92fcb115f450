package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is a per-user cooldown gate. A message is admitted if the user
// has no prior accepted message or the cooldown has elapsed since the last
// one; rejected messages are dropped with no reply.
type RateLimiter struct {
	mu       sync.Mutex
	cooldown time.Duration
	users    map[int64]*rate.Limiter
}

// NewRateLimiter constructs a RateLimiter with the given cooldown interval.
// A zero cooldown admits everything.
func NewRateLimiter(cooldown time.Duration) *RateLimiter {
	return &RateLimiter{
		cooldown: cooldown,
		users:    make(map[int64]*rate.Limiter),
	}
}

// Admit reports whether a message from the user may be processed now and, if
// so, starts the user's cooldown.
func (rl *RateLimiter) Admit(userID int64) bool {
	rl.mu.Lock()
	lim, ok := rl.users[userID]
	if !ok {
		// rate.Every(0) is an infinite rate, so a zero cooldown disables
		// throttling entirely.
		lim = rate.NewLimiter(rate.Every(rl.cooldown), 1)
		rl.users[userID] = lim
	}
	rl.mu.Unlock()
	return lim.Allow()
}
