package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the per-process fallback: a mutex-guarded map of window
// counters. The check-then-mutate sequence for a key holds the lock for its
// whole duration, so concurrent requests observe a consistent count.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Check(ctx context.Context, route string, clientID string, limit int, window time.Duration) (Result, error) {
	key := route + ":" + clientID
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = &windowEntry{count: 1, resetAt: now.Add(window)}
		l.entries[key] = entry
		return Result{Allowed: true, Remaining: limit - 1, ResetAt: entry.resetAt}, nil
	}

	entry.count++
	remaining := limit - entry.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   entry.count <= limit,
		Remaining: remaining,
		ResetAt:   entry.resetAt,
	}, nil
}

// Prune drops windows that ended before now. Called by the maintenance cron;
// correctness does not depend on it, it only bounds the map size.
func (l *MemoryLimiter) Prune(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	dropped := 0
	for key, entry := range l.entries {
		if now.After(entry.resetAt) {
			delete(l.entries, key)
			dropped++
		}
	}
	return dropped
}
