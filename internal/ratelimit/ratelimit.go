// Package ratelimit implements fixed-window admission control keyed by client identity.
package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key inside a window that starts at the first hit.
// Hit returns the count including the current request.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration, now time.Time) (count int, windowStart time.Time, err error)
}

type Limiter struct {
	Label  string
	Max    int
	Window time.Duration
	Store  Store
	Now    func() time.Time
}

type Decision struct {
	Allowed    bool
	Count      int
	Remaining  int
	RetryAfter time.Duration
}

func New(label string, max int, window time.Duration, store Store) *Limiter {
	return &Limiter{Label: label, Max: max, Window: window, Store: store, Now: time.Now}
}

func (l *Limiter) Key(client string) string {
	return "ratelimit:" + l.Label + ":" + client
}

// Allow records one request from client and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, client string) (Decision, error) {
	now := l.Now()
	count, start, err := l.Store.Hit(ctx, l.Key(client), l.Window, now)
	if err != nil {
		return Decision{Allowed: true}, err
	}

	d := Decision{Count: count, Allowed: count <= l.Max}
	if remaining := l.Max - count; remaining > 0 {
		d.Remaining = remaining
	}
	if !d.Allowed {
		d.RetryAfter = start.Add(l.Window).Sub(now)
		if d.RetryAfter < 0 {
			d.RetryAfter = 0
		}
	}
	return d, nil
}
