package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(max int, window time.Duration) (*Limiter, *clock) {
	c := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := New("checkout", max, window, NewMemoryStore())
	l.Now = c.now
	return l, c
}

func TestLimiterRejectsEleventhRequestInWindow(t *testing.T) {
	ctx := context.Background()
	l, c := newTestLimiter(10, time.Minute)

	for i := 1; i <= 10; i++ {
		d, err := l.Allow(ctx, "10.0.0.1")
		if err != nil || !d.Allowed {
			t.Fatalf("request %d rejected: %+v %v", i, d, err)
		}
		if d.Remaining != 10-i {
			t.Errorf("request %d remaining = %d", i, d.Remaining)
		}
		c.advance(time.Second)
	}

	d, _ := l.Allow(ctx, "10.0.0.1")
	if d.Allowed {
		t.Fatal("11th request should be rejected")
	}
	if d.RetryAfter != 50*time.Second {
		t.Errorf("RetryAfter = %v, want 50s", d.RetryAfter)
	}

	if d, _ := l.Allow(ctx, "10.0.0.2"); !d.Allowed {
		t.Error("other clients must not share the bucket")
	}

	c.advance(51 * time.Second)
	if d, _ := l.Allow(ctx, "10.0.0.1"); !d.Allowed || d.Count != 1 {
		t.Errorf("after window reset got %+v", d)
	}
}

func TestLimiterLabelsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	a := New("checkout", 1, time.Minute, store)
	b := New("admin", 1, time.Minute, store)
	ctx := context.Background()

	a.Allow(ctx, "ip")
	if d, _ := b.Allow(ctx, "ip"); !d.Allowed {
		t.Error("admin bucket should be separate from checkout bucket")
	}
	if d, _ := a.Allow(ctx, "ip"); d.Allowed {
		t.Error("second checkout hit should be rejected")
	}
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration, time.Time) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("down")
}

func TestLimiterFailsOpen(t *testing.T) {
	l := New("checkout", 1, time.Minute, failingStore{})
	d, err := l.Allow(context.Background(), "ip")
	if err == nil || !d.Allowed {
		t.Errorf("got %+v, %v", d, err)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	ctx := context.Background()
	s.Hit(ctx, "old", time.Minute, now.Add(-2*time.Minute))
	s.Hit(ctx, "new", time.Minute, now)

	if removed := s.Sweep(now, time.Minute); removed != 1 {
		t.Errorf("removed = %d", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestMemoryStoreConcurrentHits(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Hit(context.Background(), "k", time.Minute, now)
		}()
	}
	wg.Wait()
	if n, _, _ := s.Hit(context.Background(), "k", time.Minute, now); n != 51 {
		t.Errorf("count = %d, want 51", n)
	}
}
