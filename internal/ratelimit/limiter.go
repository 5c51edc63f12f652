package ratelimit

import (
	"context"
	"fmt"
	"time"

	"pollbase/pkg/logger"
)

// Class is a named category of rate-limited operation with its own
// window and cap.
type Class string

const (
	ClassAuth         Class = "auth"
	ClassPollCreation Class = "pollCreation"
	ClassAPI          Class = "api"
)

// Policy is the fixed cap and window for a limit class.
type Policy struct {
	Max    int
	Window time.Duration
}

var policies = map[Class]Policy{
	ClassAuth:         {Max: 5, Window: 15 * time.Minute},
	ClassPollCreation: {Max: 3, Window: time.Minute},
	ClassAPI:          {Max: 30, Window: time.Minute},
}

// PolicyFor returns the policy for a class. Unknown classes fall back to
// the api policy.
func PolicyFor(class Class) Policy {
	if p, ok := policies[class]; ok {
		return p
	}
	return policies[ClassAPI]
}

// Entry is one fixed-window counter. It is replaced, not merged, once its
// window has passed.
type Entry struct {
	Count     int       `json:"count"`
	ResetTime time.Time `json:"reset_time"`
}

// Result is the outcome of a rate-limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetTime time.Time
}

// Store persists rate-limit entries. The in-memory implementation is the
// default; a Redis-backed one is used when instances share state. The
// limiter's read-check-write spans two store calls and is not atomic, so
// concurrent requests for the same key can race past the cap. Accepted
// for single-instance deployments; a store-level compare-and-increment
// would be needed for a hard guarantee.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	Sweep(ctx context.Context, now time.Time) error
}

const sweepInterval = 5 * time.Minute

// Limiter enforces fixed-window caps per (class, identifier).
type Limiter struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
	stop  chan struct{}
}

// New creates a limiter backed by the given store.
func New(store Store, log *logger.Logger) *Limiter {
	return &Limiter{
		store: store,
		log:   log,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
}

// Check records a request for the identifier under the given class and
// reports whether it is allowed. A denied request does not increment the
// counter, so the stored count never exceeds the cap. Store failures
// admit the request rather than blocking traffic on a degraded backend.
func (l *Limiter) Check(ctx context.Context, identifier string, class Class) Result {
	policy := PolicyFor(class)
	key := fmt.Sprintf("%s:%s", class, identifier)
	now := l.now()

	entry, found, err := l.store.Get(ctx, key)
	if err != nil {
		l.log.WithError(err).WithField("key", key).Warn("rate-limit store read failed, allowing request")
		return Result{Allowed: true, Limit: policy.Max, Remaining: policy.Max - 1, ResetTime: now.Add(policy.Window)}
	}

	if !found || now.After(entry.ResetTime) {
		entry = Entry{Count: 1, ResetTime: now.Add(policy.Window)}
		if err := l.store.Set(ctx, key, entry, policy.Window); err != nil {
			l.log.WithError(err).WithField("key", key).Warn("rate-limit store write failed")
		}
		return Result{Allowed: true, Limit: policy.Max, Remaining: policy.Max - 1, ResetTime: entry.ResetTime}
	}

	if entry.Count >= policy.Max {
		return Result{Allowed: false, Limit: policy.Max, Remaining: 0, ResetTime: entry.ResetTime}
	}

	entry.Count++
	if err := l.store.Set(ctx, key, entry, entry.ResetTime.Sub(now)); err != nil {
		l.log.WithError(err).WithField("key", key).Warn("rate-limit store write failed")
	}
	return Result{Allowed: true, Limit: policy.Max, Remaining: policy.Max - entry.Count, ResetTime: entry.ResetTime}
}

// StartSweeper launches the periodic cleanup of expired entries. It runs
// until Stop is called.
func (l *Limiter) StartSweeper() {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				if err := l.store.Sweep(ctx, l.now()); err != nil {
					l.log.WithError(err).Warn("rate-limit sweep failed")
				}
				cancel()
			case <-l.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweeper goroutine.
func (l *Limiter) Stop() {
	close(l.stop)
}
