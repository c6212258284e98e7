// Package hash wraps bcrypt behind a bounded concurrency gate. Hashing is
// CPU-bound (~50-100ms at cost 10), so unbounded concurrent logins could
// starve the rest of the process; the gate caps how many digests run at once
// while waiting callers stay parked on the context.
package hash

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the fixed bcrypt work factor for every stored credential.
const Cost = 10

const defaultMaxConcurrent = 8

// Observer receives the duration of each completed bcrypt operation,
// including time spent queued behind the gate. Operation is "hash" or
// "verify".
type Observer func(operation string, elapsed time.Duration)

// Hasher computes and checks salted bcrypt digests.
type Hasher struct {
	cost    int
	slots   chan struct{}
	observe Observer
}

// NewHasher returns a Hasher that allows at most maxConcurrent bcrypt
// operations in flight. If maxConcurrent <= 0, defaultMaxConcurrent is used.
func NewHasher(maxConcurrent int) *Hasher {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	return &Hasher{
		cost:  Cost,
		slots: make(chan struct{}, maxConcurrent),
	}
}

// WithObserver installs an Observer and returns the Hasher for chaining.
func (h *Hasher) WithObserver(obs Observer) *Hasher {
	h.observe = obs
	return h
}

// Hash computes a salted digest of plaintext. The salt is randomized per
// call, so repeated hashes of the same input differ and are only comparable
// through Verify.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()
	defer h.record("hash", time.Now())

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches hash. The comparison is constant
// time inside bcrypt; a malformed hash value simply yields false.
func (h *Hasher) Verify(ctx context.Context, plaintext, hash string) bool {
	if err := h.acquire(ctx); err != nil {
		return false
	}
	defer h.release()
	defer h.record("verify", time.Now())

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (h *Hasher) record(operation string, start time.Time) {
	if h.observe != nil {
		h.observe(operation, time.Since(start))
	}
}

func (h *Hasher) acquire(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case h.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) release() {
	<-h.slots
}
