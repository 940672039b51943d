// Package ratelimit rejects identical requests that repeat faster than a
// minimum interval. A request is identified by its fingerprint: the user,
// the endpoint and the query parameters, independent of parameter order.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultInterval is the minimum gap between two identical requests.
	DefaultInterval = time.Second
	// DefaultTTL is how long an entry is remembered after its last allowed request.
	DefaultTTL = 60 * time.Second
)

// Clock returns the current time.
type Clock func() time.Time

// Limiter remembers the last allowed time of each request fingerprint.
// It is safe for concurrent use.
type Limiter struct {
	interval time.Duration
	ttl      time.Duration
	now      Clock

	mu   sync.Mutex
	seen map[string]time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithInterval overrides the minimum interval.
func WithInterval(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithTTL overrides how long entries are kept.
func WithTTL(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.ttl = d
		}
	}
}

// WithClock replaces the time source.
func WithClock(c Clock) Option {
	return func(l *Limiter) {
		if c != nil {
			l.now = c
		}
	}
}

// New creates a Limiter with the default interval and TTL.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		interval: DefaultInterval,
		ttl:      DefaultTTL,
		now:      time.Now,
		seen:     make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ShouldBlock reports whether the request must be rejected. An allowed
// request records its time; a blocked one leaves the stored time alone.
// Entries older than the TTL are evicted on every call.
func (l *Limiter) ShouldBlock(userID, endpoint string, params map[string][]string) bool {
	key := Fingerprint(userID, endpoint, params)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	if last, ok := l.seen[key]; ok && now.Sub(last) < l.interval {
		return true
	}
	l.seen[key] = now
	return false
}

// Len returns the number of remembered fingerprints.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

func (l *Limiter) evict(now time.Time) {
	for key, last := range l.seen {
		if now.Sub(last) > l.ttl {
			delete(l.seen, key)
		}
	}
}

// Fingerprint hashes user, endpoint and parameters into a stable hex key.
// Parameters are sorted by name, and values within a name are sorted too.
// Every part is length-prefixed, so separators inside values cannot make
// two different requests share a key.
func Fingerprint(userID, endpoint string, params map[string][]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	writePart(&b, userID)
	writePart(&b, endpoint)
	for _, name := range names {
		values := append([]string(nil), params[name]...)
		sort.Strings(values)
		writePart(&b, name)
		b.WriteString(strconv.Itoa(len(values)))
		b.WriteByte('#')
		for _, v := range values {
			writePart(&b, v)
		}
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writePart(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}
