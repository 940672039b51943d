package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter() (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return New(WithClock(clock.Now)), clock
}

func TestShouldBlock_WithinInterval(t *testing.T) {
	l, clock := newTestLimiter()
	params := map[string][]string{"period": {"month"}}

	assert.False(t, l.ShouldBlock("u1", "expenses_list", params))
	clock.Advance(500 * time.Millisecond)
	assert.True(t, l.ShouldBlock("u1", "expenses_list", params))
}

func TestShouldBlock_AfterInterval(t *testing.T) {
	l, clock := newTestLimiter()

	assert.False(t, l.ShouldBlock("u1", "dashboard", nil))
	clock.Advance(time.Second)
	assert.False(t, l.ShouldBlock("u1", "dashboard", nil))
}

func TestShouldBlock_BlockDoesNotRefresh(t *testing.T) {
	l, clock := newTestLimiter()

	require.False(t, l.ShouldBlock("u1", "dashboard", nil))
	clock.Advance(600 * time.Millisecond)
	require.True(t, l.ShouldBlock("u1", "dashboard", nil))
	clock.Advance(400 * time.Millisecond)
	assert.False(t, l.ShouldBlock("u1", "dashboard", nil), "a blocked call must not extend the window")
}

func TestShouldBlock_DistinctFingerprints(t *testing.T) {
	l, _ := newTestLimiter()

	assert.False(t, l.ShouldBlock("u1", "dashboard", nil))
	assert.False(t, l.ShouldBlock("u2", "dashboard", nil))
	assert.False(t, l.ShouldBlock("u1", "expenses_stats", nil))
	assert.False(t, l.ShouldBlock("u1", "dashboard", map[string][]string{"period": {"week"}}))
	assert.Equal(t, 4, l.Len())
}

func TestShouldBlock_EvictsStaleEntries(t *testing.T) {
	l, clock := newTestLimiter()

	for i := 0; i < 5; i++ {
		l.ShouldBlock(fmt.Sprintf("user-%d", i), "dashboard", nil)
	}
	require.Equal(t, 5, l.Len())

	clock.Advance(61 * time.Second)
	l.ShouldBlock("someone-else", "expenses_list", nil)
	assert.Equal(t, 1, l.Len(), "stale entries are evicted by any call")
}

func TestShouldBlock_KeepsEntriesWithinTTL(t *testing.T) {
	l, clock := newTestLimiter()

	l.ShouldBlock("u1", "dashboard", nil)
	clock.Advance(59 * time.Second)
	l.ShouldBlock("u2", "dashboard", nil)
	assert.Equal(t, 2, l.Len())
}

func TestFingerprint_ParameterOrder(t *testing.T) {
	a := Fingerprint("u1", "expenses_list", map[string][]string{
		"category": {"Food"},
		"page":     {"2"},
		"tag":      {"b", "a"},
	})
	b := Fingerprint("u1", "expenses_list", map[string][]string{
		"tag":      {"a", "b"},
		"page":     {"2"},
		"category": {"Food"},
	})
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprint_Differs(t *testing.T) {
	base := Fingerprint("u1", "dashboard", map[string][]string{"period": {"month"}})

	assert.NotEqual(t, base, Fingerprint("u2", "dashboard", map[string][]string{"period": {"month"}}))
	assert.NotEqual(t, base, Fingerprint("u1", "dashboard_summary", map[string][]string{"period": {"month"}}))
	assert.NotEqual(t, base, Fingerprint("u1", "dashboard", map[string][]string{"period": {"year"}}))
	assert.NotEqual(t, base, Fingerprint("u1", "dashboard", nil))
}

func TestFingerprint_SeparatorsInValues(t *testing.T) {
	tests := []struct {
		name string
		a, b func() string
	}{
		{
			name: "encoded ampersand in a value",
			a: func() string {
				return Fingerprint("u1", "expenses", map[string][]string{"category": {"Food&search=rent"}})
			},
			b: func() string {
				return Fingerprint("u1", "expenses", map[string][]string{"category": {"Food"}, "search": {"rent"}})
			},
		},
		{
			name: "comma in a value",
			a: func() string {
				return Fingerprint("u1", "expenses", map[string][]string{"search": {"a,b"}})
			},
			b: func() string {
				return Fingerprint("u1", "expenses", map[string][]string{"search": {"a", "b"}})
			},
		},
		{
			name: "colon between user and endpoint",
			a:    func() string { return Fingerprint("u:1", "x", nil) },
			b:    func() string { return Fingerprint("u", "1:x", nil) },
		},
		{
			name: "equals sign in a name",
			a: func() string {
				return Fingerprint("u1", "expenses", map[string][]string{"a=b": {"c"}})
			},
			b: func() string {
				return Fingerprint("u1", "expenses", map[string][]string{"a": {"b=c"}})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, tt.a(), tt.b())
		})
	}
}

func TestShouldBlock_ValueWithSeparators(t *testing.T) {
	l, _ := newTestLimiter()

	require.False(t, l.ShouldBlock("u1", "expenses", map[string][]string{"category": {"Food&search=rent"}}))
	assert.False(t, l.ShouldBlock("u1", "expenses", map[string][]string{"category": {"Food"}, "search": {"rent"}}))
	assert.Equal(t, 2, l.Len())
}

func TestOptions_IgnoreNonPositive(t *testing.T) {
	l := New(WithInterval(0), WithTTL(-time.Second), WithClock(nil))
	assert.Equal(t, DefaultInterval, l.interval)
	assert.Equal(t, DefaultTTL, l.ttl)
	assert.NotNil(t, l.now)
}

func TestShouldBlock_Concurrent(t *testing.T) {
	l, _ := newTestLimiter()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !l.ShouldBlock("u1", "dashboard", nil) {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), allowed.Load(), "exactly one of the simultaneous requests is allowed")
}
