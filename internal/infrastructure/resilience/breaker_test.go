package resilience

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBoom  = errors.New("boom")
	errQuota = errors.New("quota")
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestBreaker(settings Settings) (*Breaker, *clock) {
	clk := &clock{now: time.Unix(1700000000, 0)}
	settings.now = clk.Now
	return New("test", settings), clk
}

func run(b *Breaker, results ...error) {
	for _, res := range results {
		_ = b.Do(func() error { return res })
	}
}

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		results  []error
		expected State
	}{
		{
			name:     "stays closed on successes",
			settings: Settings{Threshold: 2},
			results:  []error{nil, nil, nil},
			expected: StateClosed,
		},
		{
			name:     "opens after consecutive failures",
			settings: Settings{Threshold: 3},
			results:  []error{errBoom, errBoom, errBoom},
			expected: StateOpen,
		},
		{
			name:     "success resets the failure streak",
			settings: Settings{Threshold: 2},
			results:  []error{errBoom, nil, errBoom},
			expected: StateClosed,
		},
		{
			name: "ignored errors do not trip",
			settings: Settings{
				Threshold: 1,
				Failure:   func(err error) bool { return err != nil && !errors.Is(err, errQuota) },
			},
			results:  []error{errQuota, errQuota},
			expected: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBreaker(tt.settings)
			run(b, tt.results...)
			assert.Equal(t, tt.expected, b.State())
		})
	}
}

func TestBreakerRejectsWhileOpen(t *testing.T) {
	b, _ := newTestBreaker(Settings{Threshold: 1, Cooldown: time.Minute})
	run(b, errBoom)

	called := false
	err := b.Do(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
	assert.EqualValues(t, 1, b.Counts().Rejected)
}

func TestBreakerRecovers(t *testing.T) {
	var changes []string
	b, clk := newTestBreaker(Settings{
		Threshold: 1,
		Cooldown:  time.Minute,
		Probes:    2,
		OnStateChange: func(name string, from, to State) {
			changes = append(changes, from.String()+"->"+to.String())
		},
	})
	run(b, errBoom)
	require.Equal(t, StateOpen, b.State())

	clk.Advance(time.Minute)
	assert.Equal(t, StateHalfOpen, b.State())

	run(b, nil)
	assert.Equal(t, StateHalfOpen, b.State())
	run(b, nil)
	assert.Equal(t, StateClosed, b.State())

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, changes)
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b, clk := newTestBreaker(Settings{Threshold: 1, Cooldown: time.Second})
	run(b, errBoom)
	clk.Advance(time.Second)

	assert.ErrorIs(t, b.Do(func() error { return errBoom }), errBoom)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerLimitsProbes(t *testing.T) {
	b, clk := newTestBreaker(Settings{Threshold: 1, Cooldown: time.Second, Probes: 1})
	run(b, errBoom)
	clk.Advance(time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- b.Do(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	assert.ErrorIs(t, b.Do(func() error { return nil }), ErrOpen)
	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	b, _ := newTestBreaker(Settings{Threshold: 1})

	assert.Panics(t, func() {
		_ = b.Do(func() error { panic("storage exploded") })
	})
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerReset(t *testing.T) {
	b, _ := newTestBreaker(Settings{Threshold: 1})
	run(b, errBoom)
	b.Reset()

	assert.Equal(t, StateClosed, b.State())
	assert.NoError(t, b.Do(func() error { return nil }))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}
