package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Do while the breaker rejects calls
var ErrOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// Threshold is the number of consecutive failures that opens the breaker
	Threshold uint32
	// Cooldown is how long the breaker stays open before probing again
	Cooldown time.Duration
	// Probes is the number of successful half-open calls that close it
	Probes uint32
	// Failure classifies an error. Errors it rejects count as successes;
	// nil means every non-nil error is a failure.
	Failure func(err error) bool
	// OnStateChange is called, without the lock held, whenever the state changes
	OnStateChange func(name string, from, to State)

	now func() time.Time
}

// Counts holds the statistics of the current state
type Counts struct {
	Calls                uint32
	Failures             uint32
	ConsecutiveFailures  uint32
	ConsecutiveSuccesses uint32
	Rejected             uint64
}

// Breaker stops calling a failing dependency for a cooldown period
type Breaker struct {
	name     string
	settings Settings

	mu       sync.Mutex
	state    State
	counts   Counts
	openedAt time.Time
	inFlight uint32 // half-open probes running
}

// New creates a new circuit breaker with the given settings
func New(name string, settings Settings) *Breaker {
	if settings.Threshold == 0 {
		settings.Threshold = 5
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.Probes == 0 {
		settings.Probes = 1
	}
	if settings.Failure == nil {
		settings.Failure = func(err error) bool { return err != nil }
	}
	if settings.now == nil {
		settings.now = time.Now
	}
	return &Breaker{name: name, settings: settings}
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state, moving an expired open breaker to half-open
func (b *Breaker) State() State {
	b.mu.Lock()
	state, change := b.advance()
	b.mu.Unlock()
	b.notify(change)
	return state
}

// Counts returns a copy of the internal counts
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

// Do runs fn unless the breaker is open. The error of fn is returned as is.
func (b *Breaker) Do(fn func() error) error {
	if err := b.before(); err != nil {
		return err
	}

	var err error
	defer func() {
		if r := recover(); r != nil {
			b.after(true)
			panic(r)
		}
		b.after(b.settings.Failure(err))
	}()
	err = fn()
	return err
}

// Reset closes the breaker and clears its counts
func (b *Breaker) Reset() {
	b.mu.Lock()
	change := b.setState(StateClosed)
	b.counts = Counts{}
	b.mu.Unlock()
	b.notify(change)
}

type transition struct {
	from, to State
}

func (b *Breaker) before() error {
	b.mu.Lock()
	state, change := b.advance()
	var err error
	switch {
	case state == StateOpen:
		err = ErrOpen
	case state == StateHalfOpen && b.inFlight >= b.settings.Probes:
		err = ErrOpen
	case state == StateHalfOpen:
		b.inFlight++
	}
	if err != nil {
		b.counts.Rejected++
	} else {
		b.counts.Calls++
	}
	b.mu.Unlock()

	b.notify(change)
	return err
}

func (b *Breaker) after(failed bool) {
	b.mu.Lock()
	var change *transition
	if b.state == StateHalfOpen && b.inFlight > 0 {
		b.inFlight--
	}

	if failed {
		b.counts.Failures++
		b.counts.ConsecutiveFailures++
		b.counts.ConsecutiveSuccesses = 0
		switch {
		case b.state == StateHalfOpen:
			change = b.setState(StateOpen)
		case b.state == StateClosed && b.counts.ConsecutiveFailures >= b.settings.Threshold:
			change = b.setState(StateOpen)
		}
	} else {
		b.counts.ConsecutiveFailures = 0
		b.counts.ConsecutiveSuccesses++
		if b.state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.Probes {
			change = b.setState(StateClosed)
		}
	}
	b.mu.Unlock()

	b.notify(change)
}

// advance moves an open breaker whose cooldown elapsed to half-open.
// Caller must hold mu.
func (b *Breaker) advance() (State, *transition) {
	if b.state == StateOpen && !b.settings.now().Before(b.openedAt.Add(b.settings.Cooldown)) {
		return StateHalfOpen, b.setState(StateHalfOpen)
	}
	return b.state, nil
}

// setState switches state and resets the per-state counts. Caller must hold mu.
func (b *Breaker) setState(state State) *transition {
	if b.state == state {
		return nil
	}
	prev := b.state
	b.state = state
	rejected := b.counts.Rejected
	b.counts = Counts{Rejected: rejected}
	b.inFlight = 0
	if state == StateOpen {
		b.openedAt = b.settings.now()
	}
	return &transition{from: prev, to: state}
}

func (b *Breaker) notify(change *transition) {
	if change != nil && b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, change.from, change.to)
	}
}
