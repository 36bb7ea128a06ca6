package resilience

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	}
	return "unknown"
}

var ErrOpen = errors.New("circuit breaker is open")

// CircuitBreaker stops calling a failing dependency for timeout after
// threshold consecutive failures. Once the timeout passes a single probe call
// is let through; its outcome closes or re-opens the breaker.
type CircuitBreaker struct {
	name          string
	mu            sync.Mutex
	state         State
	failureCount  int
	lastErrorTime time.Time
	threshold     int
	timeout       time.Duration
	now           func() time.Time
}

func NewCircuitBreaker(name string, threshold int, timeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:      name,
		state:     StateClosed,
		threshold: threshold,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) Execute(action func() error) error {
	cb.mu.Lock()
	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.lastErrorTime) <= cb.timeout {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.state = StateHalfOpen
	case StateHalfOpen:
		// a probe is already in flight
		cb.mu.Unlock()
		return ErrOpen
	}
	cb.mu.Unlock()

	return cb.run(action)
}

// run records the outcome of action. A panic counts as a failure and is
// re-raised once recorded.
func (cb *CircuitBreaker) run(action func() error) error {
	defer func() {
		if r := recover(); r != nil {
			cb.record(fmt.Errorf("panic: %v", r))
			panic(r)
		}
	}()

	err := action()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failureCount++
		cb.lastErrorTime = cb.now()

		if cb.failureCount >= cb.threshold || cb.state == StateHalfOpen {
			if cb.state != StateOpen {
				slog.Warn("Circuit breaker opened", "breaker", cb.name, "failures", cb.failureCount)
			}
			cb.state = StateOpen
		}
		return
	}

	if cb.state == StateHalfOpen {
		slog.Info("Circuit breaker recovered", "breaker", cb.name)
	}
	cb.failureCount = 0
	cb.state = StateClosed
}
