package media

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// circuitState represents the state of a circuit breaker
type circuitState int

const (
	stateClosed   circuitState = iota // Normal operation
	stateOpen                         // Host failing, calls rejected
	stateHalfOpen                     // One trial call allowed
)

func (s circuitState) String() string {
	switch s {
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// circuitBreaker stops calling a media host after consecutive failures
type circuitBreaker struct {
	lastFailure      time.Time
	now              func() time.Time
	host             string
	failures         int
	state            circuitState
	failureThreshold int
	openDuration     time.Duration
	mu               sync.Mutex
}

func newCircuitBreaker(host string, failureThreshold int, openDuration time.Duration) *circuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 3
	}
	if openDuration <= 0 {
		openDuration = time.Minute
	}
	return &circuitBreaker{
		host:             host,
		failureThreshold: failureThreshold,
		openDuration:     openDuration,
		now:              time.Now,
	}
}

// allow reports whether a call may proceed. An open circuit moves to
// half-open once openDuration has passed since the last failure.
func (cb *circuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != stateOpen {
		return nil
	}

	if cb.now().Sub(cb.lastFailure) >= cb.openDuration {
		cb.setState(stateHalfOpen)
		return nil
	}

	nextRetry := cb.lastFailure.Add(cb.openDuration)
	return fmt.Errorf("%w: %s circuit open after %d failures, next retry %s",
		ErrCircuitOpen, cb.host, cb.failures, nextRetry.Format("15:04:05"))
}

func (cb *circuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.setState(stateClosed)
}

func (cb *circuitBreaker) recordFailure(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()

	if cb.state == stateHalfOpen || cb.failures >= cb.failureThreshold {
		cb.setState(stateOpen)
		return
	}

	slog.Warn("[MEDIA-CIRCUIT] media host call failed",
		"host", cb.host,
		"failures", cb.failures,
		"threshold", cb.failureThreshold,
		"error", err,
	)
}

// setState must be called with the lock held
func (cb *circuitBreaker) setState(next circuitState) {
	if cb.state == next {
		return
	}
	slog.Info("[MEDIA-CIRCUIT] circuit state changed",
		"host", cb.host,
		"from", cb.state.String(),
		"to", next.String(),
		"failures", cb.failures,
	)
	cb.state = next
}
