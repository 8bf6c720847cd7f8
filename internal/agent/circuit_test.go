package agent

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerTransitions(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 2,
		Timeout:          10 * time.Millisecond,
	})

	if cb.State() != CircuitClosed {
		t.Fatalf("initial state = %s", cb.State())
	}

	// Failures below the threshold keep the circuit closed.
	cb.Failure()
	if err := cb.Allow(); err != nil {
		t.Fatalf("closed circuit rejected: %v", err)
	}

	// Hitting the threshold opens it.
	cb.Failure()
	if cb.State() != CircuitOpen {
		t.Fatalf("state = %s, want open", cb.State())
	}
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}

	// After the timeout a test request transitions to half-open.
	time.Sleep(15 * time.Millisecond)
	if err := cb.Allow(); err != nil {
		t.Fatalf("half-open rejected test request: %v", err)
	}
	if cb.State() != CircuitHalfOpen {
		t.Fatalf("state = %s, want half-open", cb.State())
	}

	// Enough successes close it again.
	cb.Success()
	cb.Success()
	if cb.State() != CircuitClosed {
		t.Fatalf("state = %s, want closed", cb.State())
	}

	// A failure in half-open reopens immediately.
	cb.Failure()
	cb.Failure()
	time.Sleep(15 * time.Millisecond)
	_ = cb.Allow()
	cb.Failure()
	if cb.State() != CircuitOpen {
		t.Fatalf("state = %s, want open after half-open failure", cb.State())
	}

	cb.Reset()
	if cb.State() != CircuitClosed {
		t.Fatalf("state after reset = %s", cb.State())
	}
}

func TestCircuitClosedResetsOnSuccess(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3})
	cb.Failure()
	cb.Failure()
	cb.Success()
	cb.Failure()
	cb.Failure()
	if cb.State() != CircuitClosed {
		t.Fatalf("state = %s, interleaved success should reset the count", cb.State())
	}
}
