package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewCircuitBreaker(3, time.Minute, 1)

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("closed breaker rejected request %d: %v", i, err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); err == nil {
		t.Fatal("expected open breaker to reject")
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open state, got %s", state)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := NewCircuitBreaker(2, time.Minute, 1)

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()

	if err := b.Allow(); err != nil {
		t.Fatalf("breaker should still be closed: %v", err)
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	now := time.Now()
	b := NewCircuitBreaker(1, 10*time.Second, 1)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	if err := b.Allow(); err == nil {
		t.Fatal("expected rejection while open")
	}

	now = now.Add(11 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass: %v", err)
	}
	b.RecordSuccess()

	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	now := time.Now()
	b := NewCircuitBreaker(1, 10*time.Second, 1)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(11 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass: %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); err == nil {
		t.Fatal("expected reopened breaker to reject")
	}
}

func TestNormalizeCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})

	if cfg.FailureThreshold != 5 {
		t.Fatalf("expected default threshold 5, got %d", cfg.FailureThreshold)
	}
	if cfg.OpenTimeout != 15*time.Second {
		t.Fatalf("expected default open timeout 15s, got %s", cfg.OpenTimeout)
	}
	if cfg.HalfOpenMaxReq != 1 {
		t.Fatalf("expected default half-open max 1, got %d", cfg.HalfOpenMaxReq)
	}
}
