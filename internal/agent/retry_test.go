package agent

import (
	"errors"
	"testing"
)

func TestRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", errors.New("429 rate limit exceeded"), true},
		{"quota", errors.New("Quota Exceeded for project"), true},
		{"server error", errors.New("upstream returned 503"), true},
		{"unavailable", errors.New("model temporarily unavailable"), true},
		{"timeout", errors.New("context deadline: timeout"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"bad request", errors.New("400 invalid request payload"), false},
		{"auth", errors.New("401 unauthorized"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryableError(tt.err); got != tt.want {
				t.Errorf("retryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestContainsAny(t *testing.T) {
	if !containsAny("Rate Limit hit", "rate limit") {
		t.Error("case-insensitive match failed")
	}
	if containsAny("all good", "rate limit", "timeout") {
		t.Error("false positive")
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg.MaxRetries <= 0 || cfg.InitialInterval <= 0 || cfg.MaxInterval < cfg.InitialInterval {
		t.Errorf("implausible defaults: %+v", cfg)
	}
}
