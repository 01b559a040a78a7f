package chatmodel

import (
	"context"
	"net/http"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

func TestRetryPolicyDelay(t *testing.T) {
	policy := RetryPolicy{
		BaseDelay:         1.0,
		BackoffMultiplier: 2.0,
		MaxDelay:          30.0,
		Jitter:            false,
	}

	delays := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	}
	for i, expected := range delays {
		if got := policy.Delay(i); got != expected {
			t.Errorf("attempt %d: expected %v, got %v", i, expected, got)
		}
	}

	// Attempt 10 would be 1024s without the cap.
	if got := policy.Delay(10); got != 30*time.Second {
		t.Errorf("expected capped delay 30s, got %v", got)
	}
}

func TestRetryTransientThenSuccess(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, BaseDelay: 0.001, BackoffMultiplier: 1, MaxDelay: 0.001}

	calls := 0
	result, err := retry(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable}
		}
		return "success", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "success" {
		t.Errorf("expected %q, got %q", "success", result)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryNonRetryableFailsImmediately(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, BaseDelay: 0.001, BackoffMultiplier: 1, MaxDelay: 0.001}

	calls := 0
	_, err := retry(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		return "", &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call for non-retryable error, got %d", calls)
	}
}

func TestRetryBudgetErrorNotRetried(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, BaseDelay: 0.001, BackoffMultiplier: 1, MaxDelay: 0.001}

	calls := 0
	_, err := retry(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		return "", &BudgetExceededError{Estimated: 20000, Ceiling: 13000}
	})
	if !IsBudgetExceeded(err) {
		t.Fatalf("expected budget error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("budget failures belong to the warning protocol, not backoff; got %d calls", calls)
	}
}

func TestDefaultRetryPolicyIsFailFast(t *testing.T) {
	if got := DefaultRetryPolicy().MaxRetries; got != 0 {
		t.Errorf("reference policy is fail-fast, expected 0 retries, got %d", got)
	}
}
