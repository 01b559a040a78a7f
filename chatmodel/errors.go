package chatmodel

import (
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// BudgetExceededError reports that the pre-flight token estimate for a
// conversation exceeded the gateway's ceiling. The call was aborted before
// any network request was made.
type BudgetExceededError struct {
	Estimated int
	Ceiling   int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("estimated token usage %d exceeds the maximum allowed limit of %d", e.Estimated, e.Ceiling)
}

// RetriesExhaustedError reports that the caller's budget warning-and-retry
// protocol ran out of attempts. It is fatal to the invocation.
type RetriesExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("repeated token limit errors after %d attempts, unable to proceed: %v", e.Attempts, e.Cause)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Cause
}

// IsBudgetExceeded reports whether err is (or wraps) a BudgetExceededError.
func IsBudgetExceeded(err error) bool {
	var be *BudgetExceededError
	return errors.As(err, &be)
}

// IsRetryable classifies a provider error as safe to retry. Budget errors are
// never retryable here: they are handled by the caller's warning protocol,
// not by backoff.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if IsBudgetExceeded(err) {
		return false
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return true
		case http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	// Non-API errors (connection resets, DNS) default to retryable.
	return true
}
