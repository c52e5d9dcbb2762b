package todoapi

import (
	"errors"
	"fmt"
)

// Sentinels matched by the concrete error types through errors.Is.
var (
	ErrRequestFailed   = errors.New("request failed")
	ErrInvalidResponse = errors.New("invalid response")
)

const networkErrorMessage = "Network error"

// RequestFailedError reports a non-2xx response or a transport failure.
// Status is zero when no response was received.
type RequestFailedError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestFailedError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

func (e *RequestFailedError) Is(target error) bool { return target == ErrRequestFailed }

// InvalidResponseError reports a success payload that does not describe a todo item.
type InvalidResponseError struct {
	Op     string
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("%s: invalid response: %s", e.Op, e.Reason)
}

func (e *InvalidResponseError) Is(target error) bool { return target == ErrInvalidResponse }

// Message returns the human-readable part of err suitable for a notification.
func Message(err error) string {
	var reqErr *RequestFailedError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	var invErr *InvalidResponseError
	if errors.As(err, &invErr) {
		return "Invalid response"
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
