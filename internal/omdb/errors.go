package omdb

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError reports a response other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "http status error"
	}
	if e.Status == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Status)
}

// NetworkError reports a request that could not complete.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	if e == nil || e.Err == nil {
		return "network failure"
	}
	return "execute request: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// LookupError reports a title lookup the API answered with Response "False".
type LookupError struct {
	ID      string
	Message string
}

func (e *LookupError) Error() string {
	if e == nil {
		return "lookup failed"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "no record"
	}
	return fmt.Sprintf("lookup %s: %s", e.ID, msg)
}

// Describe returns a short, user-facing summary of err.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Status != "" {
			return statusErr.Status
		}
		return fmt.Sprintf("HTTP %d", statusErr.StatusCode)
	}
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		if msg := strings.TrimSpace(lookupErr.Message); msg != "" {
			return msg
		}
		return "Title not found"
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		errStr := err.Error()
		switch {
		case strings.Contains(errStr, "context canceled"):
			return "Request cancelled"
		case strings.Contains(errStr, "connection refused"):
			return "Connection refused"
		case strings.Contains(errStr, "Client.Timeout"), strings.Contains(errStr, "deadline exceeded"):
			return "Request timed out"
		case strings.Contains(errStr, "no such host"):
			return "Host not found"
		}
		return "Network failure"
	}
	return err.Error()
}
