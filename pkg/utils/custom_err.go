package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid trip form input")
	ErrUnparsableResponse = errors.New("response unparsable")
	ErrEmptyCompletion    = errors.New("completion contains no choices")
	ErrPlanMissing        = errors.New("response contains no trip plan")
)

// ProviderError carries the HTTP status of a failed provider call so the
// retry executor can classify it. StatusCode 0 means the response never
// arrived (connection failure, timeout).
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: no response: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
}

func NewProviderError(provider string, statusCode int, message string) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: statusCode, Message: message}
}
