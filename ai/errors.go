package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Category buckets completion-provider failures so handlers can map each one
// to a distinct status code and retry guidance.
type Category string

const (
	CategoryRateLimited Category = "rate_limited"
	CategoryAuthFailed  Category = "auth_failed"
	CategoryParseFailed Category = "parse_failed"
	CategoryNetwork     Category = "network"
	CategoryInternal    Category = "internal"
)

type UpstreamError struct {
	Category Category
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// CategoryOf extracts the category from an error chain, defaulting to
// internal for anything unclassified.
func CategoryOf(err error) Category {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Category
	}
	return CategoryInternal
}

// Classify maps a provider-side failure onto a category by inspecting the
// error text for quota, credential and network markers.
func Classify(err error) *UpstreamError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota"):
		return &UpstreamError{Category: CategoryRateLimited, Message: "completion provider rate limit exceeded", Err: err}
	case strings.Contains(msg, "401") || strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized"):
		return &UpstreamError{Category: CategoryAuthFailed, Message: "completion provider authentication failed", Err: err}
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") ||
		strings.Contains(msg, "connection") || strings.Contains(msg, "network"):
		return &UpstreamError{Category: CategoryNetwork, Message: "completion provider unreachable", Err: err}
	default:
		return &UpstreamError{Category: CategoryInternal, Message: "completion provider call failed", Err: err}
	}
}

// InputError is a caller-input validation failure with a machine-readable
// code, checked before any network call.
type InputError struct {
	Code    string
	Message string
}

func (e *InputError) Error() string { return e.Message }

const (
	CodeMissingInput   = "MISSING_INPUT"
	CodeEmptyInput     = "EMPTY_INPUT"
	CodeInvalidContent = "INVALID_CONTENT"
	CodeTooShort       = "TOO_SHORT"
	CodeTooLong        = "TOO_LONG"
)
