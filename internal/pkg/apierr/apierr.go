// Package apierr is the error taxonomy shared by every proxy route. Provider
// specific error shapes are parsed here and never leave this package.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is a user-facing error category.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConfiguration  Kind = "configuration"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not-found"
	KindUpstream       Kind = "upstream-failure"
	KindInternal       Kind = "internal"
)

// Error is a classified failure ready to be written to the client.
type Error struct {
	Kind    Kind
	Status  int
	Message string // short text for the "error" field
	Details string // most specific text available
	cause   error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// WithMessage returns a copy with a route specific short message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithStatus returns a copy that will be written with status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func Configuration(msg string) *Error {
	return &Error{Kind: KindConfiguration, Status: http.StatusInternalServerError, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

// Internal wraps an unexpected failure during request handling.
func Internal(msg string, cause error) *Error {
	e := &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: msg, cause: cause}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// Transport classifies a failure to reach the provider at all.
func Transport(provider string, cause error) *Error {
	return Internal("Failed to reach "+provider, cause)
}

// From returns err as an *Error, wrapping anything unclassified as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("Internal server error", err)
}

// IsKind reports whether err classifies as kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// FromProviderResponse parses a non-ok provider body and classifies it by
// status code and message text.
func FromProviderResponse(status int, body []byte) *Error {
	msg, providerStatus := parseProviderMessage(body)
	e := Classify(status, msg)
	if providerStatus == "NOT_FOUND" && e.Kind == KindUpstream && status < http.StatusInternalServerError {
		e.Kind, e.Message = KindNotFound, "Model not found"
	}
	if providerStatus != "" && !strings.Contains(e.Details, providerStatus) {
		if e.Details == "" {
			e.Details = providerStatus
		} else {
			e.Details = providerStatus + ": " + e.Details
		}
	}
	return e
}

// Classify maps a provider status and message to the taxonomy. The kind comes
// from the status and the message; the status written to the client is always
// the one the provider returned, or 500 when there was none.
func Classify(status int, message string) *Error {
	message = strings.TrimSpace(message)
	lower := strings.ToLower(message)

	e := &Error{Details: message, Status: status}
	if e.Status < http.StatusBadRequest {
		e.Status = http.StatusInternalServerError
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden ||
		(status < http.StatusInternalServerError && mentionsBadKey(lower)):
		e.Kind, e.Message = KindAuthentication, "Invalid API key"
	case status == http.StatusNotFound ||
		(status == http.StatusBadRequest && mentionsMissingModel(lower)):
		e.Kind, e.Message = KindNotFound, "Model not found"
	default:
		e.Kind, e.Message = KindUpstream, "Provider request failed"
	}
	if e.Details == "" {
		e.Details = http.StatusText(status)
	}
	return e
}

func mentionsBadKey(lower string) bool {
	return strings.Contains(lower, "api key not valid") || strings.Contains(lower, "api_key_invalid") ||
		strings.Contains(lower, "invalid api key") || strings.Contains(lower, "incorrect api key")
}

func mentionsMissingModel(lower string) bool {
	return strings.Contains(lower, "model") &&
		(strings.Contains(lower, "not found") || strings.Contains(lower, "is not supported"))
}

// parseProviderMessage understands the envelopes used by Gemini, OpenAI,
// Stability and Unsplash.
func parseProviderMessage(body []byte) (message, status string) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", ""
	}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
		Name    string          `json:"name"`
		Errors  []string        `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return truncate(trimmed, 512), ""
	}

	if len(envelope.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
			Status  string `json:"status"`
			Type    string `json:"type"`
			Code    any    `json:"code"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			status = nested.Status
			if status == "" {
				status = nested.Type
			}
			return nested.Message, status
		}
		var plain string
		if err := json.Unmarshal(envelope.Error, &plain); err == nil && plain != "" {
			return plain, ""
		}
	}
	if envelope.Message != "" {
		return envelope.Message, envelope.Name
	}
	if len(envelope.Errors) > 0 {
		return strings.Join(envelope.Errors, "; "), ""
	}
	return truncate(trimmed, 512), ""
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
