package errors

// Upstream-HTTP helpers for mapping remote API responses and transport
// failures to project ErrorCode, extracting statuses, and retry semantics

import (
	"context"
	stderrs "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// StatusCarrier is implemented by errors that carry an upstream HTTP status
// (e.g. a remote API error decoded from a problem+json body)
type StatusCarrier interface {
	HTTPStatus() int
}

// ExtractStatus returns (status, true) if the root cause carries an upstream HTTP status
func ExtractStatus(err error) (int, bool) {
	var sc StatusCarrier
	if stderrs.As(Root(err), &sc) {
		return sc.HTTPStatus(), true
	}
	return 0, false
}

// IsStatus reports whether the error carries the given upstream HTTP status
func IsStatus(err error, status int) bool {
	got, ok := ExtractStatus(err)
	return ok && got == status
}

// Human-friendly predicates for common upstream response classes.

// IsTooManyRequests reports whether the upstream rejected us for rate limiting
func IsTooManyRequests(err error) bool { return IsStatus(err, http.StatusTooManyRequests) }

// IsUpstreamAuth reports whether the upstream rejected our credentials
func IsUpstreamAuth(err error) bool { return IsStatus(err, http.StatusUnauthorized) }

// IsUpstreamNotFound reports whether the upstream resource does not exist
func IsUpstreamNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }

// StatusErrorCode maps an upstream HTTP status to an ErrorCode with an ok flag
// !ok means the status isn't an error status; caller may fall back to generic handling
func StatusErrorCode(status int) (ErrorCode, bool) {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrorCodeValidation, true

	case http.StatusUnauthorized:
		return ErrorCodeUnauthorized, true

	case http.StatusForbidden:
		return ErrorCodeForbidden, true

	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return ErrorCodeNotFound, true

	case http.StatusConflict:
		return ErrorCodeConflict, true

	case http.StatusTooManyRequests:
		return ErrorCodeTooManyRequests, true

	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrorCodeUnavailable, true
	}

	if status >= 500 {
		// Remaining 5xx: still an upstream failure
		return ErrorCodeRemote, true
	}
	if status >= 400 {
		return ErrorCodeRemote, true
	}
	return ErrorCodeUnknown, false
}

// FromStatus wraps err with the ErrorCode mapped from an upstream status.
// If err is nil, returns nil
func FromStatus(err error, status int, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := StatusErrorCode(status); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeRemote, msg)
}

// FromStatusf is the formatted variant of FromStatus
func FromStatusf(err error, status int, format string, a ...any) error {
	if err == nil {
		return nil
	}
	if code, ok := StatusErrorCode(status); ok {
		return Wrap(err, code, fmt.Sprintf(format, a...))
	}
	return Wrap(err, ErrorCodeRemote, fmt.Sprintf(format, a...))
}

// IsRetryableStatus reports whether an upstream HTTP status is worth retrying
func IsRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// IsRetryable reports whether a remote-call error represents a transient
// condition worth retrying. It handles upstream statuses (via StatusCarrier),
// project codes, net timeouts, and the generic transport text seen on broken
// connections (e.g. "connection reset by peer")
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Do not retry local cancellations/timeouts; let the caller decide higher-level retries
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Upstream status wins when present
	if status, ok := ExtractStatus(err); ok {
		return IsRetryableStatus(status)
	}

	// Project codes assigned upstream of us
	switch CodeOf(err) {
	case ErrorCodeTooManyRequests, ErrorCodeUnavailable:
		return true
	}

	// Unwrap to the root cause so we can see the transport error
	root := Root(err)

	var nerr net.Error
	if stderrs.As(root, &nerr) && nerr.Timeout() {
		return true
	}

	// Fallback: text patterns emitted by net/http on broken or refused connections
	s := strings.ToLower(root.Error())
	switch {
	case strings.Contains(s, "connection refused"),
		strings.Contains(s, "connection reset"),
		strings.Contains(s, "broken pipe"),
		strings.Contains(s, "unexpected eof"),
		strings.Contains(s, "server closed idle connection"),
		strings.Contains(s, "tls handshake timeout"),
		strings.Contains(s, "temporary failure in name resolution"),
		strings.Contains(s, "i/o timeout"):
		return true
	default:
		return false
	}
}
