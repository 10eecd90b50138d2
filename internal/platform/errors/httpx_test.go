package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

// upstreamErr is a minimal StatusCarrier for tests
type upstreamErr struct {
	status int
	detail string
}

func (e *upstreamErr) Error() string   { return fmt.Sprintf("upstream %d: %s", e.status, e.detail) }
func (e *upstreamErr) HTTPStatus() int { return e.status }

func up(status int) *upstreamErr { return &upstreamErr{status: status, detail: "boom"} }

func TestStatusErrorCodeMappings(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorCode
	}{
		{http.StatusBadRequest, ErrorCodeValidation},
		{http.StatusUnprocessableEntity, ErrorCodeValidation},
		{http.StatusUnauthorized, ErrorCodeUnauthorized},
		{http.StatusForbidden, ErrorCodeForbidden},
		{http.StatusNotFound, ErrorCodeNotFound},
		{http.StatusMethodNotAllowed, ErrorCodeNotFound},
		{http.StatusConflict, ErrorCodeConflict},
		{http.StatusTooManyRequests, ErrorCodeTooManyRequests},
		{http.StatusBadGateway, ErrorCodeUnavailable},
		{http.StatusServiceUnavailable, ErrorCodeUnavailable},
		{http.StatusGatewayTimeout, ErrorCodeUnavailable},
		{http.StatusInternalServerError, ErrorCodeRemote}, // plain 500 default branch
		{http.StatusTeapot, ErrorCodeRemote},              // odd 4xx default branch
	}
	for _, c := range cases {
		got, ok := StatusErrorCode(c.status)
		if !ok {
			t.Fatalf("expected ok for status %d", c.status)
		}
		if got != c.want {
			t.Fatalf("StatusErrorCode(%d) = %v, want %v", c.status, got, c.want)
		}
	}

	// Non-error status path
	if _, ok := StatusErrorCode(http.StatusOK); ok {
		t.Fatalf("StatusErrorCode should return ok=false for 200")
	}
}

func TestExtractStatus(t *testing.T) {
	wrapped := Wrap(up(429), ErrorCodeTooManyRequests, "chill")
	status, ok := ExtractStatus(wrapped)
	if !ok || status != 429 {
		t.Fatalf("ExtractStatus = (%d, %v), want (429, true)", status, ok)
	}
	if _, ok := ExtractStatus(stderrs.New("nope")); ok {
		t.Fatalf("ExtractStatus should return ok=false for plain error")
	}
	if !IsTooManyRequests(wrapped) {
		t.Fatalf("IsTooManyRequests should see through the wrap")
	}
	if !IsUpstreamAuth(up(401)) || !IsUpstreamNotFound(up(404)) {
		t.Fatalf("status predicates misfired")
	}
}

func TestFromStatusVariants(t *testing.T) {
	// nil passthrough
	if FromStatus(nil, 500, "x") != nil {
		t.Fatalf("FromStatus(nil) should be nil")
	}
	if FromStatusf(nil, 500, "x %d", 1) != nil {
		t.Fatalf("FromStatusf(nil) should be nil")
	}

	err := FromStatus(up(401), 401, "verify key")
	if CodeOf(err) != ErrorCodeUnauthorized {
		t.Fatalf("FromStatus map code = %v", CodeOf(err))
	}
	errf := FromStatusf(up(404), 404, "list %s", "abc123")
	if CodeOf(errf) != ErrorCodeNotFound {
		t.Fatalf("FromStatusf code = %v, want %v", CodeOf(errf), ErrorCodeNotFound)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Fatalf("nil must not be retryable")
	}

	// Local cancellation is the caller's problem
	if IsRetryable(context.Canceled) || IsRetryable(context.DeadlineExceeded) {
		t.Fatalf("context errors must not be retryable")
	}
	if IsRetryable(fmt.Errorf("op: %w", context.Canceled)) {
		t.Fatalf("wrapped cancellation must not be retryable")
	}

	// Upstream statuses
	if !IsRetryable(up(429)) || !IsRetryable(up(500)) || !IsRetryable(up(503)) {
		t.Fatalf("429/5xx should be retryable")
	}
	if IsRetryable(up(400)) || IsRetryable(up(401)) || IsRetryable(up(404)) {
		t.Fatalf("4xx (except 429) should not be retryable")
	}

	// Status carried through a project wrap
	if !IsRetryable(Wrap(up(502), ErrorCodeUnavailable, "push member")) {
		t.Fatalf("wrapped 502 should be retryable")
	}

	// Project codes without a carrier
	if !IsRetryable(Unavailablef("down")) || !IsRetryable(Newf(ErrorCodeTooManyRequests, "slow down")) {
		t.Fatalf("unavailable/too-many-requests codes should be retryable")
	}
	if IsRetryable(InvalidArgf("bad email")) {
		t.Fatalf("invalid argument should not be retryable")
	}

	// Transport text fallback
	for _, msg := range []string{
		"dial tcp 127.0.0.1:443: connect: connection refused",
		"read tcp: connection reset by peer",
		"write: broken pipe",
		"unexpected EOF",
		"net/http: TLS handshake timeout",
		"read tcp: i/o timeout",
	} {
		if !IsRetryable(stderrs.New(msg)) {
			t.Fatalf("transport error %q should be retryable", msg)
		}
	}
	if IsRetryable(stderrs.New("no such member")) {
		t.Fatalf("generic text should not be retryable")
	}
}
