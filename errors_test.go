package shinrai

import (
	"errors"
	"fmt"
	"testing"
)

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Op: "GET /api/phase6/stats", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected TransportError to unwrap to its cause")
	}
	want := "shinrai: GET /api/phase6/stats: connection refused"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 429, Message: "slow down"}
	want := "shinrai: api error (status 429): slow down"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
	if !IsRateLimited(fmt.Errorf("wrapped: %w", err)) {
		t.Error("expected IsRateLimited to see through wrapping")
	}
}

func TestStatusHelpersIgnoreOtherKinds(t *testing.T) {
	err := &TransportError{Op: "dial", Err: errors.New("refused")}
	if IsUnauthorized(err) || IsForbidden(err) || IsNotFound(err) || IsRateLimited(err) {
		t.Error("status helpers must be false for non-API errors")
	}
}
