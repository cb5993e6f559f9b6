package backend

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func TestAsHelpersUnwrapThroughWrappedChains(t *testing.T) {
	auth := &AuthError{Op: "sign_in", Status: 400, Message: "Invalid login credentials"}
	wrapped := errors.Wrap(auth, "signing in")

	got, ok := AsAuthError(wrapped)
	if !ok {
		t.Fatal("expected AuthError through the wrap")
	}
	if got.Message != "Invalid login credentials" {
		t.Fatalf("unexpected message %q", got.Message)
	}

	if _, ok := AsNetworkError(wrapped); ok {
		t.Fatal("AuthError must not match as NetworkError")
	}
	if _, ok := AsDecodeError(wrapped); ok {
		t.Fatal("AuthError must not match as DecodeError")
	}
}

func TestErrorKindsAreMutuallyExclusive(t *testing.T) {
	kinds := []error{
		&RequestError{Op: "op", Err: errors.New("bad input")},
		&NetworkError{Op: "op", Err: errors.New("connection refused")},
		&DecodeError{Op: "op", Err: errors.New("unexpected EOF")},
		&AuthError{Op: "op", Status: 401, Message: "expired"},
	}
	matches := func(err error) int {
		n := 0
		if _, ok := AsRequestError(err); ok {
			n++
		}
		if _, ok := AsNetworkError(err); ok {
			n++
		}
		if _, ok := AsDecodeError(err); ok {
			n++
		}
		if _, ok := AsAuthError(err); ok {
			n++
		}
		return n
	}
	for _, err := range kinds {
		if got := matches(err); got != 1 {
			t.Fatalf("%T matched %d kinds, want exactly 1", err, got)
		}
	}
}

func TestRoundSaveErrorCarriesRoundIDAndCause(t *testing.T) {
	id := uuid.MustParse("9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d")
	cause := &UpstreamError{Op: "save_round", Status: 500, Body: "batch failed"}
	err := &RoundSaveError{RoundID: id, Err: cause}

	saveErr, ok := AsRoundSaveError(err)
	if !ok {
		t.Fatal("expected RoundSaveError")
	}
	if saveErr.RoundID != id {
		t.Fatalf("unexpected round id %s", saveErr.RoundID)
	}
	if !strings.Contains(err.Error(), id.String()) {
		t.Fatalf("message should name the orphaned round: %q", err.Error())
	}
	if errors.Unwrap(err) != error(cause) {
		t.Fatal("cause should be reachable via Unwrap")
	}
}

func TestAuthErrorMessageIncludesStatusWhenRemote(t *testing.T) {
	remote := &AuthError{Op: "sign_in", Status: 422, Message: "Signup requires a valid password"}
	if !strings.Contains(remote.Error(), "422") {
		t.Fatalf("remote failure should show the status: %q", remote.Error())
	}

	local := &AuthError{Op: "fetch_profile", Message: "no active session, sign in first"}
	if strings.Contains(local.Error(), "status") {
		t.Fatalf("local precondition failure should not fake a status: %q", local.Error())
	}
}
