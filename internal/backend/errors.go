package backend

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// RequestError reports invalid request construction or invalid caller
// input. Endpoint configuration is fixed at startup, so hitting one of
// these at runtime is a programming-error class failure.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: invalid request: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure: no response was
// received. Not retried automatically.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError reports a response that arrived but could not be parsed
// into the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding failure: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AuthError reports a well-formed error from the identity endpoint or a
// local precondition failure (no active session, expired token). The
// message is the server-supplied one when available.
type AuthError struct {
	Op      string
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: auth failure (status=%d): %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: auth failure: %s", e.Op, e.Message)
}

// NotFoundError reports an empty result set for a read that expects
// exactly one row.
type NotFoundError struct {
	Op       string
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.Op, e.Resource)
}

// UpstreamError reports a non-2xx response outside the auth
// classification, with a truncated copy of the response body.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

// StoreError reports a local session-store read or write failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: session store failure: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// RoundSaveError reports the acknowledged partial-failure state of a
// round save: the round row exists server-side but its hole scores were
// not written. The round is not rolled back; RoundID lets callers
// reconcile.
type RoundSaveError struct {
	RoundID uuid.UUID
	Err     error
}

func (e *RoundSaveError) Error() string {
	return fmt.Sprintf("save_round: round %s created but hole scores failed: %v", e.RoundID, e.Err)
}

func (e *RoundSaveError) Unwrap() error { return e.Err }

// AsAuthError attempts to unwrap an error into an AuthError.
func AsAuthError(err error) (*AuthError, bool) {
	var target *AuthError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsNetworkError attempts to unwrap an error into a NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var target *NetworkError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsDecodeError attempts to unwrap an error into a DecodeError.
func AsDecodeError(err error) (*DecodeError, bool) {
	var target *DecodeError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsNotFoundError attempts to unwrap an error into a NotFoundError.
func AsNotFoundError(err error) (*NotFoundError, bool) {
	var target *NotFoundError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsRequestError attempts to unwrap an error into a RequestError.
func AsRequestError(err error) (*RequestError, bool) {
	var target *RequestError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsStoreError attempts to unwrap an error into a StoreError.
func AsStoreError(err error) (*StoreError, bool) {
	var target *StoreError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsRoundSaveError attempts to unwrap an error into a RoundSaveError.
func AsRoundSaveError(err error) (*RoundSaveError, bool) {
	var target *RoundSaveError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
