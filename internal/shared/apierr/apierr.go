// Package apierr is the normalized error shape every backend call resolves to.
// Callers never see a raw transport error: the transport layer wraps anything
// that goes wrong into an *Error before returning it.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	// Unauthenticated covers HTTP 401 and missing credentials.
	Unauthenticated Kind = "unauthenticated"
	// VerificationRequired means the account must complete email
	// verification before the requested action is permitted.
	VerificationRequired Kind = "verification_required"
	// Generic is everything else, including network failures with no response.
	Generic Kind = "generic"
)

// CodeVerificationRequired is the backend error code that maps to the
// VerificationRequired kind.
const CodeVerificationRequired = "VERIFICATION_REQUIRED"

type Error struct {
	Kind    Kind
	Message string // user-presentable message from the backend envelope
	Status  int    // HTTP status; 0 when no response was received
	Code    string // backend error code, if any
	Err     error  // underlying cause, for logs
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsVerificationRequired reports the verification-required condition.
func (e *Error) IsVerificationRequired() bool {
	return e.Kind == VerificationRequired || e.Code == CodeVerificationRequired
}

// New builds an error from an envelope-level failure, classifying its kind
// from the backend code and HTTP status.
func New(message string, status int, code string) *Error {
	e := &Error{Message: message, Status: status, Code: code, Kind: Generic}
	switch {
	case code == CodeVerificationRequired:
		e.Kind = VerificationRequired
	case status == http.StatusUnauthorized:
		e.Kind = Unauthenticated
	}
	return e
}

// Wrap normalizes a transport-level failure (no response received).
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	// No response was received; the caller supplies the user-facing message.
	return &Error{Kind: Generic, Err: err}
}

func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsUnauthenticated reports whether err resolves to a 401-equivalent.
func IsUnauthenticated(err error) bool {
	if ae, ok := As(err); ok {
		return ae.Kind == Unauthenticated || ae.Status == http.StatusUnauthorized
	}
	return false
}

// NeedsVerification reports whether err carries the verification-required code.
func NeedsVerification(err error) bool {
	if ae, ok := As(err); ok {
		return ae.IsVerificationRequired()
	}
	return false
}
