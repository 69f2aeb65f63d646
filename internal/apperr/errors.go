// Package apperr defines the error taxonomy shared by services and
// handlers. Sentinel values let the HTTP boundary classify a failure
// with errors.Is instead of inspecting message text.
package apperr

import "errors"

var (
	// ErrNotFound: a referenced user, business, customer, product,
	// invoice or token does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation: missing or malformed input (empty required field,
	// non-positive quantity, unknown plan value).
	ErrValidation = errors.New("validation failed")
	// ErrPolicyViolation: a plan quota was exceeded.
	ErrPolicyViolation = errors.New("plan limit exceeded")
	// ErrAuthorization: email or token does not match the resource owner.
	ErrAuthorization = errors.New("not authorized")
	// ErrTokenExpired: the token exists but its validity window is over.
	// Kept distinct from ErrNotFound so clients can prompt a re-request.
	ErrTokenExpired = errors.New("token expired")
	// ErrConflict: a uniqueness assumption failed (ambiguous customer
	// name, duplicate token key).
	ErrConflict = errors.New("conflict")
	// ErrInternal: unexpected storage or runtime failure.
	ErrInternal = errors.New("internal error")
)
