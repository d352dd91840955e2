package usecase

import (
	"errors"
	"fmt"
)

// AuthzCode is a stable reason code surfaced verbatim to callers. Policy
// denials and infrastructure failures are never conflated: CodeInternal means
// a collaborator broke, not that access was denied.
type AuthzCode string

const (
	CodeUnauthenticated        AuthzCode = "UNAUTHENTICATED"
	CodeForbiddenNotSubscribed AuthzCode = "FORBIDDEN_NOT_SUBSCRIBED"
	CodeNotFound               AuthzCode = "NOT_FOUND"
	CodeAssetUnavailable       AuthzCode = "ASSET_UNAVAILABLE"
	CodeInvalidInput           AuthzCode = "INVALID_INPUT"
	CodeInternal               AuthzCode = "INTERNAL"
)

type AuthzError struct {
	Code    AuthzCode
	Message string
	cause   error
}

func (e *AuthzError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

func (e *AuthzError) Unwrap() error { return e.cause }

func NewAuthzError(code AuthzCode, message string) *AuthzError {
	return &AuthzError{Code: code, Message: message}
}

// Internal wraps a collaborator failure so it propagates loudly instead of
// masquerading as a paywall.
func Internal(message string, cause error) *AuthzError {
	return &AuthzError{Code: CodeInternal, Message: message, cause: cause}
}

// AuthzCodeOf extracts the reason code from an error, unwrapping as needed,
// defaulting to CodeInternal for anything that is not an AuthzError.
func AuthzCodeOf(err error) AuthzCode {
	var ae *AuthzError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}
