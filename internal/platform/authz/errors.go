// Package authz implements the request authorization pipeline: bearer
// credential verification, principal resolution, role checks, and the
// space membership/ownership access check. Each gate returns nil to proceed
// or a tagged *Error that the transport renders as a structured JSON body.
package authz

import (
	"net/http"
)

// Code identifies a rejection kind. Codes and their HTTP statuses are part of
// the API contract and must not change.
type Code string

const (
	CodeNoToken          Code = "NO_TOKEN"
	CodeTokenExpired     Code = "TOKEN_EXPIRED"
	CodeInvalidToken     Code = "INVALID_TOKEN"
	CodeUserNotFound     Code = "USER_NOT_FOUND"
	CodeAuthError        Code = "AUTH_ERROR"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeMissingSpaceID   Code = "MISSING_SPACE_ID"
	CodeSpaceDenied      Code = "SPACE_ACCESS_DENIED"
	CodeAccessCheckError Code = "ACCESS_CHECK_ERROR"
)

// Error is a gate rejection: a stable code, HTTP status, and client-safe
// message. Infrastructure faults carry the underlying cause for server-side
// logging only; it is never sent to the client.
type Error struct {
	Code    Code
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Unwrap exposes the underlying cause, if any, for errors.Is/As and logging.
func (e *Error) Unwrap() error {
	return e.cause
}

// Static rejections. Shared values; never mutated.
var (
	ErrNoToken        = &Error{Code: CodeNoToken, Status: http.StatusUnauthorized, Message: "No token provided"}
	ErrTokenExpired   = &Error{Code: CodeTokenExpired, Status: http.StatusUnauthorized, Message: "Token expired"}
	ErrInvalidToken   = &Error{Code: CodeInvalidToken, Status: http.StatusUnauthorized, Message: "Invalid token"}
	ErrUserNotFound   = &Error{Code: CodeUserNotFound, Status: http.StatusUnauthorized, Message: "User not found"}
	ErrUnauthorized   = &Error{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &Error{Code: CodeForbidden, Status: http.StatusForbidden, Message: "Forbidden: insufficient role"}
	ErrMissingSpaceID = &Error{Code: CodeMissingSpaceID, Status: http.StatusBadRequest, Message: "Space ID is required"}
	ErrSpaceDenied    = &Error{Code: CodeSpaceDenied, Status: http.StatusForbidden, Message: "Access to this space is denied"}
)

// AuthFault wraps an unexpected authentication-stage fault (store error,
// timeout) as AUTH_ERROR with a generic client message.
func AuthFault(cause error) *Error {
	return &Error{Code: CodeAuthError, Status: http.StatusInternalServerError, Message: "Authentication error", cause: cause}
}

// AccessCheckFault wraps an unexpected access-check fault as
// ACCESS_CHECK_ERROR with a generic client message.
func AccessCheckFault(cause error) *Error {
	return &Error{Code: CodeAccessCheckError, Status: http.StatusInternalServerError, Message: "Failed to check space access", cause: cause}
}
