package apperrors

import (
	"errors"
	"fmt"
)

// Code classifies an operation failure. Codes are part of the service
// contract; handlers map them to HTTP statuses.
type Code string

const (
	// CodeUserDoesNotExist indicates a login attempt for an unknown email
	CodeUserDoesNotExist Code = "USER_DOES_NOT_EXIST"

	// CodeInvalidPassword indicates a login attempt with a wrong password
	CodeInvalidPassword Code = "INVALID_PASSWORD"

	// CodeUserNotAuthorized indicates a privileged call without an active session
	CodeUserNotAuthorized Code = "USER_NOT_AUTHORIZED"

	// CodeInvalidData indicates a validation or business-rule violation
	CodeInvalidData Code = "INVALID_DATA_PROVIDED"

	// CodeNotFound indicates a missing entity or subscription
	CodeNotFound Code = "NOT_FOUND"

	// CodeInternal indicates an unexpected internal failure
	CodeInternal Code = "INTERNAL"
)

// Error is the typed error value every operation returns on failure.
type Error struct {
	Code        Code
	Description string
	Err         error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Err)
	}
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return string(e.Code)
}

// Unwrap implements the unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// UserDoesNotExist creates a login error for an unknown email
func UserDoesNotExist() *Error {
	return &Error{Code: CodeUserDoesNotExist, Description: "no user with this email"}
}

// InvalidPassword creates a login error for a password mismatch
func InvalidPassword() *Error {
	return &Error{Code: CodeInvalidPassword, Description: "password does not match"}
}

// NotAuthorized creates an error for privileged calls without a session
func NotAuthorized() *Error {
	return &Error{Code: CodeUserNotAuthorized, Description: "no active session"}
}

// InsufficientPrivilege creates an authorization error for an active
// session lacking the required privilege
func InsufficientPrivilege(description string) *Error {
	return &Error{Code: CodeUserNotAuthorized, Description: description}
}

// InvalidData creates a validation error with a description
func InvalidData(description string) *Error {
	return &Error{Code: CodeInvalidData, Description: description}
}

// NotFound creates a not-found error with a description
func NotFound(description string) *Error {
	return &Error{Code: CodeNotFound, Description: description}
}

// Internal wraps an unexpected failure
func Internal(description string, err error) *Error {
	return &Error{Code: CodeInternal, Description: description, Err: err}
}

// CodeOf extracts the code from an error, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}
