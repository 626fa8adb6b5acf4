package cstmerr

import (
	"fmt"
)

// BaseError provides a base for custom errors, allowing for wrapped errors.
type BaseError struct {
	Msg string
	Err error // Underlying error
}

func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *BaseError) Unwrap() error {
	return e.Err
}

// ConfigError indicates a problem with configuration.
type ConfigError struct{ BaseError }

func NewConfigError(msg string, underlyingErr error) *ConfigError {
	return &ConfigError{BaseError{Msg: msg, Err: underlyingErr}}
}

// FileIOError indicates an I/O problem during file operations.
type FileIOError struct{ BaseError }

func NewFileIOError(msg string, underlyingErr error) *FileIOError {
	return &FileIOError{BaseError{Msg: "I/O error during file operation: " + msg, Err: underlyingErr}}
}

// APIClientError indicates a general problem with the HTTP client or request creation.
type APIClientError struct{ BaseError }

func NewAPIClientError(underlyingErr error) *APIClientError {
	return &APIClientError{BaseError{Msg: "API client error", Err: underlyingErr}}
}

// APIRequestFailedError indicates an API request returned a non-success status.
type APIRequestFailedError struct {
	BaseError
	StatusCode int
	Message    string // Message from API response body
}

func NewAPIRequestFailedError(statusCode int, message string) *APIRequestFailedError {
	return &APIRequestFailedError{
		BaseError:  BaseError{Msg: fmt.Sprintf("API request failed with status %d", statusCode)},
		StatusCode: statusCode,
		Message:    message,
	}
}
func (e *APIRequestFailedError) Error() string {
	return fmt.Sprintf("%s - %s", e.BaseError.Msg, e.Message)
}

// TokenError indicates a failure to obtain an access token from the auth API.
type TokenError struct{ BaseError }

func NewTokenError(msg string, underlyingErr error) *TokenError {
	return &TokenError{BaseError{Msg: "Token error: " + msg, Err: underlyingErr}}
}

// TenantError indicates a failure to resolve the cloud id behind a site URL.
type TenantError struct{ BaseError }

func NewTenantError(msg string, underlyingErr error) *TenantError {
	return &TenantError{BaseError{Msg: "Tenant error: " + msg, Err: underlyingErr}}
}

// SubmissionError carries the failure message of a rejected update submission.
type SubmissionError struct{ BaseError }

func NewSubmissionError(msg string) *SubmissionError {
	return &SubmissionError{BaseError{Msg: msg}}
}

// EventParseError indicates a CI event file could not be decoded.
type EventParseError struct{ BaseError }

func NewEventParseError(msg string, underlyingErr error) *EventParseError {
	return &EventParseError{BaseError{Msg: "Event parse error: " + msg, Err: underlyingErr}}
}

// DBError indicates a general database problem.
type DBError struct{ BaseError }

func NewDBError(msg string, underlyingErr error) *DBError {
	return &DBError{BaseError{Msg: "Database error: " + msg, Err: underlyingErr}}
}

// DBConnectionError indicates a problem connecting to the database.
type DBConnectionError struct{ BaseError }

func NewDBConnectionError(msg string, underlyingErr error) *DBConnectionError {
	return &DBConnectionError{BaseError{Msg: "DB connection error: " + msg, Err: underlyingErr}}
}

// DBQueryError indicates a problem executing a database query.
type DBQueryError struct{ BaseError }

func NewDBQueryError(msg string, underlyingErr error) *DBQueryError {
	return &DBQueryError{BaseError{Msg: "DB query error: " + msg, Err: underlyingErr}}
}
