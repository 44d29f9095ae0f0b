package core

import (
	"errors"
	"fmt"
)

// Validation errors (local, pre-network, user-fixable).
// These are resolved entirely client-side and never sent to the server.
var (
	ErrFileRequired        = errors.New("please select a file to upload")
	ErrTitleRequired       = errors.New("please enter a title/headline")
	ErrCredentialsRequired = errors.New("please provide username and password")
	ErrNoFileSelected      = errors.New("please select an image first")
	ErrManualNotPDF        = errors.New("user manuals must be PDF files")
	ErrImageTypeInvalid    = errors.New("please upload an image file (JPG, PNG, GIF, WEBP, AVIF)")
)

// Auth gate errors (local, block a privileged action before sending).
var (
	ErrAuthRequired = errors.New("you must be logged in as admin to upload content")
)

// Resource table errors
var (
	ErrUnknownKind = errors.New("unknown resource kind")
)

// Storage errors
var (
	ErrKeyNotFound = errors.New("key not found in storage")
)

// Controller state errors
var (
	ErrUploadInFlight = errors.New("an upload is already in progress")
)

// Config errors (library construction)
var (
	ErrBaseURLRequired  = errors.New("api base url is required")
	ErrStorageRequired  = errors.New("storage adapter is required")
	ErrRendererRequired = errors.New("renderer adapter is required")
	ErrNotifierRequired = errors.New("notifier adapter is required")
)

// NetworkError means the transport failed and no server response
// exists. Distinct from a domain rejection, where the server answered
// non-2xx with a message.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err wraps a transport failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// DomainError is a non-2xx server response carrying a message.
type DomainError struct {
	Status  int
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Message)
}

// IsDomainError reports whether err wraps a server-side rejection.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
