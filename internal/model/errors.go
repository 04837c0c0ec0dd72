package model

import "errors"

// Sentinel errors for the orchestration taxonomy. Services return these
// (possibly wrapped); the HTTP layer maps them to stable status codes.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAlreadyAnalyzed     = errors.New("file already analyzed")
	ErrQuotaExceeded       = errors.New("monthly quota exceeded")
	ErrUpstreamUnavailable = errors.New("inference service unavailable")
	ErrUpstreamError       = errors.New("inference service error")
)
