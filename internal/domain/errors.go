// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates a request failed input validation.
var ErrValidation = errors.New("validation")

// ErrUnknownRoute indicates a request named a route outside the fixed variant set.
var ErrUnknownRoute = errors.New("unknown route")

// ErrStoreUnavailable indicates the external memory service could not be reached.
// Callers degrade to memory-less operation rather than failing the request.
var ErrStoreUnavailable = errors.New("memory store unavailable")

// ErrGeneration indicates the external language model failed or timed out.
var ErrGeneration = errors.New("generation failed")
