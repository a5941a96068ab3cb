// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the error kinds shared by the content tree and the
// HTTP layer. Callers detect kinds with errors.Is against the sentinels.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors used for errors.Is checks.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Kind classifies an Error.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
)

// Error carries a client-visible message plus the entity it concerns.
type Error struct {
	Kind    Kind
	Entity  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("%s not found", e.Entity)
	case KindValidation:
		return fmt.Sprintf("invalid %s", e.Entity)
	}
	return "application error"
}

// Is matches the kind sentinel so errors.Is(err, ErrNotFound) works through
// any amount of wrapping.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindNotFound:
		return target == ErrNotFound
	case KindValidation:
		return target == ErrValidation
	}
	return false
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports that the named entity does not exist.
// The message follows the "Course not found" form used by the API.
func NotFound(entity string) error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: entity + " not found"}
}

// Validation reports malformed input for the named entity.
func Validation(entity, message string) error {
	return &Error{Kind: KindValidation, Entity: entity, Message: message}
}

// IsNotFound reports whether err is (or wraps) a not-found condition.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// HTTPStatus maps an error onto the status code surfaced to clients.
// Anything that is not a known kind is a generic server-side failure.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsNotFound(err):
		return http.StatusNotFound
	case IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-visible message for err. Unknown errors are
// reduced to fallback so store internals never leak to callers.
func Message(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Error()
	}
	return fallback
}
