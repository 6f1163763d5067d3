package errors

import (
	"fmt"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryMatch  Category = "match"
	CategoryAccess Category = "access"
	CategoryGuard  Category = "guard"
	CategoryOrigin Category = "origin"
	CategoryRender Category = "render"
	CategoryModal  Category = "modal"
)

// NavError is a structured error with a stable code, category, and fix hints.
type NavError struct {
	// Code is a unique error identifier (e.g., "W001").
	Code string

	// Category is the error type (config, match, access, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *NavError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *NavError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *NavError) WithDetail(format string, args ...any) *NavError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *NavError) WithSuggestion(s string) *NavError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *NavError) Wrap(err error) *NavError {
	e.Wrapped = err
	return e
}

// Format returns a multi-line human-readable rendering of the error.
func (e *NavError) Format() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.Detail != "" {
		sb.WriteString("\n  ")
		sb.WriteString(e.Detail)
	}
	if e.Suggestion != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(e.Suggestion)
	}
	if e.Wrapped != nil {
		sb.WriteString("\n  caused by: ")
		sb.WriteString(e.Wrapped.Error())
	}
	return sb.String()
}

// New creates a NavError from a registered error code.
func New(code string) *NavError {
	template, ok := registry[code]
	if !ok {
		return &NavError{
			Code:    code,
			Message: "unknown error",
		}
	}
	return &NavError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new NavError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *NavError {
	return &NavError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a NavError.
func FromError(err error, code string) *NavError {
	if err == nil {
		return nil
	}
	if ne, ok := err.(*NavError); ok {
		return ne
	}
	return New(code).Wrap(err)
}
