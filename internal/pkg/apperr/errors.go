// Package apperr defines the error categories surfaced at the HTTP boundary.
package apperr

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError reports a missing referenced entity. Entity names the kind
// ("voucher", "bank", "history", ...) so callers can tell them apart.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// NotFound returns a NotFoundError for the given entity kind.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// FieldError describes why a single field was rejected.
type FieldError struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError reports a record or request that fails its schema.
type ValidationError struct {
	Message string
	Fields  map[string]FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, fmt.Sprintf("%s: %s", p, e.Fields[p].Message))
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, ", "))
}

// Validation collects field errors for one record.
type Validation struct {
	message string
	fields  map[string]FieldError
}

// NewValidation starts collecting field errors under a summary message.
func NewValidation(message string) *Validation {
	return &Validation{message: message, fields: make(map[string]FieldError)}
}

// Add records a rejected field. The first error for a path wins.
func (v *Validation) Add(path, kind, message string, value any) *Validation {
	if _, exists := v.fields[path]; !exists {
		v.fields[path] = FieldError{Message: message, Kind: kind, Path: path, Value: value}
	}
	return v
}

// Err returns a *ValidationError when any field was rejected, nil otherwise.
func (v *Validation) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Message: v.message, Fields: v.fields}
}

// TransferError reports a failed file transfer during an upload.
type TransferError struct {
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("file transfer failed during %s: %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
