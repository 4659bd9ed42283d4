/**
 * Copyright (c) 2019-2026, The Riftgql Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package gqlerror defines the engine's structured error shape (message,
// source locations, response path) and the FieldPath stack resolvers walk
// the tree with, plus the errors engine-navigation failures (missing
// operation, unexpected subscription, ...) raise.
package gqlerror

import (
	"fmt"

	"github.com/riftgql/core/ast"
)

// Location is a 1-based source position reported on a SchemaError.
type Location struct {
	Line   int
	Column int
}

// FromNodeLocation converts an ast.Location into a gqlerror.Location.
func FromNodeLocation(loc ast.Location) Location {
	return Location{Line: loc.Line, Column: loc.Column}
}

// IsZero reports whether the location is unset (line and column both 0).
func (l Location) IsZero() bool { return l.Line == 0 && l.Column == 0 }

// PathSegment is one step of an error's response path: either a field
// response-name or a list index. Exactly one of Name/IsIndex applies --
// never both at one position.
type PathSegment struct {
	Name    string
	Index   int
	IsIndex bool
}

func fieldSegment(name string) PathSegment { return PathSegment{Name: name} }
func indexSegment(i int) PathSegment       { return PathSegment{Index: i, IsIndex: true} }

// FieldPath is an immutable, linked chain of PathSegments built up as the
// selection executor descends into nested fields and list elements. Each
// resolver invocation gets its own tail node; sibling resolvers never
// observe each other's path, only their common, shared prefix.
type FieldPath struct {
	parent  *FieldPath
	segment PathSegment
}

// Child returns a new FieldPath extending path with a field response-name
// segment. A nil receiver denotes the root path.
func (path *FieldPath) Child(responseName string) *FieldPath {
	return &FieldPath{parent: path, segment: fieldSegment(responseName)}
}

// ChildIndex returns a new FieldPath extending path with a list-index
// segment.
func (path *FieldPath) ChildIndex(index int) *FieldPath {
	return &FieldPath{parent: path, segment: indexSegment(index)}
}

// Flatten materializes path into an ordered slice of PathSegments from root
// to leaf, the shape a SchemaError and the final response `path` member
// are recorded in.
func (path *FieldPath) Flatten() []PathSegment {
	if path == nil {
		return nil
	}
	var segments []PathSegment
	for p := path; p != nil; p = p.parent {
		segments = append(segments, p.segment)
	}
	// segments was built leaf-to-root; reverse it.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return segments
}

// SchemaError is a single structured error contributed to a response's
// `errors` list: a message, optional source location and optional response
// path.
type SchemaError struct {
	Message  string
	Location Location
	Path     []PathSegment
}

func (e *SchemaError) Error() string { return e.Message }

// New builds a SchemaError with the given message, no location and no path
// (both are filled in by the selection executor at the point the error is
// attached to a field, per the engine's location/path-backfill rule).
func New(message string) *SchemaError {
	return &SchemaError{Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(format string, args ...interface{}) *SchemaError {
	return New(fmt.Sprintf(format, args...))
}

// WithLocation returns a copy of e with Location set, unless e already
// carries a non-zero location (the executor only backfills locations that
// are unset, per §4.3's "attach the field's source location to any
// contained error whose location is zero").
func (e *SchemaError) WithLocation(loc Location) *SchemaError {
	if !e.Location.IsZero() {
		return e
	}
	clone := *e
	clone.Location = loc
	return &clone
}

// WithPath returns a copy of e with Path set, unless e already carries a
// non-empty path.
func (e *SchemaError) WithPath(path []PathSegment) *SchemaError {
	if len(e.Path) > 0 {
		return e
	}
	clone := *e
	clone.Path = path
	return &clone
}

// Document navigation errors (§7): these abort the whole operation rather
// than being captured per-field.
var (
	ErrMissingOperation          = New("Missing operation")
	ErrUnexpectedSubscription    = New("Unexpected subscription")
	ErrUnexpectedOperationType   = New("Unexpected operation type")
	ErrExtraSubscriptionRoot     = New("Extra subscription root field")
	ErrSubscriptionsNotSupported = New("Subscriptions not supported")
	ErrMissingSubscriptionObject = New("Missing subscriptionObject")
)

// MissingOperationError formats the "Missing operation [name: X]" message
// for a lookup that failed to find operationName (or, if operationName is
// empty, failed because the document declares no operations at all).
func MissingOperationError(operationName string) *SchemaError {
	if operationName == "" {
		return New("Missing operation")
	}
	return Newf("Missing operation [name: %s]", operationName)
}

// ExtraSubscriptionRootFieldError formats the "Extra subscription root
// field name: X" message raised when a subscription operation's
// selection set names a second root field, violating GraphQL's
// single-root-field rule for subscriptions. fieldName is the name of that
// extra field.
func ExtraSubscriptionRootFieldError(fieldName string) *SchemaError {
	return Newf("Extra subscription root field name: %s", fieldName)
}
