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

// Package ast defines the read-only document tree the execution engine
// walks. Producing this tree is the job of a separate GraphQL grammar
// parser -- out of scope here, the way a schema's introspection graph and
// its generated resolver glue are -- so this package exposes only the node
// shapes and read helpers the engine needs, never a parser.
//
// Nodes are a small closed set of Kinds with a uniform Children/Text shape
// (the generic-tree style a hand-rolled PEG parser naturally produces)
// rather than one Go struct type per grammar production; the engine never
// mutates a Node once built.
package ast

// Kind names the grammar production a Node represents.
type Kind uint8

// Enumeration of Kind.
const (
	KindDocument Kind = iota
	KindOperationDefinition
	KindFragmentDefinition
	KindVariableDefinition
	KindSelectionSet
	KindField
	KindFragmentSpread
	KindInlineFragment
	KindArgument
	KindArguments
	KindDirective
	KindDirectives
	KindName
	KindNamedType
	KindAlias

	// Value literals (GraphQL §2.9 Input Values)
	KindIntValue
	KindFloatValue
	KindStringValue
	KindBooleanValue
	KindNullValue
	KindEnumValue
	KindListValue
	KindObjectValue
	KindObjectField
	KindVariable
)

// Location is a 1-based source position; 0 means unknown, matching the
// engine's SchemaLocation entity.
type Location struct {
	Line   int
	Column int
}

// IsKnown reports whether the location carries real source coordinates.
func (l Location) IsKnown() bool { return l.Line != 0 || l.Column != 0 }

// Node is one node of the read-only document tree. The zero value of Node
// is not meaningful; construct nodes with New or the Builder helpers in
// builder.go (tests use the builder; a production deployment's parser
// builds Nodes directly).
type Node struct {
	Kind     Kind
	Loc      Location
	Text     string // leaf payload: a Name's text, a literal's raw text, an OperationType keyword
	Children []*Node
}

// New creates a leaf or interior Node.
func New(kind Kind, loc Location, text string, children ...*Node) *Node {
	return &Node{Kind: kind, Loc: loc, Text: text, Children: children}
}

// OperationKind enumerates the three operation kinds a document's
// operation_definition node may declare.
type OperationKind string

// Enumeration of OperationKind.
const (
	OperationTypeQuery        OperationKind = "query"
	OperationTypeMutation     OperationKind = "mutation"
	OperationTypeSubscription OperationKind = "subscription"
)
