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

package ast

// The functions below build Nodes directly; they exist so tests (and any
// in-process caller that already has a parsed document in some other
// shape) can construct a document tree without depending on a grammar
// parser, which this module does not implement.

// Field builds a field selection node.
func Field(loc Location, alias, name string, args *Node, dirs *Node, sel *Node) *Node {
	var children []*Node
	if alias != "" {
		children = append(children, New(KindAlias, loc, alias))
	}
	if args != nil {
		children = append(children, args)
	}
	if dirs != nil {
		children = append(children, dirs)
	}
	if sel != nil {
		children = append(children, sel)
	}
	return New(KindField, loc, name, children...)
}

// SelectionSet builds a selection_set node from selections in source order.
func SelectionSet(loc Location, selections ...*Node) *Node {
	return New(KindSelectionSet, loc, "", selections...)
}

// FragmentSpread builds a `...Name` fragment spread node.
func FragmentSpread(loc Location, name string, dirs *Node) *Node {
	var children []*Node
	if dirs != nil {
		children = append(children, dirs)
	}
	return New(KindFragmentSpread, loc, name, children...)
}

// InlineFragment builds a `... on Type { ... }` (or typeless `... { ... }`)
// inline fragment node.
func InlineFragment(loc Location, typeCondition string, dirs *Node, sel *Node) *Node {
	var children []*Node
	if typeCondition != "" {
		children = append(children, NamedType(loc, typeCondition))
	}
	if dirs != nil {
		children = append(children, dirs)
	}
	children = append(children, sel)
	return New(KindInlineFragment, loc, "", children...)
}

// NamedType builds a named_type node.
func NamedType(loc Location, name string) *Node {
	return New(KindNamedType, loc, name)
}

// ArgumentsNode builds an arguments node.
func ArgumentsNode(loc Location, args ...*Node) *Node {
	return New(KindArguments, loc, "", args...)
}

// Argument builds a single (name: value) argument node.
func Argument(loc Location, name string, val *Node) *Node {
	return New(KindArgument, loc, name, val)
}

// Directives builds a directives node.
func DirectivesNode(loc Location, dirs ...*Node) *Node {
	return New(KindDirectives, loc, "", dirs...)
}

// Directive builds a single @name(args) directive node.
func Directive(loc Location, name string, args *Node) *Node {
	var children []*Node
	if args != nil {
		children = append(children, args)
	}
	return New(KindDirective, loc, name, children...)
}

// Variable builds a $name variable-reference value node.
func Variable(loc Location, name string) *Node {
	return New(KindVariable, loc, name)
}

// IntValue builds an integer literal value node.
func IntValue(loc Location, raw string) *Node { return New(KindIntValue, loc, raw) }

// FloatValue builds a float literal value node.
func FloatValue(loc Location, raw string) *Node { return New(KindFloatValue, loc, raw) }

// StringValue builds a string literal value node (text already unescaped).
func StringValue(loc Location, text string) *Node { return New(KindStringValue, loc, text) }

// BooleanValue builds a boolean literal value node.
func BooleanValue(loc Location, b bool) *Node {
	text := "false"
	if b {
		text = "true"
	}
	return New(KindBooleanValue, loc, text)
}

// NullValue builds a null literal value node.
func NullValue(loc Location) *Node { return New(KindNullValue, loc, "") }

// EnumValue builds an enum literal value node.
func EnumValue(loc Location, name string) *Node { return New(KindEnumValue, loc, name) }

// ListValue builds a list literal value node.
func ListValue(loc Location, elems ...*Node) *Node { return New(KindListValue, loc, "", elems...) }

// ObjectValue builds an object literal value node.
func ObjectValue(loc Location, fields ...*Node) *Node {
	return New(KindObjectValue, loc, "", fields...)
}

// ObjectField builds a single (name: value) field of an object literal.
func ObjectField(loc Location, name string, val *Node) *Node {
	return New(KindObjectField, loc, name, val)
}

// VariableDefinition builds a $name variable declaration, with an optional
// default value literal.
func VariableDefinition(loc Location, name string, def *Node) *Node {
	var children []*Node
	if def != nil {
		children = append(children, def)
	}
	return New(KindVariableDefinition, loc, name, children...)
}

// OperationDefinition builds an operation_definition node. opType may be ""
// for the query shorthand.
func OperationDefinition(
	loc Location, opType OperationKind, name string,
	varDefs []*Node, dirs *Node, sel *Node) *Node {

	var children []*Node
	if name != "" {
		children = append(children, New(KindName, loc, name))
	}
	children = append(children, varDefs...)
	if dirs != nil {
		children = append(children, dirs)
	}
	children = append(children, sel)
	return New(KindOperationDefinition, loc, string(opType), children...)
}

// FragmentDefinition builds a fragment_definition node.
func FragmentDefinition(loc Location, name, typeCondition string, dirs *Node, sel *Node) *Node {
	var children []*Node
	children = append(children, NamedType(loc, typeCondition))
	if dirs != nil {
		children = append(children, dirs)
	}
	children = append(children, sel)
	return New(KindFragmentDefinition, loc, name, children...)
}

// Document builds a document node from its definitions.
func Document(definitions ...*Node) *Node {
	return New(KindDocument, Location{}, "", definitions...)
}
