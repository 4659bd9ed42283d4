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

// FirstChildOfKind returns the first direct child of node with the given
// Kind, or nil if none exists. This is the engine's sole means of reaching
// into a node produced by the (out of scope) parser: it never indexes
// Children directly by position.
func FirstChildOfKind(node *Node, kind Kind) *Node {
	if node == nil {
		return nil
	}
	for _, child := range node.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// ChildrenOfKind returns every direct child of node with the given Kind, in
// source order.
func ChildrenOfKind(node *Node, kind Kind) []*Node {
	if node == nil {
		return nil
	}
	var out []*Node
	for _, child := range node.Children {
		if child.Kind == kind {
			out = append(out, child)
		}
	}
	return out
}

// NodeLocation reads the source line/column of node. Returns the zero
// Location (unknown) for a nil node.
func NodeLocation(node *Node) Location {
	if node == nil {
		return Location{}
	}
	return node.Loc
}

//===----------------------------------------------------------------------===
// Operation
//===----------------------------------------------------------------------===

// OperationType reports the operation kind of an operation_definition node,
// defaulting to query for the shorthand form ("{ field }") where Text is
// empty.
func OperationType(op *Node) OperationKind {
	switch op.Text {
	case string(OperationTypeMutation):
		return OperationTypeMutation
	case string(OperationTypeSubscription):
		return OperationTypeSubscription
	default:
		return OperationTypeQuery
	}
}

// OperationName returns the operation's declared name, or "" if anonymous.
func OperationName(op *Node) string {
	if name := FirstChildOfKind(op, KindName); name != nil {
		return name.Text
	}
	return ""
}

// OperationSelectionSet returns the operation's top-level selection_set.
func OperationSelectionSet(op *Node) *Node {
	return FirstChildOfKind(op, KindSelectionSet)
}

// OperationVariableDefinitions returns the operation's declared variables.
func OperationVariableDefinitions(op *Node) []*Node {
	return ChildrenOfKind(op, KindVariableDefinition)
}

// OperationDirectives returns the operation-level directives, or nil.
func OperationDirectives(op *Node) *Node {
	return FirstChildOfKind(op, KindDirectives)
}

//===----------------------------------------------------------------------===
// Fragment
//===----------------------------------------------------------------------===

// FragmentName returns a fragment_definition's declared name.
func FragmentName(frag *Node) string { return frag.Text }

// FragmentTypeCondition returns the type name a fragment_definition applies
// to.
func FragmentTypeCondition(frag *Node) string {
	if nt := FirstChildOfKind(frag, KindNamedType); nt != nil {
		return nt.Text
	}
	return ""
}

// FragmentSelectionSet returns a fragment_definition's selection set.
func FragmentSelectionSet(frag *Node) *Node {
	return FirstChildOfKind(frag, KindSelectionSet)
}

// FragmentDirectives returns a fragment_definition's own directives.
func FragmentDirectives(frag *Node) *Node {
	return FirstChildOfKind(frag, KindDirectives)
}

// Selections returns the direct selections of a selection_set node --
// fields, fragment spreads and inline fragments interleaved in source
// order, the way a selection set is actually written. Callers that only
// want one kind should still walk this list and switch on Kind, since
// ChildrenOfKind alone would lose the relative order between e.g. a field
// and a fragment spread that follows it.
func Selections(set *Node) []*Node {
	if set == nil {
		return nil
	}
	var out []*Node
	for _, child := range set.Children {
		switch child.Kind {
		case KindField, KindFragmentSpread, KindInlineFragment:
			out = append(out, child)
		}
	}
	return out
}

//===----------------------------------------------------------------------===
// Field
//===----------------------------------------------------------------------===

// FieldName returns a field node's name (as written, before alias
// substitution).
func FieldName(field *Node) string { return field.Text }

// FieldAlias returns a field node's alias, or "" if none was given.
func FieldAlias(field *Node) string {
	if alias := FirstChildOfKind(field, KindAlias); alias != nil {
		return alias.Text
	}
	return ""
}

// FieldResponseName returns the response key for field: its alias if
// present, else its name.
func FieldResponseName(field *Node) string {
	if alias := FieldAlias(field); alias != "" {
		return alias
	}
	return FieldName(field)
}

// FieldArguments returns a field's arguments node, or nil if it has none.
func FieldArguments(field *Node) *Node {
	return FirstChildOfKind(field, KindArguments)
}

// FieldDirectives returns a field's directives node, or nil.
func FieldDirectives(field *Node) *Node {
	return FirstChildOfKind(field, KindDirectives)
}

// FieldSelectionSet returns a field's nested selection set, or nil for a
// leaf field.
func FieldSelectionSet(field *Node) *Node {
	return FirstChildOfKind(field, KindSelectionSet)
}

//===----------------------------------------------------------------------===
// Fragment spread / inline fragment
//===----------------------------------------------------------------------===

// FragmentSpreadName returns the name of the fragment a `...Name` spread
// refers to.
func FragmentSpreadName(spread *Node) string { return spread.Text }

// FragmentSpreadDirectives returns a fragment spread's own directives.
func FragmentSpreadDirectives(spread *Node) *Node {
	return FirstChildOfKind(spread, KindDirectives)
}

// InlineFragmentTypeCondition returns an inline fragment's type condition,
// or "" if none was given (`... { ... }`).
func InlineFragmentTypeCondition(inline *Node) string {
	if nt := FirstChildOfKind(inline, KindNamedType); nt != nil {
		return nt.Text
	}
	return ""
}

// InlineFragmentDirectives returns an inline fragment's own directives.
func InlineFragmentDirectives(inline *Node) *Node {
	return FirstChildOfKind(inline, KindDirectives)
}

// InlineFragmentSelectionSet returns an inline fragment's nested selection
// set.
func InlineFragmentSelectionSet(inline *Node) *Node {
	return FirstChildOfKind(inline, KindSelectionSet)
}

//===----------------------------------------------------------------------===
// Arguments / Directives
//===----------------------------------------------------------------------===

// Arguments returns the (name, value-node) pairs held by an arguments node,
// in source order. args may be nil, in which case Arguments returns nil.
func Arguments(args *Node) []*Node {
	if args == nil {
		return nil
	}
	return ChildrenOfKind(args, KindArgument)
}

// ArgumentName returns an argument node's name.
func ArgumentName(arg *Node) string { return arg.Text }

// ArgumentValue returns an argument node's value literal.
func ArgumentValue(arg *Node) *Node {
	if len(arg.Children) == 0 {
		return nil
	}
	return arg.Children[0]
}

// Directives returns the (name, arguments) directive nodes held by a
// directives node, in source order. dirs may be nil, in which case
// Directives returns nil.
func Directives(dirs *Node) []*Node {
	if dirs == nil {
		return nil
	}
	return ChildrenOfKind(dirs, KindDirective)
}

// DirectiveName returns a directive node's name (without the leading "@").
func DirectiveName(dir *Node) string { return dir.Text }

// DirectiveArguments returns a directive node's arguments node, or nil.
func DirectiveArguments(dir *Node) *Node {
	return FirstChildOfKind(dir, KindArguments)
}

//===----------------------------------------------------------------------===
// Variable definitions
//===----------------------------------------------------------------------===

// VariableDefinitionName returns a variable_definition's name (without the
// leading "$").
func VariableDefinitionName(def *Node) string { return def.Text }

// VariableDefinitionDefault returns a variable_definition's default value
// literal, or nil if none was declared.
func VariableDefinitionDefault(def *Node) *Node {
	if len(def.Children) == 0 {
		return nil
	}
	return def.Children[0]
}

//===----------------------------------------------------------------------===
// Object value literal fields
//===----------------------------------------------------------------------===

// ObjectFields returns the (name, value) fields of an object_value literal,
// in source order.
func ObjectFields(obj *Node) []*Node {
	return ChildrenOfKind(obj, KindObjectField)
}

// ObjectFieldName returns an object_field's name.
func ObjectFieldName(field *Node) string { return field.Text }

// ObjectFieldValue returns an object_field's value literal.
func ObjectFieldValue(field *Node) *Node {
	if len(field.Children) == 0 {
		return nil
	}
	return field.Children[0]
}
