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

// Package directive builds runtime Value and Directive data from AST
// literal nodes, substituting variables, and evaluates the @skip/@include
// predicate. It has no notion of a schema: value coercion to an expected
// scalar type is left entirely to resolvers (§4.1).
package directive

import (
	"strconv"

	"github.com/riftgql/core/ast"
	"github.com/riftgql/core/gqlerror"
	"github.com/riftgql/core/value"
)

// BuildValue constructs a Value from an AST literal node, substituting
// variable references by looking them up in variables (a Map Value keyed
// by variable name, without the leading "$"). A Variable node whose name
// is absent from variables fails with "Unknown variable name", carrying
// the Variable node's source location.
//
// No coercion to an expected scalar type happens here -- that is resolver
// responsibility, per §4.1.
func BuildValue(node *ast.Node, variables value.Value) (value.Value, error) {
	if node == nil {
		return value.Null, nil
	}

	switch node.Kind {
	case ast.KindVariable:
		v, ok := variables.Get(node.Text)
		if !ok {
			return value.Null, gqlerror.Newf("Unknown variable name: %s", node.Text).
				WithLocation(gqlerror.FromNodeLocation(node.Loc))
		}
		return v, nil

	case ast.KindIntValue:
		i, err := strconv.ParseInt(node.Text, 10, 32)
		if err != nil {
			return value.Null, gqlerror.Newf("invalid Int literal %q", node.Text).
				WithLocation(gqlerror.FromNodeLocation(node.Loc))
		}
		return value.NewInt(int32(i)), nil

	case ast.KindFloatValue:
		f, err := strconv.ParseFloat(node.Text, 64)
		if err != nil {
			return value.Null, gqlerror.Newf("invalid Float literal %q", node.Text).
				WithLocation(gqlerror.FromNodeLocation(node.Loc))
		}
		return value.NewFloat(f), nil

	case ast.KindStringValue:
		// Escape interpretation is the parser's job; node.Text already holds
		// the unescaped content.
		return value.NewString(node.Text), nil

	case ast.KindBooleanValue:
		return value.NewBool(node.Text == "true"), nil

	case ast.KindNullValue:
		return value.Null, nil

	case ast.KindEnumValue:
		return value.NewEnum(node.Text), nil

	case ast.KindListValue:
		elems := make([]value.Value, len(node.Children))
		for i, child := range node.Children {
			v, err := BuildValue(child, variables)
			if err != nil {
				return value.Null, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil

	case ast.KindObjectValue:
		m := value.NewMap()
		for _, field := range ast.ObjectFields(node) {
			v, err := BuildValue(ast.ObjectFieldValue(field), variables)
			if err != nil {
				return value.Null, err
			}
			m.Set(ast.ObjectFieldName(field), v)
		}
		return m, nil
	}

	return value.Null, gqlerror.Newf("unrecognized value literal")
}

// Directive is one (name, arguments) binding read off a directives node.
type Directive struct {
	Name      string
	Arguments value.Value // Map
}

// Directives is the ordered sequence of directives observed on a field,
// fragment spread, inline fragment or operation, in source order.
type Directives []Directive

// ByName returns the first directive named name, or (zero, false).
func (dirs Directives) ByName(name string) (Directive, bool) {
	for _, d := range dirs {
		if d.Name == name {
			return d, true
		}
	}
	return Directive{}, false
}

// BuildDirectives builds a Directives value from a directives node (which
// may be nil, yielding an empty Directives).
func BuildDirectives(node *ast.Node, variables value.Value) (Directives, error) {
	nodes := ast.Directives(node)
	if len(nodes) == 0 {
		return nil, nil
	}
	dirs := make(Directives, 0, len(nodes))
	for _, d := range nodes {
		args := value.NewMap()
		for _, arg := range ast.Arguments(ast.DirectiveArguments(d)) {
			v, err := BuildValue(ast.ArgumentValue(arg), variables)
			if err != nil {
				return nil, err
			}
			args.Set(ast.ArgumentName(arg), v)
		}
		dirs = append(dirs, Directive{Name: ast.DirectiveName(d), Arguments: args})
	}
	return dirs, nil
}

// polarity describes whether a boolean directive skips the field when its
// `if` argument is true (@skip) or when it is false (@include).
type polarity struct {
	name        string
	skipOnValue bool
}

// Fixed evaluation order per §4.1: @skip is examined before @include.
var skipIncludeOrder = []polarity{
	{name: "skip", skipOnValue: true},
	{name: "include", skipOnValue: false},
}

// ShouldSkip examines @skip and @include, in that fixed order, and reports
// whether the annotated field/fragment should be omitted from execution.
// Each directive requires an `if` Boolean argument; a missing or mistyped
// argument fails with "Invalid arguments" / "Missing argument". If neither
// directive is present, ShouldSkip returns false.
func ShouldSkip(dirs Directives) (bool, error) {
	for _, p := range skipIncludeOrder {
		d, ok := dirs.ByName(p.name)
		if !ok {
			continue
		}

		if d.Arguments.Len() != 1 {
			return false, gqlerror.Newf("Missing argument: @%s requires exactly one argument named `if`", p.name)
		}
		ifArg, ok := d.Arguments.Get("if")
		if !ok {
			return false, gqlerror.Newf("Missing argument: @%s requires an argument named `if`", p.name)
		}
		if ifArg.Kind() != value.KindBool {
			return false, gqlerror.Newf("Invalid arguments: @%s's `if` argument must be a Boolean", p.name)
		}

		if ifArg.Bool() {
			return p.skipOnValue, nil
		}
		return !p.skipOnValue, nil
	}
	return false, nil
}
