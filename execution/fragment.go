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

package execution

import (
	"github.com/riftgql/core/ast"
	"github.com/riftgql/core/directive"
	"github.com/riftgql/core/value"
)

// Fragment is a named fragment definition: the type it applies to, its
// selection set and its own directives. Built once per request and never
// mutated afterward.
type Fragment struct {
	TypeCondition string
	SelectionSet  *ast.Node
	Directives    directive.Directives
}

// FragmentMap maps a fragment name to its Fragment, built once per
// request by BuildFragmentMap and shared read-only across the whole
// operation's resolution.
type FragmentMap map[string]*Fragment

// BuildFragmentMap scans every fragment_definition in doc and builds its
// FragmentMap, evaluating each fragment's own directive arguments against
// variables.
func BuildFragmentMap(doc *ast.Node, variables value.Value) (FragmentMap, error) {
	defs := ast.ChildrenOfKind(doc, ast.KindFragmentDefinition)
	fragments := make(FragmentMap, len(defs))
	for _, def := range defs {
		dirs, err := directive.BuildDirectives(ast.FragmentDirectives(def), variables)
		if err != nil {
			return nil, err
		}
		fragments[ast.FragmentName(def)] = &Fragment{
			TypeCondition: ast.FragmentTypeCondition(def),
			SelectionSet:  ast.FragmentSelectionSet(def),
			Directives:    dirs,
		}
	}
	return fragments, nil
}
