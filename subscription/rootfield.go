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

package subscription

import (
	"github.com/riftgql/core/ast"
	"github.com/riftgql/core/directive"
	"github.com/riftgql/core/execution"
	"github.com/riftgql/core/gqlerror"
	"github.com/riftgql/core/value"
)

// rootFieldFinder walks a subscription operation's top-level selection
// set looking for its single root field, following fragment spreads and
// inline fragments exactly the way the selection executor does -- subject
// to type-condition filtering against root and directive skipping -- but
// never introducing a second root field (GraphQL's single-root-field rule
// for subscriptions, §4.8).
type rootFieldFinder struct {
	root       *execution.Object
	fragments  execution.FragmentMap
	variables  value.Value
	found      bool
	name       string
	arguments  value.Value
	directives directive.Directives
	selection  *ast.Node
}

// findSubscriptionRootField locates op's sole root field and returns its
// field name, a selection set containing that field itself (suitable for
// re-resolving against the subscription root object), built arguments and
// field directives. fragments is the full document's FragmentMap (already
// built by the caller), so a fragment spread reached from op's selection
// set resolves against every fragment_definition in the document, not
// just those nested inside the operation itself.
func findSubscriptionRootField(root *execution.Object, op *ast.Node, fragments execution.FragmentMap, variables value.Value) (name string, selection *ast.Node, args value.Value, dirs directive.Directives, err error) {
	finder := &rootFieldFinder{root: root, fragments: fragments, variables: variables}
	if walkErr := finder.walk(ast.OperationSelectionSet(op)); walkErr != nil {
		return "", nil, value.Value{}, nil, walkErr
	}
	if !finder.found {
		return "", nil, value.Value{}, nil, gqlerror.New("Missing subscription root field")
	}
	return finder.name, finder.selection, finder.arguments, finder.directives, nil
}

func (f *rootFieldFinder) walk(selectionSet *ast.Node) error {
	for _, sel := range ast.Selections(selectionSet) {
		switch sel.Kind {
		case ast.KindField:
			if err := f.visitField(sel); err != nil {
				return err
			}
		case ast.KindFragmentSpread:
			if err := f.visitFragmentSpread(sel); err != nil {
				return err
			}
		case ast.KindInlineFragment:
			if err := f.visitInlineFragment(sel); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *rootFieldFinder) visitField(field *ast.Node) error {
	dirs, err := directive.BuildDirectives(ast.FieldDirectives(field), f.variables)
	if err != nil {
		return asSchemaError(err)
	}
	skip, err := directive.ShouldSkip(dirs)
	if err != nil {
		return asSchemaError(err)
	}
	if skip {
		return nil
	}

	if f.found {
		return gqlerror.ExtraSubscriptionRootFieldError(ast.FieldName(field)).
			WithLocation(gqlerror.FromNodeLocation(field.Loc))
	}

	args := value.NewMap()
	for _, arg := range ast.Arguments(ast.FieldArguments(field)) {
		v, err := directive.BuildValue(ast.ArgumentValue(arg), f.variables)
		if err != nil {
			return asSchemaError(err)
		}
		args.Set(ast.ArgumentName(arg), v)
	}

	f.found = true
	f.name = ast.FieldName(field)
	f.arguments = args
	f.directives = dirs
	// selection wraps the root field node itself, not its children: the
	// registration re-resolves this against the subscription root object
	// (§4.8, cppgraphqlgen's Request::deliver), and resolving the root
	// object against a selection set of its own child fields would look
	// them up on the wrong object entirely.
	f.selection = ast.SelectionSet(field.Loc, field)
	return nil
}

func (f *rootFieldFinder) visitFragmentSpread(spread *ast.Node) error {
	name := ast.FragmentSpreadName(spread)
	frag, ok := f.fragments[name]
	if !ok {
		// Unresolvable here; root-field discovery skips it silently. No
		// later pass reports it either, since delivery re-resolves only the
		// root field found, not the operation's full selection set.
		return nil
	}

	dirs, err := directive.BuildDirectives(ast.FragmentSpreadDirectives(spread), f.variables)
	if err != nil {
		return asSchemaError(err)
	}
	skip, err := directive.ShouldSkip(dirs)
	if err != nil {
		return asSchemaError(err)
	}
	if skip {
		return nil
	}
	if frag.TypeCondition != "" && f.root != nil && !f.root.MatchesType(frag.TypeCondition) {
		return nil
	}
	return f.walk(frag.SelectionSet)
}

func (f *rootFieldFinder) visitInlineFragment(inline *ast.Node) error {
	dirs, err := directive.BuildDirectives(ast.InlineFragmentDirectives(inline), f.variables)
	if err != nil {
		return asSchemaError(err)
	}
	skip, err := directive.ShouldSkip(dirs)
	if err != nil {
		return asSchemaError(err)
	}
	if skip {
		return nil
	}
	if cond := ast.InlineFragmentTypeCondition(inline); cond != "" && f.root != nil && !f.root.MatchesType(cond) {
		return nil
	}
	return f.walk(ast.InlineFragmentSelectionSet(inline))
}
