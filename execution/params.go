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

// Package execution implements the selection-set walker at the heart of
// the engine: the polymorphic server Object, the directive-aware,
// fragment-aware executor that walks a selection set against it, the
// streaming result sink, and the top-level operation dispatcher that ties
// them together into a {data, errors} response.
package execution

import (
	"context"

	"github.com/riftgql/core/ast"
	"github.com/riftgql/core/async"
	"github.com/riftgql/core/directive"
	"github.com/riftgql/core/gqlerror"
	"github.com/riftgql/core/value"
)

// ResolverContext tells a resolver which phase of the engine invoked it,
// the way a single field resolver (e.g. for a subscribable field) may need
// to behave differently when a subscription is first registered versus
// when it is being delivered an event.
type ResolverContext uint8

// Enumeration of ResolverContext.
const (
	ContextQuery ResolverContext = iota
	ContextMutation
	ContextSubscription
	ContextNotifySubscribe
	ContextNotifyUnsubscribe
)

// FieldData is the per-field information a resolver receives: the AST
// node it came from, its response name, its built arguments and
// directives, and its child selection set (nil for a leaf field).
type FieldData struct {
	Node         *ast.Node
	ResponseName string
	Arguments    value.Value // Map
	Directives   directive.Directives
	SelectionSet *ast.Node
}

// DirectiveFrame is one immutable link in a directive stack. Pushing a
// frame never mutates the frame it was pushed onto -- callers that still
// hold the parent frame keep seeing the un-pushed view, per §9's
// "shared-immutable linked nodes" guidance.
type DirectiveFrame struct {
	Directives directive.Directives
	Parent     *DirectiveFrame
}

// Push returns a new frame with dirs on top of f. A nil receiver is a
// valid empty stack.
func (f *DirectiveFrame) Push(dirs directive.Directives) *DirectiveFrame {
	return &DirectiveFrame{Directives: dirs, Parent: f}
}

// DirectiveStacks bundles the three directive-context stacks a resolver
// may inspect: the fragment-definition, fragment-spread and
// inline-fragment frames currently enclosing it.
type DirectiveStacks struct {
	FragmentDefinition *DirectiveFrame
	FragmentSpread     *DirectiveFrame
	InlineFragment     *DirectiveFrame
}

// SelectionSetParams is the state threaded through one selection-set
// resolution: the resolver context, caller-supplied opaque state, the
// current response path, the launch policy, the FragmentMap and
// variables for the whole operation, and the directive stacks built up
// by fragment expansion so far.
type SelectionSetParams struct {
	Context    ResolverContext
	State      interface{}
	Path       *gqlerror.FieldPath
	Launcher   async.Launcher
	Variables  value.Value
	Fragments  FragmentMap
	Directives DirectiveStacks
}

// ResolverParams is what a Resolver actually receives: the enclosing
// selection-set params, this field's data, and the sink to emit into.
type ResolverParams struct {
	SelectionSetParams
	Field FieldData
	Sink  Sink
}

// Resolver produces one field's value by emitting into params.Sink --
// directly for a scalar/enum/id/list-of-those, or by recursively calling
// an *Object's Resolve for a composite field. A non-nil return is a
// resolver failure; see ResolveScalar/ResolveObjectField for the
// leaf-field discipline every resolver is expected to honor.
type Resolver func(ctx context.Context, params ResolverParams) error

// ResolverMap binds field names to their Resolver.
type ResolverMap map[string]Resolver
