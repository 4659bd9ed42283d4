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
	"context"
	"sync"

	"github.com/riftgql/core/ast"
)

// ResolvableObject is the schema-side "concept" an Object wraps: the set
// of interface/union type names it satisfies, its field resolvers, and
// its two selection-set lifecycle hooks. Per §9's type-erasure design
// note, this is the one-level-composition interface a generated object
// wrapper implements instead of a deeper inheritance chain.
type ResolvableObject interface {
	// TypeNames lists every type name this object matches -- its own
	// type plus every interface/union it satisfies.
	TypeNames() []string
	// Resolvers returns the field-name -> Resolver map. Called once, when
	// the object is wrapped by NewObject.
	Resolvers() ResolverMap
	// BeginSelectionSet runs before any field resolver in the selection
	// set about to be walked.
	BeginSelectionSet(ctx context.Context, params SelectionSetParams)
	// EndSelectionSet runs after every field resolver in the selection
	// set has been awaited, including on an error path.
	EndSelectionSet(ctx context.Context, params SelectionSetParams)
}

// NopHooks is embeddable by a ResolvableObject that needs no lifecycle
// behavior, so it only has to implement TypeNames and Resolvers.
type NopHooks struct{}

func (NopHooks) BeginSelectionSet(ctx context.Context, params SelectionSetParams) {}
func (NopHooks) EndSelectionSet(ctx context.Context, params SelectionSetParams)   {}

// Object is the engine-facing wrapper around a ResolvableObject: it
// precomputes the matched-type set and resolver map once, and serializes
// access to them with a per-object mutex per §5's shared-resource
// contract ("Object resolver invocation is serialized per-resolver by a
// per-object mutex ... so begin/endSelectionSet cannot interleave with
// resolver work on the same object instance"). The mutex is held only
// around BeginSelectionSet, EndSelectionSet and each field's
// resolver-lookup-plus-ResolverParams-construction step -- never around
// the awaited resolver body itself, so sibling fields under a concurrent
// launch policy still overlap.
type Object struct {
	inner     ResolvableObject
	typeNames map[string]struct{}
	resolvers ResolverMap
	mu        sync.Mutex
}

// NewObject wraps inner into an Object, snapshotting its type names and
// resolver map.
func NewObject(inner ResolvableObject) *Object {
	names := inner.TypeNames()
	typeNames := make(map[string]struct{}, len(names))
	for _, n := range names {
		typeNames[n] = struct{}{}
	}
	return &Object{
		inner:     inner,
		typeNames: typeNames,
		resolvers: inner.Resolvers(),
	}
}

// MatchesType reports whether name is one of the object's matched types,
// used to filter fragment spreads and inline fragments carrying a type
// condition.
func (o *Object) MatchesType(name string) bool {
	_, ok := o.typeNames[name]
	return ok
}

// prepareField locks the object, looks up the resolver for name and
// builds its ResolverParams, then unlocks before returning -- the
// resolver itself always runs outside the lock.
func (o *Object) prepareField(ssParams SelectionSetParams, field FieldData, sink Sink) (Resolver, ResolverParams, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.resolvers[field.Node.Text]
	if !ok {
		return nil, ResolverParams{}, false
	}
	return r, ResolverParams{SelectionSetParams: ssParams, Field: field, Sink: sink}, true
}

// Resolve walks selectionSet against o, emitting into sink. It always
// wraps its output with StartObject/EndObject, so both the top-level
// response and every nested composite field share exactly one code path:
// an object is always a Map in the assembled response.
func (o *Object) Resolve(ctx context.Context, params SelectionSetParams, selectionSet *ast.Node, sink Sink) error {
	o.mu.Lock()
	o.inner.BeginSelectionSet(ctx, params)
	o.mu.Unlock()

	sink.StartObject()
	exec := &selectionExecutor{object: o, emitted: make(map[string]struct{})}
	err := exec.execute(ctx, params, selectionSet, sink)
	sink.EndObject()

	o.mu.Lock()
	o.inner.EndSelectionSet(ctx, params)
	o.mu.Unlock()

	return err
}
