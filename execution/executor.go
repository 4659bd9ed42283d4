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

	"github.com/riftgql/core/ast"
	"github.com/riftgql/core/async"
	"github.com/riftgql/core/directive"
	"github.com/riftgql/core/gqlerror"
	"github.com/riftgql/core/value"
)

// selectionExecutor walks one selection set (and, recursively, the
// fragments spread into it) against a single Object. It owns the
// already-emitted response-name set for dedup, per §4.3 -- a single
// instance is shared across every fragment expansion reached from the
// selection set it was created for, since dedup spans fragment
// boundaries too.
type selectionExecutor struct {
	object  *Object
	emitted map[string]struct{}
}

// launchedField is a field whose resolver has been launched and is
// awaiting completion.
type launchedField struct {
	handle       async.Handle
	responseName string
	path         *gqlerror.FieldPath
}

// execute is the entry point used by Object.Resolve: walk the top-level
// selection set, then await every launched field in source order.
func (e *selectionExecutor) execute(ctx context.Context, params SelectionSetParams, selectionSet *ast.Node, sink Sink) error {
	var pending []launchedField
	if err := e.walk(ctx, params, selectionSet, sink, &pending); err != nil {
		return err
	}
	for _, p := range pending {
		if _, err := p.handle.Await(ctx); err != nil {
			sink.AddError(gqlerror.Newf("Field error name: %s unknown error: %s", p.responseName, err.Error()).
				WithPath(p.path.Flatten()))
		}
	}
	return nil
}

// walk iterates one selection set's direct selections in source order --
// fields, fragment spreads and inline fragments interleaved -- launching
// each field it decides to resolve and appending its handle to *pending.
// Fragment contributions are folded into the very same *pending slice and
// e.emitted set, so a field a fragment contributes still participates in
// the enclosing selection set's de-duplication and await order.
func (e *selectionExecutor) walk(ctx context.Context, params SelectionSetParams, selectionSet *ast.Node, sink Sink, pending *[]launchedField) error {
	for _, sel := range ast.Selections(selectionSet) {
		switch sel.Kind {
		case ast.KindField:
			lf, err := e.launchField(ctx, params, sel, sink)
			if err != nil {
				return err
			}
			if lf != nil {
				*pending = append(*pending, *lf)
			}
		case ast.KindFragmentSpread:
			if err := e.walkFragmentSpread(ctx, params, sel, sink, pending); err != nil {
				return err
			}
		case ast.KindInlineFragment:
			if err := e.walkInlineFragment(ctx, params, sel, sink, pending); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *selectionExecutor) walkFragmentSpread(ctx context.Context, params SelectionSetParams, spread *ast.Node, sink Sink, pending *[]launchedField) error {
	name := ast.FragmentSpreadName(spread)
	frag, ok := params.Fragments[name]
	if !ok {
		sink.AddError(gqlerror.Newf("Unknown fragment name: %s", name).
			WithLocation(gqlerror.FromNodeLocation(spread.Loc)).
			WithPath(params.Path.Flatten()))
		return nil
	}

	dirs, err := directive.BuildDirectives(ast.FragmentSpreadDirectives(spread), params.Variables)
	if err != nil {
		sink.AddError(asLocatedError(err, spread.Loc, params.Path))
		return nil
	}
	skip, err := directive.ShouldSkip(dirs)
	if err != nil {
		sink.AddError(asLocatedError(err, spread.Loc, params.Path))
		return nil
	}
	if skip {
		return nil
	}
	if frag.TypeCondition != "" && !e.object.MatchesType(frag.TypeCondition) {
		return nil
	}

	child := params
	child.Directives.FragmentDefinition = params.Directives.FragmentDefinition.Push(frag.Directives)
	child.Directives.FragmentSpread = params.Directives.FragmentSpread.Push(dirs)
	return e.walk(ctx, child, frag.SelectionSet, sink, pending)
}

func (e *selectionExecutor) walkInlineFragment(ctx context.Context, params SelectionSetParams, inline *ast.Node, sink Sink, pending *[]launchedField) error {
	dirs, err := directive.BuildDirectives(ast.InlineFragmentDirectives(inline), params.Variables)
	if err != nil {
		sink.AddError(asLocatedError(err, inline.Loc, params.Path))
		return nil
	}
	skip, err := directive.ShouldSkip(dirs)
	if err != nil {
		sink.AddError(asLocatedError(err, inline.Loc, params.Path))
		return nil
	}
	if skip {
		return nil
	}
	if cond := ast.InlineFragmentTypeCondition(inline); cond != "" && !e.object.MatchesType(cond) {
		return nil
	}

	child := params
	child.Directives.InlineFragment = params.Directives.InlineFragment.Push(dirs)
	return e.walk(ctx, child, ast.InlineFragmentSelectionSet(inline), sink, pending)
}

// launchField handles one field selection: dedup, directive evaluation,
// resolver lookup, argument construction, and launching the resolver
// under the configured launch policy. A nil, nil return means nothing needs
// awaiting: the field was silently skipped (dedup or @skip), or an error
// (directive, argument or unknown field) was already added to sink.
func (e *selectionExecutor) launchField(ctx context.Context, params SelectionSetParams, field *ast.Node, sink Sink) (*launchedField, error) {
	responseName := ast.FieldResponseName(field)
	if _, ok := e.emitted[responseName]; ok {
		return nil, nil
	}
	e.emitted[responseName] = struct{}{}

	dirs, err := directive.BuildDirectives(ast.FieldDirectives(field), params.Variables)
	if err != nil {
		sink.AddError(asLocatedError(err, field.Loc, params.Path))
		return nil, nil
	}
	skip, err := directive.ShouldSkip(dirs)
	if err != nil {
		sink.AddError(asLocatedError(err, field.Loc, params.Path))
		return nil, nil
	}
	if skip {
		return nil, nil
	}

	args := value.NewMap()
	for _, arg := range ast.Arguments(ast.FieldArguments(field)) {
		v, err := directive.BuildValue(ast.ArgumentValue(arg), params.Variables)
		if err != nil {
			sink.AddError(asLocatedError(err, field.Loc, params.Path))
			return nil, nil
		}
		args.Set(ast.ArgumentName(arg), v)
	}

	fieldData := FieldData{
		Node:         field,
		ResponseName: responseName,
		Arguments:    args,
		Directives:   dirs,
		SelectionSet: ast.FieldSelectionSet(field),
	}

	resolver, resolverParams, ok := e.object.prepareField(params, fieldData, sink)
	if !ok {
		sink.AddError(gqlerror.Newf("Unknown field name: %s", ast.FieldName(field)).
			WithLocation(gqlerror.FromNodeLocation(field.Loc)).
			WithPath(params.Path.Flatten()))
		return nil, nil
	}

	// AddMember reserves this field's ordered slot in the enclosing Map
	// and hands back a Sink scoped to it alone. The resolver -- and
	// whichever goroutine the launcher below runs it on -- only ever
	// writes into memberSink, never into the frame-shared sink, so
	// sibling fields completing out of order under ThreadPerTask/Queue
	// each still land in their own slot instead of clobbering a shared
	// cursor.
	memberSink := sink.AddMember(responseName)
	resolverParams.Sink = memberSink
	childPath := params.Path.Child(responseName)
	resolverParams.Path = childPath

	task := func(ctx context.Context) (interface{}, error) {
		defer func() {
			if r := recover(); r != nil {
				memberSink.AddError(gqlerror.Newf("Field error name: %s unknown error: %v", responseName, r).
					WithLocation(gqlerror.FromNodeLocation(field.Loc)).
					WithPath(childPath.Flatten()))
			}
		}()
		if err := resolver(ctx, resolverParams); err != nil {
			memberSink.AddError(schemaErrorForResolverFailure(responseName, err).
				WithLocation(gqlerror.FromNodeLocation(field.Loc)).
				WithPath(childPath.Flatten()))
		}
		return nil, nil
	}
	handle := params.Launcher.Launch(ctx, task)
	return &launchedField{handle: handle, responseName: responseName, path: childPath}, nil
}

func asLocatedError(err error, loc ast.Location, path *gqlerror.FieldPath) *gqlerror.SchemaError {
	return asSchemaError(err).WithLocation(gqlerror.FromNodeLocation(loc)).WithPath(path.Flatten())
}

// schemaErrorForResolverFailure implements §4.3's resolver-failure split:
// a *gqlerror.SchemaError passes through (location/path backfilled by the
// caller); any other error is wrapped as the documented catch-all.
func schemaErrorForResolverFailure(responseName string, err error) *gqlerror.SchemaError {
	if se, ok := err.(*gqlerror.SchemaError); ok {
		return se
	}
	return gqlerror.Newf("Field error name: %s unknown error: %s", responseName, err.Error())
}

// asSchemaError coerces any error into a *gqlerror.SchemaError, passing
// one through unchanged.
func asSchemaError(err error) *gqlerror.SchemaError {
	if se, ok := err.(*gqlerror.SchemaError); ok {
		return se
	}
	return gqlerror.Newf("%s", err.Error())
}

// LeafFieldSelectionSetError is the schema_exception a scalar resolver
// raises when its field carries a non-empty sub-selection (§4.3's
// leaf-field discipline).
func LeafFieldSelectionSetError(responseName string, field *ast.Node) *gqlerror.SchemaError {
	return gqlerror.Newf("Field may not have sub-fields name: %s", responseName).
		WithLocation(gqlerror.FromNodeLocation(field.Loc))
}

// MissingSelectionSetError is the schema_exception an object resolver
// raises when its field carries no sub-selection at all.
func MissingSelectionSetError(responseName string, field *ast.Node) *gqlerror.SchemaError {
	return gqlerror.Newf("Field must have sub-fields name: %s", responseName).
		WithLocation(gqlerror.FromNodeLocation(field.Loc))
}

// ResolveScalar emits a scalar, enum, id, null, or (nested) list-of-those
// Value to params.Sink, enforcing that the field carried no sub-selection.
func ResolveScalar(params ResolverParams, v value.Value) error {
	if params.Field.SelectionSet != nil {
		return LeafFieldSelectionSetError(params.Field.ResponseName, params.Field.Node)
	}
	emitValue(params.Sink, v)
	return nil
}

// ResolveScalarTyped is ResolveScalar's counterpart for a resolver that
// knows its field's declared List/Nullable wrapping (§4.4's TypeModifier
// chain) and wants it enforced: a list field a resolver fed a bare scalar,
// a null value in a non-nullable position, or an element one list level
// too shallow or too deep are all caught here rather than reaching the
// wire as a response shape that silently doesn't match the field's
// declared type.
func ResolveScalarTyped(params ResolverParams, v value.Value, modifiers value.TypeModifierChain) error {
	if params.Field.SelectionSet != nil {
		return LeafFieldSelectionSetError(params.Field.ResponseName, params.Field.Node)
	}
	if err := value.ValidateAgainstModifiers(modifiers, v); err != nil {
		return err
	}
	emitValue(params.Sink, v)
	return nil
}

// ResolveObjectField resolves a composite-typed field by recursively
// invoking obj.Resolve over the field's sub-selection, enforcing that one
// was actually given.
func ResolveObjectField(ctx context.Context, params ResolverParams, obj *Object) error {
	if params.Field.SelectionSet == nil {
		return MissingSelectionSetError(params.Field.ResponseName, params.Field.Node)
	}
	return obj.Resolve(ctx, params.SelectionSetParams, params.Field.SelectionSet, params.Sink)
}

// emitValue pushes a scalar/enum/id/list Value into sink, recursing
// through nested lists and stopping the chain with add_null the moment a
// Null is reached, per §4.4's TypeModifier wrapping discussion. A Map
// reaching here would mean a resolver called ResolveScalar on a composite
// value, a caller bug; it is emitted as null rather than panicking.
func emitValue(sink Sink, v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		sink.AddNull()
	case value.KindBool:
		sink.AddBool(v.Bool())
	case value.KindInt:
		sink.AddInt(v.Int())
	case value.KindFloat:
		sink.AddFloat(v.Float())
	case value.KindString:
		sink.AddString(v.String())
	case value.KindEnum:
		sink.AddEnum(v.String())
	case value.KindID:
		sink.AddID(v.ID())
	case value.KindList:
		sink.StartArray()
		for _, elem := range v.List() {
			emitValue(sink, elem)
		}
		sink.EndArray()
	case value.KindMap:
		sink.AddNull()
	}
}
