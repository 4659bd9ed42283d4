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

// DispatchParams is everything Dispatch needs to run one query or
// mutation operation to completion (§4.7). Subscription operations are
// rejected here -- they are driven through the subscription package's
// Registry instead.
type DispatchParams struct {
	Document      *ast.Node
	OperationName string
	Variables     value.Value
	State         interface{}
	Launcher      async.Launcher
	QueryRoot     *Object
	MutationRoot  *Object

	// Fragments, if non-nil, is used instead of re-scanning Document for
	// fragment_definition nodes. A caller that already built a FragmentMap
	// for this exact document against an earlier Dispatch call -- e.g. one
	// retrying delivery of the same operation -- may pass it here to skip
	// the redundant scan, the same shortcut the subscription registry takes
	// for its own repeated per-registration resolution.
	Fragments FragmentMap
}

// Dispatch runs one operation to completion and returns the assembled
// `{data, errors}` response. It never returns an error itself or panics
// outward: every failure, including an unexpected panic escaping a
// resolver, is converted into the response's errors list per §4.7's
// "any schema_exception escaping this flow is converted to a response
// rather than propagated".
func Dispatch(ctx context.Context, params DispatchParams) (response value.Value) {
	data, errs := runDispatch(ctx, params)
	return AssembleResponse(data, errs)
}

func runDispatch(ctx context.Context, params DispatchParams) (data value.Value, errs []*gqlerror.SchemaError) {
	defer func() {
		if r := recover(); r != nil {
			data = value.Null
			errs = []*gqlerror.SchemaError{gqlerror.Newf("unknown error: %v", r)}
		}
	}()

	fragments := params.Fragments
	if fragments == nil {
		built, err := BuildFragmentMap(params.Document, params.Variables)
		if err != nil {
			return value.Null, []*gqlerror.SchemaError{asSchemaError(err)}
		}
		fragments = built
	}

	op, opErr := FindOperation(params.Document, params.OperationName)
	if opErr != nil {
		return value.Null, []*gqlerror.SchemaError{opErr}
	}
	if ast.OperationType(op) == ast.OperationTypeSubscription {
		return value.Null, []*gqlerror.SchemaError{gqlerror.ErrUnexpectedSubscription}
	}

	variables, err := FilterVariables(op, params.Variables)
	if err != nil {
		return value.Null, []*gqlerror.SchemaError{asSchemaError(err)}
	}

	resolverCtx := ContextQuery
	launcher := params.Launcher
	root := params.QueryRoot
	if ast.OperationType(op) == ast.OperationTypeMutation {
		resolverCtx = ContextMutation
		// Mutations force the Inline launch policy regardless of what the
		// caller asked for, to preserve serial root-field execution (§4.5).
		launcher = async.New(async.PolicyInline, 0)
		root = params.MutationRoot
	}
	if root == nil {
		return value.Null, []*gqlerror.SchemaError{gqlerror.Newf("Missing root object for operation type")}
	}

	assembler := NewAssembler()
	ssParams := SelectionSetParams{
		Context:   resolverCtx,
		State:     params.State,
		Launcher:  launcher,
		Variables: variables,
		Fragments: fragments,
	}
	if err := root.Resolve(ctx, ssParams, ast.OperationSelectionSet(op), assembler); err != nil {
		return value.Null, []*gqlerror.SchemaError{asSchemaError(err)}
	}

	resultData, resultErrs := assembler.Result()
	// §8's invariant: data is null iff some *top-level* resolver failed (a
	// root-field error, i.e. one whose path is exactly one segment long)
	// or operation lookup failed -- this engine carries no nullability
	// metadata to do full per-field null-bubbling, so a root-field error
	// nulls the whole response rather than just that key.
	for _, e := range resultErrs {
		if len(e.Path) == 1 {
			resultData = value.Null
			break
		}
	}
	return resultData, resultErrs
}

// FindOperation locates the operation_definition named operationName, or
// the document's sole/first operation if operationName is empty. Exported
// for reuse by the subscription registry, which performs the same lookup
// before checking the found operation's type.
func FindOperation(doc *ast.Node, operationName string) (*ast.Node, *gqlerror.SchemaError) {
	ops := ast.ChildrenOfKind(doc, ast.KindOperationDefinition)
	if operationName == "" {
		if len(ops) == 0 {
			return nil, gqlerror.MissingOperationError("")
		}
		return ops[0], nil
	}
	for _, op := range ops {
		if ast.OperationName(op) == operationName {
			return op, nil
		}
	}
	return nil, gqlerror.MissingOperationError(operationName)
}

// FilterVariables computes the operation's filtered variable Map: the
// caller-provided value for each declared variable, else its default
// literal (visited through BuildValue), else omitted entirely.
func FilterVariables(op *ast.Node, provided value.Value) (value.Value, error) {
	result := value.NewMap()
	for _, def := range ast.OperationVariableDefinitions(op) {
		name := ast.VariableDefinitionName(def)
		if v, ok := provided.Get(name); ok {
			result.Set(name, v)
			continue
		}
		if defaultNode := ast.VariableDefinitionDefault(def); defaultNode != nil {
			v, err := directive.BuildValue(defaultNode, provided)
			if err != nil {
				return value.Value{}, err
			}
			result.Set(name, v)
		}
	}
	return result, nil
}

// AssembleResponse wraps data/errs into the response Map described by
// §6: `data` always present, `errors` present iff non-empty, in that key
// order.
func AssembleResponse(data value.Value, errs []*gqlerror.SchemaError) value.Value {
	resp := value.NewMap()
	resp.Set("data", data)
	if len(errs) > 0 {
		resp.Set("errors", value.NewList(errorListValues(errs)))
	}
	return resp
}

func errorListValues(errs []*gqlerror.SchemaError) []value.Value {
	out := make([]value.Value, len(errs))
	for i, e := range errs {
		m := value.NewMap()
		m.Set("message", value.NewString(e.Message))
		if !e.Location.IsZero() {
			loc := value.NewMap()
			loc.Set("line", value.NewInt(int32(e.Location.Line)))
			loc.Set("column", value.NewInt(int32(e.Location.Column)))
			m.Set("locations", value.NewList([]value.Value{loc}))
		}
		if len(e.Path) > 0 {
			segments := make([]value.Value, len(e.Path))
			for j, seg := range e.Path {
				if seg.IsIndex {
					segments[j] = value.NewInt(int32(seg.Index))
				} else {
					segments[j] = value.NewString(seg.Name)
				}
			}
			m.Set("path", value.NewList(segments))
		}
		out[i] = m
	}
	return out
}
