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

// Package subscription implements the long-lived subscription registry
// (§4.8): it allocates monotonic subscription keys, tracks which
// registrations listen to which root field, drives the
// NotifySubscribe/NotifyUnsubscribe/Subscription resolver phases, and fans
// a delivered event out to every matching registration's callback.
//
// The registry is transport-agnostic, the way the engine's scope (§1)
// excludes network transport entirely: a caller wires a Registry's
// Subscribe/Unsubscribe/Deliver into whatever websocket or SSE handler
// carries events in and subscription requests out.
package subscription

import (
	"context"
	"sync"

	"github.com/modern-go/concurrent"

	"github.com/riftgql/core/ast"
	"github.com/riftgql/core/async"
	"github.com/riftgql/core/directive"
	"github.com/riftgql/core/execution"
	"github.com/riftgql/core/gqlerror"
	"github.com/riftgql/core/value"
)

// Key identifies one active subscription. Keys are assigned monotonically
// starting at 0 and are recycled (the counter resets to 0) once every
// subscription is gone, per §4.8's "reset to 0 when all subscriptions are
// gone".
type Key uint64

// Callback receives one delivered `{data, errors}` document, called
// synchronously from Deliver's goroutine. Per §6's subscription callback
// contract, a Callback must not re-enter Subscribe/Unsubscribe on the same
// Registry from the same goroutine. Deliver holds no registry lock while
// callbacks run.
type Callback func(document value.Value)

// Validator validates doc against a schema, returning every error found.
// A nil Validator is treated as "every document is valid" -- schema
// validation is an out-of-scope collaborator per §1; the registry only
// owns memoizing its result once per document, per §5(c) and §6.
type Validator func(doc *ast.Node) []*gqlerror.SchemaError

// registration is one subscription's held state (§3's SubscriptionData):
// everything needed to re-resolve its single root field on delivery,
// kept alive for the subscription's lifetime.
type registration struct {
	key           Key
	field         string
	arguments     value.Value
	directives    directive.Directives
	document      *ast.Node
	operationName string
	selection     *ast.Node
	callback      Callback
	root          *execution.Object
	state         interface{}
	fragments     execution.FragmentMap
	variables     value.Value
}

// Registry manages subscription lifetimes. Its state -- the key counter,
// the subscriptions map and the field->keys listener index -- is
// protected by one mutex, per §5(a): Subscribe, Unsubscribe and the
// collection phase of Deliver are serialized under it; a delivery's
// resolver invocations run outside the lock.
type Registry struct {
	mu            sync.Mutex
	nextKey       Key
	subscriptions map[Key]*registration
	listeners     map[string]map[Key]struct{}

	// Root is the default subscription root Object, re-resolved for every
	// delivery. It may be nil, meaning this server has no subscription
	// support configured at all (§4.8's distinction between "missing" and
	// "empty" operations entries, per the engine's origin in
	// cppgraphqlgen's Request::subscribe).
	Root *execution.Object

	// Validator is consulted once per distinct document; its result is
	// cached on the document via docCache so a long-lived registry never
	// re-validates the same *ast.Node twice (§5(c), §6).
	Validator Validator
	docCache  *concurrent.Map // *ast.Node -> []*gqlerror.SchemaError
}

// NewRegistry builds an empty Registry whose default subscription root is
// root (nil if this server does not support subscriptions).
func NewRegistry(root *execution.Object, validator Validator) *Registry {
	return &Registry{
		subscriptions: make(map[Key]*registration),
		listeners:     make(map[string]map[Key]struct{}),
		Root:          root,
		Validator:     validator,
		docCache:      concurrent.NewMap(),
	}
}

func (r *Registry) validate(doc *ast.Node) []*gqlerror.SchemaError {
	if r.Validator == nil {
		return nil
	}
	if cached, ok := r.docCache.Load(doc); ok {
		return cached.([]*gqlerror.SchemaError)
	}
	errs := r.Validator(doc)
	actual, _ := r.docCache.LoadOrStore(doc, errs)
	return actual.([]*gqlerror.SchemaError)
}

// SubscribeParams is everything Subscribe needs to register one new
// subscription.
type SubscribeParams struct {
	Document      *ast.Node
	OperationName string
	Variables     value.Value
	State         interface{}
	Launcher      async.Launcher
	Callback      Callback
	// Root overrides the Registry's default subscription root for this
	// call only, mirroring cppgraphqlgen's per-call subscriptionObject
	// parameter. Leave nil to use Registry.Root.
	Root *execution.Object
}

// Subscribe validates params.Document, locates its sole subscription
// operation, walks its single root field, and registers it for future
// delivery. If the NotifySubscribe resolver phase produces any error, the
// registration is rolled back and the error is returned (§4.8).
func (r *Registry) Subscribe(ctx context.Context, params SubscribeParams) (Key, error) {
	if errs := r.validate(params.Document); len(errs) > 0 {
		return 0, errs[0]
	}

	variables := params.Variables
	if variables.Kind() != value.KindMap {
		variables = value.NewMap()
	}

	fragments, err := execution.BuildFragmentMap(params.Document, variables)
	if err != nil {
		return 0, asSchemaError(err)
	}

	op, opErr := execution.FindOperation(params.Document, params.OperationName)
	if opErr != nil {
		return 0, opErr
	}
	if ast.OperationType(op) != ast.OperationTypeSubscription {
		return 0, gqlerror.ErrUnexpectedOperationType
	}

	root := params.Root
	if root == nil {
		root = r.Root
	}
	if root == nil {
		return 0, gqlerror.ErrSubscriptionsNotSupported
	}

	field, selection, fieldArgs, fieldDirs, err := findSubscriptionRootField(root, op, fragments, variables)
	if err != nil {
		return 0, err
	}

	reg := &registration{
		field:         field,
		arguments:     fieldArgs,
		directives:    fieldDirs,
		document:      params.Document,
		operationName: params.OperationName,
		selection:     selection,
		callback:      params.Callback,
		root:          root,
		state:         params.State,
		fragments:     fragments,
		variables:     variables,
	}

	r.mu.Lock()
	key := r.nextKey
	r.nextKey++
	reg.key = key
	r.subscriptions[key] = reg
	if r.listeners[field] == nil {
		r.listeners[field] = make(map[Key]struct{})
	}
	r.listeners[field][key] = struct{}{}
	r.mu.Unlock()

	launcher := params.Launcher
	if launcher == nil {
		launcher = async.New(async.PolicyInline, 0)
	}
	if _, errs := r.notify(ctx, reg, root, execution.ContextNotifySubscribe, launcher); len(errs) > 0 {
		r.mu.Lock()
		r.removeLocked(key)
		r.mu.Unlock()
		return 0, errs[0]
	}

	return key, nil
}

// UnsubscribeParams is everything Unsubscribe needs to tear down one
// subscription.
type UnsubscribeParams struct {
	Key      Key
	Launcher async.Launcher
	Root     *execution.Object
}

// Unsubscribe invokes the NotifyUnsubscribe resolver phase once, then
// removes the registration regardless of whether that resolution produced
// errors -- it is idempotent per §5's cancellation model: unsubscribing an
// already-removed or unknown key is a silent no-op, not an error.
func (r *Registry) Unsubscribe(ctx context.Context, params UnsubscribeParams) error {
	r.mu.Lock()
	reg, ok := r.subscriptions[params.Key]
	r.mu.Unlock()
	if !ok {
		return nil
	}

	root := params.Root
	if root == nil {
		root = r.Root
	}

	var errs []*gqlerror.SchemaError
	if root != nil {
		launcher := params.Launcher
		if launcher == nil {
			launcher = async.New(async.PolicyInline, 0)
		}
		_, errs = r.notify(ctx, reg, root, execution.ContextNotifyUnsubscribe, launcher)
	}

	r.mu.Lock()
	r.removeLocked(params.Key)
	r.mu.Unlock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// removeLocked removes key from both the subscriptions map and its
// listener set, and recomputes nextKey as max(remaining keys)+1, or 0 if
// none remain. r.mu must be held by the caller.
func (r *Registry) removeLocked(key Key) {
	reg, ok := r.subscriptions[key]
	if !ok {
		return
	}
	delete(r.subscriptions, key)
	if set := r.listeners[reg.field]; set != nil {
		delete(set, key)
		if len(set) == 0 {
			delete(r.listeners, reg.field)
		}
	}
	if len(r.subscriptions) == 0 {
		r.nextKey = 0
		return
	}
	var max Key
	for k := range r.subscriptions {
		if k > max {
			max = k
		}
	}
	r.nextKey = max + 1
}

// notify re-resolves reg's selection against root once with resolverCtx,
// returning the resolved data plus any errors produced. Used for
// NotifySubscribe, NotifyUnsubscribe and Subscription delivery alike,
// which share everything but the context, the root object re-resolved
// against, and what the caller does with the result.
func (r *Registry) notify(ctx context.Context, reg *registration, root *execution.Object, resolverCtx execution.ResolverContext, launcher async.Launcher) (value.Value, []*gqlerror.SchemaError) {
	assembler := execution.NewAssembler()
	ssParams := execution.SelectionSetParams{
		Context:   resolverCtx,
		State:     reg.state,
		Launcher:  launcher,
		Variables: reg.variables,
		Fragments: reg.fragments,
	}
	if err := root.Resolve(ctx, ssParams, reg.selection, assembler); err != nil {
		return value.Null, []*gqlerror.SchemaError{asSchemaError(err)}
	}
	return assembler.Result()
}

func asSchemaError(err error) *gqlerror.SchemaError {
	if se, ok := err.(*gqlerror.SchemaError); ok {
		return se
	}
	return gqlerror.Newf("%s", err.Error())
}
