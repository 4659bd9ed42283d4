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
	"context"

	"github.com/riftgql/core/async"
	"github.com/riftgql/core/execution"
	"github.com/riftgql/core/gqlerror"
	"github.com/riftgql/core/value"
)

// ArgumentFilter is called with each (name, value) pair of a
// registration's captured field arguments. Returning false for any pair
// excludes the registration from delivery.
type ArgumentFilter func(name string, required value.Value) bool

// DirectiveFilter is called with each (name, arguments) pair of a
// registration's captured field directives. Returning false for any pair
// excludes the registration from delivery.
type DirectiveFilter func(name string, required value.Value) bool

// Filter narrows which registrations listening to a field receive a
// delivered event (§4.8's filter semantics table). The zero Filter
// matches every registration listening to the field.
type Filter struct {
	// Key, if HasKey is true, restricts delivery to the one registration
	// with this key (still subject to it actually listening to the
	// delivered field).
	Key    Key
	HasKey bool

	// Arguments, if a Map, is matched against each registration's captured
	// arguments: every captured argument whose name Arguments also holds
	// must be Equal to the filter's value, unless ArgumentPredicate is set,
	// in which case that callback decides instead. Captured arguments the
	// filter does not name, and filter names the registration lacks, do not
	// affect the match.
	Arguments         value.Value // Map, or the zero Value for "no literal filter"
	ArgumentPredicate ArgumentFilter

	// Directives is the same shape as Arguments, but matched against the
	// registration's captured field directives: every captured directive
	// whose name Directives also holds must have an argument Map Equal to
	// the filter's Map for that name.
	Directives         value.Value // Map of directive name -> argument Map
	DirectivePredicate DirectiveFilter
}

// NoFilter matches every registration listening to a field.
var NoFilter = Filter{}

// ByKey builds a Filter matching only the registration with this key.
func ByKey(key Key) Filter { return Filter{Key: key, HasKey: true} }

// matches reports whether reg satisfies f, given that reg is already
// known to be listening to the delivered field.
func (f Filter) matches(reg *registration) bool {
	if f.HasKey {
		return reg.key == f.Key
	}
	if f.Arguments.Kind() == value.KindMap || f.ArgumentPredicate != nil {
		if !f.argumentsMatch(reg) {
			return false
		}
	}
	if f.Directives.Kind() == value.KindMap || f.DirectivePredicate != nil {
		if !f.directivesMatch(reg) {
			return false
		}
	}
	return true
}

// argumentsMatch implements §4.8's "for every required (name, value) pair
// in the registration's captured arguments, the filter's argument
// predicate returns true" -- read literally, the filter walks the
// registration's own arguments (not the filter's), since a registration
// with an argument the filter never mentions should still match: the
// filter narrows delivery to subscriptions whose *matching* arguments
// agree, it does not require the registration to have exactly the
// filter's argument set.
func (f Filter) argumentsMatch(reg *registration) bool {
	ok := true
	reg.arguments.Range(func(name string, required value.Value) bool {
		if f.ArgumentPredicate != nil {
			if !f.ArgumentPredicate(name, required) {
				ok = false
				return false
			}
			return true
		}
		filterValue, present := f.Arguments.Get(name)
		if !present {
			return true
		}
		if !value.Equal(filterValue, required) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func (f Filter) directivesMatch(reg *registration) bool {
	ok := true
	for _, d := range reg.directives {
		if f.DirectivePredicate != nil {
			if !f.DirectivePredicate(d.Name, d.Arguments) {
				ok = false
				break
			}
			continue
		}
		filterArgs, present := f.Directives.Get(d.Name)
		if !present {
			continue
		}
		if !value.Equal(filterArgs, d.Arguments) {
			ok = false
			break
		}
	}
	return ok
}

// Deliver collects every registration currently listening to field that
// satisfies filter, re-resolves each one's selection, and invokes its
// callback with the resulting `{data, errors}` document. The collection
// phase runs under the registry's mutex; resolver invocations run after
// it is released, so a callback is free to call Subscribe/Unsubscribe
// for a *different* registry, or schedule one for later, without
// deadlocking (§5(a), §6).
//
// A per-registration resolver failure does not abort the fan-out to the
// others: it is embedded as that registration's own errors list (§4.8).
func (r *Registry) Deliver(ctx context.Context, field string, filter Filter, launcher async.Launcher) error {
	root := r.Root
	if root == nil {
		return gqlerror.ErrMissingSubscriptionObject
	}

	r.mu.Lock()
	keys := r.listeners[field]
	matched := make([]*registration, 0, len(keys))
	for key := range keys {
		reg := r.subscriptions[key]
		if reg != nil && filter.matches(reg) {
			matched = append(matched, reg)
		}
	}
	r.mu.Unlock()

	if launcher == nil {
		launcher = async.New(async.PolicyInline, 0)
	}

	for _, reg := range matched {
		regRoot := reg.root
		if regRoot == nil {
			regRoot = root
		}
		data, errs := r.notify(ctx, reg, regRoot, execution.ContextSubscription, launcher)
		reg.callback(execution.AssembleResponse(data, errs))
	}
	return nil
}
