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

package subscription_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/riftgql/core/ast"
	"github.com/riftgql/core/async"
	"github.com/riftgql/core/execution"
	"github.com/riftgql/core/subscription"
	"github.com/riftgql/core/value"
)

func TestSubscription(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "subscription package")
}

var loc = ast.Location{Line: 1, Column: 1}

type fakeObject struct {
	execution.NopHooks
	types     []string
	resolvers execution.ResolverMap
}

func (f *fakeObject) TypeNames() []string             { return f.types }
func (f *fakeObject) Resolvers() execution.ResolverMap { return f.resolvers }

// eventsSubscriptionDoc builds `subscription { events(topic: "x") { topic } }`
// for the given literal topic argument.
func eventsSubscriptionDoc(topic string) *ast.Node {
	args := ast.ArgumentsNode(loc, ast.Argument(loc, "topic", ast.StringValue(loc, topic)))
	sel := ast.SelectionSet(loc, ast.Field(loc, "", "topic", nil, nil, nil))
	return ast.Document(ast.OperationDefinition(loc, ast.OperationTypeSubscription, "", nil, nil,
		ast.SelectionSet(loc, ast.Field(loc, "", "events", args, nil, sel))))
}

func newEventsRoot(topic string) *execution.Object {
	return execution.NewObject(&fakeObject{
		types: []string{"Subscription"},
		resolvers: execution.ResolverMap{
			"events": func(ctx context.Context, params execution.ResolverParams) error {
				return execution.ResolveObjectField(ctx, params, execution.NewObject(&fakeObject{
					types: []string{"Event"},
					resolvers: execution.ResolverMap{
						"topic": func(ctx context.Context, params execution.ResolverParams) error {
							return execution.ResolveScalar(params, value.NewString(topic))
						},
					},
				}))
			},
		},
	})
}

var _ = Describe("Registry", func() {
	It("delivers to a matching argument filter and not to a mismatched one (scenario 6)", func() {
		registry := subscription.NewRegistry(newEventsRoot("x"), nil)

		var received []value.Value
		key, err := registry.Subscribe(context.Background(), subscription.SubscribeParams{
			Document: eventsSubscriptionDoc("x"),
			Launcher: async.New(async.PolicyInline, 0),
			Callback: func(doc value.Value) { received = append(received, doc) },
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal(subscription.Key(0)))

		matchArgs := value.NewMap()
		matchArgs.Set("topic", value.NewString("x"))
		Expect(registry.Deliver(context.Background(), "events",
			subscription.Filter{Arguments: matchArgs}, nil)).To(Succeed())
		Expect(received).To(HaveLen(1))
		data, _ := received[0].Get("data")
		events, _ := data.Get("events")
		topic, _ := events.Get("topic")
		Expect(topic.String()).To(Equal("x"))

		mismatchArgs := value.NewMap()
		mismatchArgs.Set("topic", value.NewString("y"))
		Expect(registry.Deliver(context.Background(), "events",
			subscription.Filter{Arguments: mismatchArgs}, nil)).To(Succeed())
		Expect(received).To(HaveLen(1)) // unchanged

		Expect(registry.Unsubscribe(context.Background(), subscription.UnsubscribeParams{Key: key})).To(Succeed())
		Expect(registry.Deliver(context.Background(), "events", subscription.NoFilter, nil)).To(Succeed())
		Expect(received).To(HaveLen(1)) // no further callbacks after unsubscribe
	})

	It("filters delivery by subscription key", func() {
		registry := subscription.NewRegistry(newEventsRoot("x"), nil)

		var receivedA, receivedB int
		keyA, err := registry.Subscribe(context.Background(), subscription.SubscribeParams{
			Document: eventsSubscriptionDoc("x"),
			Callback: func(value.Value) { receivedA++ },
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = registry.Subscribe(context.Background(), subscription.SubscribeParams{
			Document: eventsSubscriptionDoc("x"),
			Callback: func(value.Value) { receivedB++ },
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(registry.Deliver(context.Background(), "events", subscription.ByKey(keyA), nil)).To(Succeed())
		Expect(receivedA).To(Equal(1))
		Expect(receivedB).To(Equal(0))
	})

	It("recycles keys back to 0 once every subscription is gone", func() {
		registry := subscription.NewRegistry(newEventsRoot("x"), nil)

		key1, err := registry.Subscribe(context.Background(), subscription.SubscribeParams{
			Document: eventsSubscriptionDoc("x"),
			Callback: func(value.Value) {},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(key1).To(Equal(subscription.Key(0)))

		key2, err := registry.Subscribe(context.Background(), subscription.SubscribeParams{
			Document: eventsSubscriptionDoc("x"),
			Callback: func(value.Value) {},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(key2).To(Equal(subscription.Key(1)))

		Expect(registry.Unsubscribe(context.Background(), subscription.UnsubscribeParams{Key: key1})).To(Succeed())
		Expect(registry.Unsubscribe(context.Background(), subscription.UnsubscribeParams{Key: key2})).To(Succeed())

		key3, err := registry.Subscribe(context.Background(), subscription.SubscribeParams{
			Document: eventsSubscriptionDoc("x"),
			Callback: func(value.Value) {},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(key3).To(Equal(subscription.Key(0)))
	})

	It("rejects a document with more than one subscription root field", func() {
		sel := ast.SelectionSet(loc, ast.Field(loc, "", "topic", nil, nil, nil))
		args := ast.ArgumentsNode(loc, ast.Argument(loc, "topic", ast.StringValue(loc, "x")))
		doc := ast.Document(ast.OperationDefinition(loc, ast.OperationTypeSubscription, "", nil, nil,
			ast.SelectionSet(loc,
				ast.Field(loc, "", "events", args, nil, sel),
				ast.Field(loc, "", "events", args, nil, sel),
			)))

		registry := subscription.NewRegistry(newEventsRoot("x"), nil)
		_, err := registry.Subscribe(context.Background(), subscription.SubscribeParams{
			Document: doc,
			Callback: func(value.Value) {},
		})
		Expect(err).To(HaveOccurred())
	})

	It("fails Subscribe against a non-subscription operation", func() {
		doc := ast.Document(ast.OperationDefinition(loc, "", "", nil, nil,
			ast.SelectionSet(loc, ast.Field(loc, "", "n", nil, nil, nil))))

		registry := subscription.NewRegistry(newEventsRoot("x"), nil)
		_, err := registry.Subscribe(context.Background(), subscription.SubscribeParams{
			Document: doc,
			Callback: func(value.Value) {},
		})
		Expect(err).To(HaveOccurred())
	})

	It("reports Subscriptions not supported when no root is configured", func() {
		registry := subscription.NewRegistry(nil, nil)
		_, err := registry.Subscribe(context.Background(), subscription.SubscribeParams{
			Document: eventsSubscriptionDoc("x"),
			Callback: func(value.Value) {},
		})
		Expect(err).To(HaveOccurred())
	})
})
