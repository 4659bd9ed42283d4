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

package execution_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/riftgql/core/ast"
	"github.com/riftgql/core/async"
	"github.com/riftgql/core/execution"
	"github.com/riftgql/core/value"
)

func TestExecution(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "execution package")
}

var loc = ast.Location{Line: 1, Column: 1}

// fakeObject is a minimal ResolvableObject test harness: its type names
// and resolvers are supplied directly rather than computed.
type fakeObject struct {
	execution.NopHooks
	types     []string
	resolvers execution.ResolverMap
}

func (f *fakeObject) TypeNames() []string             { return f.types }
func (f *fakeObject) Resolvers() execution.ResolverMap { return f.resolvers }

func scalarResolver(v value.Value) execution.Resolver {
	return func(ctx context.Context, params execution.ResolverParams) error {
		return execution.ResolveScalar(params, v)
	}
}

var _ = Describe("Dispatch", func() {
	It("resolves a simple scalar query (scenario 1)", func() {
		root := execution.NewObject(&fakeObject{
			types: []string{"Query"},
			resolvers: execution.ResolverMap{
				"n": scalarResolver(value.NewInt(7)),
				"s": scalarResolver(value.NewString("hi")),
			},
		})
		doc := ast.Document(ast.OperationDefinition(loc, "", "", nil, nil,
			ast.SelectionSet(loc,
				ast.Field(loc, "", "n", nil, nil, nil),
				ast.Field(loc, "", "s", nil, nil, nil),
			)))

		resp := execution.Dispatch(context.Background(), execution.DispatchParams{
			Document:  doc,
			Variables: value.NewMap(),
			Launcher:  async.New(async.PolicyInline, 0),
			QueryRoot: root,
		})

		Expect(resp.Has("errors")).To(BeFalse())
		data, _ := resp.Get("data")
		n, _ := data.Get("n")
		s, _ := data.Get("s")
		Expect(n.Int()).To(Equal(int32(7)))
		Expect(s.String()).To(Equal("hi"))
	})

	It("omits a field skipped by @skip (scenario 2)", func() {
		root := execution.NewObject(&fakeObject{
			types: []string{"Query"},
			resolvers: execution.ResolverMap{
				"a": scalarResolver(value.NewString("a-value")),
				"b": scalarResolver(value.NewString("b-value")),
			},
		})
		skipDir := ast.DirectivesNode(loc, ast.Directive(loc, "skip",
			ast.ArgumentsNode(loc, ast.Argument(loc, "if", ast.Variable(loc, "x")))))
		doc := ast.Document(ast.OperationDefinition(loc, "", "",
			[]*ast.Node{ast.VariableDefinition(loc, "x", nil)}, nil,
			ast.SelectionSet(loc,
				ast.Field(loc, "", "a", nil, skipDir, nil),
				ast.Field(loc, "", "b", nil, nil, nil),
			)))

		vars := value.NewMap()
		vars.Set("x", value.NewBool(true))

		resp := execution.Dispatch(context.Background(), execution.DispatchParams{
			Document:  doc,
			Variables: vars,
			Launcher:  async.New(async.PolicyInline, 0),
			QueryRoot: root,
		})

		data, _ := resp.Get("data")
		Expect(data.Has("a")).To(BeFalse())
		b, _ := data.Get("b")
		Expect(b.String()).To(Equal("b-value"))
	})

	It("skips an inline fragment whose type condition does not match (scenario 3)", func() {
		userObj := execution.NewObject(&fakeObject{
			types: []string{"User", "Node"},
			resolvers: execution.ResolverMap{
				"id": scalarResolver(value.NewIDFromString("123")),
				"role": func(ctx context.Context, params execution.ResolverParams) error {
					return execution.ResolveScalar(params, value.NewString("should-not-resolve"))
				},
			},
		})
		root := execution.NewObject(&fakeObject{
			types: []string{"Query"},
			resolvers: execution.ResolverMap{
				"node": func(ctx context.Context, params execution.ResolverParams) error {
					return execution.ResolveObjectField(ctx, params, userObj)
				},
			},
		})

		adminFragment := ast.InlineFragment(loc, "Admin", nil, ast.SelectionSet(loc, ast.Field(loc, "", "role", nil, nil, nil)))
		nodeSelection := ast.SelectionSet(loc, ast.Field(loc, "", "id", nil, nil, nil), adminFragment)
		doc := ast.Document(ast.OperationDefinition(loc, "", "", nil, nil,
			ast.SelectionSet(loc, ast.Field(loc, "", "node", nil, nil, nodeSelection))))

		resp := execution.Dispatch(context.Background(), execution.DispatchParams{
			Document:  doc,
			Variables: value.NewMap(),
			Launcher:  async.New(async.PolicyInline, 0),
			QueryRoot: root,
		})

		Expect(resp.Has("errors")).To(BeFalse())
		data, _ := resp.Get("data")
		node, _ := data.Get("node")
		Expect(node.Has("role")).To(BeFalse())
		id, _ := node.Get("id")
		Expect(id.String()).To(Equal("123"))
	})

	It("nulls the whole response on a leaf-field violation (scenario 4)", func() {
		root := execution.NewObject(&fakeObject{
			types: []string{"Query"},
			resolvers: execution.ResolverMap{
				"n": scalarResolver(value.NewInt(1)),
			},
		})
		oopsSelection := ast.SelectionSet(loc, ast.Field(loc, "", "oops", nil, nil, nil))
		doc := ast.Document(ast.OperationDefinition(loc, "", "", nil, nil,
			ast.SelectionSet(loc, ast.Field(loc, "", "n", nil, nil, oopsSelection))))

		resp := execution.Dispatch(context.Background(), execution.DispatchParams{
			Document:  doc,
			Variables: value.NewMap(),
			Launcher:  async.New(async.PolicyInline, 0),
			QueryRoot: root,
		})

		data, _ := resp.Get("data")
		Expect(data.IsNull()).To(BeTrue())
		errs, ok := resp.Get("errors")
		Expect(ok).To(BeTrue())
		Expect(errs.Len()).To(Equal(1))
		first := errs.List()[0]
		msg, _ := first.Get("message")
		Expect(msg.String()).To(Equal("Field may not have sub-fields name: n"))
		path, _ := first.Get("path")
		Expect(path.Len()).To(Equal(1))
		Expect(path.List()[0].String()).To(Equal("n"))
	})

	It("executes mutation root fields strictly serially regardless of launch policy (scenario 5)", func() {
		var counter int32
		m1 := func(ctx context.Context, params execution.ResolverParams) error {
			atomic.StoreInt32(&counter, 1)
			time.Sleep(15 * time.Millisecond)
			return execution.ResolveScalar(params, value.NewInt(1))
		}
		m2 := func(ctx context.Context, params execution.ResolverParams) error {
			return execution.ResolveScalar(params, value.NewInt(atomic.LoadInt32(&counter)))
		}
		mutationRoot := execution.NewObject(&fakeObject{
			types:     []string{"Mutation"},
			resolvers: execution.ResolverMap{"m1": m1, "m2": m2},
		})
		doc := ast.Document(ast.OperationDefinition(loc, ast.OperationTypeMutation, "", nil, nil,
			ast.SelectionSet(loc,
				ast.Field(loc, "", "m1", nil, nil, nil),
				ast.Field(loc, "", "m2", nil, nil, nil),
			)))

		resp := execution.Dispatch(context.Background(), execution.DispatchParams{
			Document:     doc,
			Variables:    value.NewMap(),
			Launcher:     async.New(async.PolicyThreadPerTask, 0), // deliberately not Inline
			MutationRoot: mutationRoot,
		})

		data, _ := resp.Get("data")
		m1Result, _ := data.Get("m1")
		m2Result, _ := data.Get("m2")
		Expect(m1Result.Int()).To(Equal(int32(1)))
		Expect(m2Result.Int()).To(Equal(int32(1)))
	})

	It("attaches each sibling field's value to its own key regardless of completion order under ThreadPerTask", func() {
		root := execution.NewObject(&fakeObject{
			types: []string{"Query"},
			resolvers: execution.ResolverMap{
				// n finishes after s, to provoke the bug where a shared
				// per-frame cursor gets overwritten by whichever field's
				// AddMember ran last, regardless of which field actually
				// completes first.
				"n": func(ctx context.Context, params execution.ResolverParams) error {
					time.Sleep(15 * time.Millisecond)
					return execution.ResolveScalar(params, value.NewInt(7))
				},
				"s": scalarResolver(value.NewString("hi")),
			},
		})
		doc := ast.Document(ast.OperationDefinition(loc, "", "", nil, nil,
			ast.SelectionSet(loc,
				ast.Field(loc, "", "n", nil, nil, nil),
				ast.Field(loc, "", "s", nil, nil, nil),
			)))

		resp := execution.Dispatch(context.Background(), execution.DispatchParams{
			Document:  doc,
			Variables: value.NewMap(),
			Launcher:  async.New(async.PolicyThreadPerTask, 0),
			QueryRoot: root,
		})

		Expect(resp.Has("errors")).To(BeFalse())
		data, _ := resp.Get("data")
		n, _ := data.Get("n")
		s, _ := data.Get("s")
		Expect(n.Int()).To(Equal(int32(7)))
		Expect(s.String()).To(Equal("hi"))
	})

	It("does not deadlock when a composite resolver on the queue worker recursively launches a child field under PolicyQueue", func() {
		childObj := execution.NewObject(&fakeObject{
			types: []string{"Child"},
			resolvers: execution.ResolverMap{
				"leaf": scalarResolver(value.NewInt(42)),
			},
		})
		root := execution.NewObject(&fakeObject{
			types: []string{"Query"},
			resolvers: execution.ResolverMap{
				"parent": func(ctx context.Context, params execution.ResolverParams) error {
					return execution.ResolveObjectField(ctx, params, childObj)
				},
			},
		})
		childSelection := ast.SelectionSet(loc, ast.Field(loc, "", "leaf", nil, nil, nil))
		doc := ast.Document(ast.OperationDefinition(loc, "", "", nil, nil,
			ast.SelectionSet(loc, ast.Field(loc, "", "parent", nil, nil, childSelection))))

		launcher := async.New(async.PolicyQueue, 0)
		defer launcher.Close()

		done := make(chan value.Value, 1)
		go func() {
			resp := execution.Dispatch(context.Background(), execution.DispatchParams{
				Document:  doc,
				Variables: value.NewMap(),
				Launcher:  launcher,
				QueryRoot: root,
			})
			done <- resp
		}()

		select {
		case resp := <-done:
			Expect(resp.Has("errors")).To(BeFalse())
			data, _ := resp.Get("data")
			parent, _ := data.Get("parent")
			leaf, _ := parent.Get("leaf")
			Expect(leaf.Int()).To(Equal(int32(42)))
		case <-time.After(2 * time.Second):
			Fail("Dispatch deadlocked under PolicyQueue with a recursive resolver")
		}
	})
})
