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

package directive_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/riftgql/core/ast"
	"github.com/riftgql/core/directive"
	"github.com/riftgql/core/value"
)

func TestDirective(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "directive package")
}

var loc = ast.Location{Line: 1, Column: 1}

var _ = Describe("BuildValue", func() {
	It("builds scalars and looks up variables", func() {
		vars := value.NewMap()
		vars.Set("x", value.NewBool(true))

		v, err := directive.BuildValue(ast.Variable(loc, "x"), vars)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Bool()).To(BeTrue())
	})

	It("fails with a located error for an unknown variable", func() {
		_, err := directive.BuildValue(ast.Variable(loc, "missing"), value.NewMap())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Unknown variable name"))
	})

	It("recurses into lists and objects preserving source order", func() {
		obj := ast.ObjectValue(loc,
			ast.ObjectField(loc, "b", ast.IntValue(loc, "2")),
			ast.ObjectField(loc, "a", ast.IntValue(loc, "1")),
		)
		v, err := directive.BuildValue(obj, value.NewMap())
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Names()).To(Equal([]string{"b", "a"}))
	})
})

var _ = Describe("ShouldSkip", func() {
	It("returns false when neither @skip nor @include is present", func() {
		skip, err := directive.ShouldSkip(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(skip).To(BeFalse())
	})

	It("@skip(if: true) skips", func() {
		dirs := directive.Directives{{Name: "skip", Arguments: boolArgs(true)}}
		skip, err := directive.ShouldSkip(dirs)
		Expect(err).NotTo(HaveOccurred())
		Expect(skip).To(BeTrue())
	})

	It("@include(if: false) skips, same as @skip(if: true)", func() {
		dirs := directive.Directives{{Name: "include", Arguments: boolArgs(false)}}
		skip, err := directive.ShouldSkip(dirs)
		Expect(err).NotTo(HaveOccurred())
		Expect(skip).To(BeTrue())
	})

	It("examines @skip before @include", func() {
		dirs := directive.Directives{
			{Name: "skip", Arguments: boolArgs(false)},
			{Name: "include", Arguments: boolArgs(false)},
		}
		skip, err := directive.ShouldSkip(dirs)
		Expect(err).NotTo(HaveOccurred())
		// @skip(if:false) => do not skip due to @skip; but the fixed
		// evaluation order returns on the first directive present, so
		// @include is never consulted.
		Expect(skip).To(BeFalse())
	})

	It("fails when `if` is missing", func() {
		_, err := directive.ShouldSkip(directive.Directives{{Name: "skip", Arguments: value.NewMap()}})
		Expect(err).To(HaveOccurred())
	})

	It("fails when `if` is not a Boolean", func() {
		args := value.NewMap()
		args.Set("if", value.NewInt(1))
		_, err := directive.ShouldSkip(directive.Directives{{Name: "skip", Arguments: args}})
		Expect(err).To(HaveOccurred())
	})
})

func boolArgs(b bool) value.Value {
	m := value.NewMap()
	m.Set("if", value.NewBool(b))
	return m
}
