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

package ast_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/riftgql/core/ast"
)

func TestAST(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ast package")
}

var _ = Describe("Node readers", func() {
	It("locates the first child of a kind and ignores the rest", func() {
		sel := ast.SelectionSet(ast.Location{Line: 1, Column: 3},
			ast.Field(ast.Location{Line: 1, Column: 3}, "", "n", nil, nil, nil),
		)
		field := ast.Field(ast.Location{Line: 1, Column: 1}, "alias", "name", nil, nil, sel)

		Expect(ast.FieldResponseName(field)).To(Equal("alias"))
		Expect(ast.FieldName(field)).To(Equal("name"))
		Expect(ast.FirstChildOfKind(field, ast.KindSelectionSet)).To(Equal(sel))
	})

	It("iterates every child of a kind in source order", func() {
		ss := ast.SelectionSet(ast.Location{},
			ast.Field(ast.Location{}, "", "a", nil, nil, nil),
			ast.FragmentSpread(ast.Location{}, "Frag", nil),
			ast.Field(ast.Location{}, "", "b", nil, nil, nil),
		)
		fields := ast.ChildrenOfKind(ss, ast.KindField)
		Expect(fields).To(HaveLen(2))
		Expect(ast.FieldName(fields[0])).To(Equal("a"))
		Expect(ast.FieldName(fields[1])).To(Equal("b"))
	})

	It("reports field response name falling back to name when no alias given", func() {
		field := ast.Field(ast.Location{}, "", "n", nil, nil, nil)
		Expect(ast.FieldResponseName(field)).To(Equal("n"))
	})

	It("reads 1-based source line/column", func() {
		field := ast.Field(ast.Location{Line: 4, Column: 9}, "", "n", nil, nil, nil)
		loc := ast.NodeLocation(field)
		Expect(loc.Line).To(Equal(4))
		Expect(loc.Column).To(Equal(9))
		Expect(loc.IsKnown()).To(BeTrue())
	})

	It("defaults an unnamed, typeless operation to Query", func() {
		op := ast.OperationDefinition(ast.Location{}, "", "", nil, nil, ast.SelectionSet(ast.Location{}))
		Expect(ast.OperationType(op)).To(Equal(ast.OperationTypeQuery))
		Expect(ast.OperationName(op)).To(Equal(""))
	})
})
