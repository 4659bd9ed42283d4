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

package value_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/riftgql/core/value"
)

func TestValue(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "value package")
}

var _ = Describe("Value", func() {
	It("distinguishes EnumValue from String", func() {
		Expect(value.NewEnum("RED").Kind()).To(Equal(value.KindEnum))
		Expect(value.NewString("RED").Kind()).To(Equal(value.KindString))
		Expect(value.Equal(value.NewEnum("RED"), value.NewString("RED"))).To(BeFalse())
	})

	It("never holds two entries with the same key", func() {
		m := value.NewMap()
		m.Set("a", value.NewInt(1))
		m.Set("a", value.NewInt(2))
		Expect(m.Len()).To(Equal(1))
		v, ok := m.Get("a")
		Expect(ok).To(BeTrue())
		Expect(v.Int()).To(Equal(int32(2)))
	})

	It("preserves Map insertion order", func() {
		m := value.NewMap()
		m.Set("z", value.NewInt(1))
		m.Set("a", value.NewInt(2))
		m.Set("m", value.NewInt(3))
		Expect(m.Names()).To(Equal([]string{"z", "a", "m"}))
	})

	It("round-trips through JSON preserving Map key order", func() {
		m := value.NewMap()
		m.Set("n", value.NewInt(7))
		m.Set("s", value.NewString("hi"))
		data, err := m.MarshalJSON()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"n":7,"s":"hi"}`))

		decoded, err := value.DecodeOrderedMap(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Names()).To(Equal([]string{"n", "s"}))
	})

	It("rejects NaN when encoding Float to JSON", func() {
		_, err := value.NewFloat(math.NaN()).MarshalJSON()
		Expect(err).To(HaveOccurred())
	})

	It("treats equal EnumValues as equal by name, Floats by bit pattern", func() {
		Expect(value.Equal(value.NewEnum("X"), value.NewEnum("X"))).To(BeTrue())
		nan := math.NaN()
		Expect(value.Equal(value.NewFloat(nan), value.NewFloat(nan))).To(BeTrue())
		Expect(value.Equal(value.NewFloat(1.0), value.NewFloat(1.0))).To(BeTrue())
		Expect(value.Equal(value.NewFloat(1.0), value.NewFloat(2.0))).To(BeFalse())
	})
})

var _ = Describe("Convert", func() {
	It("allows Integer -> Float coercion", func() {
		v, err := value.Convert(value.ScalarFloat, value.NewInt(3))
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Float()).To(Equal(3.0))
	})

	It("allows String -> Id coercion", func() {
		v, err := value.Convert(value.ScalarID, value.NewString("abc"))
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Kind()).To(Equal(value.KindID))
		Expect(string(v.ID())).To(Equal("abc"))
	})

	It("fails on other kind mismatches", func() {
		_, err := value.Convert(value.ScalarInt, value.NewString("nope"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(Equal("not a valid Int value"))
	})

	It("ValidateScalar rejects Int where Float is required", func() {
		err := value.ValidateScalar(value.ScalarFloat, value.NewInt(1))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("TypeModifierChain", func() {
	// [Int!]! -- non-null list of non-null elements.
	nonNullListOfNonNull := value.TypeModifierChain{value.ModList}
	// [Int!] -- nullable list of non-null elements.
	nullableListOfNonNull := value.TypeModifierChain{value.ModNullable, value.ModList}
	// [Int]! -- non-null list of nullable elements.
	nonNullListOfNullable := value.TypeModifierChain{value.ModList, value.ModNullable}

	It("reports Nullable/IsList from the outermost modifier", func() {
		Expect(nonNullListOfNonNull.Nullable()).To(BeFalse())
		Expect(nonNullListOfNonNull.IsList()).To(BeTrue())
		Expect(nullableListOfNonNull.Nullable()).To(BeTrue())
		Expect(nullableListOfNonNull.IsList()).To(BeTrue())
	})

	It("accepts a well-formed list", func() {
		list := value.NewList([]value.Value{value.NewInt(1), value.NewInt(2)})
		Expect(value.ValidateAgainstModifiers(nonNullListOfNonNull, list)).NotTo(HaveOccurred())
	})

	It("rejects null for a non-nullable list", func() {
		err := value.ValidateAgainstModifiers(nonNullListOfNonNull, value.Null)
		Expect(err).To(HaveOccurred())
	})

	It("accepts null for a nullable list", func() {
		Expect(value.ValidateAgainstModifiers(nullableListOfNonNull, value.Null)).NotTo(HaveOccurred())
	})

	It("rejects a bare scalar where a list is declared", func() {
		err := value.ValidateAgainstModifiers(nonNullListOfNonNull, value.NewInt(1))
		Expect(err).To(HaveOccurred())
	})

	It("rejects a null element inside a non-null-element list", func() {
		list := value.NewList([]value.Value{value.Null})
		err := value.ValidateAgainstModifiers(nonNullListOfNonNull, list)
		Expect(err).To(HaveOccurred())
	})

	It("allows a null element when the inner chain is nullable", func() {
		list := value.NewList([]value.Value{value.Null, value.NewInt(1)})
		Expect(value.ValidateAgainstModifiers(nonNullListOfNullable, list)).NotTo(HaveOccurred())
	})
})
