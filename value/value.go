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

// Package value implements the dynamic, tagged response Value tree used
// throughout the execution engine: the common currency passed between
// resolvers, the result assembler and the final JSON-bound response.
package value

import (
	"math"
)

// Kind discriminates the variant held by a Value.
type Kind uint8

// Enumeration of Kind.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindEnum
	KindID
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindEnum:
		return "EnumValue"
	case KindID:
		return "Id"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	}
	return "unknown"
}

// entry is a single, ordered (name -> Value) binding of a Map.
type entry struct {
	name  string
	value Value
}

// Value is a closed, tagged variant covering every shape a GraphQL response
// (or an argument/variable literal) can take: Null, Bool, Int (int32),
// Float (float64), String, EnumValue, Id (raw bytes), List (ordered) and Map
// (insertion-order preserving, one entry per name).
//
// The zero Value is Null. Values are immutable once built; List and Map
// constructors copy their inputs so a caller's slice/builder may be reused.
type Value struct {
	kind Kind

	b   bool
	i   int32
	f   float64
	s   string // String, EnumValue and Id (Id stored as its byte sequence converted via string)
	list []Value
	m    []entry
}

// Null is the Null value.
var Null = Value{kind: KindNull}

// NewBool builds a Bool value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt builds an Int value.
func NewInt(i int32) Value { return Value{kind: KindInt, i: i} }

// NewFloat builds a Float value.
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// NewString builds a String value.
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewEnum builds an EnumValue. Unlike String, an EnumValue carries only a
// name with no backing type table -- it is distinguished from String purely
// by Kind.
func NewEnum(name string) Value { return Value{kind: KindEnum, s: name} }

// NewID builds an Id value from a raw byte sequence.
func NewID(id []byte) Value { return Value{kind: KindID, s: string(id)} }

// NewIDFromString is a convenience constructor for Id values whose content
// is already known to be a valid string.
func NewIDFromString(id string) Value { return Value{kind: KindID, s: id} }

// NewList builds a List value, copying elems so later mutation of the slice
// passed in by the caller does not affect the Value.
func NewList(elems []Value) Value {
	list := make([]Value, len(elems))
	copy(list, elems)
	return Value{kind: KindList, list: list}
}

// NewMap builds an empty, ordered Map value. Use Set to populate it.
func NewMap() Value { return Value{kind: KindMap} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; only valid when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the int32 payload; only valid when Kind() == KindInt.
func (v Value) Int() int32 { return v.i }

// Float returns the float64 payload; only valid when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// String returns the string payload; valid for KindString, KindEnum and
// KindID (Enum name / Id bytes-as-string respectively).
func (v Value) String() string { return v.s }

// ID returns the raw byte sequence of an Id value.
func (v Value) ID() []byte { return []byte(v.s) }

// List returns the element slice of a List value. The returned slice must
// not be mutated by the caller.
func (v Value) List() []Value { return v.list }

// Len returns the number of elements (List) or members (Map) in v.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	}
	return 0
}

// Set inserts or replaces the member named name with val, preserving the
// position of the first insertion of that name (a Map never contains two
// entries with the same key). Set panics if v is not a Map.
func (v *Value) Set(name string, val Value) {
	if v.kind != KindMap {
		panic("value: Set called on a non-Map Value")
	}
	for i := range v.m {
		if v.m[i].name == name {
			v.m[i].value = val
			return
		}
	}
	v.m = append(v.m, entry{name: name, value: val})
}

// Get looks up a Map member by name, returning (value, true) if present.
func (v Value) Get(name string) (Value, bool) {
	for _, e := range v.m {
		if e.name == name {
			return e.value, true
		}
	}
	return Null, false
}

// Has reports whether the Map has a member named name.
func (v Value) Has(name string) bool {
	_, ok := v.Get(name)
	return ok
}

// Names returns the member names of a Map in insertion order.
func (v Value) Names() []string {
	names := make([]string, len(v.m))
	for i, e := range v.m {
		names[i] = e.name
	}
	return names
}

// Range calls fn for each (name, value) member of a Map in insertion order.
// Iteration stops early if fn returns false.
func (v Value) Range(fn func(name string, val Value) bool) {
	for _, e := range v.m {
		if !fn(e.name, e.value) {
			return
		}
	}
}

// Equal reports deep equality between two Values, per the engine's
// filter-matching semantics: EnumValue compares by name (not by any backing
// type table) and Float compares by IEEE-754 bit pattern so that NaN
// compares equal to NaN (ordinary `==` would make every NaN comparison
// false, which is wrong for subscription-argument filtering).
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return math.Float64bits(a.f) == math.Float64bits(b.f)
	case KindString, KindEnum, KindID:
		return a.s == b.s
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.m) != len(b.m) {
			return false
		}
		for _, e := range a.m {
			other, ok := b.Get(e.name)
			if !ok || !Equal(e.value, other) {
				return false
			}
		}
		return true
	}
	return false
}
