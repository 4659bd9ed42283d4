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

package value

import (
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
)

// json is the codec used for response encoding. The engine deliberately
// does not use encoding/json: response trees are rebuilt for every request
// and json-iterator's reflection-free fast path matters on the hot path
// (it is the codec the rest of this module's lineage already standardizes
// on for GraphQL responses).
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON implements json.Marshaler. EnumValue and Id both serialize as
// JSON strings, which is lossy (the round trip below recovers String, not
// the original Kind) -- callers that need to preserve Kind across the wire
// should use a schema-aware codec layered on top of this one; this package
// only owns the generic data-tree shape a GraphQL response must take.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("value: cannot encode non-finite Float %v as JSON", v.f)
		}
		return json.Marshal(v.f)
	case KindString, KindEnum, KindID:
		return json.Marshal(v.s)
	case KindList:
		return json.Marshal(v.list)
	case KindMap:
		var buf []byte
		buf = append(buf, '{')
		for i, e := range v.m {
			if i > 0 {
				buf = append(buf, ',')
			}
			key, err := json.Marshal(e.name)
			if err != nil {
				return nil, err
			}
			buf = append(buf, key...)
			buf = append(buf, ':')
			val, err := e.value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf = append(buf, val...)
		}
		buf = append(buf, '}')
		return buf, nil
	}
	return nil, fmt.Errorf("value: unknown Kind %d", v.kind)
}

// UnmarshalJSON implements json.Unmarshaler. JSON numbers that fit in an
// int32 without loss decode to KindInt; all other numbers decode to
// KindFloat. JSON objects decode to Map, but through Go's unordered
// map[string]interface{}, so source key order is not preserved; use
// DecodeOrderedMap for an order-preserving decode.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = fromInterface(raw)
	return nil
}

func fromInterface(raw interface{}) Value {
	switch raw := raw.(type) {
	case nil:
		return Null
	case bool:
		return NewBool(raw)
	case float64:
		if i := int32(raw); float64(i) == raw {
			return NewInt(i)
		}
		return NewFloat(raw)
	case string:
		return NewString(raw)
	case []interface{}:
		elems := make([]Value, len(raw))
		for i, e := range raw {
			elems[i] = fromInterface(e)
		}
		return NewList(elems)
	case map[string]interface{}:
		// encoding/json and jsoniter's generic decode both lose key order in
		// a plain map[string]interface{}; callers that need order-preserving
		// round trips should decode through DecodeOrderedMap instead.
		m := NewMap()
		for k, e := range raw {
			m.Set(k, fromInterface(e))
		}
		return m
	}
	return Null
}

// DecodeOrderedMap parses a JSON object, preserving member order, into a Map
// Value. It is the order-preserving counterpart to UnmarshalJSON (which
// round-trips through Go's unordered map[string]interface{} for nested
// objects).
func DecodeOrderedMap(data []byte) (Value, error) {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)
	v := decodeOrdered(iter)
	if iter.Error != nil {
		return Null, iter.Error
	}
	return v, nil
}

func decodeOrdered(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null
	case jsoniter.BoolValue:
		return NewBool(iter.ReadBool())
	case jsoniter.NumberValue:
		f := iter.ReadFloat64()
		if i := int32(f); float64(i) == f {
			return NewInt(i)
		}
		return NewFloat(f)
	case jsoniter.StringValue:
		return NewString(iter.ReadString())
	case jsoniter.ArrayValue:
		var elems []Value
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			elems = append(elems, decodeOrdered(iter))
			return true
		})
		return NewList(elems)
	case jsoniter.ObjectValue:
		m := NewMap()
		iter.ReadMapCB(func(iter *jsoniter.Iterator, field string) bool {
			m.Set(field, decodeOrdered(iter))
			return true
		})
		return m
	}
	return Null
}
