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

import "fmt"

// ScalarKind names one of the built-in scalar conversions a resolver can ask
// for when decoding an argument or input field, or when validating a result
// before it is handed to the assembler.
type ScalarKind uint8

// Enumeration of ScalarKind.
const (
	ScalarInt ScalarKind = iota
	ScalarFloat
	ScalarString
	ScalarBoolean
	ScalarID
	ScalarAny // arbitrary Value, no coercion
)

// ConvertError reports that a Value could not be converted to the requested
// scalar kind.
type ConvertError struct {
	Kind ScalarKind
	Got  Kind
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("not a valid %s value", scalarName(e.Kind))
}

func scalarName(k ScalarKind) string {
	switch k {
	case ScalarInt:
		return "Int"
	case ScalarFloat:
		return "Float"
	case ScalarString:
		return "String"
	case ScalarBoolean:
		return "Boolean"
	case ScalarID:
		return "ID"
	case ScalarAny:
		return "Value"
	}
	return "unknown"
}

// Convert decodes v as the given scalar kind, the way Argument<T>::convert
// does on the input side: used for arguments and input object fields.
// Integer -> Float widening is allowed (an Int literal is valid wherever a
// Float is expected); String -> Id is allowed whenever the string's bytes
// are valid content for the target Id, and Int -> Id yields the integer's
// decimal text. All other kind mismatches fail with a *ConvertError
// reading "not a valid T value".
func Convert(kind ScalarKind, v Value) (Value, error) {
	switch kind {
	case ScalarInt:
		if v.Kind() == KindInt {
			return v, nil
		}
	case ScalarFloat:
		switch v.Kind() {
		case KindFloat:
			return v, nil
		case KindInt:
			// Integer -> Float coercion is allowed.
			return NewFloat(float64(v.Int())), nil
		}
	case ScalarString:
		if v.Kind() == KindString {
			return v, nil
		}
	case ScalarBoolean:
		if v.Kind() == KindBool {
			return v, nil
		}
	case ScalarID:
		switch v.Kind() {
		case KindID:
			return v, nil
		case KindString:
			// String -> Id is allowed when the content is valid (i.e. it is a
			// string at all -- Id carries an opaque byte sequence).
			return NewIDFromString(v.String()), nil
		case KindInt:
			return NewIDFromString(fmt.Sprintf("%d", v.Int())), nil
		}
	case ScalarAny:
		return v, nil
	}
	return Null, &ConvertError{Kind: kind, Got: v.Kind()}
}

// ValidateScalar is the stricter counterpart used on the output side:
// Result<T>::validateScalar. Unlike Convert, Float requires exactly Float --
// an Int value produced by a careless resolver for a Float field is
// rejected rather than silently widened, because the widening only makes
// sense for input literals (which the validator/coercion layer already
// constrains), not for resolver-produced results.
func ValidateScalar(kind ScalarKind, v Value) error {
	switch kind {
	case ScalarInt:
		if v.Kind() != KindInt {
			return &ConvertError{Kind: kind, Got: v.Kind()}
		}
	case ScalarFloat:
		if v.Kind() != KindFloat {
			return &ConvertError{Kind: kind, Got: v.Kind()}
		}
	case ScalarString:
		if v.Kind() != KindString {
			return &ConvertError{Kind: kind, Got: v.Kind()}
		}
	case ScalarBoolean:
		if v.Kind() != KindBool {
			return &ConvertError{Kind: kind, Got: v.Kind()}
		}
	case ScalarID:
		if v.Kind() != KindID {
			return &ConvertError{Kind: kind, Got: v.Kind()}
		}
	}
	return nil
}

// Modifier is one link of a TypeModifier chain wrapping a base scalar or
// object type: List, Nullable or plain (no modifier, the base type itself).
type Modifier uint8

// Enumeration of Modifier.
const (
	// ModNone terminates the chain at the base type.
	ModNone Modifier = iota
	// ModList wraps the remainder of the chain as a list of that shape.
	ModList
	// ModNullable marks the remainder of the chain as nullable. A Nullable
	// before a List means the whole list may be absent; a Nullable found
	// while unwrapping elements inside a List means each element may be
	// null.
	ModNullable
)

// TypeModifierChain is an ordered sequence of Modifier values read
// outermost-first, terminated by ModNone.
type TypeModifierChain []Modifier

// Nullable reports whether the outermost modifier is Nullable.
func (c TypeModifierChain) Nullable() bool {
	return len(c) > 0 && c[0] == ModNullable
}

// IsList reports whether, after stripping a leading Nullable, the next
// modifier is List.
func (c TypeModifierChain) IsList() bool {
	rest := c
	if rest.Nullable() {
		rest = rest[1:]
	}
	return len(rest) > 0 && rest[0] == ModList
}

// Rest returns the chain with one level of nesting stripped, for resolving
// one more level of List/Nullable nesting: the outermost modifier, plus the
// List right after it when that outermost modifier is Nullable.
func (c TypeModifierChain) Rest() TypeModifierChain {
	if len(c) == 0 {
		return c
	}
	rest := c[1:]
	if c[0] == ModNullable && len(rest) > 0 && rest[0] == ModList {
		return rest[1:]
	}
	return rest
}

// ModifierError reports that a resolved Value's List/Null shape didn't
// match the TypeModifierChain the resolver declared for its field.
type ModifierError struct {
	Reason string
}

func (e *ModifierError) Error() string { return e.Reason }

// ValidateAgainstModifiers checks v's List/Null nesting against chain,
// outermost wrapper first, the way Result<T>::validate walks a field's
// declared List/NonNull wrapping before handing a resolved value to the
// response writer (§4.4). It does not itself validate the base scalar kind
// once the chain is exhausted -- that is ValidateScalar's job, left to the
// caller since ScalarAny fields and object fields share this same
// List/Nullable wrapping but not a ScalarKind.
func ValidateAgainstModifiers(chain TypeModifierChain, v Value) error {
	if v.Kind() == KindNull {
		if chain.Nullable() {
			return nil
		}
		return &ModifierError{Reason: "Cannot return null for non-nullable field"}
	}
	if chain.IsList() {
		if v.Kind() != KindList {
			return &ModifierError{Reason: "Expected a list value"}
		}
		rest := chain.Rest()
		for _, elem := range v.List() {
			if err := ValidateAgainstModifiers(rest, elem); err != nil {
				return err
			}
		}
		return nil
	}
	if v.Kind() == KindList {
		return &ModifierError{Reason: "Unexpected list value"}
	}
	return nil
}
