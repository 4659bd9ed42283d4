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

package execution

import (
	"sync"

	"github.com/riftgql/core/gqlerror"
	"github.com/riftgql/core/value"
)

// Sink is the streaming event receiver resolvers and the executor emit
// into -- a ResolverVisitor in the source's terms. AddMember returns a
// Sink scoped to exactly that member's value: the teacher's
// result_node.go gives each field its own ResultNode slot in an
// ExecutionNodes-indexed array rather than a single shared cursor, so
// that sibling fields resolved out of order under a concurrent launch
// policy still land in their own slot. This package follows the same
// shape: AddMember reserves an ordered slot in the enclosing Map and
// hands back a dedicated child Sink that only that field's resolver (and
// whatever goroutine it runs on) ever touches, so no two goroutines ever
// contend for the same mutable cursor.
type Sink interface {
	StartObject()
	StartArray()
	AddMember(name string) Sink
	EndObject()
	EndArray()
	AddNull()
	AddBool(b bool)
	AddInt(i int32)
	AddFloat(f float64)
	AddString(s string)
	AddEnum(name string)
	AddID(id []byte)
	AddError(err *gqlerror.SchemaError)
}

// sharedState is the one piece of Assembler state that genuinely is
// touched by more than one goroutine at a time: sibling field resolvers
// under ThreadPerTask/Queue all append to the same error list
// concurrently, so it alone needs a mutex.
type sharedState struct {
	mu     sync.Mutex
	errors []*gqlerror.SchemaError
}

func (s *sharedState) addError(err *gqlerror.SchemaError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, err)
}

func (s *sharedState) snapshot() []*gqlerror.SchemaError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors
}

// frameSlot is one reserved member of an in-progress Map frame: a
// response name paired with the dedicated child Sink that will supply
// its value. The slot is appended the moment AddMember is called (from
// the single goroutine walking the selection set, strictly in source
// order) and read back only after the executor has awaited every field
// launched against this frame -- so the out-of-order completion of
// sibling resolvers never races the frame's own bookkeeping.
type frameSlot struct {
	key  string
	sink *valueSink
}

// frame is one in-progress Map or List container. A List's elements are
// appended directly (list construction is never split across a
// suspension point, so it stays single-goroutine); a Map's members are
// each their own reserved slot, filled independently by whichever
// goroutine that member's resolver happens to run on.
type frame struct {
	isList bool
	elems  []value.Value
	slots  []frameSlot
}

func (f *frame) finishList() value.Value {
	return value.NewList(f.elems)
}

func (f *frame) finishMap() value.Value {
	m := value.NewMap()
	for _, s := range f.slots {
		if s.sink.hasValue {
			m.Set(s.key, s.sink.value)
		}
	}
	return m
}

// valueSink is a Sink that ultimately resolves to exactly one Value:
// either a scalar/enum/id/null added to it directly, or the Map/List
// assembled by a balanced StartObject/StartArray ... EndObject/EndArray
// sequence run on it. Every AddMember call anywhere in the tree mints a
// fresh valueSink for that one member, so a valueSink's own stack is
// only ever touched by the single goroutine that owns it at a given
// point -- concurrency lives between sibling valueSinks, never within
// one.
type valueSink struct {
	shared *sharedState

	value    value.Value
	hasValue bool

	stack []*frame
}

var _ Sink = (*valueSink)(nil)

func newValueSink(shared *sharedState) *valueSink {
	return &valueSink{shared: shared}
}

func (s *valueSink) StartObject() {
	s.stack = append(s.stack, &frame{})
}

func (s *valueSink) StartArray() {
	s.stack = append(s.stack, &frame{isList: true})
}

// AddMember reserves the next ordered slot of the currently-open Map
// frame and returns a dedicated Sink for it. Calling AddMember with no
// open frame is a caller error (StartObject always precedes it); it is
// tolerated as a silent no-op -- the returned Sink is simply never read
// back by anything -- matching this package's existing discipline of
// never panicking on a defensive-only condition.
func (s *valueSink) AddMember(name string) Sink {
	child := newValueSink(s.shared)
	if len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		top.slots = append(top.slots, frameSlot{key: name, sink: child})
	}
	return child
}

func (s *valueSink) EndObject() {
	top := s.popFrame()
	s.attach(top.finishMap())
}

func (s *valueSink) EndArray() {
	top := s.popFrame()
	s.attach(top.finishList())
}

func (s *valueSink) popFrame() *frame {
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top
}

// attach completes one value for this sink: appended to the directly
// enclosing List frame if one is still open, or -- once this sink's own
// stack has unwound completely -- committed as the sink's final value.
// A Map frame never reaches this path for its members (those arrive via
// AddMember's child sinks instead), so the only in-between case is a
// List nested inside this same sink's own container.
func (s *valueSink) attach(v value.Value) {
	if len(s.stack) == 0 {
		s.value = v
		s.hasValue = true
		return
	}
	top := s.stack[len(s.stack)-1]
	if top.isList {
		top.elems = append(top.elems, v)
	}
	// A Map frame open here would mean a scalar Add* call reached this
	// sink while it is itself building an Object -- not a shape the
	// executor ever produces, since Map members always arrive through a
	// child sink minted by AddMember, not through this sink directly.
}

func (s *valueSink) AddNull()           { s.attach(value.Null) }
func (s *valueSink) AddBool(b bool)     { s.attach(value.NewBool(b)) }
func (s *valueSink) AddInt(i int32)     { s.attach(value.NewInt(i)) }
func (s *valueSink) AddFloat(f float64) { s.attach(value.NewFloat(f)) }
func (s *valueSink) AddString(v string) { s.attach(value.NewString(v)) }
func (s *valueSink) AddEnum(name string) { s.attach(value.NewEnum(name)) }
func (s *valueSink) AddID(id []byte)    { s.attach(value.NewID(id)) }

func (s *valueSink) AddError(err *gqlerror.SchemaError) {
	s.shared.addError(err)
}

// Assembler is the engine's standard top-level Sink (§4.6): the root of
// the valueSink tree, plus the one piece of genuinely shared, mutex-
// protected state (the error list) every valueSink reached from it
// forwards AddError calls to.
type Assembler struct {
	*valueSink
	shared *sharedState
}

var _ Sink = (*Assembler)(nil)

// NewAssembler returns a ready-to-use Assembler.
func NewAssembler() *Assembler {
	shared := &sharedState{}
	return &Assembler{valueSink: newValueSink(shared), shared: shared}
}

// Result returns the assembled root value (Null if nothing was ever
// attached at the top level) and the accumulated error list.
func (a *Assembler) Result() (value.Value, []*gqlerror.SchemaError) {
	if a.valueSink.hasValue {
		return a.valueSink.value, a.shared.snapshot()
	}
	return value.Null, a.shared.snapshot()
}
