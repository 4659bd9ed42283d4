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

// Package async provides the engine's suspension primitive: the
// configurable "launch policy" that governs what happens at a field's
// suspension point, the way the GraphQL specification's parallel-query /
// serial-mutation execution split is implemented underneath a single
// selection-executor code path (§4.5, §5).
//
// Three policies are provided, selectable per request: Inline (never
// suspends -- used to force serial execution for mutations), ThreadPerTask
// (spawns a goroutine per suspension point) and Queue (a single background
// worker draining a bounded FIFO). The chosen policy is immutable for the
// lifetime of one resolution.
//
// Launch returns a Handle immediately; the caller decides when to Await it.
// The selection executor exploits this to launch every field of a
// selection set before awaiting any of them, so sibling fields under
// ThreadPerTask genuinely overlap, and under Queue run on the worker while
// the caller keeps launching, even though they are awaited (and therefore
// assembled into the response) strictly in source order.
package async

import (
	"context"
	"errors"
)

// ErrClosed is returned by Launch once the Launcher has been shut down.
var ErrClosed = errors.New("async: launcher is closed")

// Task is a unit of work a Launcher runs at a field's suspension point.
// It mirrors the resolver contract of §6: it returns the value the field
// resolved to (if any; concrete shape is left to the caller) and an error.
type Task func(ctx context.Context) (interface{}, error)

// Handle is a pending or completed Task launched by a Launcher.
type Handle interface {
	// Await blocks until the task completes (or ctx is done) and returns
	// its outcome. Await may be called at most once per Handle.
	Await(ctx context.Context) (interface{}, error)
}

// Launcher is the engine's suspension point.
type Launcher interface {
	// Launch arranges for task to run under the Launcher's policy and
	// returns immediately with a Handle for its eventual result. Under
	// PolicyInline, task has already completed by the time Launch returns.
	Launch(ctx context.Context, task Task) Handle

	// Close shuts the Launcher down; Launch returns a Handle that resolves
	// to ErrClosed for calls made after Close. Under PolicyInline and
	// PolicyThreadPerTask, tasks already running complete and Close does
	// not wait for them. Under PolicyQueue, Close waits for the task the
	// worker is currently running; jobs still queued are never run, so
	// their Handles resolve only when the ctx passed to Await is done.
	Close()
}

// Policy names one of the three launch strategies.
type Policy uint8

// Enumeration of Policy.
const (
	// PolicyInline never suspends: Launch invokes task synchronously on the
	// calling goroutine and returns an already-resolved Handle. Mutations
	// force this policy regardless of what the caller requested, to
	// preserve serial field execution (§4.5, §4.7).
	PolicyInline Policy = iota
	// PolicyThreadPerTask spawns a new goroutine for every Launch call.
	PolicyThreadPerTask
	// PolicyQueue funnels every Launch call through a single background
	// worker goroutine draining a bounded FIFO.
	PolicyQueue
)

// New builds a Launcher for the given policy. queueCapacity is only
// consulted for PolicyQueue (<=0 means a reasonable default), and is
// ignored for the other policies.
func New(policy Policy, queueCapacity int) Launcher {
	switch policy {
	case PolicyInline:
		return &inlineLauncher{}
	case PolicyThreadPerTask:
		return &threadPerTaskLauncher{}
	case PolicyQueue:
		return newQueueLauncher(queueCapacity)
	}
	panic("async: unknown Policy")
}

// resolvedHandle is a Handle whose outcome is already known.
type resolvedHandle struct {
	value interface{}
	err   error
}

func (h resolvedHandle) Await(ctx context.Context) (interface{}, error) { return h.value, h.err }

// channelHandle awaits a result delivered on a buffered channel.
type channelHandle struct {
	done <-chan taskResult
}

type taskResult struct {
	value interface{}
	err   error
}

func (h channelHandle) Await(ctx context.Context) (interface{}, error) {
	select {
	case r := <-h.done:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
