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

package async

import (
	"context"
	"sync/atomic"
)

// inlineLauncher never suspends: Launch runs task to completion on the
// calling goroutine before returning.
type inlineLauncher struct {
	closed int32
}

var _ Launcher = (*inlineLauncher)(nil)

func (l *inlineLauncher) Launch(ctx context.Context, task Task) Handle {
	if atomic.LoadInt32(&l.closed) != 0 {
		return resolvedHandle{err: ErrClosed}
	}
	v, err := task(ctx)
	return resolvedHandle{value: v, err: err}
}

func (l *inlineLauncher) Close() {
	atomic.StoreInt32(&l.closed, 1)
}

// threadPerTaskLauncher spawns a detached goroutine per Launch call, the
// way the teacher lineage's thread-per-task strategy spawns a detached OS
// thread to resume a suspended coroutine handle.
type threadPerTaskLauncher struct {
	closed int32
}

var _ Launcher = (*threadPerTaskLauncher)(nil)

func (l *threadPerTaskLauncher) Launch(ctx context.Context, task Task) Handle {
	if atomic.LoadInt32(&l.closed) != 0 {
		return resolvedHandle{err: ErrClosed}
	}

	done := make(chan taskResult, 1)
	go func() {
		v, err := task(ctx)
		done <- taskResult{value: v, err: err}
	}()
	return channelHandle{done: done}
}

func (l *threadPerTaskLauncher) Close() {
	atomic.StoreInt32(&l.closed, 1)
}
