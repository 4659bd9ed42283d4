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
	"sync"
)

// queueJob is one FIFO entry: run task and deliver its outcome to done.
type queueJob struct {
	ctx  context.Context
	task Task
	done chan taskResult
}

// workerKey marks a context as running on a particular queueLauncher's own
// worker goroutine. The worker attaches it to job.ctx before invoking
// job.task, so any Launch call reachable from within that task (a composite
// resolver recursing back into Object.Resolve, per §4.5) carries it forward.
type workerKey struct{}

// onWorker reports whether ctx descends from l's own worker goroutine --
// i.e. whether this Launch call is itself running inside a task l's worker
// is currently executing, rather than from some unrelated caller goroutine.
func (l *queueLauncher) onWorker(ctx context.Context) bool {
	owner, _ := ctx.Value(workerKey{}).(*queueLauncher)
	return owner == l
}

// queueLauncher funnels every suspended field resolution through a single
// background worker goroutine draining a FIFO channel. Launch enqueues and
// returns immediately with a Handle the caller can Await later, so the
// caller keeps walking and launching while the worker runs earlier tasks;
// sibling tasks themselves never overlap, since the one worker runs them
// one at a time in FIFO order.
type queueLauncher struct {
	jobs    chan queueJob
	closeCh chan struct{}
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

var _ Launcher = (*queueLauncher)(nil)

func newQueueLauncher(capacity int) *queueLauncher {
	if capacity <= 0 {
		capacity = 64
	}
	l := &queueLauncher{
		jobs:    make(chan queueJob, capacity),
		closeCh: make(chan struct{}),
	}
	l.wg.Add(1)
	go l.worker()
	return l
}

func (l *queueLauncher) worker() {
	defer l.wg.Done()
	for {
		select {
		case job := <-l.jobs:
			v, err := job.task(context.WithValue(job.ctx, workerKey{}, l))
			job.done <- taskResult{value: v, err: err}
		case <-l.closeCh:
			// Shut down cleanly: drain no remaining work. Jobs still in
			// l.jobs are left unrun.
			return
		}
	}
}

// Launch enqueues task and returns a Handle for its eventual result. If ctx
// shows this call is already running inside a task l's own worker goroutine
// is executing -- a composite resolver recursing back into Object.Resolve
// while still on the worker -- task runs synchronously instead of being
// posted to the single-worker FIFO: posting it would deadlock, since the
// worker can't dequeue it while it is itself blocked running the parent
// task (§4.5's "await_ready" fast path for this exact case).
func (l *queueLauncher) Launch(ctx context.Context, task Task) Handle {
	if l.onWorker(ctx) {
		v, err := task(ctx)
		return resolvedHandle{value: v, err: err}
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return resolvedHandle{err: ErrClosed}
	}
	l.mu.Unlock()

	done := make(chan taskResult, 1)
	job := queueJob{ctx: ctx, task: task, done: done}

	select {
	case l.jobs <- job:
		return channelHandle{done: done}
	case <-l.closeCh:
		return resolvedHandle{err: ErrClosed}
	case <-ctx.Done():
		return resolvedHandle{err: ctx.Err()}
	}
}

// Close signals the worker to stop accepting new jobs and joins it. Jobs
// already enqueued but not yet picked up by the worker are abandoned
// rather than drained, per the "draining no remaining work" contract.
func (l *queueLauncher) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	close(l.closeCh)
	l.wg.Wait()
}
