/*
 * MIT License
 *
 * Copyright (c) 2026 sabouaram
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package buffer implements the bounded FIFO queues that carry events
// between the TCP server, the four handler stages, and NApp listeners.
package buffer

import (
	"sync"

	liberr "github.com/sabouaram/kyco/errors"
	"github.com/sabouaram/kyco/event"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 1024

// Buffer is a single bounded FIFO of events. Put blocks while the queue is
// full (backpressure); Get blocks until an item is available or the buffer
// is closed. Close is idempotent: the first call enqueues nConsumers
// Shutdown sentinels (one per registered consumer) atomically with
// flipping the closed flag, so no Put enqueued after Close is delivered
// and every consumer observes exactly one sentinel.
type Buffer struct {
	ch     chan event.Event
	mu     sync.RWMutex
	closed bool
}

// New creates a Buffer with the given capacity (DefaultCapacity if cap <= 0).
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{ch: make(chan event.Event, capacity)}
}

// Put enqueues e. It returns liberr.BufferClosed if the buffer is already
// closed; it blocks if the buffer is full and open.
func (b *Buffer) Put(e event.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return liberr.BufferClosed.Error("put on closed buffer")
	}
	// Held as a read-lock so concurrent producers don't serialize on a
	// full channel; Close takes the write-lock, so it only proceeds once
	// every in-flight Put here has either landed or observed closed.
	b.ch <- e
	return nil
}

// Get blocks until an item is available. ok is false only if the channel
// was drained and closed without a pending sentinel (should not happen in
// normal operation since Close always enqueues one sentinel per consumer).
func (b *Buffer) Get() (event.Event, bool) {
	e, ok := <-b.ch
	return e, ok
}

// Close marks the buffer closed and enqueues nConsumers Shutdown sentinels,
// one per handler expected to call Get. Subsequent Put calls fail with
// BufferClosed. Close is safe to call multiple times; only the first call
// has effect.
func (b *Buffer) Close(nConsumers int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for i := 0; i < nConsumers; i++ {
		b.ch <- event.NewShutdown()
	}
}

// Len reports the number of items currently queued (for metrics).
func (b *Buffer) Len() int {
	return len(b.ch)
}

// Closed reports whether Close has been called.
func (b *Buffer) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
