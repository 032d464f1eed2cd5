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

// Package listener implements the regex-keyed, insertion-ordered listener
// table that the four handler stages dispatch events through.
//
// This replaces the source's notify_listeners, which read from
// self.listeners while registrations were stored in self.events_listeners
// (spec.md §9 calls this out as a bug). There is exactly one table here.
package listener

import (
	"regexp"
	"strings"
	"sync"

	liblog "github.com/sabouaram/kyco/logging"

	"github.com/sabouaram/kyco/event"
)

// Func is a listener callback. It receives the event that matched its
// registered pattern.
type Func func(event.Event)

type registration struct {
	owner   string
	pattern string
	re      *regexp.Regexp
	fn      Func
}

// Table is the listener table: an ordered list of patterns, each with an
// ordered list of callbacks, matched against an event's runtime payload
// type name.
//
// Updates (Register/Unregister, during NApp load/unload) take the
// write-exclusive lock; Dispatch snapshots the bucket list under a brief
// read lock and then runs listeners outside the lock, so a slow listener
// never holds up a concurrent NApp load/unload.
type Table struct {
	mu   sync.RWMutex
	regs []*registration
	log  liblog.Logger
}

// New builds an empty listener table.
func New(log liblog.Logger) *Table {
	return &Table{log: log}
}

// Register compiles pattern (anchored automatically, per spec.md §9) and
// appends fn to its bucket, tagged with owner for later bulk removal.
// Registration order is preserved and is dispatch order within a pattern;
// patterns themselves are also matched in the order they were first seen.
func (t *Table) Register(owner, pattern string, fn Func) error {
	re, err := regexp.Compile(anchor(pattern))
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.regs = append(t.regs, &registration{owner: owner, pattern: pattern, re: re, fn: fn})
	return nil
}

// anchor ensures a pattern only matches a fully-qualified type name, not a
// substring of one, mirroring spec.md §9's "the match is required to be
// anchored".
func anchor(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "^")
	pattern = strings.TrimSuffix(pattern, "$")
	return "^(?:" + pattern + ")$"
}

// Unregister removes every registration contributed by owner. Used by
// napp.Manager.Unload to implement spec.md's unload-cleanup property.
func (t *Table) Unregister(owner string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.regs[:0]
	for _, r := range t.regs {
		if r.owner != owner {
			kept = append(kept, r)
		}
	}
	t.regs = kept
}

// Dispatch runs every listener whose pattern matches e's runtime type
// name, pattern by pattern in the order each pattern was first
// registered and, within a pattern, in registration order, on the
// caller's own goroutine (handler stages call this synchronously). A
// listener that panics is recovered,
// logged as a ListenerError, and does not stop dispatch to the remaining
// listeners (spec.md property 5).
func (t *Table) Dispatch(e event.Event) {
	t.mu.RLock()
	snapshot := make([]*registration, len(t.regs))
	copy(snapshot, t.regs)
	t.mu.RUnlock()

	name := e.TypeName()
	var order []string
	buckets := make(map[string][]*registration)
	for _, r := range snapshot {
		if !r.re.MatchString(name) {
			continue
		}
		if _, ok := buckets[r.pattern]; !ok {
			order = append(order, r.pattern)
		}
		buckets[r.pattern] = append(buckets[r.pattern], r)
	}
	for _, p := range order {
		for _, r := range buckets[p] {
			t.invoke(r, e)
		}
	}
}

func (t *Table) invoke(r *registration, e event.Event) {
	defer func() {
		if rec := recover(); rec != nil && t.log != nil {
			t.log.Errorf("listener %s (pattern %q) panicked on %s event: %v", r.owner, r.pattern, name(e), rec)
		}
	}()
	r.fn(e)
}

func name(e event.Event) string {
	return e.TypeName()
}

// Len reports the total number of registered (pattern, callback) pairs,
// across all owners (for metrics/tests).
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.regs)
}
