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

package registry

import (
	"sync"

	libatm "github.com/nabbar/golib/atomic"
	liberr "github.com/sabouaram/kyco/errors"
)

// Switches maps dpid to Switch, implementing the at-most-one-live-
// connection-per-dpid invariant (spec.md §3, testable property 3).
//
// AddOrRebind needs a check-then-act across the whole entry (not just a
// single key), so it takes a per-registry mutex around the admit
// decision; lookups (Get) stay lock-free through the underlying map.
type Switches struct {
	admitMu sync.Mutex
	m       libatm.MapTyped[uint64, *Switch]
}

// NewSwitches builds an empty switch registry.
func NewSwitches() *Switches {
	return &Switches{m: libatm.NewMapTyped[uint64, *Switch]()}
}

// Get looks up a switch by dpid.
func (r *Switches) Get(dpid uint64) (*Switch, bool) {
	return r.m.Load(dpid)
}

// AddOrRebind implements spec.md §4.8: insert if absent; if present and
// still connected, reject with DuplicateSwitch; if present and
// disconnected, adopt the new connection into the existing record so
// NApp-attached Features survive the reconnect.
func (r *Switches) AddOrRebind(dpid uint64, conn *Connection) (*Switch, error) {
	r.admitMu.Lock()
	defer r.admitMu.Unlock()

	if sw, ok := r.m.Load(dpid); ok {
		if sw.Connected() {
			return nil, liberr.DuplicateSwitch.Error("switch already connected")
		}
		sw.adopt(conn)
		return sw, nil
	}

	sw := newSwitch(dpid, conn)
	sw.connected.Store(true)
	r.m.Store(dpid, sw)
	return sw, nil
}

// Disconnect implements spec.md §4.8: mark dpid disconnected and close its
// transport. Fails with UnknownSwitch if dpid isn't registered.
func (r *Switches) Disconnect(dpid uint64) error {
	sw, ok := r.m.Load(dpid)
	if !ok {
		return liberr.UnknownSwitch.Error("unknown switch")
	}
	sw.markDisconnected()
	if c := sw.Connection(); c != nil {
		_ = c.Close()
	}
	return nil
}

// DisconnectByConnection finds the switch currently bound to connID and
// disconnects it. Used by the built-in ConnectionLost handler, which only
// carries a connection id (dpid may not even be known yet if the switch
// never sent a features message). Returns UnknownSwitch if no registered
// switch currently points at connID.
func (r *Switches) DisconnectByConnection(connID string) error {
	var found *Switch
	r.m.Range(func(_ uint64, sw *Switch) bool {
		if c := sw.Connection(); c != nil && c.ID == connID && sw.Connected() {
			found = sw
			return false
		}
		return true
	})
	if found == nil {
		return liberr.UnknownSwitch.Error("unknown switch for connection " + connID)
	}
	found.markDisconnected()
	_ = found.Connection().Close()
	return nil
}

// Range iterates every registered switch. f returning false stops early.
func (r *Switches) Range(f func(dpid uint64, sw *Switch) bool) {
	r.m.Range(f)
}

// Len returns the number of registered switches (connected or not).
func (r *Switches) Len() int {
	n := 0
	r.m.Range(func(uint64, *Switch) bool { n++; return true })
	return n
}
