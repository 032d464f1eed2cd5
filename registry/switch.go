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
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

// Features holds the NApp-attached metadata a Switch accumulates over its
// lifetime: a compact presence set of live port numbers (reported by
// NApps reacting to SwitchFeatures-style messages) and a free-form
// metadata bag for anything else a NApp wants to stash per-dpid.
type Features struct {
	mu    sync.RWMutex
	Ports *bitset.BitSet
	meta  map[string]any
}

func newFeatures() *Features {
	return &Features{Ports: bitset.New(64), meta: map[string]any{}}
}

// SetPort marks port as live.
func (f *Features) SetPort(port uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ports.Set(port)
}

// ClearPort marks port as gone.
func (f *Features) ClearPort(port uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ports.Clear(port)
}

// SetMeta stashes a NApp-defined value under key.
func (f *Features) SetMeta(key string, val any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meta[key] = val
}

// GetMeta retrieves a previously stashed value.
func (f *Features) GetMeta(key string) (any, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.meta[key]
	return v, ok
}

// Switch is the controller's record of one switch, keyed by dpid. Its
// Connection is replaced, not recreated, across reconnects so NApp-attached
// Features survive a disconnect/reconnect cycle (spec.md §4.8's "rationale:
// switches may reconnect... NApps must see state continuity").
type Switch struct {
	Dpid uint64

	mu        sync.RWMutex
	conn      *Connection
	connected atomic.Bool

	Features *Features
}

func newSwitch(dpid uint64, conn *Connection) *Switch {
	return &Switch{
		Dpid:     dpid,
		conn:     conn,
		Features: newFeatures(),
	}
}

// Connection returns the switch's current transport handle.
func (s *Switch) Connection() *Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

// Connected reports whether the switch currently has a live connection.
func (s *Switch) Connected() bool {
	return s.connected.Load()
}

func (s *Switch) adopt(conn *Connection) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.connected.Store(true)
}

func (s *Switch) markDisconnected() {
	s.connected.Store(false)
}
