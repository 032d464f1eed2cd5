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
	libatm "github.com/nabbar/golib/atomic"
)

// Connections maps a connection id to its active Connection. Insert,
// lookup, and remove are all lock-free (backed by atomic.MapTyped, a
// sync.Map wrapper), satisfying the read-mostly concurrency policy spec.md
// §5 asks for.
type Connections struct {
	m libatm.MapTyped[string, *Connection]
}

// NewConnections builds an empty connection registry.
func NewConnections() *Connections {
	return &Connections{m: libatm.NewMapTyped[string, *Connection]()}
}

// Add registers c under its own id.
func (r *Connections) Add(c *Connection) {
	r.m.Store(c.ID, c)
}

// Get looks up a connection by id.
func (r *Connections) Get(id string) (*Connection, bool) {
	return r.m.Load(id)
}

// Remove drops the registry entry for id. It does not close the
// connection; callers close before or after removing as the call site
// requires.
func (r *Connections) Remove(id string) {
	r.m.Delete(id)
}

// Range iterates every live registry entry. f returning false stops the
// iteration early.
func (r *Connections) Range(f func(id string, c *Connection) bool) {
	r.m.Range(f)
}

// Len returns the number of registered connections.
func (r *Connections) Len() int {
	n := 0
	r.m.Range(func(string, *Connection) bool { n++; return true })
	return n
}
