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

// Package registry holds the connection and switch registries: the
// concurrency-safe maps the TCP server, handler stages, and built-in
// app listeners share to look up live transport handles and switch state.
package registry

import (
	"net"
	"sync"
	"sync/atomic"
)

// Connection is the controller's record of one accepted TCP session: a
// stable id, the send-capable transport handle, the dpid once the switch
// identifies itself, and the framing codec's partial-frame buffer.
//
// Writes to a single connection are serialized through writeMu per spec's
// per-connection send mutex requirement (§5).
type Connection struct {
	ID   string
	conn net.Conn

	writeMu sync.Mutex

	dpid  atomic.Uint64
	alive atomic.Bool

	recvMu  sync.Mutex
	recvBuf []byte
}

// NewConnection wraps an accepted net.Conn under the given connection id.
func NewConnection(id string, c net.Conn) *Connection {
	conn := &Connection{ID: id, conn: c}
	conn.alive.Store(true)
	return conn
}

// Write serializes one frame's worth of bytes onto the wire. Safe for
// concurrent callers (msg-out handler and, in principle, NApp-initiated
// out-of-band writes).
func (c *Connection) Write(b []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.Write(b)
}

// Conn exposes the underlying net.Conn for the per-connection reader.
func (c *Connection) Conn() net.Conn {
	return c.conn
}

// Close closes the underlying transport and marks the connection dead.
func (c *Connection) Close() error {
	c.alive.Store(false)
	return c.conn.Close()
}

// Dpid returns the learned dpid, or 0 if the switch hasn't identified
// itself yet.
func (c *Connection) Dpid() uint64 {
	return c.dpid.Load()
}

// SetDpid records the dpid this connection's switch advertised.
func (c *Connection) SetDpid(dpid uint64) {
	c.dpid.Store(dpid)
}

// IsAlive reports whether this connection is still considered live.
func (c *Connection) IsAlive() bool {
	return c.alive.Load()
}

// MarkDead flips the liveness flag without closing the transport (used
// when the peer already closed its end).
func (c *Connection) MarkDead() {
	c.alive.Store(false)
}

// AppendRecv appends newly read bytes to the connection's partial-frame
// buffer and returns the accumulated buffer. The caller (the per-connection
// reader) owns consuming complete frames back out via ConsumeRecv.
func (c *Connection) AppendRecv(b []byte) []byte {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()
	c.recvBuf = append(c.recvBuf, b...)
	return c.recvBuf
}

// ConsumeRecv drops the first n bytes of the partial-frame buffer, once
// the reader has extracted a complete frame from them.
func (c *Connection) ConsumeRecv(n int) {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()
	c.recvBuf = append([]byte(nil), c.recvBuf[n:]...)
}
