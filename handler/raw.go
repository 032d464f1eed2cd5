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

package handler

import "github.com/sabouaram/kyco/event"

// runRaw implements spec.md §4.3. Per-connection "have we seen this
// connection before" state belongs entirely to this single consumer
// goroutine, so it needs no lock.
//
// On the first Raw event for a connection it emits NewConnection and
// blocks on its Done channel before decoding, so the app handler's
// dispatch of NewConnection is guaranteed to complete before this
// connection's first MsgIn is even put on the buffer — the only way to
// satisfy testable property 2 (NewConnection-before-MsgIn) when
// NewConnection and MsgIn are consumed on two different goroutines.
func (s *Stages) runRaw() {
	seen := make(map[string]bool)

	for {
		e, ok := s.Buffers.Raw.Get()
		if !ok || e.IsShutdown() {
			return
		}
		raw, _ := e.Content.(event.RawPayload)

		if !seen[e.Connection] {
			seen[e.Connection] = true
			s.emitNewConnection(e.Connection, raw)
		}

		if msg, err := s.Codec.Decode(raw.Bytes); err != nil {
			if s.Log != nil {
				s.Log.Warnf("decode failed on connection %s: %v", e.Connection, err)
			}
		} else {
			_ = s.Buffers.MsgIn.Put(event.New(event.MsgIn, e.Connection, msg))
		}

		s.Table.Dispatch(e)
	}
}

func (s *Stages) emitNewConnection(connID string, raw event.RawPayload) {
	done := make(chan struct{})
	_ = s.Buffers.App.Put(event.New(event.App, connID, event.NewConnectionPayload{
		ConnectionID: connID,
		Conn:         raw.Conn,
		Done:         done,
	}))
	<-done
}

// signalNewConnectionDone closes a NewConnection event's Done channel
// once the app handler has finished dispatching it. A no-op for every
// other event kind/payload.
func signalNewConnectionDone(e event.Event) {
	if nc, ok := e.Content.(event.NewConnectionPayload); ok && nc.Done != nil {
		close(nc.Done)
	}
}
