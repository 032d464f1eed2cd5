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

// runMsgOut implements spec.md §4.5: resolve the connection by id,
// serialize and write atomically, then fan out to listeners. This is
// where the source's missing-self send_to_switch method lives, reached
// through the connection registry rather than a bare function.
func (s *Stages) runMsgOut() {
	for {
		e, ok := s.Buffers.MsgOut.Get()
		if !ok || e.IsShutdown() {
			return
		}
		msg, _ := e.Content.(event.Msg)

		conn, found := s.Conns.Get(e.Connection)
		if !found {
			if s.Log != nil {
				s.Log.Warnf("msg-out for unknown connection %s, dropping", e.Connection)
			}
			continue
		}

		frame, err := s.Codec.Encode(msg)
		if err != nil {
			if s.Log != nil {
				s.Log.Warnf("encode failed for connection %s: %v", e.Connection, err)
			}
			continue
		}

		if _, err := conn.Write(frame); err != nil && s.Log != nil {
			s.Log.Warnf("write failed for connection %s: %v", e.Connection, err)
		}

		s.Table.Dispatch(e)
	}
}
