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

package event

import "net"

// RawPayload is the Content of a Raw-kind Event: undecoded bytes plus the
// transport handle they arrived on.
type RawPayload struct {
	Bytes []byte
	Conn  net.Conn
}

// Msg is the Content of a MsgIn/MsgOut-kind Event: a decoded OpenFlow
// message. The concrete decode/encode is delegated to an external codec;
// Payload holds whatever that codec produced or expects.
type Msg struct {
	Xid     uint32
	Type    uint8
	Version uint8
	Payload any
}

// NewConnectionPayload is the Content of a NewConnection App event. Done,
// when non-nil, is closed by the app handler once this event has been
// fully dispatched — the raw handler blocks on it so that, per testable
// property 2, no MsgIn listener invocation for this connection can run
// before the NewConnection listener invocation has.
type NewConnectionPayload struct {
	ConnectionID string
	Conn         net.Conn
	Done         chan struct{}
}

// ConnectionLostPayload is the Content of a ConnectionLost App event.
type ConnectionLostPayload struct {
	ConnectionID string
	Reason       error
}

// SwitchUpPayload is the Content of a SwitchUp App event.
type SwitchUpPayload struct {
	Dpid         uint64
	ConnectionID string
}

// SwitchDownPayload is the Content of a SwitchDown App event.
type SwitchDownPayload struct {
	Dpid         uint64
	ConnectionID string
}

func (NewConnectionPayload) EventTypeName() string  { return "NewConnection" }
func (ConnectionLostPayload) EventTypeName() string { return "ConnectionLost" }
func (SwitchUpPayload) EventTypeName() string       { return "SwitchUp" }
func (SwitchDownPayload) EventTypeName() string     { return "SwitchDown" }
