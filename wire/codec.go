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

package wire

import "github.com/sabouaram/kyco/event"

// Codec is the external collaborator spec.md §1 places out of scope: it
// decodes a raw frame's body into a semantic message, and encodes a
// semantic message back into wire bytes. The core only ever calls these
// two methods; it never interprets OpenFlow message types itself.
type Codec interface {
	// Decode turns a complete raw frame (header included) into a decoded
	// message. DecodeError is returned, never panics, on malformed input.
	Decode(frame []byte) (event.Msg, error)
	// Encode turns a decoded message back into wire bytes ready to write.
	Encode(msg event.Msg) ([]byte, error)
}

// HelloCodec is a minimal Codec used by tests and the bundled example
// NApp: it only understands OpenFlow Hello (type 0x00), round-tripping
// the header's version/xid and ignoring any body. Anything else decodes
// with Type/Version preserved and an opaque []byte Payload, which is
// enough for NApps that only care about dispatch-by-type.
type HelloCodec struct{}

func (HelloCodec) Decode(frame []byte) (event.Msg, error) {
	h := ParseHeader(frame)
	body := append([]byte(nil), frame[HeaderLen:]...)
	return event.Msg{Xid: h.Xid, Type: h.Type, Version: h.Version, Payload: body}, nil
}

func (HelloCodec) Encode(msg event.Msg) ([]byte, error) {
	body, _ := msg.Payload.([]byte)
	h := Header{Version: msg.Version, Type: msg.Type, Xid: msg.Xid, Length: uint16(HeaderLen + len(body))}
	out := make([]byte, HeaderLen+len(body))
	h.Put(out)
	copy(out[HeaderLen:], body)
	return out, nil
}
