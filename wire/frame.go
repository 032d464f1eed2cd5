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

// Package wire implements the OpenFlow framing boundary (spec.md §6): the
// 8-byte header every message begins with, and the Codec interface that
// delegates semantic decode/encode of the frame body to an external
// collaborator (out of scope per spec.md §1).
package wire

import "encoding/binary"

// HeaderLen is the fixed size of every OpenFlow message header.
const HeaderLen = 8

// Header is the fixed 8-byte preamble of every OpenFlow message:
// version:uint8, type:uint8, length:uint16 big-endian, xid:uint32 big-endian.
type Header struct {
	Version uint8
	Type    uint8
	Length  uint16
	Xid     uint32
}

// ParseHeader reads a Header from the first HeaderLen bytes of b. It
// panics if len(b) < HeaderLen; callers must check length first (see
// Scanner.Next).
func ParseHeader(b []byte) Header {
	return Header{
		Version: b[0],
		Type:    b[1],
		Length:  binary.BigEndian.Uint16(b[2:4]),
		Xid:     binary.BigEndian.Uint32(b[4:8]),
	}
}

// Put writes h back out in wire format into b (len(b) >= HeaderLen).
func (h Header) Put(b []byte) {
	b[0] = h.Version
	b[1] = h.Type
	binary.BigEndian.PutUint16(b[2:4], h.Length)
	binary.BigEndian.PutUint32(b[4:8], h.Xid)
}

// BodyLen is the number of bytes following the header, per spec.md §6
// ("body length = length-8").
func (h Header) BodyLen() int {
	if int(h.Length) < HeaderLen {
		return 0
	}
	return int(h.Length) - HeaderLen
}
