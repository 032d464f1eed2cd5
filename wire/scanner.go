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

import liberr "github.com/sabouaram/kyco/errors"

// Scan extracts complete frames from buf, the connection's accumulated
// partial-frame buffer. It returns each complete frame's raw bytes
// (header included) and the number of bytes consumed from buf, so the
// caller can trim its buffer. maxFrame bounds how large a single frame
// may declare itself (spec.md §4.2's "oversize frames... close the
// connection"); a frame declaring more returns OversizeFrame.
func Scan(buf []byte, maxFrame int) (frames [][]byte, consumed int, err error) {
	for {
		if len(buf)-consumed < HeaderLen {
			return frames, consumed, nil
		}
		h := ParseHeader(buf[consumed : consumed+HeaderLen])
		if int(h.Length) > maxFrame {
			return frames, consumed, liberr.OversizeFrame.Error("frame declares length exceeding maximum")
		}
		if int(h.Length) < HeaderLen {
			return frames, consumed, liberr.DecodeError.Error("frame declares length shorter than header")
		}
		if len(buf)-consumed < int(h.Length) {
			// Partial frame: wait for more bytes.
			return frames, consumed, nil
		}
		frames = append(frames, buf[consumed:consumed+int(h.Length)])
		consumed += int(h.Length)
	}
}
