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

package buffer

// Buffers owns the four event-family queues the controller wires its
// handler stages to, mirroring the source's KycoBuffers grouping.
type Buffers struct {
	Raw    *Buffer
	MsgIn  *Buffer
	MsgOut *Buffer
	App    *Buffer
}

// New builds the four buffers with the given per-buffer capacity.
func NewBuffers(capacity int) *Buffers {
	return &Buffers{
		Raw:    New(capacity),
		MsgIn:  New(capacity),
		MsgOut: New(capacity),
		App:    New(capacity),
	}
}

// Close closes all four buffers. Each buffer gets exactly one consumer's
// worth of sentinel since each is read by exactly one handler stage.
func (b *Buffers) Close() {
	b.Raw.Close(1)
	b.MsgIn.Close(1)
	b.MsgOut.Close(1)
	b.App.Close(1)
}
