/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors

// The error taxonomy from the controller error-handling design: each entry
// is connection-local or fatal as noted, never left to escape a handler
// goroutine unconverted.
const (
	// InvalidState: a façade operation was attempted in the wrong lifecycle state.
	InvalidState CodeError = MinPkgController + iota
	// BindFailure: the TCP listener failed to bind. Fatal.
	BindFailure
	// GraceTimeout: shutdown did not complete within the configured grace period. Fatal.
	GraceTimeout
)

const (
	// DuplicateSwitch: rebind of a dpid that already has a live connection. Connection-local.
	DuplicateSwitch CodeError = MinPkgRegistry + iota
	// UnknownSwitch: disconnect of a dpid with no registry entry. Logged.
	UnknownSwitch
)

const (
	// DecodeError: the codec failed to decode a frame. Logged, connection continues.
	DecodeError CodeError = MinPkgWire + iota
	// OversizeFrame: a frame declared a length above the configured maximum.
	OversizeFrame
)

const (
	// ListenerError: a listener callback panicked or returned an error. Logged, dispatch continues.
	ListenerError CodeError = MinPkgListener + iota
)

const (
	// NAppLoadError: a NApp bundle was missing or its factory failed. Logged, load continues.
	NAppLoadError CodeError = MinPkgNApp + iota
)

const (
	// BufferClosed: a put was attempted on a closed buffer. Logged once.
	BufferClosed CodeError = MinPkgBuffer + iota
)

const (
	// ConfigInvalid: a loaded Config failed struct validation or a
	// cross-field check. Fatal at startup.
	ConfigInvalid CodeError = MinPkgConfig + iota
)
