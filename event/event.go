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

// Package event defines the tagged event carried across the four buffers
// that make up the controller's dispatch pipeline.
package event

import "time"

// Kind tags which buffer an Event travels on.
type Kind uint8

const (
	Raw Kind = iota
	MsgIn
	MsgOut
	App
	Shutdown
)

func (k Kind) String() string {
	switch k {
	case Raw:
		return "Raw"
	case MsgIn:
		return "MsgIn"
	case MsgOut:
		return "MsgOut"
	case App:
		return "App"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

// Event is the immutable record dispatched through buffers and listeners.
// Connection is empty for internal events that are not tied to a switch.
type Event struct {
	Kind       Kind
	Timestamp  time.Time
	Connection string
	Content    any
}

// TypeName returns the name the listener table matches patterns against.
// Events with a nil Content, and decoded protocol messages (Content is a
// Msg, which serves both MsgIn and MsgOut and so carries no type name of
// its own), match against the Kind's own name — this is what lets a NApp
// subscribe to the generic "MsgIn" pattern and branch on Msg.Type itself.
// Anything else prefers a declared EventTypeName, falling back to its
// reflect-derived bare struct name for NApp-defined payloads.
func (e Event) TypeName() string {
	if e.Content == nil {
		return e.Kind.String()
	}
	if _, ok := e.Content.(Msg); ok {
		return e.Kind.String()
	}
	if n, ok := e.Content.(interface{ EventTypeName() string }); ok {
		return n.EventTypeName()
	}
	return typeName(e.Content)
}

// New builds an Event stamped with the current time.
func New(kind Kind, connection string, content any) Event {
	return Event{
		Kind:       kind,
		Timestamp:  time.Now(),
		Connection: connection,
		Content:    content,
	}
}

// NewShutdown builds the poison-pill sentinel for a given buffer consumer.
func NewShutdown() Event {
	return Event{Kind: Shutdown, Timestamp: time.Now()}
}

// IsShutdown reports whether e is the poison-pill sentinel.
func (e Event) IsShutdown() bool {
	return e.Kind == Shutdown
}
