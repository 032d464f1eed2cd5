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

// Package echo is the bundled example NApp wire/codec.go's doc comment
// refers to: on every MsgIn Hello, it replies with a Hello carrying the
// same xid (spec.md §8 scenario S1). It ships statically linked (spec.md
// §9 option (a)) and registers itself under the bundle name "echo";
// enabling it is a matter of creating an (empty) <napps_dir>/echo
// subdirectory so napp.Manager.LoadAll picks it up.
package echo

import (
	"github.com/sabouaram/kyco/event"
	"github.com/sabouaram/kyco/napp"
	"github.com/sabouaram/kyco/wire"
)

func init() {
	napp.Register("echo", false, New)
}

type echoNApp struct {
	caps napp.Capabilities
}

// New constructs the echo NApp. It is registered under the name "echo";
// napp.Manager.Load looks it up by that name.
func New() napp.NApp {
	return &echoNApp{}
}

func (n *echoNApp) Start(caps napp.Capabilities, subscribe napp.Subscribe) {
	n.caps = caps
	subscribe("MsgIn", n.onMsgIn)
}

func (n *echoNApp) onMsgIn(e event.Event) {
	msg, ok := e.Content.(event.Msg)
	if !ok || msg.Type != wire.TypeHello {
		return
	}
	reply := event.New(event.MsgOut, e.Connection, event.Msg{
		Xid:     msg.Xid,
		Type:    wire.TypeHello,
		Version: msg.Version,
		Payload: msg.Payload,
	})
	if err := n.caps.PutMsgOut(reply); err != nil && n.caps.Log != nil {
		n.caps.Log.Warn("echo: failed to enqueue Hello reply", "error", err)
	}
}

func (n *echoNApp) Shutdown() {}
