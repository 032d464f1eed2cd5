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

package controller

import (
	"encoding/binary"

	"github.com/sabouaram/kyco/buffer"
	"github.com/sabouaram/kyco/event"
	"github.com/sabouaram/kyco/listener"
	liblog "github.com/sabouaram/kyco/logging"
	"github.com/sabouaram/kyco/registry"
	"github.com/sabouaram/kyco/wire"
)

// builtinOwner tags the façade's own listener registrations in the
// listener table, distinct from any NApp's bundle name.
const builtinOwner = "core"

// registerBuiltins wires the handful of listeners the controller itself
// needs regardless of which NApps are loaded.
//
// spec.md §4.6 describes NewConnection as creating or rebinding a Switch
// record, which would require a dpid at NewConnection time. But per
// spec.md §4.3 NewConnection fires before any frame is decoded, so no
// dpid can be known yet, and the source (original_source/kyco/controller.py,
// new_connection_handler) papers over this by treating the connection id
// itself as the dpid — which would not survive a reconnect on a new TCP
// connection, breaking the stable-dpid requirement scenario S2/S3 need.
// This core instead learns the dpid from the first decoded
// FeaturesReply-type MsgIn for the connection, and only then calls
// Switches.AddOrRebind; the NewConnection listener itself only logs.
func registerBuiltins(table *listener.Table, conns *registry.Connections, swtchs *registry.Switches, app *buffer.Buffer, log liblog.Logger) {
	_ = table.Register(builtinOwner, "NewConnection", func(e event.Event) {
		nc, ok := e.Content.(event.NewConnectionPayload)
		if !ok {
			return
		}
		if log != nil {
			log.Infof("new connection %s", nc.ConnectionID)
		}
	})

	_ = table.Register(builtinOwner, "MsgIn", func(e event.Event) {
		msg, ok := e.Content.(event.Msg)
		if !ok || msg.Type != wire.TypeFeaturesReply {
			return
		}
		dpid, ok := dpidFromPayload(msg.Payload)
		if !ok {
			if log != nil {
				log.Warnf("FeaturesReply on connection %s has no usable dpid payload", e.Connection)
			}
			return
		}

		conn, found := conns.Get(e.Connection)
		if !found {
			return
		}
		conn.SetDpid(dpid)

		sw, err := swtchs.AddOrRebind(dpid, conn)
		if err != nil {
			if log != nil {
				log.Warnf("rejecting dpid %d on connection %s: %v", dpid, e.Connection, err)
			}
			_ = conn.Close()
			return
		}

		_ = app.Put(event.New(event.App, e.Connection, event.SwitchUpPayload{
			Dpid:         sw.Dpid,
			ConnectionID: e.Connection,
		}))
	})

	_ = table.Register(builtinOwner, "ConnectionLost", func(e event.Event) {
		cl, ok := e.Content.(event.ConnectionLostPayload)
		if !ok {
			return
		}

		// The server removes the connection from the registry before
		// putting ConnectionLost, so the dpid is read from the switch
		// still bound to that connection instead.
		var dpid uint64
		swtchs.Range(func(d uint64, sw *registry.Switch) bool {
			if c := sw.Connection(); c != nil && c.ID == cl.ConnectionID {
				dpid = d
				return false
			}
			return true
		})

		if err := swtchs.DisconnectByConnection(cl.ConnectionID); err != nil {
			// No switch ever bound to this connection (it never sent a
			// FeaturesReply, or was rejected as a duplicate) — nothing to
			// tear down, and no SwitchDown to announce.
			return
		}

		_ = app.Put(event.New(event.App, cl.ConnectionID, event.SwitchDownPayload{
			Dpid:         dpid,
			ConnectionID: cl.ConnectionID,
		}))
	})
}

// dpidFromPayload accepts either a codec that already decoded the
// FeaturesReply body into a uint64, or one that left it as an opaque
// big-endian 8-byte payload (as HelloCodec does for any message type it
// doesn't specifically understand).
func dpidFromPayload(payload any) (uint64, bool) {
	switch p := payload.(type) {
	case uint64:
		return p, true
	case []byte:
		if len(p) < 8 {
			return 0, false
		}
		return binary.BigEndian.Uint64(p[:8]), true
	default:
		return 0, false
	}
}
