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

package handler_test

import (
	"context"
	"net"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/kyco/buffer"
	"github.com/sabouaram/kyco/event"
	"github.com/sabouaram/kyco/handler"
	"github.com/sabouaram/kyco/listener"
	"github.com/sabouaram/kyco/registry"
	"github.com/sabouaram/kyco/wire"
)

func helloFrame(xid uint32) []byte {
	h := wire.Header{Version: 0x04, Type: wire.TypeHello, Length: 8, Xid: xid}
	b := make([]byte, 8)
	h.Put(b)
	return b
}

var _ = Describe("Stages", func() {
	var (
		bufs  *buffer.Buffers
		conns *registry.Connections
		table *listener.Table
		st    *handler.Stages
	)

	BeforeEach(func() {
		bufs = buffer.NewBuffers(16)
		conns = registry.NewConnections()
		table = listener.New(nil)
		st = &handler.Stages{
			Buffers: bufs,
			Conns:   conns,
			Table:   table,
			Codec:   wire.HelloCodec{},
		}
		st.Start(context.Background())
	})

	AfterEach(func() {
		_ = st.Stop(time.Second)
	})

	It("emits NewConnection, strictly before MsgIn, for the first frame on a connection", func() {
		var mu sync.Mutex
		var order []string
		Expect(table.Register("core", "NewConnection", func(event.Event) {
			mu.Lock()
			order = append(order, "NewConnection")
			mu.Unlock()
		})).To(Succeed())
		Expect(table.Register("core", "MsgIn", func(event.Event) {
			mu.Lock()
			order = append(order, "MsgIn")
			mu.Unlock()
		})).To(Succeed())

		server, client := net.Pipe()
		defer client.Close()
		defer server.Close()

		_ = bufs.Raw.Put(event.New(event.Raw, "conn-1", event.RawPayload{Bytes: helloFrame(1), Conn: server}))

		Eventually(func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), order...)
		}, time.Second).Should(Equal([]string{"NewConnection", "MsgIn"}))
	})

	It("resolves the connection and writes the encoded frame, then fans out", func() {
		server, client := net.Pipe()
		defer server.Close()
		defer client.Close()

		c := registry.NewConnection("conn-2", server)
		conns.Add(c)

		var dispatched bool
		Expect(table.Register("core", "MsgOut", func(event.Event) {
			dispatched = true
		})).To(Succeed())

		readDone := make(chan []byte, 1)
		go func() {
			buf := make([]byte, 8)
			n, _ := client.Read(buf)
			readDone <- buf[:n]
		}()

		_ = bufs.MsgOut.Put(event.New(event.MsgOut, "conn-2", event.Msg{Xid: 7, Type: wire.TypeHello, Version: 0x04}))

		Eventually(readDone, time.Second).Should(Receive(Equal(helloFrame(7))))
		Eventually(func() bool { return dispatched }, time.Second).Should(BeTrue())
	})

	It("drops a msg-out event for an unknown connection without stalling the stage", func() {
		_ = bufs.MsgOut.Put(event.New(event.MsgOut, "ghost", event.Msg{Xid: 1, Type: wire.TypeHello, Version: 0x04}))

		server, client := net.Pipe()
		defer server.Close()
		defer client.Close()
		c := registry.NewConnection("conn-3", server)
		conns.Add(c)

		readDone := make(chan []byte, 1)
		go func() {
			buf := make([]byte, 8)
			n, _ := client.Read(buf)
			readDone <- buf[:n]
		}()

		_ = bufs.MsgOut.Put(event.New(event.MsgOut, "conn-3", event.Msg{Xid: 2, Type: wire.TypeHello, Version: 0x04}))
		Eventually(readDone, time.Second).Should(Receive(Equal(helloFrame(2))))
	})
})
