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

package controller_test

import (
	"encoding/binary"
	"net"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/kyco/controller"
	liberr "github.com/sabouaram/kyco/errors"
	"github.com/sabouaram/kyco/event"
	"github.com/sabouaram/kyco/wire"
)

func frame(xid uint32, typ uint8, body []byte) []byte {
	h := wire.Header{Version: 0x04, Type: typ, Xid: xid, Length: uint16(wire.HeaderLen + len(body))}
	out := make([]byte, wire.HeaderLen+len(body))
	h.Put(out)
	copy(out[wire.HeaderLen:], body)
	return out
}

func dpidBody(dpid uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, dpid)
	return b
}

func newCtrl() *controller.Controller {
	return controller.New(controller.Config{
		Listen:               "127.0.0.1",
		Port:                 0,
		BufferCapacity:       16,
		ShutdownGraceSeconds: 2,
	}, wire.HelloCodec{}, nil)
}

var _ = Describe("Controller", func() {
	It("rejects Start when not new, and Stop when not running", func() {
		ctrl := newCtrl()
		Expect(ctrl.Start()).To(Succeed())
		defer ctrl.Stop()

		err := ctrl.Start()
		Expect(err).To(HaveOccurred())
		Expect(err.(liberr.Error).IsCode(liberr.InvalidState)).To(BeTrue())

		fresh := newCtrl()
		err = fresh.Stop()
		Expect(err).To(HaveOccurred())
		Expect(err.(liberr.Error).IsCode(liberr.InvalidState)).To(BeTrue())
	})

	It("round-trips a Hello through a registered listener", func() {
		ctrl := newCtrl()
		Expect(ctrl.Start()).To(Succeed())
		defer ctrl.Stop()

		Expect(ctrl.Listen("test-hub", "MsgIn", func(e event.Event) {
			msg, ok := e.Content.(event.Msg)
			if !ok || msg.Type != wire.TypeHello {
				return
			}
			_ = ctrl.Buffers().MsgOut.Put(event.New(event.MsgOut, e.Connection, event.Msg{
				Xid: msg.Xid, Type: wire.TypeHello, Version: msg.Version,
			}))
		})).To(Succeed())

		conn, err := net.Dial("tcp", ctrl.Addr().String())
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		_, err = conn.Write(frame(42, wire.TypeHello, nil))
		Expect(err).NotTo(HaveOccurred())

		reply := make([]byte, wire.HeaderLen)
		_, err = conn.Read(reply)
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(Equal(frame(42, wire.TypeHello, nil)))
	})

	It("learns the dpid from a FeaturesReply, then announces SwitchDown on disconnect", func() {
		ctrl := newCtrl()
		Expect(ctrl.Start()).To(Succeed())
		defer ctrl.Stop()

		var mu sync.Mutex
		var up, down []uint64
		Expect(ctrl.Listen("test-hub", "SwitchUp", func(e event.Event) {
			p := e.Content.(event.SwitchUpPayload)
			mu.Lock()
			up = append(up, p.Dpid)
			mu.Unlock()
		})).To(Succeed())
		Expect(ctrl.Listen("test-hub", "SwitchDown", func(e event.Event) {
			p := e.Content.(event.SwitchDownPayload)
			mu.Lock()
			down = append(down, p.Dpid)
			mu.Unlock()
		})).To(Succeed())

		conn, err := net.Dial("tcp", ctrl.Addr().String())
		Expect(err).NotTo(HaveOccurred())

		_, err = conn.Write(frame(1, wire.TypeFeaturesReply, dpidBody(99)))
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() []uint64 {
			mu.Lock()
			defer mu.Unlock()
			return append([]uint64(nil), up...)
		}, time.Second).Should(Equal([]uint64{99}))

		sw, ok := ctrl.Switches().Get(99)
		Expect(ok).To(BeTrue())
		Expect(sw.Connected()).To(BeTrue())

		Expect(conn.Close()).To(Succeed())

		Eventually(func() []uint64 {
			mu.Lock()
			defer mu.Unlock()
			return append([]uint64(nil), down...)
		}, time.Second).Should(Equal([]uint64{99}))
		Eventually(func() bool { return sw.Connected() }, time.Second).Should(BeFalse())
	})

	It("rejects a duplicate dpid claimed by a second live connection", func() {
		ctrl := newCtrl()
		Expect(ctrl.Start()).To(Succeed())
		defer ctrl.Stop()

		connA, err := net.Dial("tcp", ctrl.Addr().String())
		Expect(err).NotTo(HaveOccurred())
		defer connA.Close()
		_, err = connA.Write(frame(1, wire.TypeFeaturesReply, dpidBody(7)))
		Expect(err).NotTo(HaveOccurred())
		Eventually(func() bool {
			sw, ok := ctrl.Switches().Get(7)
			return ok && sw.Connected()
		}, time.Second).Should(BeTrue())

		connB, err := net.Dial("tcp", ctrl.Addr().String())
		Expect(err).NotTo(HaveOccurred())
		defer connB.Close()
		_, err = connB.Write(frame(1, wire.TypeFeaturesReply, dpidBody(7)))
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 1)
		connB.SetReadDeadline(time.Now().Add(time.Second))
		_, err = connB.Read(buf)
		Expect(err).To(HaveOccurred())

		Expect(ctrl.Switches().Len()).To(Equal(1))
	})

	It("closes the connection on an oversize frame", func() {
		ctrl := controller.New(controller.Config{
			Listen:               "127.0.0.1",
			Port:                 0,
			BufferCapacity:       16,
			ShutdownGraceSeconds: 2,
			MaxFrameBytes:        16,
		}, wire.HelloCodec{}, nil)
		Expect(ctrl.Start()).To(Succeed())
		defer ctrl.Stop()

		conn, err := net.Dial("tcp", ctrl.Addr().String())
		Expect(err).NotTo(HaveOccurred())
		defer conn.Close()

		oversize := make([]byte, wire.HeaderLen)
		h := wire.Header{Version: 0x04, Type: wire.TypeHello, Xid: 1, Length: 0xFFFF}
		h.Put(oversize)
		_, err = conn.Write(oversize)
		Expect(err).NotTo(HaveOccurred())

		buf := make([]byte, 1)
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, err = conn.Read(buf)
		Expect(err).To(HaveOccurred())
	})
})
