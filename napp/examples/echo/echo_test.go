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

package echo_test

import (
	hclog "github.com/hashicorp/go-hclog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/kyco/event"
	"github.com/sabouaram/kyco/listener"
	"github.com/sabouaram/kyco/napp"
	"github.com/sabouaram/kyco/napp/examples/echo"
	"github.com/sabouaram/kyco/wire"
)

var _ = Describe("echo NApp", func() {
	It("replies to a Hello with a Hello carrying the same xid", func() {
		var out []event.Event
		inst := echo.New()
		inst.Start(napp.Capabilities{
			PutMsgOut: func(e event.Event) error { out = append(out, e); return nil },
			Log:       hclog.NewNullLogger(),
		}, func(pattern string, fn listener.Func) {
			Expect(pattern).To(Equal("MsgIn"))
			e := event.New(event.MsgIn, "conn-1", event.Msg{Xid: 7, Type: wire.TypeHello, Version: 0x04})
			fn(e)
		})

		Expect(out).To(HaveLen(1))
		Expect(out[0].Kind).To(Equal(event.MsgOut))
		Expect(out[0].Connection).To(Equal("conn-1"))
		msg := out[0].Content.(event.Msg)
		Expect(msg.Xid).To(Equal(uint32(7)))
		Expect(msg.Type).To(Equal(wire.TypeHello))

		inst.Shutdown()
	})

	It("ignores non-Hello messages", func() {
		var out []event.Event
		inst := echo.New()
		inst.Start(napp.Capabilities{
			PutMsgOut: func(e event.Event) error { out = append(out, e); return nil },
			Log:       hclog.NewNullLogger(),
		}, func(pattern string, fn listener.Func) {
			e := event.New(event.MsgIn, "conn-1", event.Msg{Xid: 1, Type: wire.TypeFeaturesReply})
			fn(e)
		})
		Expect(out).To(BeEmpty())
	})
})
