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

package listener_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/kyco/event"
	"github.com/sabouaram/kyco/listener"
)

var _ = Describe("Table", func() {
	var t *listener.Table

	BeforeEach(func() {
		t = listener.New(nil)
	})

	It("dispatches to every listener whose pattern matches, in registration order", func() {
		var order []string
		Expect(t.Register("napp-a", "SwitchUp", func(event.Event) {
			order = append(order, "a")
		})).To(Succeed())
		Expect(t.Register("napp-b", "SwitchUp", func(event.Event) {
			order = append(order, "b")
		})).To(Succeed())
		Expect(t.Register("napp-c", "SwitchDown", func(event.Event) {
			order = append(order, "c")
		})).To(Succeed())

		t.Dispatch(event.New(event.App, "conn-1", event.SwitchUpPayload{Dpid: 1}))
		Expect(order).To(Equal([]string{"a", "b"}))
	})

	It("anchors patterns so a prefix does not match a longer type name", func() {
		var hits int
		Expect(t.Register("napp-a", "SwitchUp", func(event.Event) {
			hits++
		})).To(Succeed())

		t.Dispatch(event.New(event.App, "conn-1", event.SwitchUpPayload{}))
		t.Dispatch(event.New(event.App, "conn-1", event.SwitchDownPayload{}))
		Expect(hits).To(Equal(1))
	})

	It("isolates a panicking listener without blocking the rest", func() {
		var after bool
		Expect(t.Register("napp-bad", "SwitchUp", func(event.Event) {
			panic("boom")
		})).To(Succeed())
		Expect(t.Register("napp-good", "SwitchUp", func(event.Event) {
			after = true
		})).To(Succeed())

		Expect(func() {
			t.Dispatch(event.New(event.App, "conn-1", event.SwitchUpPayload{}))
		}).ToNot(Panic())
		Expect(after).To(BeTrue())
	})

	It("removes every registration owned by a napp on Unregister", func() {
		var hits int
		Expect(t.Register("napp-a", "SwitchUp", func(event.Event) { hits++ })).To(Succeed())
		Expect(t.Register("napp-a", "SwitchDown", func(event.Event) { hits++ })).To(Succeed())
		Expect(t.Register("napp-b", "SwitchUp", func(event.Event) { hits++ })).To(Succeed())
		Expect(t.Len()).To(Equal(3))

		t.Unregister("napp-a")
		Expect(t.Len()).To(Equal(1))

		t.Dispatch(event.New(event.App, "conn-1", event.SwitchUpPayload{}))
		t.Dispatch(event.New(event.App, "conn-1", event.SwitchDownPayload{}))
		Expect(hits).To(Equal(1))
	})

	It("matches patterns as a regular expression, not a literal string", func() {
		var hits int
		Expect(t.Register("napp-a", "Switch(Up|Down)", func(event.Event) { hits++ })).To(Succeed())

		t.Dispatch(event.New(event.App, "conn-1", event.SwitchUpPayload{}))
		t.Dispatch(event.New(event.App, "conn-1", event.SwitchDownPayload{}))
		t.Dispatch(event.New(event.App, "conn-1", event.NewConnectionPayload{}))
		Expect(hits).To(Equal(2))
	})
})
