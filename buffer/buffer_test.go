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

package buffer_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/kyco/buffer"
	liberr "github.com/sabouaram/kyco/errors"
	"github.com/sabouaram/kyco/event"
)

var _ = Describe("Buffer", func() {
	It("delivers items in FIFO order for a single producer", func() {
		b := buffer.New(4)
		for i := 0; i < 4; i++ {
			Expect(b.Put(event.New(event.Raw, "c1", i))).To(Succeed())
		}
		for i := 0; i < 4; i++ {
			e, ok := b.Get()
			Expect(ok).To(BeTrue())
			Expect(e.Content).To(Equal(i))
		}
	})

	It("rejects Put after Close with BufferClosed", func() {
		b := buffer.New(4)
		b.Close(1)
		err := b.Put(event.New(event.Raw, "c1", 1))
		Expect(err).To(HaveOccurred())
		Expect(err.(liberr.Error).IsCode(liberr.BufferClosed)).To(BeTrue())
	})

	It("delivers exactly one Shutdown sentinel per consumer after Close, draining items first", func() {
		b := buffer.New(4)
		Expect(b.Put(event.New(event.Raw, "c1", 1))).To(Succeed())
		Expect(b.Put(event.New(event.Raw, "c1", 2))).To(Succeed())
		b.Close(1)

		e, ok := b.Get()
		Expect(ok).To(BeTrue())
		Expect(e.IsShutdown()).To(BeFalse())

		e, ok = b.Get()
		Expect(ok).To(BeTrue())
		Expect(e.IsShutdown()).To(BeFalse())

		e, ok = b.Get()
		Expect(ok).To(BeTrue())
		Expect(e.IsShutdown()).To(BeTrue())
	})

	It("is safe for concurrent multi-producer Put", func() {
		b := buffer.New(256)
		var wg sync.WaitGroup
		for p := 0; p < 8; p++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				for i := 0; i < 16; i++ {
					Expect(b.Put(event.New(event.Raw, "c", p))).To(Succeed())
				}
			}(p)
		}
		wg.Wait()
		Expect(b.Len()).To(Equal(8 * 16))
	})

	It("Close is idempotent", func() {
		b := buffer.New(1)
		b.Close(1)
		Expect(func() { b.Close(1) }).ToNot(Panic())
		Expect(b.Closed()).To(BeTrue())
	})
})

var _ = Describe("Buffers", func() {
	It("closes all four queues, each yielding one shutdown sentinel", func() {
		bs := buffer.NewBuffers(4)
		bs.Close()

		for _, q := range []*buffer.Buffer{bs.Raw, bs.MsgIn, bs.MsgOut, bs.App} {
			e, ok := q.Get()
			Expect(ok).To(BeTrue())
			Expect(e.IsShutdown()).To(BeTrue())
		}
	})
})
