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

package napp_test

import (
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/kyco/listener"
	"github.com/sabouaram/kyco/napp"
)

var _ = Describe("Manager.Watch", func() {
	It("loads a registered bundle that appears after Watch starts", func() {
		register := "watched-hub"
		napp.Register(register, false, func() napp.NApp { return &fakeNApp{} })
		defer napp.Unregister(register)

		dir := GinkgoT().TempDir()
		table := listener.New(nil)
		mgr := napp.NewManager(table, capsFor, dir, hclog.NewNullLogger())

		stop := make(chan struct{})
		defer close(stop)
		Expect(mgr.Watch(stop)).To(Succeed())

		Expect(os.Mkdir(filepath.Join(dir, register), 0o755)).To(Succeed())

		Eventually(func() bool {
			return mgr.Loaded(register)
		}).Should(BeTrue())
	})

	It("ignores a new directory that names no registered bundle", func() {
		dir := GinkgoT().TempDir()
		table := listener.New(nil)
		mgr := napp.NewManager(table, capsFor, dir, hclog.NewNullLogger())

		stop := make(chan struct{})
		defer close(stop)
		Expect(mgr.Watch(stop)).To(Succeed())

		Expect(os.Mkdir(filepath.Join(dir, "unregistered"), 0o755)).To(Succeed())

		Consistently(func() int {
			return mgr.Len()
		}).Should(Equal(0))
	})
})
