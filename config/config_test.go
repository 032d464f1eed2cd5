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

package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/kyco/config"
	liberr "github.com/sabouaram/kyco/errors"
)

func writeYAML(dir, body string) string {
	path := filepath.Join(dir, "kycod.yaml")
	Expect(os.WriteFile(path, []byte(body), 0o600)).To(Succeed())
	return path
}

var _ = Describe("Load", func() {
	It("loads a valid config and fills in defaults", func() {
		path := writeYAML(GinkgoT().TempDir(), `
port: 6653
nappsDir: /etc/kycod/napps
`)
		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Listen).To(Equal("0.0.0.0"))
		Expect(cfg.Port).To(Equal(6653))
		Expect(cfg.BufferCapacity).To(Equal(1024))
		Expect(cfg.ShutdownGraceSeconds).To(Equal(5))
		Expect(cfg.MetricsNamespace).To(Equal("kyco"))
	})

	It("rejects a config missing the required port", func() {
		path := writeYAML(GinkgoT().TempDir(), `
listen: 127.0.0.1
`)
		_, err := config.Load(path)
		Expect(err).To(HaveOccurred())
		cerr, ok := err.(liberr.Error)
		Expect(ok).To(BeTrue())
		Expect(cerr.IsCode(liberr.ConfigInvalid)).To(BeTrue())
	})

	It("rejects a port outside the valid TCP range", func() {
		path := writeYAML(GinkgoT().TempDir(), `
port: 99999
`)
		_, err := config.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an adminListen value that is not a host:port", func() {
		path := writeYAML(GinkgoT().TempDir(), `
port: 6653
adminListen: "not a host port"
`)
		_, err := config.Load(path)
		Expect(err).To(HaveOccurred())
	})

	It("reports a missing file as ConfigInvalid", func() {
		_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
		Expect(err).To(HaveOccurred())
		cerr, ok := err.(liberr.Error)
		Expect(ok).To(BeTrue())
		Expect(cerr.IsCode(liberr.ConfigInvalid)).To(BeTrue())
	})

	It("converts to a controller.Config carrying the loaded fields", func() {
		path := writeYAML(GinkgoT().TempDir(), `
listen: 127.0.0.1
port: 6653
maxFrameBytes: 65535
maxConnections: 32
bufferCapacity: 256
shutdownGraceSeconds: 2
adminListen: "127.0.0.1:8080"
`)
		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())

		cc := cfg.Controller()
		Expect(cc.Listen).To(Equal("127.0.0.1"))
		Expect(cc.Port).To(Equal(6653))
		Expect(cc.MaxFrameBytes).To(Equal(65535))
		Expect(cc.MaxConnections).To(Equal(32))
		Expect(cc.BufferCapacity).To(Equal(256))
		Expect(cc.ShutdownGraceSeconds).To(Equal(2))
		Expect(cc.AdminListen).To(Equal("127.0.0.1:8080"))
	})
})
