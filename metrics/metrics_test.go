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

package metrics_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/kyco/buffer"
	"github.com/sabouaram/kyco/event"
	"github.com/sabouaram/kyco/metrics"
	"github.com/sabouaram/kyco/registry"
)

var _ = Describe("Metrics", func() {
	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
	})

	It("serves its registry in the Prometheus text format", func() {
		m := metrics.New("kyco_test")

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		m.Handler().ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("kyco_test_switches_connected"))
	})

	It("samples switch and buffer state before a scrape", func() {
		m := metrics.New("kyco_test2")
		swtchs := registry.NewSwitches()
		conn := registry.NewConnection("conn-1", nil)
		_, err := swtchs.AddOrRebind(1, conn)
		Expect(err).NotTo(HaveOccurred())

		bufs := buffer.NewBuffers(4)
		Expect(bufs.Raw.Put(event.New(event.Raw, "conn-1", event.RawPayload{}))).To(Succeed())

		m.Sample(swtchs, bufs)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		m.Handler().ServeHTTP(w, req)
		body := w.Body.String()

		Expect(body).To(ContainSubstring(`kyco_test2_switches_connected 1`))
		Expect(body).To(ContainSubstring(`kyco_test2_buffer_depth{buffer="raw"} 1`))
	})

	It("exposes the same metrics through ExposeGin", func() {
		m := metrics.New("kyco_test3")
		router := gin.New()
		router.GET("/metrics", m.ExposeGin)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("counts decode, listener, and napp-load errors", func() {
		m := metrics.New("kyco_test4")
		m.IncDecodeErrors()
		m.IncListenerErrors("hub")
		m.IncNAppLoadErrors("broken")

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		m.Handler().ServeHTTP(w, req)
		body := w.Body.String()

		Expect(body).To(ContainSubstring("kyco_test4_decode_errors_total 1"))
		Expect(body).To(ContainSubstring(`kyco_test4_listener_errors_total{owner="hub"} 1`))
		Expect(body).To(ContainSubstring(`kyco_test4_napp_load_errors_total{napp="broken"} 1`))
	})
})
