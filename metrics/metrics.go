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

// Package metrics exposes the controller's runtime state as Prometheus
// metrics on a private registry, so a process embedding the controller
// alongside other instrumented components never collides with the global
// registry's metric names.
package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sabouaram/kyco/buffer"
	"github.com/sabouaram/kyco/registry"
)

// Metrics owns a private prometheus.Registry and the gauges/counters the
// controller's components report into.
type Metrics struct {
	reg *prometheus.Registry

	switchesConnected prometheus.Gauge
	bufferDepth       *prometheus.GaugeVec
	bufferClosed      *prometheus.GaugeVec
	decodeErrors      prometheus.Counter
	listenerErrors    *prometheus.CounterVec
	nappLoadErrors    *prometheus.CounterVec
}

// New builds a Metrics on a fresh private registry, every metric prefixed
// with namespace (the empty string uses Prometheus's unprefixed default).
func New(namespace string) *Metrics {
	m := &Metrics{reg: prometheus.NewRegistry()}

	m.switchesConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "switches_connected",
		Help:      "Number of switches with a live connection.",
	})
	m.bufferDepth = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "buffer_depth",
		Help:      "Number of events currently queued in a stage buffer.",
	}, []string{"buffer"})
	m.bufferClosed = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "buffer_closed",
		Help:      "1 if the stage buffer has been closed, 0 otherwise.",
	}, []string{"buffer"})
	m.decodeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decode_errors_total",
		Help:      "Number of frames that failed codec decode.",
	})
	m.listenerErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listener_errors_total",
		Help:      "Number of listener callback panics, by owning NApp.",
	}, []string{"owner"})
	m.nappLoadErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "napp_load_errors_total",
		Help:      "Number of failed NApp load attempts, by bundle name.",
	}, []string{"napp"})

	m.reg.MustRegister(
		m.switchesConnected,
		m.bufferDepth,
		m.bufferClosed,
		m.decodeErrors,
		m.listenerErrors,
		m.nappLoadErrors,
	)
	return m
}

// IncDecodeErrors increments the decode-error counter by one.
func (m *Metrics) IncDecodeErrors() { m.decodeErrors.Inc() }

// IncListenerErrors increments the listener-panic counter for owner.
func (m *Metrics) IncListenerErrors(owner string) { m.listenerErrors.WithLabelValues(owner).Inc() }

// IncNAppLoadErrors increments the NApp-load-failure counter for name.
func (m *Metrics) IncNAppLoadErrors(name string) { m.nappLoadErrors.WithLabelValues(name).Inc() }

// Sample snapshots the switch registry and the four stage buffers into the
// gauges. adminhttp's /metrics handler invokes this before every scrape,
// since none of the underlying types push their own state.
func (m *Metrics) Sample(swtchs *registry.Switches, bufs *buffer.Buffers) {
	if swtchs != nil {
		n := 0
		swtchs.Range(func(_ uint64, sw *registry.Switch) bool {
			if sw.Connected() {
				n++
			}
			return true
		})
		m.switchesConnected.Set(float64(n))
	}
	if bufs == nil {
		return
	}
	for name, b := range map[string]*buffer.Buffer{
		"raw": bufs.Raw, "msg_in": bufs.MsgIn, "msg_out": bufs.MsgOut, "app": bufs.App,
	} {
		m.bufferDepth.WithLabelValues(name).Set(float64(b.Len()))
		closed := 0.0
		if b.Closed() {
			closed = 1.0
		}
		m.bufferClosed.WithLabelValues(name).Set(closed)
	}
}

// Handler returns an http.Handler serving this registry's metrics in the
// Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// ExposeGin wires this registry's metrics into a gin route, mirroring the
// handler signature adminhttp uses for every other read-only endpoint.
func (m *Metrics) ExposeGin(c *gin.Context) {
	m.Handler().ServeHTTP(c.Writer, c.Request)
}
