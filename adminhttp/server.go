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

// Package adminhttp is the controller's read-only status surface: a small
// gin router exposing the switch registry, the loaded NApp set, and the
// metrics package's Prometheus handler, alongside the switch-facing TCP
// data plane (spec.md §1 treats logging/config/CLI as out of scope, but
// says nothing against an operator-facing status endpoint; the teacher's
// router+status package pairing is exactly this shape next to a
// data-plane listener).
//
// Entirely optional: a Config with an empty Listen field means the
// façade never constructs one.
package adminhttp

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sabouaram/kyco/buffer"
	liblog "github.com/sabouaram/kyco/logging"
	"github.com/sabouaram/kyco/metrics"
	"github.com/sabouaram/kyco/napp"
	"github.com/sabouaram/kyco/registry"
)

// Config carries the admin surface's own bind address plus the
// collaborators it reads from. All fields are read-only views the façade
// already owns; adminhttp never mutates switch/NApp state.
type Config struct {
	Listen   string
	Metrics  *metrics.Metrics
	Switches *registry.Switches
	Buffers  *buffer.Buffers
	NApps    *napp.Manager
	Log      liblog.Logger
}

// Server owns the admin HTTP listener. Zero value is not usable; build
// one with New.
type Server struct {
	cfg Config
	srv *http.Server
	ln  net.Listener
}

// New builds a Server bound to cfg.Listen. It does not start listening;
// call Start.
func New(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg}
	r.GET("/switches", s.listSwitches)
	r.GET("/napps", s.listNApps)
	if cfg.Metrics != nil {
		r.GET("/metrics", s.serveMetrics)
	}
	s.srv = &http.Server{Handler: r}
	return s
}

// serveMetrics samples the switch registry and buffers into the gauges
// (metrics.Sample has no independent pusher) immediately before handing
// the request to the Prometheus handler, so every scrape reflects current
// state rather than whatever the last sample happened to be.
func (s *Server) serveMetrics(c *gin.Context) {
	s.cfg.Metrics.Sample(s.cfg.Switches, s.cfg.Buffers)
	s.cfg.Metrics.ExposeGin(c)
}

// Start binds the listener and serves in the background. A bind failure
// is returned synchronously; a failure after that point is logged and
// does not bring down the controller (the admin surface is advisory).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return err
	}
	s.ln = ln
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			if s.cfg.Log != nil {
				s.cfg.Log.Warnf("adminhttp server stopped: %v", err)
			}
		}
	}()
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop gracefully shuts down the HTTP server, bounded by timeout.
func (s *Server) Stop(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

type switchView struct {
	Dpid      uint64 `json:"dpid"`
	Connected bool   `json:"connected"`
}

func (s *Server) listSwitches(c *gin.Context) {
	views := make([]switchView, 0)
	if s.cfg.Switches != nil {
		s.cfg.Switches.Range(func(dpid uint64, sw *registry.Switch) bool {
			views = append(views, switchView{Dpid: dpid, Connected: sw.Connected()})
			return true
		})
	}
	c.JSON(http.StatusOK, gin.H{"switches": views})
}

func (s *Server) listNApps(c *gin.Context) {
	infos := make([]napp.Info, 0)
	if s.cfg.NApps != nil {
		infos = s.cfg.NApps.Snapshot()
	}
	c.JSON(http.StatusOK, gin.H{"napps": infos})
}
