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

// Package controller implements the façade spec.md §4.10 describes: the
// single entry point that owns the buffers, registries, listener table,
// TCP server, handler stages, and NApp manager, and drives them through
// new->starting->running->stopping->stopped.
//
// Grounded on kyco/controller.py's Controller.start/stop, restructured
// around an explicit state machine (the source has a bare start/stop
// pair with no guard against double-start or double-stop) because
// spec.md requires InvalidState on misuse.
package controller

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/sabouaram/kyco/adminhttp"
	"github.com/sabouaram/kyco/buffer"
	libctx "github.com/nabbar/golib/context"
	liberr "github.com/sabouaram/kyco/errors"
	"github.com/sabouaram/kyco/handler"
	"github.com/sabouaram/kyco/listener"
	liblog "github.com/sabouaram/kyco/logging"
	"github.com/sabouaram/kyco/metrics"
	"github.com/sabouaram/kyco/napp"
	"github.com/sabouaram/kyco/registry"
	"github.com/sabouaram/kyco/server"
	"github.com/sabouaram/kyco/wire"
)

// keyStartedAt, keyConfig are the libctx.Config[T] keys the façade
// stashes itself and its configuration under, so any component handed
// the same Config[T] (e.g. adminhttp, metrics) can read them back
// without a separate side channel.
const (
	keyStartedAt = "started_at"
	keyConfig    = "config"
)

// Config carries everything spec.md §6 assigns to the controller's
// external configuration record. NappsDir and AdminListen are optional;
// zero values disable NApp auto-load and the admin HTTP surface
// respectively. WatchNapps is ignored unless NappsDir is set.
type Config struct {
	Listen               string
	Port                 int
	NappsDir             string
	WatchNapps           bool
	MaxFrameBytes        int
	MaxConnections       int
	BufferCapacity       int
	ShutdownGraceSeconds int
	AdminListen          string
	MetricsNamespace     string
}

func (c Config) grace() time.Duration {
	if c.ShutdownGraceSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ShutdownGraceSeconds) * time.Second
}

// Controller is the façade. Zero value is not usable; build one with New.
type Controller struct {
	cfg   Config
	codec wire.Codec
	log   liblog.Logger

	mu    sync.Mutex
	state State

	ctx    libctx.Config[string]
	cancel context.CancelFunc

	buffers *buffer.Buffers
	conns   *registry.Connections
	swtchs  *registry.Switches
	table   *listener.Table
	srv     *server.Server
	stages  *handler.Stages
	napps   *napp.Manager

	metrics  *metrics.Metrics
	adminsrv *adminhttp.Server
	napplog  hclog.Logger

	watchStop chan struct{}
}

// New builds a Controller in state new. codec is the external
// decode/encode collaborator spec.md §1 places out of scope.
func New(cfg Config, codec wire.Codec, log liblog.Logger) *Controller {
	if cfg.BufferCapacity <= 0 {
		cfg.BufferCapacity = buffer.DefaultCapacity
	}
	return &Controller{
		cfg:   cfg,
		codec: codec,
		log:   log,
		state: StateNew,
		napplog: hclog.New(&hclog.LoggerOptions{
			Name:  "kyco",
			Level: hclog.Info,
		}),
	}
}

// State reports the façade's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Switches exposes the switch registry, e.g. for adminhttp/metrics readers.
func (c *Controller) Switches() *registry.Switches { return c.swtchs }

// Connections exposes the connection registry.
func (c *Controller) Connections() *registry.Connections { return c.conns }

// NApps exposes the NApp manager.
func (c *Controller) NApps() *napp.Manager { return c.napps }

// Buffers exposes the four event buffers, e.g. for metrics depth gauges.
func (c *Controller) Buffers() *buffer.Buffers { return c.buffers }

// Metrics exposes the private Prometheus registry Start built, or nil if
// the controller hasn't started yet.
func (c *Controller) Metrics() *metrics.Metrics { return c.metrics }

// AdminAddr returns the admin HTTP surface's bound address, or nil if
// cfg.AdminListen was empty.
func (c *Controller) AdminAddr() net.Addr {
	if c.adminsrv == nil {
		return nil
	}
	return c.adminsrv.Addr()
}

// Listen registers a core-owned listener callback directly against the
// façade's listener table, for built-ins or tests that need to observe
// dispatch without going through the full NApp load path.
func (c *Controller) Listen(owner, pattern string, fn listener.Func) error {
	return c.table.Register(owner, pattern, fn)
}

// Addr returns the bound TCP address once Start has succeeded.
func (c *Controller) Addr() net.Addr {
	if c.srv == nil {
		return nil
	}
	return c.srv.Addr()
}

// Start implements spec.md §4.10: valid only from new. Allocates the
// buffers and registries, installs the built-in listeners, starts the
// four handler stages and the TCP server, then synchronously loads every
// NApp found in cfg.NappsDir.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.state != StateNew {
		c.mu.Unlock()
		return liberr.InvalidState.Error(fmt.Sprintf("start: controller is %s, not new", c.state))
	}
	c.state = StateStarting
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	c.ctx = libctx.New[string](ctx)
	c.cancel = cancel
	c.ctx.Store(keyStartedAt, time.Now())
	c.ctx.Store(keyConfig, c.cfg)

	c.buffers = buffer.NewBuffers(c.cfg.BufferCapacity)
	c.conns = registry.NewConnections()
	c.swtchs = registry.NewSwitches()
	c.table = listener.New(c.log)

	registerBuiltins(c.table, c.conns, c.swtchs, c.buffers.App, c.log)

	c.stages = &handler.Stages{
		Buffers: c.buffers,
		Conns:   c.conns,
		Table:   c.table,
		Codec:   c.codec,
		Log:     c.log,
	}
	c.stages.Start(c.ctx)

	c.srv = server.New(server.Config{
		Listen:         c.cfg.Listen,
		Port:           c.cfg.Port,
		MaxFrameBytes:  c.cfg.MaxFrameBytes,
		MaxConnections: c.cfg.MaxConnections,
	}, c.conns, c.buffers.Raw, c.buffers.App, c.log)

	if err := c.srv.Start(); err != nil {
		c.mu.Lock()
		c.state = StateNew
		c.mu.Unlock()
		return err
	}

	c.napps = napp.NewManager(c.table, c.capsFor, c.cfg.NappsDir, c.napplog)
	if c.cfg.NappsDir != "" {
		c.napps.LoadAll()
		if c.cfg.WatchNapps {
			c.watchStop = make(chan struct{})
			if err := c.napps.Watch(c.watchStop); err != nil {
				if c.log != nil {
					c.log.Warnf("napps directory watch failed to start: %v", err)
				}
				c.watchStop = nil
			}
		}
	}

	c.metrics = metrics.New(c.cfg.MetricsNamespace)
	if c.cfg.AdminListen != "" {
		c.adminsrv = adminhttp.New(adminhttp.Config{
			Listen:   c.cfg.AdminListen,
			Metrics:  c.metrics,
			Switches: c.swtchs,
			Buffers:  c.buffers,
			NApps:    c.napps,
			Log:      c.log,
		})
		if err := c.adminsrv.Start(); err != nil {
			if c.log != nil {
				c.log.Warnf("admin http server failed to start: %v", err)
			}
			c.adminsrv = nil
		}
	}

	c.mu.Lock()
	c.state = StateRunning
	c.mu.Unlock()
	return nil
}

// Stop implements spec.md §4.10/§5/§7: valid only from running. Unloads
// every NApp (core included), stops accepting and closes every live
// connection, then joins the handler stages within the configured grace
// period.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return liberr.InvalidState.Error(fmt.Sprintf("stop: controller is %s, not running", c.state))
	}
	c.state = StateStopping
	c.mu.Unlock()

	if c.watchStop != nil {
		close(c.watchStop)
		c.watchStop = nil
	}

	if c.napps != nil {
		c.napps.UnloadAllIncludingCore()
	}

	if c.adminsrv != nil {
		_ = c.adminsrv.Stop(c.cfg.grace())
	}

	_ = c.srv.Stop()
	err := c.stages.Stop(c.cfg.grace())
	c.cancel()

	c.mu.Lock()
	c.state = StateStopped
	c.mu.Unlock()
	return err
}

// capsFor builds the capability record a NApp receives at load time, per
// spec.md §9's "NApp-facing logger capability" enrichment: a hclog.Logger
// scoped to the bundle's own name, named off the façade's single NApp
// logger rather than a fresh root each time.
func (c *Controller) capsFor(name string) napp.Capabilities {
	return napp.Capabilities{
		PutMsgIn:  c.buffers.MsgIn.Put,
		PutMsgOut: c.buffers.MsgOut.Put,
		PutApp:    c.buffers.App.Put,
		Log:       c.napplog.Named(name),
	}
}
