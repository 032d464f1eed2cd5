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

// Package handler implements the four parallel consumer stages described
// in spec.md §4.3-§4.6: raw, msg_in, msg_out, and app. Each stage owns
// exactly one buffer and runs on its own goroutine until it observes the
// Shutdown sentinel.
package handler

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sabouaram/kyco/buffer"
	liberr "github.com/sabouaram/kyco/errors"
	"github.com/sabouaram/kyco/listener"
	liblog "github.com/sabouaram/kyco/logging"
	"github.com/sabouaram/kyco/registry"
	"github.com/sabouaram/kyco/wire"
)

// Stages wires the four handler goroutines to the shared buffers,
// registries, listener table, and codec the controller façade owns.
type Stages struct {
	Buffers *buffer.Buffers
	Conns   *registry.Connections
	Table   *listener.Table
	Codec   wire.Codec
	Log     liblog.Logger

	rawGroup  *errgroup.Group
	restGroup *errgroup.Group
}

// Start launches all four stages. Raw runs in its own errgroup, separate
// from msg_in/msg_out/app, because Stop needs to join the raw stage
// before closing the other three buffers (see Stop).
func (s *Stages) Start(ctx context.Context) {
	rg, _ := errgroup.WithContext(ctx)
	gg, _ := errgroup.WithContext(ctx)

	rg.Go(func() error { s.runRaw(); return nil })
	gg.Go(func() error { s.runMsgIn(); return nil })
	gg.Go(func() error { s.runMsgOut(); return nil })
	gg.Go(func() error { s.runApp(); return nil })

	s.rawGroup, s.restGroup = rg, gg
}

// Stop implements spec.md §5's cancellation sequence for the handler
// stages: the raw stage is closed and joined first (it is itself a
// producer onto app_events and msg_in_events, so it must fully drain
// before those buffers are closed), then the remaining three buffers are
// closed together and joined. Exceeding grace on either half is reported
// as GraceTimeout, per spec.md §7/§9, and the process is expected to exit
// anyway — this method only reports it.
func (s *Stages) Stop(grace time.Duration) error {
	s.Buffers.Raw.Close(1)
	if err := joinWithin(s.rawGroup, grace); err != nil {
		return err
	}

	s.Buffers.MsgIn.Close(1)
	s.Buffers.MsgOut.Close(1)
	s.Buffers.App.Close(1)
	return joinWithin(s.restGroup, grace)
}

func joinWithin(g *errgroup.Group, grace time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(grace):
		return liberr.GraceTimeout.Error("handler stage did not exit within the shutdown grace period")
	}
}

func (s *Stages) runMsgIn() {
	for {
		e, ok := s.Buffers.MsgIn.Get()
		if !ok || e.IsShutdown() {
			return
		}
		s.Table.Dispatch(e)
	}
}

func (s *Stages) runApp() {
	for {
		e, ok := s.Buffers.App.Get()
		if !ok || e.IsShutdown() {
			return
		}
		s.Table.Dispatch(e)
		signalNewConnectionDone(e)
	}
}
