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

// Package server implements the TCP accept loop and per-connection
// framing readers described in spec.md §4.2: it is the only component
// that touches net.Listener/net.Conn directly.
package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	uuid "github.com/hashicorp/go-uuid"
	"golang.org/x/net/netutil"
	"golang.org/x/time/rate"

	"github.com/sabouaram/kyco/buffer"
	liberr "github.com/sabouaram/kyco/errors"
	"github.com/sabouaram/kyco/event"
	liblog "github.com/sabouaram/kyco/logging"
	"github.com/sabouaram/kyco/registry"
	"github.com/sabouaram/kyco/wire"
)

// Config carries everything the server needs that spec.md §6 assigns to
// the controller's external configuration record.
type Config struct {
	Listen         string
	Port           int
	MaxFrameBytes  int // default 65535
	MaxConnections int // 0 = unbounded
}

func (c Config) addr() string {
	return fmt.Sprintf("%s:%d", c.Listen, c.Port)
}

// Server is the TCP accept loop plus one reader goroutine per accepted
// connection.
type Server struct {
	cfg   Config
	conns *registry.Connections
	raw   *buffer.Buffer
	app   *buffer.Buffer
	log   liblog.Logger

	ln net.Listener
	wg sync.WaitGroup

	limiter *rate.Limiter
}

// New builds a Server. conns, raw, and app are the shared registry and
// buffers the controller façade owns.
func New(cfg Config, conns *registry.Connections, raw, app *buffer.Buffer, log liblog.Logger) *Server {
	if cfg.MaxFrameBytes <= 0 {
		cfg.MaxFrameBytes = 65535
	}
	return &Server{
		cfg:     cfg,
		conns:   conns,
		raw:     raw,
		app:     app,
		log:     log,
		limiter: rate.NewLimiter(rate.Every(50*time.Millisecond), 1),
	}
}

// Start binds the configured address and begins accepting connections on
// a background goroutine. It returns BindFailure synchronously if the
// bind itself fails; accept-loop errors after that are logged and retried
// with backoff. No accept error is treated as fatal: the loop only ends
// once the listener is closed.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.addr())
	if err != nil {
		return liberr.BindFailure.Error("tcp listen failed", err)
	}
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}
	s.ln = ln

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Addr returns the bound address (useful for tests that bind port 0).
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if s.log != nil {
				s.log.Warnf("accept error, backing off: %v", err)
			}
			_ = s.limiter.Wait(noopCtx{})
			continue
		}
		s.handleAccept(conn)
	}
}

func (s *Server) handleAccept(conn net.Conn) {
	id, err := uuid.GenerateUUID()
	if err != nil {
		id = fmt.Sprintf("conn-%p", conn)
	}
	c := registry.NewConnection(id, conn)
	s.conns.Add(c)

	s.wg.Add(1)
	go s.readLoop(c)
}

// readLoop repeatedly reads framed bytes off one connection and enqueues
// Raw events per complete frame. On EOF, read error, or an oversize
// frame, it enqueues ConnectionLost and removes the registry entry,
// per spec.md §4.2/§4.3 and scenario S6.
func (s *Server) readLoop(c *registry.Connection) {
	defer s.wg.Done()

	buf := make([]byte, 64*1024)
	for {
		n, err := c.Conn().Read(buf)
		if n > 0 {
			acc := c.AppendRecv(buf[:n])
			frames, consumed, scanErr := wire.Scan(acc, s.cfg.MaxFrameBytes)
			for _, f := range frames {
				cp := append([]byte(nil), f...)
				_ = s.raw.Put(event.New(event.Raw, c.ID, event.RawPayload{Bytes: cp, Conn: c.Conn()}))
			}
			if consumed > 0 {
				c.ConsumeRecv(consumed)
			}
			if scanErr != nil {
				s.closeConnection(c, scanErr)
				return
			}
		}
		if err != nil {
			s.closeConnection(c, err)
			return
		}
	}
}

func (s *Server) closeConnection(c *registry.Connection, reason error) {
	c.MarkDead()
	_ = c.Close()
	s.conns.Remove(c.ID)
	_ = s.app.Put(event.New(event.App, c.ID, event.ConnectionLostPayload{
		ConnectionID: c.ID,
		Reason:       reason,
	}))
}

// Stop closes the listening socket (causing Accept to return
// net.ErrClosed) and explicitly closes every live connection, per
// spec.md §5's cancellation sequence. It waits for the accept loop and
// every reader goroutine to exit.
func (s *Server) Stop() error {
	if s.ln != nil {
		_ = s.ln.Close()
	}
	s.conns.Range(func(_ string, c *registry.Connection) bool {
		_ = c.Close()
		return true
	})
	s.wg.Wait()
	return nil
}

// noopCtx adapts rate.Limiter.Wait (which wants a context.Context) without
// pulling every caller into passing one through just for accept backoff.
type noopCtx struct{}

func (noopCtx) Deadline() (time.Time, bool) { return time.Time{}, false }
func (noopCtx) Done() <-chan struct{}       { return nil }
func (noopCtx) Err() error                  { return nil }
func (noopCtx) Value(any) any               { return nil }
