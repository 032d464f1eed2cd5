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

// Package napp implements the NApp lifecycle: load/unload, subscription
// registration, and the bundle registry NApps are selected from.
//
// spec.md §9 replaces the source's dynamic `SourceFileLoader` bundle
// loading (a source-ecosystem convenience) with option (a): statically
// linked NApps selected by configuration. A NApp ships as a Go package
// that calls Register in its init(), and is enabled by the presence of a
// same-named subdirectory under the configured NApps directory — the
// directory tree stays the unit of deployment, only "loading" changes
// from "compile a .py file" to "look up a registered constructor".
package napp

import (
	"fmt"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	liberr "github.com/sabouaram/kyco/errors"
	"github.com/sabouaram/kyco/event"
	"github.com/sabouaram/kyco/listener"
)

// Capabilities is the capability record a NApp receives at construction:
// three put-functions, one per outbound buffer, and a NApp-scoped logger.
// This is the Go analogue of the source's add_to_*_buffer closures
// passed into a NApp's constructor.
type Capabilities struct {
	PutMsgIn  func(event.Event) error
	PutMsgOut func(event.Event) error
	PutApp    func(event.Event) error
	Log       hclog.Logger
}

// Subscribe registers one (pattern, callback) listener, tagged with the
// calling NApp's id for later bulk removal.
type Subscribe func(pattern string, fn listener.Func)

// NApp is the entry point every bundle implements. Start is called once,
// at load time, with the capability record and a Subscribe function; it
// should register every listener the NApp cares about before returning.
// Shutdown is called once, at unload time.
type NApp interface {
	Start(caps Capabilities, subscribe Subscribe)
	Shutdown()
}

// Factory constructs a fresh NApp instance. NApps register a Factory
// under a stable bundle name via Register, typically from an init().
type Factory func() NApp

type registration struct {
	name    string
	core    bool
	factory Factory
}

var (
	registryMu sync.Mutex
	registered = map[string]registration{}
)

// Register adds name to the set of statically linked NApps this binary
// ships. core NApps are exempt from UnloadAll's bulk unload (spec.md
// §4.9/§3). Calling Register twice for the same name replaces the prior
// registration — useful for tests.
func Register(name string, core bool, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registered[name] = registration{name: name, core: core, factory: factory}
}

func lookup(name string) (registration, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	r, ok := registered[name]
	return r, ok
}

// Unregister drops name from the static registry. Exists for test
// isolation between independent NApp test suites sharing the process-wide
// registry.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registered, name)
}

func notRegistered(name string) error {
	return liberr.NAppLoadError.Error(fmt.Sprintf("napp %q is not a registered bundle", name))
}
