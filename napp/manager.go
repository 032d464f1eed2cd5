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

package napp

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	liberr "github.com/sabouaram/kyco/errors"
	"github.com/sabouaram/kyco/listener"
)

type loaded struct {
	name string
	core bool
	inst NApp
}

// Manager owns the set of currently-loaded NApps, grounded on
// kyco/controller.py's load_napp/unload_napp/load_napps/unload_napps
// (spec.md §4.9), restructured around Register's static bundle registry.
type Manager struct {
	mu     sync.Mutex
	loaded map[string]*loaded

	table  *listener.Table
	caps   func(name string) Capabilities
	napps  string
	logger hclog.Logger
}

// NewManager builds a Manager. capsFor builds a fresh Capabilities record
// per NApp (so each gets its own scoped hclog.Logger); napps is the
// NApps directory whose subdirectories name the bundles to enable.
func NewManager(table *listener.Table, capsFor func(name string) Capabilities, napps string, logger hclog.Logger) *Manager {
	return &Manager{
		loaded: make(map[string]*loaded),
		table:  table,
		caps:   capsFor,
		napps:  napps,
		logger: logger,
	}
}

// Load instantiates the registered bundle name, checks its manifest (if
// present) for compatibility, and registers its listeners. A constructor
// panic is recovered and reported as NAppLoadError — testable property 6
// requires one broken NApp not to prevent others from loading.
func (m *Manager) Load(name string) (err error) {
	reg, ok := lookup(name)
	if !ok {
		return notRegistered(name)
	}

	if verr := checkManifest(filepath.Join(m.napps, name, manifestFile)); verr != nil {
		return verr
	}

	defer func() {
		if r := recover(); r != nil {
			err = liberr.NAppLoadError.Error(fmt.Sprintf("napp %q constructor panicked: %v", name, r))
		}
	}()

	inst := reg.factory()
	subscribe := func(pattern string, fn listener.Func) {
		_ = m.table.Register(name, pattern, fn)
	}
	inst.Start(m.caps(name), subscribe)

	m.mu.Lock()
	m.loaded[name] = &loaded{name: name, core: reg.core, inst: inst}
	m.mu.Unlock()
	return nil
}

// Unload removes every listener registration tagged with name, runs its
// shutdown hook, and drops the handle (spec.md §4.9, testable property 7).
func (m *Manager) Unload(name string) error {
	m.mu.Lock()
	ln, ok := m.loaded[name]
	if ok {
		delete(m.loaded, name)
	}
	m.mu.Unlock()

	if !ok {
		return liberr.NAppLoadError.Error(fmt.Sprintf("napp %q is not loaded", name))
	}

	m.table.Unregister(name)
	ln.inst.Shutdown()
	return nil
}

// LoadAll enumerates subdirectories of the NApps directory and loads
// each one that names a registered bundle. A load failure is logged and
// skipped; it does not abort the rest (spec.md §4.9).
func (m *Manager) LoadAll() {
	entries, err := os.ReadDir(m.napps)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("reading napps directory failed", "dir", m.napps, "error", err)
		}
		return
	}
	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}
		if err := m.Load(ent.Name()); err != nil {
			if m.logger != nil {
				m.logger.Warn("napp load failed, skipping", "napp", ent.Name(), "error", err)
			}
		}
	}
}

// UnloadAll unloads every non-core loaded NApp. Core NApps are exempt
// from bulk unload (spec.md §3's "core" flag) but remain individually
// unloadable via Unload.
func (m *Manager) UnloadAll() {
	m.mu.Lock()
	names := make([]string, 0, len(m.loaded))
	for name, ln := range m.loaded {
		if !ln.core {
			names = append(names, name)
		}
	}
	m.mu.Unlock()

	for _, name := range names {
		_ = m.Unload(name)
	}
}

// UnloadAllIncludingCore unloads every loaded NApp, core or not — used
// by the controller façade's Stop as the first step of shutdown, before
// the server and the handler stages are stopped.
func (m *Manager) UnloadAllIncludingCore() {
	m.mu.Lock()
	names := make([]string, 0, len(m.loaded))
	for name := range m.loaded {
		names = append(names, name)
	}
	m.mu.Unlock()

	for _, name := range names {
		_ = m.Unload(name)
	}
}

// Loaded reports whether name is currently loaded.
func (m *Manager) Loaded(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.loaded[name]
	return ok
}

// Len returns the number of currently loaded NApps.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.loaded)
}

// Info is a read-only snapshot of one loaded NApp, for status surfaces
// like adminhttp that have no business touching the instance handle.
type Info struct {
	Name string
	Core bool
}

// Snapshot lists every currently loaded NApp.
func (m *Manager) Snapshot() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Info, 0, len(m.loaded))
	for _, ln := range m.loaded {
		out = append(out, Info{Name: ln.name, Core: ln.core})
	}
	return out
}
