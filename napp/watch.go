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
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// bundleName returns the base name of path, the bundle name LoadAll would
// have used had this directory existed at startup.
func bundleName(path string) string {
	return filepath.Base(path)
}

// Watch starts watching the NApps directory for new bundle subdirectories
// and loads each one as it appears, on top of whatever LoadAll already
// loaded synchronously at startup. It returns once the watcher is armed;
// the actual dispatch loop runs in a background goroutine until stop is
// closed.
//
// This is an enrichment over load-once-at-start: operators can drop a new
// bundle directory into napps_dir at runtime instead of restarting the
// daemon to pick it up.
func (m *Manager) Watch(stop <-chan struct{}) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(m.napps); err != nil {
		_ = w.Close()
		return err
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-stop:
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create) == 0 {
					continue
				}
				m.onCreate(ev.Name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				if m.logger != nil {
					m.logger.Warn("napps directory watch error", "error", err)
				}
			}
		}
	}()
	return nil
}

// onCreate loads the bundle named by the newly created path, if its base
// name matches a registered bundle and it isn't already loaded.
func (m *Manager) onCreate(path string) {
	name := bundleName(path)
	if name == "" || m.Loaded(name) {
		return
	}
	if _, ok := lookup(name); !ok {
		return
	}
	if err := m.Load(name); err != nil {
		if m.logger != nil {
			m.logger.Warn("napp load failed, skipping", "napp", name, "error", err)
		}
	}
}
