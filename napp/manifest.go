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

	hversion "github.com/hashicorp/go-version"
	toml "github.com/pelletier/go-toml"

	liberr "github.com/sabouaram/kyco/errors"
)

const manifestFile = "manifest.toml"

// CoreVersion is this build's compatibility version, compared against a
// bundle manifest's requires_core constraint. Bumped on breaking changes
// to the capability record or listener contract.
var CoreVersion = hversion.Must(hversion.NewVersion("1.0.0"))

// Manifest is a bundle's declared metadata, read from manifest.toml at
// <napps_dir>/<name>/manifest.toml. A bundle with no manifest file is
// accepted unconditionally (manifests are opt-in).
type Manifest struct {
	Name         string `toml:"name"`
	Version      string `toml:"version"`
	RequiresCore string `toml:"requires_core"`
}

// checkManifest reads and validates a manifest file if present. A
// missing file is not an error. A malformed file or a requires_core
// constraint CoreVersion does not satisfy is NAppLoadError.
func checkManifest(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return liberr.NAppLoadError.Error(fmt.Sprintf("reading manifest %s failed", path), err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return liberr.NAppLoadError.Error(fmt.Sprintf("parsing manifest %s failed", path), err)
	}

	if m.RequiresCore == "" {
		return nil
	}
	constraint, err := hversion.NewConstraint(m.RequiresCore)
	if err != nil {
		return liberr.NAppLoadError.Error(fmt.Sprintf("manifest %s has an invalid requires_core constraint %q", path, m.RequiresCore), err)
	}
	if !constraint.Check(CoreVersion) {
		return liberr.NAppLoadError.Error(fmt.Sprintf("manifest %s requires core %s, this build is %s", path, m.RequiresCore, CoreVersion))
	}
	return nil
}
