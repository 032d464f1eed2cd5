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

// Package config loads the controller's external configuration from a file
// (or any other source spf13/viper supports) and validates it, producing a
// controller.Config ready to hand to controller.New.
package config

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/sabouaram/kyco/controller"
	liberr "github.com/sabouaram/kyco/errors"
)

// Config is the on-disk shape of the controller's configuration. Field tags
// cover every format spf13/viper can decode (yaml, toml, json) plus the
// mapstructure key UnmarshalKey/Unmarshal actually use.
type Config struct {
	// Listen is the bind address for the TCP switch-facing listener.
	Listen string `json:"listen" yaml:"listen" toml:"listen" mapstructure:"listen"`

	// Port is the TCP port for the switch-facing listener.
	Port int `json:"port" yaml:"port" toml:"port" mapstructure:"port" validate:"required"`

	// NappsDir is the directory whose subdirectories name NApp bundles to
	// auto-load at startup. Empty disables auto-load.
	NappsDir string `json:"nappsDir,omitempty" yaml:"nappsDir,omitempty" toml:"nappsDir,omitempty" mapstructure:"nappsDir,omitempty"`

	// WatchNapps, when true, watches NappsDir for new bundle subdirectories
	// at runtime and loads them as they appear, on top of the synchronous
	// load-at-startup pass. Ignored if NappsDir is empty.
	WatchNapps bool `json:"watchNapps,omitempty" yaml:"watchNapps,omitempty" toml:"watchNapps,omitempty" mapstructure:"watchNapps,omitempty"`

	// MaxFrameBytes bounds a single decoded frame; 0 uses the server's
	// default of 65535.
	MaxFrameBytes int `json:"maxFrameBytes,omitempty" yaml:"maxFrameBytes,omitempty" toml:"maxFrameBytes,omitempty" mapstructure:"maxFrameBytes,omitempty"`

	// MaxConnections bounds concurrently accepted switch connections; 0
	// means unlimited.
	MaxConnections int `json:"maxConnections,omitempty" yaml:"maxConnections,omitempty" toml:"maxConnections,omitempty" mapstructure:"maxConnections,omitempty"`

	// BufferCapacity is the per-stage event buffer capacity; 0 uses
	// buffer.DefaultCapacity.
	BufferCapacity int `json:"bufferCapacity,omitempty" yaml:"bufferCapacity,omitempty" toml:"bufferCapacity,omitempty" mapstructure:"bufferCapacity,omitempty"`

	// ShutdownGraceSeconds bounds how long Stop waits for the handler
	// stages to drain before reporting GraceTimeout.
	ShutdownGraceSeconds int `json:"shutdownGraceSeconds,omitempty" yaml:"shutdownGraceSeconds,omitempty" toml:"shutdownGraceSeconds,omitempty" mapstructure:"shutdownGraceSeconds,omitempty"`

	// AdminListen is the bind address:port for the read-only admin HTTP
	// surface. Empty disables it.
	AdminListen string `json:"adminListen,omitempty" yaml:"adminListen,omitempty" toml:"adminListen,omitempty" mapstructure:"adminListen,omitempty" validate:"omitempty,hostname_port"`

	// MetricsNamespace prefixes every Prometheus metric this build
	// registers.
	MetricsNamespace string `json:"metricsNamespace,omitempty" yaml:"metricsNamespace,omitempty" toml:"metricsNamespace,omitempty" mapstructure:"metricsNamespace,omitempty"`
}

// Validate checks the Config for errors using struct validation tags, plus
// an explicit range check rejecting a Port outside the valid TCP range.
func (c Config) Validate() liberr.Error {
	err := liberr.ConfigInvalid.Error("invalid controller configuration")

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		} else if ve, ok := er.(libval.ValidationErrors); ok {
			for _, e := range ve {
				err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.Namespace(), e.ActualTag()))
			}
		} else {
			err.Add(er)
		}
	}

	if c.Port <= 0 || c.Port > 65535 {
		err.Add(fmt.Errorf("port %d is out of the valid TCP range", c.Port))
	}

	if !err.HasParent() {
		return nil
	}
	return err
}

// Controller converts a validated Config into a controller.Config.
func (c Config) Controller() controller.Config {
	return controller.Config{
		Listen:               c.Listen,
		Port:                 c.Port,
		NappsDir:             c.NappsDir,
		WatchNapps:           c.WatchNapps,
		MaxFrameBytes:        c.MaxFrameBytes,
		MaxConnections:       c.MaxConnections,
		BufferCapacity:       c.BufferCapacity,
		ShutdownGraceSeconds: c.ShutdownGraceSeconds,
		AdminListen:          c.AdminListen,
		MetricsNamespace:     c.MetricsNamespace,
	}
}

// Load reads and validates a Config from path using spf13/viper, which
// selects its decoder from the file extension (yaml, toml, json, ...).
func Load(path string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return cfg, liberr.ConfigInvalid.Error(fmt.Sprintf("reading config file %s failed", path), err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, liberr.ConfigInvalid.Error(fmt.Sprintf("decoding config file %s failed", path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0")
	v.SetDefault("bufferCapacity", 1024)
	v.SetDefault("shutdownGraceSeconds", 5)
	v.SetDefault("metricsNamespace", "kyco")
}
