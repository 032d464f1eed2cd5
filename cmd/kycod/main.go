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

// Command kycod is the controller's CLI entrypoint. Per spec.md §1,
// argument parsing itself is out of the core's scope; this command is
// the thin consumer that turns a config file (or flag overrides) into
// the controller.Config the façade expects, mirroring the teacher's
// cobra root-command-plus-viper-flags pattern.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sabouaram/kyco/config"
	"github.com/sabouaram/kyco/controller"
	liberr "github.com/sabouaram/kyco/errors"
	liblog "github.com/sabouaram/kyco/logging"

	// Statically linked NApps register themselves via init(); listing one
	// here is how spec.md §9 option (a) replaces dynamic bundle loading.
	_ "github.com/sabouaram/kyco/napp/examples/echo"
	"github.com/sabouaram/kyco/wire"
)

var cfgFile string

func main() {
	os.Exit(run())
}

func run() int {
	v := viper.New()
	root := newRootCommand(v)
	if err := root.Execute(); err != nil {
		return 1
	}
	return exitCode
}

// exitCode is set by runController and read back by run, since cobra's
// RunE only reports success/failure, not the taxonomy spec.md §6 wants
// ("0 on clean stop; non-zero if the grace period expired or the TCP
// server failed to bind").
var exitCode int

func newRootCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kycod",
		Short: "kycod is the SDN controller core daemon",
		Long:  "kycod accepts OpenFlow switch connections and dispatches decoded messages to loaded NApps.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runController(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "path to the controller's config file (yaml/toml/json)")
	flags.String("listen", "0.0.0.0", "bind address for the switch-facing TCP listener")
	flags.Int("port", 6653, "TCP port for the switch-facing listener")
	flags.String("napps-dir", "", "directory whose subdirectories name NApp bundles to auto-load")
	flags.Bool("watch-napps", false, "watch napps-dir for new bundle subdirectories and load them as they appear")
	flags.String("admin-listen", "", "bind address:port for the read-only admin HTTP surface; empty disables it")
	flags.Int("max-frame-bytes", 0, "maximum accepted OpenFlow frame size; 0 uses the package default")
	flags.Int("buffer-capacity", 0, "per-stage event buffer capacity; 0 uses the package default")
	flags.Int("shutdown-grace-seconds", 0, "seconds Stop waits for handler stages to drain; 0 uses the package default")
	flags.String("metrics-namespace", "kyco", "prefix for every Prometheus metric this build registers")

	_ = v.BindPFlag("listen", flags.Lookup("listen"))
	_ = v.BindPFlag("port", flags.Lookup("port"))
	_ = v.BindPFlag("nappsDir", flags.Lookup("napps-dir"))
	_ = v.BindPFlag("watchNapps", flags.Lookup("watch-napps"))
	_ = v.BindPFlag("adminListen", flags.Lookup("admin-listen"))
	_ = v.BindPFlag("maxFrameBytes", flags.Lookup("max-frame-bytes"))
	_ = v.BindPFlag("bufferCapacity", flags.Lookup("buffer-capacity"))
	_ = v.BindPFlag("shutdownGraceSeconds", flags.Lookup("shutdown-grace-seconds"))
	_ = v.BindPFlag("metricsNamespace", flags.Lookup("metrics-namespace"))

	return cmd
}

// runController loads the configuration, starts the façade, and blocks
// until SIGINT/SIGTERM, then stops gracefully. It never panics: every
// failure is converted into a logged message and an exitCode, per
// spec.md §7's "propagation policy" for fatal errors surfaced to the
// façade's caller.
func runController(cmd *cobra.Command, v *viper.Viper) error {
	log := liblog.New()

	cfg, err := loadConfig(v)
	if err != nil {
		log.Errorf("configuration error: %v", err)
		exitCode = 1
		return nil
	}

	ctrl := controller.New(cfg.Controller(), wire.HelloCodec{}, log)
	if err := ctrl.Start(); err != nil {
		log.Errorf("controller failed to start: %v", err)
		if cerr, ok := err.(liberr.Error); ok && cerr.IsCode(liberr.BindFailure) {
			exitCode = 2
		} else {
			exitCode = 1
		}
		return nil
	}
	log.Infof("kycod listening on %s", ctrl.Addr())
	if addr := ctrl.AdminAddr(); addr != nil {
		log.Infof("kycod admin surface listening on %s", addr)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Infof("shutting down")
	if err := ctrl.Stop(); err != nil {
		log.Errorf("controller did not stop cleanly: %v", err)
		exitCode = 3
		return nil
	}
	exitCode = 0
	return nil
}

// loadConfig reads --config if given, otherwise builds a Config purely
// from bound flag defaults/overrides (no file required for a quick
// start).
func loadConfig(v *viper.Viper) (config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, liberr.ConfigInvalid.Error(fmt.Sprintf("decoding flags failed: %v", err))
	}
	if verr := cfg.Validate(); verr != nil {
		return cfg, verr
	}
	return cfg, nil
}
