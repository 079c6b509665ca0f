// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/eggandi/innowireless-dev-sub001/internal/version"
	flags "github.com/jessevdk/go-flags"
)

// v2xsecMain is the real main function for v2xsec.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func v2xsecMain() error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	cfg, cmd, args, err := loadConfig(appName, os.Args[1:])
	if err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			return nil
		}
		usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
		fmt.Fprintln(os.Stderr, err)
		var e errSuppressUsage
		if !errors.As(err, &e) {
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	// Get a context that will be canceled when a shutdown signal has been
	// triggered from an OS signal such as SIGINT (Ctrl+C).
	ctx := shutdownListener()

	v2xsLog.Debugf("Version %s (Go version %s %s/%s)", version.String(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
	v2xsLog.Debugf("Home dir: %s", cfg.HomeDir)
	v2xsLog.Debugf("Curve: %s", cfg.curve.Name())

	env := &cmdEnv{
		ctx:    ctx,
		curve:  cfg.curve,
		cfg:    cfg,
		out:    os.Stdout,
		prompt: promptSecret,
	}
	if err := cmd.run(env, args); err != nil {
		v2xsLog.Errorf("%v", err)
		return err
	}
	return nil
}

func main() {
	// Work around defer not working after os.Exit()
	if err := v2xsecMain(); err != nil {
		os.Exit(1)
	}
}
