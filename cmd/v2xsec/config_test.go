// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
	"github.com/eggandi/innowireless-dev-sub001/security"
)

// testArgs returns command line arguments that keep loadConfig inside a
// temporary home directory and away from the log file.
func testArgs(t *testing.T, args ...string) []string {
	t.Helper()
	return append([]string{"-A", t.TempDir(), "--nofilelogging"}, args...)
}

// TestLoadConfigDefaults ensures a default configuration file is created in
// the home directory and the defaults are applied when nothing overrides them.
func TestLoadConfigDefaults(t *testing.T) {
	homeDir := t.TempDir()
	cfg, cmd, args, err := loadConfig("v2xsec", []string{"-A", homeDir,
		"--nofilelogging", "linkage", "extra"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	configFile := filepath.Join(homeDir, defaultConfigFilename)
	if _, err := os.Stat(configFile); err != nil {
		t.Fatalf("default config file was not created: %v", err)
	}
	if cfg.ConfigFile != configFile {
		t.Fatalf("config file: got %q, want %q", cfg.ConfigFile, configFile)
	}
	if cfg.curve.Name() != ec256.NameNISTP256 {
		t.Fatalf("curve: got %s, want %s", cfg.curve.Name(),
			ec256.NameNISTP256)
	}
	if cfg.PoolSize != security.DefaultPoolCapacity {
		t.Fatalf("pool size: got %d, want %d", cfg.PoolSize,
			security.DefaultPoolCapacity)
	}
	if cfg.RefillInterval != security.DefaultRefillInterval {
		t.Fatalf("refill interval: got %v, want %v", cfg.RefillInterval,
			security.DefaultRefillInterval)
	}
	if _, ok := cmd.(*linkageCmd); !ok {
		t.Fatalf("command: got %T, want *linkageCmd", cmd)
	}
	if cfg.Linkage.Count != 1 {
		t.Fatalf("linkage count default: got %d, want 1", cfg.Linkage.Count)
	}
	if len(args) != 1 || args[0] != "extra" {
		t.Fatalf("remaining args: got %q, want [extra]", args)
	}
}

// TestLoadConfigFile ensures options from the configuration file are applied
// and that command line options take precedence over them.
func TestLoadConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "alt.conf")
	const contents = "[Application Options]\ncurve=secp256k1\npoolsize=4\n" +
		"refillinterval=1s\nkeycachettl=1m\n"
	if err := os.WriteFile(configFile, []byte(contents), 0600); err != nil {
		t.Fatalf("unable to write config file: %v", err)
	}

	cfg, cmd, _, err := loadConfig("v2xsec", testArgs(t, "-C", configFile,
		"--poolsize=6", "soak", "--workers=2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.curve.Name() != ec256.NameSecp256k1 {
		t.Fatalf("curve: got %s, want %s", cfg.curve.Name(),
			ec256.NameSecp256k1)
	}
	if cfg.PoolSize != 6 {
		t.Fatalf("pool size: got %d, want 6", cfg.PoolSize)
	}
	if cfg.RefillInterval != time.Second {
		t.Fatalf("refill interval: got %v, want 1s", cfg.RefillInterval)
	}
	if cfg.KeyCacheTTL != time.Minute {
		t.Fatalf("key cache ttl: got %v, want 1m", cfg.KeyCacheTTL)
	}
	soak, ok := cmd.(*soakCmd)
	if !ok {
		t.Fatalf("command: got %T, want *soakCmd", cmd)
	}
	if soak.Workers != 2 || soak.Duration != defaultSoakDuration {
		t.Fatalf("soak options: got workers %d duration %v", soak.Workers,
			soak.Duration)
	}
}

// TestLoadConfigErrors ensures invalid options are rejected.
func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{{
		name: "unknown curve",
		args: []string{"--curve=P-384", "linkage"},
		is:   ec256.ErrUnknownCurve,
	}, {
		name: "zero pool size",
		args: []string{"--poolsize=0", "linkage"},
	}, {
		name: "negative refill interval",
		args: []string{"--refillinterval=-1s", "linkage"},
	}, {
		name: "zero key cache size",
		args: []string{"--keycachesize=0", "linkage"},
	}, {
		name: "bad debug level",
		args: []string{"--debuglevel=verbose", "linkage"},
	}, {
		name: "no command",
		args: nil,
	}, {
		name: "unknown command",
		args: []string{"mint"},
	}}

	for _, test := range tests {
		_, _, _, err := loadConfig("v2xsec", testArgs(t, test.args...))
		if err == nil {
			t.Errorf("%q: expected error", test.name)
			continue
		}
		if test.is != nil && !errors.Is(err, test.is) {
			t.Errorf("%q: got %v, want %v", test.name, err, test.is)
		}
	}
}

// TestParseAndSetDebugLevels ensures global and per-subsystem debug levels are
// parsed and validated.
func TestParseAndSetDebugLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "global", level: "debug"},
		{name: "single subsystem", level: "SECP=trace"},
		{name: "multiple subsystems", level: "SECP=trace,LINK=warn,V2XS=info"},
		{name: "invalid global", level: "loud", wantErr: true},
		{name: "unknown subsystem", level: "PEER=debug", wantErr: true},
		{name: "invalid subsystem level", level: "SECP=loud", wantErr: true},
		{name: "missing pair separator", level: "SECP=debug,LINK", wantErr: true},
	}

	defer setLogLevels(defaultLogLevel)
	for _, test := range tests {
		err := parseAndSetDebugLevels(test.level)
		if (err != nil) != test.wantErr {
			t.Errorf("%q: unexpected error result %v", test.name, err)
		}
	}
}

// TestCleanAndExpandPath ensures environment variables and the home directory
// are expanded.
func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("V2XSEC_TEST_DIR", "/tmp/v2xsec")
	if got := cleanAndExpandPath("$V2XSEC_TEST_DIR/logs/"); got !=
		filepath.Clean("/tmp/v2xsec/logs") {

		t.Fatalf("unexpected expansion %q", got)
	}
	if got := cleanAndExpandPath(""); got != "" {
		t.Fatalf("empty path expanded to %q", got)
	}
	if got := cleanAndExpandPath("~/x"); got == "~/x" {
		t.Fatalf("home directory was not expanded")
	}
}
