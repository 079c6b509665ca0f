// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"testing"

	"github.com/decred/slog"
)

type testLog struct {
	*testing.T
}

func (t *testLog) Write(b []byte) (int, error) {
	t.Logf("%s", b)
	return len(b), nil
}

// useTestLogger sets the package-level logger to a backend that writes
// trace-level logs to the test log.  A function is returned to set the logger
// back to Disabled when finished.
//
// Due to the use of a global logger variable that must write to the logs of
// individual tests, tests that call this must not run in parallel.
func useTestLogger(t *testing.T) func() {
	backend := slog.NewBackend(&testLog{T: t})
	l := backend.Logger("TEST")
	l.SetLevel(slog.LevelTrace)
	UseLogger(l)
	return func() {
		UseLogger(slog.Disabled)
	}
}
