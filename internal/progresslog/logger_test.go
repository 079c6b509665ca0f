// Copyright (c) 2021-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/decred/slog"
)

var (
	backendLog = slog.NewBackend(io.Discard)
	testLog    = backendLog.Logger("TEST")
)

// TestLogProgress ensures the logging functionality works as expected via a
// test logger.
func TestLogProgress(t *testing.T) {
	tests := []struct {
		name         string
		reset        bool
		signed       uint64
		verified     uint64
		freshDraws   uint64
		forceLog     bool
		lastLogTime  time.Time
		wantSigned   uint64
		wantVerified uint64
		wantFresh    uint64
	}{{
		name:         "round 1, batch 1, last log time < 10 secs ago, not forced",
		signed:       100,
		verified:     100,
		lastLogTime:  time.Now(),
		wantSigned:   100,
		wantVerified: 100,
	}, {
		name:         "round 1, batch 2, last log time < 10 secs ago, not forced",
		signed:       50,
		verified:     49,
		freshDraws:   3,
		lastLogTime:  time.Now(),
		wantSigned:   150,
		wantVerified: 149,
		wantFresh:    3,
	}, {
		name:        "round 1, batch 3, last log time < 10 secs ago, forced",
		signed:      1,
		verified:    2,
		forceLog:    true,
		lastLogTime: time.Now(),
	}, {
		name:         "round 2, batch 1, last log time < 10 secs ago, not forced",
		reset:        true,
		signed:       7,
		verified:     7,
		freshDraws:   1,
		lastLogTime:  time.Now(),
		wantSigned:   7,
		wantVerified: 7,
		wantFresh:    1,
	}, {
		name:        "round 2, batch 2, last log time > 10 secs ago, not forced",
		signed:      9,
		verified:    9,
		lastLogTime: time.Now().Add(-11 * time.Second),
	}, {
		name:        "round 2, batch 3, last log time > 10 secs ago, forced",
		signed:      1,
		forceLog:    true,
		lastLogTime: time.Now().Add(-11 * time.Second),
	}}

	progressLogger := New("Soaked", testLog)
	for _, test := range tests {
		if test.reset {
			progressLogger = New("Soaked", testLog)
		}
		progressLogger.SetLastLogTime(test.lastLogTime)
		progressLogger.LogProgress(test.signed, test.verified,
			test.freshDraws, test.forceLog)
		want := &Logger{
			signed:          test.wantSigned,
			verified:        test.wantVerified,
			freshDraws:      test.wantFresh,
			lastLogTime:     progressLogger.lastLogTime,
			progressAction:  progressLogger.progressAction,
			subsystemLogger: progressLogger.subsystemLogger,
		}
		if !reflect.DeepEqual(progressLogger, want) {
			t.Errorf("%s:\nwant: %+v\ngot: %+v\n", test.name, want,
				progressLogger)
		}
	}
}

// TestPickNoun ensures the singular form is only chosen for a count of one.
func TestPickNoun(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{n: 0, want: "signatures"},
		{n: 1, want: "signature"},
		{n: 2, want: "signatures"},
	}
	for _, test := range tests {
		if got := pickNoun(test.n, "signature", "signatures"); got != test.want {
			t.Errorf("pickNoun(%d): got %q, want %q", test.n, got, test.want)
		}
	}
}
