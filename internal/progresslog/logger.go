// Copyright (c) 2015-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"sync"
	"time"

	"github.com/decred/slog"
)

// defaultInterval is the minimum time between progress messages that are not
// forced.
const defaultInterval = 10 * time.Second

// pickNoun returns the singular or plural form of a noun depending on the
// provided count.
func pickNoun(n uint64, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Logger provides periodic logging of progress towards some action such as
// soaking the signing pool.
type Logger struct {
	sync.Mutex
	subsystemLogger slog.Logger
	progressAction  string

	// lastLogTime tracks the last time a log statement was shown.
	lastLogTime time.Time

	// These fields accumulate information about operations between log
	// statements.
	signed     uint64
	verified   uint64
	freshDraws uint64
}

// New returns a new progress logger.
func New(progressAction string, logger slog.Logger) *Logger {
	return &Logger{
		lastLogTime:     time.Now(),
		progressAction:  progressAction,
		subsystemLogger: logger,
	}
}

// LogProgress accumulates the provided counts and periodically (every 10
// seconds) logs an information message to show progress to the user along
// with duration and totals included.
//
// The force flag may be used to force a log message to be shown regardless of
// the time the last one was shown.
//
// The progress message is templated as follows:
//
//	{progressAction} {numSigned} {signatures|signature} in the last
//	{timePeriod} ({numVerified} {verifications|verification},
//	{numFresh} fresh {nonces|nonce})
func (l *Logger) LogProgress(signed, verified, freshDraws uint64, forceLog bool) {
	l.Lock()
	defer l.Unlock()

	l.signed += signed
	l.verified += verified
	l.freshDraws += freshDraws
	now := time.Now()
	duration := now.Sub(l.lastLogTime)
	if !forceLog && duration < defaultInterval {
		return
	}

	l.subsystemLogger.Infof("%s %d %s in the last %0.2fs (%d %s, %d fresh %s)",
		l.progressAction, l.signed, pickNoun(l.signed, "signature",
			"signatures"), duration.Seconds(),
		l.verified, pickNoun(l.verified, "verification", "verifications"),
		l.freshDraws, pickNoun(l.freshDraws, "nonce", "nonces"))

	l.signed = 0
	l.verified = 0
	l.freshDraws = 0
	l.lastLogTime = now
}

// SetLastLogTime updates the last time data was logged to the provided time.
func (l *Logger) SetLastLogTime(time time.Time) {
	l.Lock()
	l.lastLogTime = time
	l.Unlock()
}
