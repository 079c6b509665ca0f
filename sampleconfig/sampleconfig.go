// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sampleconfig embeds the commented example configuration file for
// v2xsec.
package sampleconfig

import (
	_ "embed"
)

// sampleV2xsecConf is a string containing the commented example config for
// v2xsec.
//
//go:embed sample-v2xsec.conf
var sampleV2xsecConf string

// V2xsec returns a string containing the commented example config for v2xsec.
func V2xsec() string {
	return sampleV2xsecConf
}
