// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import (
	"strings"
	"testing"
)

// TestParse ensures parsing a semantic version string works as expected.
func TestParse(t *testing.T) {
	tests := []struct {
		ver     string
		want    SemVer
		invalid bool
	}{
		{ver: "0.0.4", want: SemVer{Patch: 4}},
		{ver: "10.20.30", want: SemVer{Major: 10, Minor: 20, Patch: 30}},
		{ver: "1.1.2-pre+meta", want: SemVer{1, 1, 2, "pre", "meta"}},
		{ver: "1.0.0-alpha.beta.1", want: SemVer{1, 0, 0, "alpha.beta.1", ""}},
		{ver: "1.0.0+release.local", want: SemVer{1, 0, 0, "", "release.local"}},
		{ver: "1", invalid: true},
		{ver: "1.2", invalid: true},
		{ver: "01.1.1", invalid: true},
		{ver: "1.2.3-", invalid: true},
		{ver: "1.2.3+meta_data", invalid: true},
	}

	for _, test := range tests {
		got, err := Parse(test.ver)
		if test.invalid {
			if err == nil {
				t.Errorf("%q: expected error", test.ver)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.ver, err)
			continue
		}
		if got != test.want {
			t.Errorf("%q: got %+v, want %+v", test.ver, got, test.want)
		}
	}
}

// TestString ensures the reported version starts with the configured one.
func TestString(t *testing.T) {
	if !strings.HasPrefix(String(), Version) {
		t.Fatalf("version %q does not start with %q", String(), Version)
	}
}
