// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linkage

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error.  This is only provided for the hard-coded constants so errors in
// the source code can be detected. It will only (and must only) be called with
// hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// testInputs returns linkage inputs with distinct seeds and identifiers.
func testInputs() Inputs {
	var in Inputs
	copy(in.LA1[:], hexToBytes("0102030405060708"))
	copy(in.LA2[:], hexToBytes("1112131415161718"))
	copy(in.LS1[:], hexToBytes("000102030405060708090a0b0c0d0e0f"))
	copy(in.LS2[:], hexToBytes("101112131415161718191a1b1c1d1e1f"))
	return in
}

// TestDeriveValue ensures linkage values match known outputs.
func TestDeriveValue(t *testing.T) {
	var zeroSeeds Inputs
	copy(zeroSeeds.LA1[:], bytes.Repeat([]byte{0xaa}, IDSize))
	copy(zeroSeeds.LA2[:], bytes.Repeat([]byte{0xbb}, IDSize))

	tests := []struct {
		name string
		j    uint32
		in   Inputs
		want string
	}{{
		name: "zero seeds, period 0",
		j:    0,
		in:   zeroSeeds,
		want: "40153d970d08459318",
	}, {
		name: "distinct seeds, period 5",
		j:    5,
		in:   testInputs(),
		want: "a18177965224a2b95c",
	}, {
		name: "distinct seeds, period 6",
		j:    6,
		in:   testInputs(),
		want: "2de7dab8a3a8795783",
	}}

	for _, test := range tests {
		got, err := DeriveValue(test.j, &test.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.name, err)
			continue
		}
		if got.String() != test.want {
			t.Errorf("%q: got %v, want %s", test.name, got, test.want)
			continue
		}
		again, _ := DeriveValue(test.j, &test.in)
		if again != got {
			t.Errorf("%q: derivation is not deterministic", test.name)
		}
	}
}

// TestPreLinkageValue ensures a single authority's contribution matches a
// known output.
func TestPreLinkageValue(t *testing.T) {
	in := testInputs()
	got, err := PreLinkageValue(&in.LA1, &in.LS1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := hexToBytes("d6e11eff7ea7cef94d9e4bf22e99c7c3")
	if !bytes.Equal(got[:], want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

// TestDeriveValueSensitivity ensures changing any seed or identifier byte
// changes the linkage value.
func TestDeriveValueSensitivity(t *testing.T) {
	base := testInputs()
	want, err := DeriveValue(3, &base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mutations := []struct {
		name   string
		mutate func(in *Inputs, i int)
		n      int
	}{
		{"ls1", func(in *Inputs, i int) { in.LS1[i] ^= 0x01 }, SeedSize},
		{"ls2", func(in *Inputs, i int) { in.LS2[i] ^= 0x01 }, SeedSize},
		{"la1", func(in *Inputs, i int) { in.LA1[i] ^= 0x01 }, IDSize},
		{"la2", func(in *Inputs, i int) { in.LA2[i] ^= 0x01 }, IDSize},
	}
	for _, m := range mutations {
		for i := 0; i < m.n; i++ {
			in := base
			m.mutate(&in, i)
			got, err := DeriveValue(3, &in)
			if err != nil {
				t.Fatalf("%s[%d]: unexpected error: %v", m.name, i, err)
			}
			if got == want {
				t.Fatalf("%s[%d]: linkage value unchanged", m.name, i)
			}
		}
	}

	// Swapping the authorities leaves the value unchanged since the
	// contributions are combined with XOR.
	swapped := Inputs{LA1: base.LA2, LA2: base.LA1, LS1: base.LS2, LS2: base.LS1}
	if got, _ := DeriveValue(3, &swapped); got != want {
		t.Fatalf("swapped authorities: got %v, want %v", got, want)
	}
}

// TestDeriveValueLeadingBytes ensures the linkage value is the leading bytes
// of the XOR of both pre-linkage values rather than the trailing ones.
func TestDeriveValueLeadingBytes(t *testing.T) {
	in := testInputs()
	for _, j := range []uint32{0, 5, 1<<32 - 1} {
		plv1, err := PreLinkageValue(&in.LA1, &in.LS1, j)
		if err != nil {
			t.Fatalf("%d: unexpected error: %v", j, err)
		}
		plv2, err := PreLinkageValue(&in.LA2, &in.LS2, j)
		if err != nil {
			t.Fatalf("%d: unexpected error: %v", j, err)
		}
		var xored PreValue
		for i := range xored {
			xored[i] = plv1[i] ^ plv2[i]
		}

		got, err := DeriveValue(j, &in)
		if err != nil {
			t.Fatalf("%d: unexpected error: %v", j, err)
		}
		if !bytes.Equal(got[:], xored[:ValueSize]) {
			t.Fatalf("%d: got %x, want leading bytes %x of %x", j, got,
				xored[:ValueSize], xored)
		}
		if bytes.Equal(got[:], xored[PreValueSize-ValueSize:]) {
			t.Fatalf("%d: value matches the trailing bytes %x", j, xored)
		}
	}
}

// TestFromHex ensures hex decoding enforces exact lengths.
func TestFromHex(t *testing.T) {
	if v, err := ValueFromHex("40153d970d08459318"); err != nil || v.String() != "40153d970d08459318" {
		t.Fatalf("valid value: got %v (err %v)", v, err)
	}
	if _, err := IDFromHex("0102030405060708"); err != nil {
		t.Fatalf("valid id: unexpected error: %v", err)
	}
	if _, err := SeedFromHex("000102030405060708090a0b0c0d0e0f"); err != nil {
		t.Fatalf("valid seed: unexpected error: %v", err)
	}

	tests := []struct {
		name string
		fn   func() error
	}{
		{"short value", func() error { _, err := ValueFromHex("4015"); return err }},
		{"bad value hex", func() error { _, err := ValueFromHex("zz153d970d08459318"); return err }},
		{"long id", func() error { _, err := IDFromHex("010203040506070809"); return err }},
		{"short seed", func() error { _, err := SeedFromHex("00"); return err }},
	}
	for _, test := range tests {
		if err := test.fn(); !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("%q: got error %v, want %v", test.name, err,
				ErrInvalidEncoding)
		}
	}
}
