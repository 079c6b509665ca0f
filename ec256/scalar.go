// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec256

import (
	"crypto/subtle"
	"encoding/hex"
)

// ScalarSize is the size of an encoded scalar in bytes.
const ScalarSize = 32

// Scalar is an integer modulo a curve group order in 32-byte big-endian form.
//
// A Scalar carries no reference to its curve.  Values produced by a Curve are
// always fully reduced modulo that curve's order.
type Scalar [ScalarSize]byte

// IsZero returns whether or not the scalar is equal to zero in constant time.
func (s *Scalar) IsZero() bool {
	var acc byte
	for _, b := range s {
		acc |= b
	}
	return acc == 0
}

// Equals returns whether or not the two scalars are the same in constant
// time.
func (s *Scalar) Equals(other *Scalar) bool {
	return subtle.ConstantTimeCompare(s[:], other[:]) == 1
}

// Zero sets the scalar to zero.  It is used to clear secret material once it
// is no longer needed.
func (s *Scalar) Zero() {
	*s = Scalar{}
}

// String returns the scalar as a hex-encoded string.
func (s Scalar) String() string {
	return hex.EncodeToString(s[:])
}

// ScalarFromHex decodes a hex string of at most 64 characters into a
// big-endian scalar.  Shorter inputs are left padded with zeros.  The value is
// not reduced; use Curve.ScalarFromBytes when range checking is required.
func ScalarFromHex(s string) (Scalar, error) {
	var out Scalar
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, makeError(ErrInvalidEncoding, "invalid scalar hex: "+
			err.Error())
	}
	if len(b) > ScalarSize {
		return out, makeError(ErrInvalidEncoding, "scalar hex exceeds 32 bytes")
	}
	copy(out[ScalarSize-len(b):], b)
	return out, nil
}
