// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
)

// SignatureForm identifies how the R component of a signature is encoded.
type SignatureForm uint8

const (
	// FormXOnly encodes R as the 32-byte scalar r only.
	FormXOnly SignatureForm = iota

	// FormCompressed encodes R as a 33-byte compressed point.
	FormCompressed

	// FormUncompressed encodes R as a 65-byte uncompressed point.
	FormUncompressed
)

// Serialized signature sizes for each form.
const (
	XOnlySignatureSize        = ec256.ScalarSize + ec256.ScalarSize
	CompressedSignatureSize   = ec256.CompressedPointSize + ec256.ScalarSize
	UncompressedSignatureSize = ec256.UncompressedPointSize + ec256.ScalarSize
)

// formStrings maps forms to their human-readable names.
var formStrings = map[SignatureForm]string{
	FormXOnly:        "x-only",
	FormCompressed:   "compressed",
	FormUncompressed: "uncompressed",
}

// String returns the SignatureForm in human-readable form.
func (f SignatureForm) String() string {
	if s, ok := formStrings[f]; ok {
		return s
	}
	return fmt.Sprintf("Unknown SignatureForm (%d)", uint8(f))
}

// ParseSignatureForm returns the form with the provided name.
func ParseSignatureForm(s string) (SignatureForm, error) {
	name := strings.ToLower(s)
	for f, fs := range formStrings {
		if fs == name {
			return f, nil
		}
	}
	return 0, makeError(ErrInvalidEncoding, "unknown signature form "+s)
}

// hasPoint returns whether the form carries the full point R.
func (f SignatureForm) hasPoint() bool {
	return f == FormCompressed || f == FormUncompressed
}

// Signature is an ECDSA signature together with the encoding of its R
// component.
//
// For FormXOnly only R.X is meaningful and holds the scalar r.  For the point
// forms R is the full ephemeral point; the compressed form keeps only the
// parity of its Y coordinate when serialized.
type Signature struct {
	Form SignatureForm
	R    ec256.Point
	S    ec256.Scalar
}

// Serialize returns the R field followed by the 32-byte s.
func (sig *Signature) Serialize() []byte {
	var rField []byte
	switch sig.Form {
	case FormCompressed:
		rField = sig.R.SerializeCompressed()
	case FormUncompressed:
		rField = sig.R.SerializeUncompressed()
	default:
		rField = append([]byte(nil), sig.R.X[:]...)
	}
	return append(rField, sig.S[:]...)
}

// String returns the serialized signature as a hex string.
func (sig Signature) String() string {
	return hex.EncodeToString(sig.Serialize())
}

// ParseSignature decodes a serialized signature, selecting the form from its
// length.  Point forms are decoded and checked to be on the curve.  The s
// component must lie in [1, n-1].
func ParseSignature(c ec256.Curve, b []byte) (*Signature, error) {
	var sig Signature
	var sOff int
	switch len(b) {
	case XOnlySignatureSize:
		sig.Form = FormXOnly
		sOff = ec256.ScalarSize
		if _, err := c.ScalarFromBytes(b[:sOff]); err != nil {
			return nil, curveError(err, "malformed signature r")
		}
		copy(sig.R.X[:], b[:sOff])

	case CompressedSignatureSize, UncompressedSignatureSize:
		sig.Form = FormCompressed
		sOff = ec256.CompressedPointSize
		if len(b) == UncompressedSignatureSize {
			sig.Form = FormUncompressed
			sOff = ec256.UncompressedPointSize
		}
		r, err := c.ParsePoint(b[:sOff])
		if err != nil {
			return nil, curveError(err, "malformed signature R")
		}
		sig.R = r

	default:
		str := fmt.Sprintf("malformed signature: len %d, want %d, %d, or %d",
			len(b), XOnlySignatureSize, CompressedSignatureSize,
			UncompressedSignatureSize)
		return nil, makeError(ErrInvalidEncoding, str)
	}

	s, err := c.ScalarFromBytes(b[sOff:])
	if err != nil {
		return nil, curveError(err, "malformed signature s")
	}
	if s.IsZero() {
		return nil, makeError(ErrInvalidEncoding, "signature s is zero")
	}
	sig.S = s
	return &sig, nil
}
