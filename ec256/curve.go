// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec256

import (
	"io"
	"math/big"
	"strings"
)

// Curve abstracts the scalar and group operations over one 256-bit curve.
//
// Implementations are stateless and safe for concurrent use.  Every method
// works on caller-provided values and keeps its scratch state on the stack.
type Curve interface {
	// Name returns the canonical curve name, for example "P-256".
	Name() string

	// Order returns a copy of the group order n.
	Order() *big.Int

	// ScalarFromBytes decodes a 32-byte big-endian scalar and fails with
	// ErrScalarOutOfRange when it is not less than n.
	ScalarFromBytes(b []byte) (Scalar, error)

	// ReduceScalar interprets b as a big-endian unsigned integer of any
	// length and returns it reduced modulo n.
	ReduceScalar(b []byte) Scalar

	// AddScalars returns (a + b) mod n.
	AddScalars(a, b *Scalar) Scalar

	// MulScalars returns (a * b) mod n.
	MulScalars(a, b *Scalar) Scalar

	// InverseScalar returns a^-1 mod n.  The inverse of zero is zero.
	InverseScalar(a *Scalar) Scalar

	// ScalarBaseMult returns k*G.
	ScalarBaseMult(k *Scalar) (Point, error)

	// ScalarMult returns k*p.
	ScalarMult(p *Point, k *Scalar) (Point, error)

	// AddPoints returns p + q.
	AddPoints(p, q *Point) (Point, error)

	// ParsePoint decodes SEC 1 compressed or uncompressed octets and ensures
	// the result is on the curve.
	ParsePoint(b []byte) (Point, error)

	// IsOnCurve returns whether the affine point satisfies the curve
	// equation.
	IsOnCurve(p *Point) bool

	// SignDigest produces an ECDSA (r, s) pair over a digest with the curve
	// library's own primitive.  Implementations may ignore rand when their
	// primitive derives nonces deterministically.
	SignDigest(priv *Scalar, digest []byte, rand io.Reader) (r, s Scalar, err error)

	// VerifyDigest checks an ECDSA (r, s) pair over a digest with the curve
	// library's own primitive.  A false result with a nil error means the
	// signature was rejected; a non-nil error means verification could not
	// be performed.
	VerifyDigest(pub *Point, digest []byte, r, s *Scalar) (bool, error)
}

// Curve names accepted by ByName.
const (
	NameNISTP256  = "P-256"
	NameSecp256k1 = "secp256k1"
)

// ByName returns the curve with the provided name.  Matching is case
// insensitive and accepts the common aliases used by IEEE 1609.2 tooling.
func ByName(name string) (Curve, error) {
	switch strings.ToLower(name) {
	case "p-256", "p256", "nistp256", "secp256r1", "prime256v1":
		return NISTP256, nil
	case "secp256k1", "k256":
		return Secp256k1, nil
	}
	return nil, makeError(ErrUnknownCurve, "unknown curve "+name)
}

// ValidatePrivateScalar ensures k lies in [1, n-1].
func ValidatePrivateScalar(c Curve, k *Scalar) error {
	if k.IsZero() {
		return makeError(ErrScalarOutOfRange, "scalar is zero")
	}
	if _, err := c.ScalarFromBytes(k[:]); err != nil {
		return err
	}
	return nil
}

// reduceWide reduces an arbitrary length big-endian integer modulo n one
// 32-byte chunk at a time.  mulAdd must return (acc*2^256 + chunk) mod n for a
// right-aligned 32-byte chunk.
func reduceWide(b []byte, mulAdd func(acc *Scalar, chunk *[32]byte) Scalar) Scalar {
	var acc Scalar
	first := len(b) % 32
	if first == 0 && len(b) > 0 {
		first = 32
	}
	for off := 0; off < len(b); {
		end := off + 32
		if off == 0 {
			end = first
		}
		var chunk [32]byte
		copy(chunk[32-(end-off):], b[off:end])
		acc = mulAdd(&acc, &chunk)
		off = end
	}
	return acc
}
