// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec256

import (
	"encoding/hex"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// k256R is 2^256 mod n for secp256k1, used to fold wide integers into the
// scalar field.
var k256R = func() secp256k1.ModNScalar {
	b, err := hex.DecodeString("000000000000000000000000000000014551231950" +
		"b75fc4402da1732fc9bebf")
	if err != nil {
		panic(err)
	}
	var r secp256k1.ModNScalar
	r.SetByteSlice(b)
	return r
}()

// koblitz implements Curve for secp256k1 on top of the dcrd secp256k1
// package.
type koblitz struct{}

// Secp256k1 is the secp256k1 curve.
var Secp256k1 Curve = koblitz{}

// Name returns the canonical curve name.
func (koblitz) Name() string {
	return NameSecp256k1
}

// Order returns a copy of the group order.
func (koblitz) Order() *big.Int {
	return new(big.Int).Set(secp256k1.Params().N)
}

func k256Scalar(s *Scalar) secp256k1.ModNScalar {
	var k secp256k1.ModNScalar
	k.SetBytes((*[32]byte)(s))
	return k
}

// ScalarFromBytes decodes a canonical 32-byte scalar.
func (koblitz) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, makeError(ErrInvalidEncoding, "scalar must be 32 bytes")
	}
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(b); overflow {
		return Scalar{}, makeError(ErrScalarOutOfRange,
			"scalar is not less than the secp256k1 group order")
	}
	return Scalar(k.Bytes()), nil
}

// ReduceScalar reduces an arbitrary length big-endian integer modulo n.
func (koblitz) ReduceScalar(b []byte) Scalar {
	return reduceWide(b, func(acc *Scalar, chunk *[32]byte) Scalar {
		a := k256Scalar(acc)
		a.Mul(&k256R)
		var c secp256k1.ModNScalar
		c.SetBytes(chunk)
		a.Add(&c)
		return Scalar(a.Bytes())
	})
}

// AddScalars returns (a + b) mod n.
func (koblitz) AddScalars(a, b *Scalar) Scalar {
	x, y := k256Scalar(a), k256Scalar(b)
	return Scalar(x.Add(&y).Bytes())
}

// MulScalars returns (a * b) mod n.
func (koblitz) MulScalars(a, b *Scalar) Scalar {
	x, y := k256Scalar(a), k256Scalar(b)
	return Scalar(x.Mul(&y).Bytes())
}

// InverseScalar returns a^-1 mod n.
//
// This is NOT constant time.
func (koblitz) InverseScalar(a *Scalar) Scalar {
	x := k256Scalar(a)
	return Scalar(x.InverseNonConst().Bytes())
}

// isInfinity returns whether the Jacobian point is the point at infinity.
func isInfinity(p *secp256k1.JacobianPoint) bool {
	return (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero()
}

// fromJacobian converts a Jacobian point into an affine Point.
func fromJacobian(p *secp256k1.JacobianPoint) (Point, error) {
	if isInfinity(p) {
		return Point{}, makeError(ErrPointAtInfinity, "result is the point "+
			"at infinity")
	}
	p.ToAffine()
	p.X.Normalize()
	p.Y.Normalize()
	var out Point
	p.X.PutBytes(&out.X)
	p.Y.PutBytes(&out.Y)
	return out, nil
}

// toJacobian converts an affine Point into Jacobian form after ensuring it is
// on the curve.
func toJacobian(p *Point) (secp256k1.JacobianPoint, error) {
	var result secp256k1.JacobianPoint
	pub, err := secp256k1.ParsePubKey(p.SerializeUncompressed())
	if err != nil {
		return result, makeError(ErrNotOnCurve, "point is not on secp256k1: "+
			err.Error())
	}
	pub.AsJacobian(&result)
	return result, nil
}

// ScalarBaseMult returns k*G.
func (koblitz) ScalarBaseMult(k *Scalar) (Point, error) {
	scalar := k256Scalar(k)
	defer scalar.Zero()
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&scalar, &result)
	return fromJacobian(&result)
}

// ScalarMult returns k*p.
func (koblitz) ScalarMult(p *Point, k *Scalar) (Point, error) {
	point, err := toJacobian(p)
	if err != nil {
		return Point{}, err
	}
	scalar := k256Scalar(k)
	defer scalar.Zero()
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&scalar, &point, &result)
	return fromJacobian(&result)
}

// AddPoints returns p + q.
func (koblitz) AddPoints(p, q *Point) (Point, error) {
	a, err := toJacobian(p)
	if err != nil {
		return Point{}, err
	}
	b, err := toJacobian(q)
	if err != nil {
		return Point{}, err
	}
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a, &b, &result)
	return fromJacobian(&result)
}

// ParsePoint decodes compressed or uncompressed SEC 1 octets.
func (koblitz) ParsePoint(b []byte) (Point, error) {
	if err := checkPointEncoding(b); err != nil {
		return Point{}, err
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, makeError(ErrNotOnCurve, "point is not on "+
			"secp256k1: "+err.Error())
	}
	return pointFromUncompressed(pub.SerializeUncompressed()), nil
}

// IsOnCurve returns whether p is a valid secp256k1 point.
func (koblitz) IsOnCurve(p *Point) bool {
	_, err := toJacobian(p)
	return err == nil
}

// SignDigest signs with the dcrd ecdsa package.  Nonces are derived per RFC
// 6979, so rand is not consulted.
func (koblitz) SignDigest(priv *Scalar, digest []byte, _ io.Reader) (Scalar, Scalar, error) {
	key := secp256k1.PrivKeyFromBytes(priv[:])
	defer key.Zero()
	if key.Key.IsZero() {
		return Scalar{}, Scalar{}, makeError(ErrScalarOutOfRange,
			"private key is zero")
	}
	sig := ecdsa.Sign(key, digest)
	r, s := sig.R(), sig.S()
	return Scalar(r.Bytes()), Scalar(s.Bytes()), nil
}

// VerifyDigest verifies with the dcrd ecdsa package.
func (koblitz) VerifyDigest(pub *Point, digest []byte, r, s *Scalar) (bool, error) {
	key, err := secp256k1.ParsePubKey(pub.SerializeUncompressed())
	if err != nil {
		return false, makeError(ErrNotOnCurve, "public key is not on "+
			"secp256k1: "+err.Error())
	}
	var sigR, sigS secp256k1.ModNScalar
	overflowR := sigR.SetBytes((*[32]byte)(r))
	overflowS := sigS.SetBytes((*[32]byte)(s))
	if overflowR != 0 || overflowS != 0 || sigR.IsZero() || sigS.IsZero() {
		return false, nil
	}
	return ecdsa.NewSignature(&sigR, &sigS).Verify(digest, key), nil
}
