// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec256

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"io"
	"math/big"

	"filippo.io/nistec"
	"github.com/holiman/uint256"
)

var (
	// p256N is the order of the NIST P-256 base point.
	p256N = uint256.MustFromHex("0xffffffff00000000ffffffffffffffff" +
		"bce6faada7179e84f3b9cac2fc632551")

	// p256NMinus2 is the exponent used for inversion via Fermat's little
	// theorem.
	p256NMinus2 = uint256.MustFromHex("0xffffffff00000000ffffffffffffffff" +
		"bce6faada7179e84f3b9cac2fc63254f")

	// p256R is 2^256 mod n, used to fold wide integers into the scalar
	// field.
	p256R = uint256.MustFromHex("0xffffffff000000000000000043190552" +
		"58e8617b0c46353d039cdaaf")
)

// nistP256 implements Curve for NIST P-256.  Group operations are delegated
// to filippo.io/nistec and scalar field arithmetic is done with fixed-width
// 256-bit integers.
type nistP256 struct{}

// NISTP256 is the NIST P-256 (secp256r1) curve.
var NISTP256 Curve = nistP256{}

// Name returns the canonical curve name.
func (nistP256) Name() string {
	return NameNISTP256
}

// Order returns a copy of the group order.
func (nistP256) Order() *big.Int {
	return p256N.ToBig()
}

func p256Int(s *Scalar) *uint256.Int {
	return new(uint256.Int).SetBytes32(s[:])
}

func p256Scalar(x *uint256.Int) Scalar {
	return Scalar(x.Bytes32())
}

// ScalarFromBytes decodes a canonical 32-byte scalar.
func (nistP256) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, makeError(ErrInvalidEncoding, "scalar must be 32 bytes")
	}
	x := new(uint256.Int).SetBytes32(b)
	if !x.Lt(p256N) {
		return Scalar{}, makeError(ErrScalarOutOfRange,
			"scalar is not less than the P-256 group order")
	}
	return p256Scalar(x), nil
}

// ReduceScalar reduces an arbitrary length big-endian integer modulo n.
func (nistP256) ReduceScalar(b []byte) Scalar {
	return reduceWide(b, func(acc *Scalar, chunk *[32]byte) Scalar {
		a := p256Int(acc)
		a.MulMod(a, p256R, p256N)
		c := new(uint256.Int).SetBytes32(chunk[:])
		c.Mod(c, p256N)
		a.AddMod(a, c, p256N)
		return p256Scalar(a)
	})
}

// AddScalars returns (a + b) mod n.
func (nistP256) AddScalars(a, b *Scalar) Scalar {
	x := p256Int(a)
	x.AddMod(x, p256Int(b), p256N)
	return p256Scalar(x)
}

// MulScalars returns (a * b) mod n.
func (nistP256) MulScalars(a, b *Scalar) Scalar {
	x := p256Int(a)
	x.MulMod(x, p256Int(b), p256N)
	return p256Scalar(x)
}

// InverseScalar returns a^(n-2) mod n, which is the inverse of a for any
// non-zero a since n is prime.
//
// This is NOT constant time.
func (nistP256) InverseScalar(a *Scalar) Scalar {
	base := p256Int(a)
	result := uint256.NewInt(1)
	for i := 255; i >= 0; i-- {
		result.MulMod(result, result, p256N)
		if (p256NMinus2[i/64]>>(uint(i)%64))&1 == 1 {
			result.MulMod(result, base, p256N)
		}
	}
	return p256Scalar(result)
}

// fromNistec converts a nistec point into an affine Point.
func fromNistec(q *nistec.P256Point) (Point, error) {
	b := q.Bytes()
	if len(b) != UncompressedPointSize {
		return Point{}, makeError(ErrPointAtInfinity, "result is the point "+
			"at infinity")
	}
	return pointFromUncompressed(b), nil
}

// toNistec converts an affine Point into a nistec point, which also checks
// that it is on the curve.
func toNistec(p *Point) (*nistec.P256Point, error) {
	q, err := nistec.NewP256Point().SetBytes(p.SerializeUncompressed())
	if err != nil {
		return nil, makeError(ErrNotOnCurve, "point is not on P-256: "+
			err.Error())
	}
	return q, nil
}

// ScalarBaseMult returns k*G.
func (nistP256) ScalarBaseMult(k *Scalar) (Point, error) {
	q, err := nistec.NewP256Point().ScalarBaseMult(k[:])
	if err != nil {
		return Point{}, makeError(ErrBackend, err.Error())
	}
	return fromNistec(q)
}

// ScalarMult returns k*p.
func (nistP256) ScalarMult(p *Point, k *Scalar) (Point, error) {
	q, err := toNistec(p)
	if err != nil {
		return Point{}, err
	}
	r, err := nistec.NewP256Point().ScalarMult(q, k[:])
	if err != nil {
		return Point{}, makeError(ErrBackend, err.Error())
	}
	return fromNistec(r)
}

// AddPoints returns p + q.
func (nistP256) AddPoints(p, q *Point) (Point, error) {
	a, err := toNistec(p)
	if err != nil {
		return Point{}, err
	}
	b, err := toNistec(q)
	if err != nil {
		return Point{}, err
	}
	return fromNistec(nistec.NewP256Point().Add(a, b))
}

// ParsePoint decodes compressed or uncompressed SEC 1 octets.
func (nistP256) ParsePoint(b []byte) (Point, error) {
	if err := checkPointEncoding(b); err != nil {
		return Point{}, err
	}
	q, err := nistec.NewP256Point().SetBytes(b)
	if err != nil {
		return Point{}, makeError(ErrNotOnCurve, "point is not on P-256: "+
			err.Error())
	}
	return fromNistec(q)
}

// IsOnCurve returns whether p is a valid P-256 point.
func (nistP256) IsOnCurve(p *Point) bool {
	_, err := toNistec(p)
	return err == nil
}

// SignDigest signs with crypto/ecdsa, which draws its own nonce from rand.
func (c nistP256) SignDigest(priv *Scalar, digest []byte, rand io.Reader) (Scalar, Scalar, error) {
	pub, err := c.ScalarBaseMult(priv)
	if err != nil {
		return Scalar{}, Scalar{}, err
	}
	key := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{
			Curve: elliptic.P256(),
			X:     new(big.Int).SetBytes(pub.X[:]),
			Y:     new(big.Int).SetBytes(pub.Y[:]),
		},
		D: new(big.Int).SetBytes(priv[:]),
	}
	rr, ss, err := ecdsa.Sign(rand, key, digest)
	key.D.SetInt64(0)
	if err != nil {
		return Scalar{}, Scalar{}, makeError(ErrBackend, "ecdsa sign: "+
			err.Error())
	}
	var r, s Scalar
	rr.FillBytes(r[:])
	ss.FillBytes(s[:])
	return r, s, nil
}

// VerifyDigest verifies with crypto/ecdsa.
func (c nistP256) VerifyDigest(pub *Point, digest []byte, r, s *Scalar) (bool, error) {
	if !c.IsOnCurve(pub) {
		return false, makeError(ErrNotOnCurve, "public key is not on P-256")
	}
	key := &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(pub.X[:]),
		Y:     new(big.Int).SetBytes(pub.Y[:]),
	}
	rr := new(big.Int).SetBytes(r[:])
	ss := new(big.Int).SetBytes(s[:])
	return ecdsa.Verify(key, digest, rr, ss), nil
}
