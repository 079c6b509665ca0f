// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"encoding/binary"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
	"github.com/eggandi/innowireless-dev-sub001/internal/aesprf"
)

// SymmetricKeySize is the size of a butterfly expansion key or linkage seed.
const SymmetricKeySize = aesprf.KeySize

// ExpansionSize is the size of the butterfly expansion function output.
const ExpansionSize = 3 * aesprf.BlockSize

// SymmetricKey is an AES-128 key.
type SymmetricKey [SymmetricKeySize]byte

// Zero clears the key.
func (k *SymmetricKey) Zero() {
	*k = SymmetricKey{}
}

// expansionInput encodes prefix || BE32(i) || BE32(j) || 0x00000000.
func expansionInput(prefix, i, j uint32) [aesprf.BlockSize]byte {
	var x [aesprf.BlockSize]byte
	binary.BigEndian.PutUint32(x[0:4], prefix)
	binary.BigEndian.PutUint32(x[4:8], i)
	binary.BigEndian.PutUint32(x[8:12], j)
	return x
}

// SigningExpansionInput returns the expansion function input for the signing
// cocoon key with indices (i, j).
func SigningExpansionInput(i, j uint32) [aesprf.BlockSize]byte {
	return expansionInput(0x00000000, i, j)
}

// EncryptionExpansionInput returns the expansion function input for the
// encryption cocoon key with indices (i, j).  It differs from the signing
// input only in its leading four bytes.
func EncryptionExpansionInput(i, j uint32) [aesprf.BlockSize]byte {
	return expansionInput(0xffffffff, i, j)
}

// ExpansionFunction computes fInt(key, x): the concatenation of
// AES(key, x_t) XOR x_t for t = 1, 2, 3 where x_t is x with its final byte
// replaced by t.
func ExpansionFunction(key *SymmetricKey, x *[aesprf.BlockSize]byte) ([ExpansionSize]byte, error) {
	var out [ExpansionSize]byte
	prf, err := aesprf.New((*[aesprf.KeySize]byte)(key))
	if err != nil {
		return out, Error{Err: ErrArithmetic, Description: "unable to " +
			"expand butterfly key", RawErr: err}
	}
	xt := *x
	for t := 1; t <= 3; t++ {
		xt[aesprf.BlockSize-1] = byte(t)
		block := prf.Eval(&xt)
		copy(out[(t-1)*aesprf.BlockSize:], block[:])
	}
	return out, nil
}

// expansionScalar returns fInt(key, x) mod n.
func expansionScalar(c ec256.Curve, key *SymmetricKey, x *[aesprf.BlockSize]byte) (ec256.Scalar, error) {
	fInt, err := ExpansionFunction(key, x)
	if err != nil {
		return ec256.Scalar{}, err
	}
	return c.ReduceScalar(fInt[:]), nil
}

// cocoonKeyPair derives seedPriv + f and seedPriv*G + f*G for the expansion
// input x.
func cocoonKeyPair(c ec256.Curve, x *[aesprf.BlockSize]byte, key *SymmetricKey, seedPriv *ec256.Scalar) (KeyPair, error) {
	if err := ec256.ValidatePrivateScalar(c, seedPriv); err != nil {
		return KeyPair{}, curveError(err, "caterpillar private key is invalid")
	}
	f, err := expansionScalar(c, key, x)
	if err != nil {
		return KeyPair{}, err
	}
	defer f.Zero()

	priv := c.AddScalars(seedPriv, &f)
	if priv.IsZero() {
		return KeyPair{}, makeError(ErrArithmetic, "cocoon private key is zero")
	}
	seedPub, err := c.ScalarBaseMult(seedPriv)
	if err != nil {
		priv.Zero()
		return KeyPair{}, curveError(err, "unable to derive caterpillar "+
			"public key")
	}
	fG, err := c.ScalarBaseMult(&f)
	if err != nil {
		priv.Zero()
		return KeyPair{}, curveError(err, "unable to derive expansion point")
	}
	pub, err := c.AddPoints(&seedPub, &fG)
	if err != nil {
		priv.Zero()
		return KeyPair{}, curveError(err, "unable to derive cocoon public key")
	}
	return KeyPair{Private: priv, Public: pub}, nil
}

// CocoonKeyPair derives the signing cocoon key pair with indices (i, j) from
// the caterpillar private key and the expansion key.
func CocoonKeyPair(c ec256.Curve, i, j uint32, expansionKey *SymmetricKey, seedPriv *ec256.Scalar) (KeyPair, error) {
	x := SigningExpansionInput(i, j)
	return cocoonKeyPair(c, &x, expansionKey, seedPriv)
}

// EncryptionCocoonKeyPair derives the encryption cocoon key pair with indices
// (i, j).
func EncryptionCocoonKeyPair(c ec256.Curve, i, j uint32, expansionKey *SymmetricKey, seedPriv *ec256.Scalar) (KeyPair, error) {
	x := EncryptionExpansionInput(i, j)
	return cocoonKeyPair(c, &x, expansionKey, seedPriv)
}

// cocoonPublicKey returns seedPub + f*G for the expansion input x.
func cocoonPublicKey(c ec256.Curve, x *[aesprf.BlockSize]byte, key *SymmetricKey, seedPub *ec256.Point) (ec256.Point, error) {
	if !c.IsOnCurve(seedPub) {
		return ec256.Point{}, makeError(ErrInvalidEncoding, "caterpillar "+
			"public key is not on the curve")
	}
	f, err := expansionScalar(c, key, x)
	if err != nil {
		return ec256.Point{}, err
	}
	defer f.Zero()
	fG, err := c.ScalarBaseMult(&f)
	if err != nil {
		return ec256.Point{}, curveError(err, "unable to derive expansion point")
	}
	pub, err := c.AddPoints(seedPub, &fG)
	if err != nil {
		return ec256.Point{}, curveError(err, "unable to derive cocoon public key")
	}
	return pub, nil
}

// CocoonPublicKey derives the signing cocoon public key with indices (i, j)
// from the caterpillar public key.  This is the registration authority side
// of the expansion and matches the public half of CocoonKeyPair.
func CocoonPublicKey(c ec256.Curve, i, j uint32, expansionKey *SymmetricKey, seedPub *ec256.Point) (ec256.Point, error) {
	x := SigningExpansionInput(i, j)
	return cocoonPublicKey(c, &x, expansionKey, seedPub)
}

// EncryptionCocoonPublicKey derives the encryption cocoon public key with
// indices (i, j) from the caterpillar encryption public key.
func EncryptionCocoonPublicKey(c ec256.Curve, i, j uint32, expansionKey *SymmetricKey, seedPub *ec256.Point) (ec256.Point, error) {
	x := EncryptionExpansionInput(i, j)
	return cocoonPublicKey(c, &x, expansionKey, seedPub)
}

// ButterflyParams houses the inputs needed to reconstruct the key pair of a
// butterfly-expanded pseudonym certificate.
type ButterflyParams struct {
	// I and J index the cocoon key within the batch.
	I, J uint32

	// ExpansionKey is the butterfly expansion key.
	ExpansionKey SymmetricKey

	// SeedPrivate is the caterpillar private key.
	SeedPrivate ec256.Scalar

	// ReconPrivate is the private reconstruction value from the issuer.
	ReconPrivate ec256.Scalar

	// ReconPublic holds the encoded public reconstruction value carried by
	// the certificate.
	ReconPublic []byte

	// Cert is the encoded certificate and Locator finds its to-be-signed
	// region.  When Cert is nil, TBSHash must be set instead.
	Cert    []byte
	Locator TBSLocator
	TBSHash *Hash256

	// IssuerHash and IssuerPublic identify the issuing authority.
	IssuerHash   Hash256
	IssuerPublic []byte
}

// ButterflyReconstructKeyPair expands the caterpillar key into the (I, J)
// signing cocoon key, reconstructs the certificate key pair from it, and
// checks that the two reconstructed halves correspond.
func ButterflyReconstructKeyPair(c ec256.Curve, p *ButterflyParams) (KeyPair, error) {
	var h Hash256
	switch {
	case p.Cert != nil:
		loc := p.Locator
		if loc == nil {
			loc = WholeCertificate
		}
		var err error
		h, err = CertKeyReconstructionHashInput(p.Cert, loc, &p.IssuerHash)
		if err != nil {
			return KeyPair{}, err
		}
	case p.TBSHash != nil:
		h = KeyReconstructionHashInput(p.TBSHash, &p.IssuerHash)
	default:
		return KeyPair{}, makeError(ErrTBSRegion, "neither a certificate nor "+
			"a to-be-signed hash was provided")
	}
	hInput := HashToScalar(c, &h)

	rp, ip, err := parseReconPoints(c, p.ReconPublic, p.IssuerPublic)
	if err != nil {
		return KeyPair{}, err
	}

	cocoon, err := CocoonKeyPair(c, p.I, p.J, &p.ExpansionKey, &p.SeedPrivate)
	if err != nil {
		return KeyPair{}, err
	}
	defer cocoon.Zero()

	kp, err := ReconstructKeyPair(c, &cocoon.Private, &p.ReconPrivate, &rp,
		&hInput, &ip)
	if err != nil {
		return KeyPair{}, err
	}
	log.Debugf("Reconstructed butterfly key (i=%d, j=%d) on %s", p.I, p.J,
		c.Name())
	return kp, nil
}
