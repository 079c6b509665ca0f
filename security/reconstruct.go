// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"github.com/eggandi/innowireless-dev-sub001/ec256"
)

// checkScalar ensures a 32-byte scalar input is fully reduced.
func checkScalar(c ec256.Curve, s *ec256.Scalar, what string) error {
	if _, err := c.ScalarFromBytes(s[:]); err != nil {
		return curveError(err, what+" is not a valid scalar")
	}
	return nil
}

// ReconstructPrivateKey returns (hInput*initPriv + reconPriv) mod n, the
// private key of an implicit certificate.  initPriv is the requester's
// initial private key and reconPriv the private reconstruction value returned
// by the issuer.
func ReconstructPrivateKey(c ec256.Curve, initPriv, reconPriv, hInput *ec256.Scalar) (ec256.Scalar, error) {
	if err := ec256.ValidatePrivateScalar(c, initPriv); err != nil {
		return ec256.Scalar{}, curveError(err, "initial private key is invalid")
	}
	if err := checkScalar(c, reconPriv, "private reconstruction value"); err != nil {
		return ec256.Scalar{}, err
	}
	if err := checkScalar(c, hInput, "hash input"); err != nil {
		return ec256.Scalar{}, err
	}

	t := c.MulScalars(hInput, initPriv)
	defer t.Zero()
	priv := c.AddScalars(&t, reconPriv)
	if priv.IsZero() {
		return ec256.Scalar{}, makeError(ErrArithmetic, "reconstructed "+
			"private key is zero")
	}
	return priv, nil
}

// ReconstructPrivateKeyFromTBSHash derives the hash input from the hash of
// the certificate's to-be-signed region and the issuer hash and then
// reconstructs the private key.
func ReconstructPrivateKeyFromTBSHash(c ec256.Curve, initPriv, reconPriv *ec256.Scalar, tbsHash, issuerHash *Hash256) (ec256.Scalar, error) {
	h := KeyReconstructionHashInput(tbsHash, issuerHash)
	hInput := HashToScalar(c, &h)
	return ReconstructPrivateKey(c, initPriv, reconPriv, &hInput)
}

// ReconstructPrivateKeyFromCert locates and hashes the to-be-signed region of
// cert and then reconstructs the private key.
func ReconstructPrivateKeyFromCert(c ec256.Curve, initPriv, reconPriv *ec256.Scalar, cert []byte, loc TBSLocator, issuerHash *Hash256) (ec256.Scalar, error) {
	h, err := CertKeyReconstructionHashInput(cert, loc, issuerHash)
	if err != nil {
		return ec256.Scalar{}, err
	}
	hInput := HashToScalar(c, &h)
	return ReconstructPrivateKey(c, initPriv, reconPriv, &hInput)
}

// ReconstructPublicKey returns hInput*reconPub + issuerPub, the public key of
// an implicit certificate.
func ReconstructPublicKey(c ec256.Curve, reconPub *ec256.Point, hInput *ec256.Scalar, issuerPub *ec256.Point) (ec256.Point, error) {
	if err := checkScalar(c, hInput, "hash input"); err != nil {
		return ec256.Point{}, err
	}
	if !c.IsOnCurve(reconPub) {
		return ec256.Point{}, makeError(ErrInvalidEncoding, "public "+
			"reconstruction value is not on the curve")
	}
	if !c.IsOnCurve(issuerPub) {
		return ec256.Point{}, makeError(ErrInvalidEncoding, "issuer public "+
			"key is not on the curve")
	}

	t, err := c.ScalarMult(reconPub, hInput)
	if err != nil {
		return ec256.Point{}, curveError(err, "unable to scale public "+
			"reconstruction value")
	}
	pub, err := c.AddPoints(&t, issuerPub)
	if err != nil {
		return ec256.Point{}, curveError(err, "unable to add issuer public key")
	}
	return pub, nil
}

// parseReconPoints decodes the public reconstruction value and the issuer
// public key octets.
func parseReconPoints(c ec256.Curve, reconPub, issuerPub []byte) (ec256.Point, ec256.Point, error) {
	rp, err := c.ParsePoint(reconPub)
	if err != nil {
		return ec256.Point{}, ec256.Point{}, curveError(err, "malformed "+
			"public reconstruction value")
	}
	ip, err := c.ParsePoint(issuerPub)
	if err != nil {
		return ec256.Point{}, ec256.Point{}, curveError(err, "malformed "+
			"issuer public key")
	}
	return rp, ip, nil
}

// ReconstructPublicKeyFromTBSHash decodes the point octets, derives the hash
// input from the to-be-signed hash and the issuer hash, and reconstructs the
// public key.
func ReconstructPublicKeyFromTBSHash(c ec256.Curve, reconPub []byte, tbsHash, issuerHash *Hash256, issuerPub []byte) (ec256.Point, error) {
	rp, ip, err := parseReconPoints(c, reconPub, issuerPub)
	if err != nil {
		return ec256.Point{}, err
	}
	h := KeyReconstructionHashInput(tbsHash, issuerHash)
	hInput := HashToScalar(c, &h)
	return ReconstructPublicKey(c, &rp, &hInput, &ip)
}

// ReconstructPublicKeyFromCert is the same as ReconstructPublicKeyFromTBSHash
// except the to-be-signed hash is computed from the certificate region
// reported by loc.
func ReconstructPublicKeyFromCert(c ec256.Curve, reconPub, cert []byte, loc TBSLocator, issuerHash *Hash256, issuerPub []byte) (ec256.Point, error) {
	tbs, err := TBSBytes(cert, loc)
	if err != nil {
		return ec256.Point{}, err
	}
	tbsHash := HashBytes(tbs)
	return ReconstructPublicKeyFromTBSHash(c, reconPub, &tbsHash, issuerHash,
		issuerPub)
}

// ReconstructKeyPair reconstructs both halves of an implicit certificate key
// pair and checks that they correspond.  No key material is returned when the
// check fails.
func ReconstructKeyPair(c ec256.Curve, initPriv, reconPriv *ec256.Scalar, reconPub *ec256.Point, hInput *ec256.Scalar, issuerPub *ec256.Point) (KeyPair, error) {
	priv, err := ReconstructPrivateKey(c, initPriv, reconPriv, hInput)
	if err != nil {
		return KeyPair{}, err
	}
	pub, err := ReconstructPublicKey(c, reconPub, hInput, issuerPub)
	if err != nil {
		priv.Zero()
		return KeyPair{}, err
	}
	kp := KeyPair{Private: priv, Public: pub}
	if err := ValidateKeyPair(c, &kp); err != nil {
		kp.Zero()
		log.Warnf("Reconstructed %s key pair does not verify: %v", c.Name(), err)
		return KeyPair{}, err
	}
	return kp, nil
}

// ReconstructKeyPairFromCert reconstructs and checks an implicit certificate
// key pair starting from the raw certificate and encoded points.
func ReconstructKeyPairFromCert(c ec256.Curve, initPriv, reconPriv *ec256.Scalar, reconPub, cert []byte, loc TBSLocator, issuerHash *Hash256, issuerPub []byte) (KeyPair, error) {
	rp, ip, err := parseReconPoints(c, reconPub, issuerPub)
	if err != nil {
		return KeyPair{}, err
	}
	h, err := CertKeyReconstructionHashInput(cert, loc, issuerHash)
	if err != nil {
		return KeyPair{}, err
	}
	hInput := HashToScalar(c, &h)
	return ReconstructKeyPair(c, initPriv, reconPriv, &rp, &hInput, &ip)
}
