// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"io"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
)

// SignerConfig houses the configuration for a Signer.
type SignerConfig struct {
	// Curve is the curve all keys handled by the signer belong to.
	Curve ec256.Curve

	// Pool optionally supplies precomputed signing parameters.  It must be
	// configured for the same curve.
	Pool *SigningPool

	// Rand is the nonce source used when no pool is attached.  A nil value
	// selects the default cryptographically secure source.  Tests inject
	// a fixed reader to reproduce known signatures.
	Rand io.Reader
}

// Signer produces ECDSA signatures in any SignatureForm.  It is safe for
// concurrent use when its random source is.
type Signer struct {
	curve ec256.Curve
	pool  *SigningPool
	rand  io.Reader
}

// NewSigner returns a signer for the provided configuration.
func NewSigner(cfg *SignerConfig) (*Signer, error) {
	if cfg.Curve == nil {
		return nil, makeError(ErrOperational, "signer requires a curve")
	}
	if cfg.Pool != nil && cfg.Pool.Curve().Name() != cfg.Curve.Name() {
		return nil, makeError(ErrOperational, "signing pool curve "+
			cfg.Pool.Curve().Name()+" does not match signer curve "+
			cfg.Curve.Name())
	}
	return &Signer{
		curve: cfg.Curve,
		pool:  cfg.Pool,
		rand:  defaultRand(cfg.Rand),
	}, nil
}

// Curve returns the curve the signer operates on.
func (s *Signer) Curve() ec256.Curve {
	return s.curve
}

// Sign signs H(H(tbs) || signerHash) with priv.  A nil signerHash selects
// H("") as used for self-signed data.
func (s *Signer) Sign(form SignatureForm, tbs []byte, signerHash *Hash256, priv *ec256.Scalar) (*Signature, error) {
	e := SignatureHashInput(tbs, signerHash)
	return s.SignDigest(form, &e, priv, nil)
}

// SignWithParams is the same as Sign except the caller supplies the signing
// parameters.  The parameters must never be used again afterwards.
func (s *Signer) SignWithParams(form SignatureForm, tbs []byte, signerHash *Hash256, priv *ec256.Scalar, params *SigningParams) (*Signature, error) {
	e := SignatureHashInput(tbs, signerHash)
	return s.SignDigest(form, &e, priv, params)
}

// SignDigest signs a precomputed signature hash input.
//
// When params is nil they are taken from the attached pool or, without a
// pool, freshly computed.  An x-only signature with neither params nor a pool
// is produced by the curve backend's own ECDSA primitive.
func (s *Signer) SignDigest(form SignatureForm, digest *Hash256, priv *ec256.Scalar, params *SigningParams) (*Signature, error) {
	if _, ok := formStrings[form]; !ok {
		return nil, makeError(ErrInvalidEncoding, form.String())
	}
	if err := ec256.ValidatePrivateScalar(s.curve, priv); err != nil {
		return nil, curveError(err, "invalid signing key")
	}

	if params == nil {
		var owned SigningParams
		var err error
		switch {
		case s.pool != nil:
			owned, err = s.pool.Take()
		case form == FormXOnly:
			return s.signBackend(digest, priv)
		default:
			owned, err = ComputeSigningParameters(s.curve, s.rand)
		}
		if err != nil {
			return nil, err
		}
		defer owned.Zero()
		params = &owned
	}
	return signWithParams(s.curve, form, digest, priv, params)
}

// signBackend produces an x-only signature with the curve backend.
func (s *Signer) signBackend(digest *Hash256, priv *ec256.Scalar) (*Signature, error) {
	r, sv, err := s.curve.SignDigest(priv, digest[:], s.rand)
	if err != nil {
		return nil, curveError(err, "curve backend failed to sign")
	}
	return &Signature{Form: FormXOnly, R: ec256.Point{X: r}, S: sv}, nil
}

// signWithParams computes s = kInv * (e + r*d) mod n.
func signWithParams(c ec256.Curve, form SignatureForm, digest *Hash256, priv *ec256.Scalar, params *SigningParams) (*Signature, error) {
	if params.R.IsZero() || params.KInv.IsZero() {
		return nil, makeError(ErrArithmetic, "signing parameters are empty")
	}
	if form.hasPoint() {
		r := c.ReduceScalar(params.Point.X[:])
		if !r.Equals(&params.R) || !c.IsOnCurve(&params.Point) {
			return nil, makeError(ErrArithmetic, "signing parameters are "+
				"inconsistent")
		}
	}

	e := HashToScalar(c, digest)
	rd := c.MulScalars(&params.R, priv)
	defer rd.Zero()
	t := c.AddScalars(&e, &rd)
	defer t.Zero()
	sv := c.MulScalars(&params.KInv, &t)
	if sv.IsZero() {
		return nil, makeError(ErrArithmetic, "signature s is zero")
	}

	sig := &Signature{Form: form, S: sv}
	if form.hasPoint() {
		sig.R = params.Point
	} else {
		sig.R.X = params.R
	}
	return sig, nil
}

// Verify checks sig over H(H(tbs) || signerHash) against pub.  It returns nil
// on success, ErrSignatureInvalid when the signature is rejected, and
// ErrVerificationFailed when verification could not be performed.
func Verify(c ec256.Curve, tbs []byte, signerHash *Hash256, pub *ec256.Point, sig *Signature) error {
	e := SignatureHashInput(tbs, signerHash)
	return VerifyDigest(c, &e, pub, sig)
}

// VerifyBytes is the same as Verify for encoded public key and signature
// octets.  A signature that cannot be decoded is reported as invalid while a
// public key that cannot be decoded makes verification fail.
func VerifyBytes(c ec256.Curve, tbs []byte, signerHash *Hash256, pub, sig []byte) error {
	q, err := c.ParsePoint(pub)
	if err != nil {
		return Error{Err: ErrVerificationFailed, Description: "malformed " +
			"public key", RawErr: err}
	}
	parsed, err := ParseSignature(c, sig)
	if err != nil {
		return Error{Err: ErrSignatureInvalid, Description: "malformed " +
			"signature", RawErr: err}
	}
	return Verify(c, tbs, signerHash, &q, parsed)
}

// VerifyDigest checks sig over a precomputed signature hash input.
//
// Signatures carrying the full point R are additionally required to match the
// point recomputed from the signature, so the transmitted Y coordinate (or
// its parity) is bound to the signature as well.
func VerifyDigest(c ec256.Curve, digest *Hash256, pub *ec256.Point, sig *Signature) error {
	if !c.IsOnCurve(pub) {
		return makeError(ErrVerificationFailed, "public key is not on the "+
			"curve")
	}

	var r ec256.Scalar
	switch sig.Form {
	case FormXOnly:
		var err error
		r, err = c.ScalarFromBytes(sig.R.X[:])
		if err != nil {
			return Error{Err: ErrSignatureInvalid, Description: "signature r " +
				"is out of range", RawErr: err}
		}
	case FormCompressed, FormUncompressed:
		if !c.IsOnCurve(&sig.R) {
			return makeError(ErrSignatureInvalid, "signature R is not on the "+
				"curve")
		}
		r = c.ReduceScalar(sig.R.X[:])
	default:
		return makeError(ErrVerificationFailed, sig.Form.String())
	}
	if r.IsZero() {
		return makeError(ErrSignatureInvalid, "signature r is zero")
	}
	if _, err := c.ScalarFromBytes(sig.S[:]); err != nil || sig.S.IsZero() {
		return makeError(ErrSignatureInvalid, "signature s is out of range")
	}

	ok, err := c.VerifyDigest(pub, digest[:], &r, &sig.S)
	if err != nil {
		return Error{Err: ErrVerificationFailed, Description: "curve backend " +
			"failed to verify", RawErr: err}
	}
	if !ok {
		return makeError(ErrSignatureInvalid, "signature does not verify")
	}

	if sig.Form.hasPoint() {
		rp, err := recomputeR(c, digest, pub, &r, &sig.S)
		if err != nil {
			return Error{Err: ErrVerificationFailed, Description: "unable to " +
				"recompute R", RawErr: err}
		}
		if !rp.Equals(&sig.R) {
			return makeError(ErrSignatureInvalid, "signature R does not match")
		}
	}
	return nil
}

// recomputeR returns s^-1 * (e*G + r*Q).
func recomputeR(c ec256.Curve, digest *Hash256, pub *ec256.Point, r, s *ec256.Scalar) (ec256.Point, error) {
	e := HashToScalar(c, digest)
	w := c.InverseScalar(s)
	u1 := c.MulScalars(&e, &w)
	u2 := c.MulScalars(r, &w)
	rq, err := c.ScalarMult(pub, &u2)
	if err != nil {
		return ec256.Point{}, err
	}
	if u1.IsZero() {
		return rq, nil
	}
	eg, err := c.ScalarBaseMult(&u1)
	if err != nil {
		return ec256.Point{}, err
	}
	return c.AddPoints(&eg, &rq)
}
