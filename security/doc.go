// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package security implements the IEEE 1609.2 credential cryptography used by
V2X devices: hash input derivation, implicit certificate key reconstruction,
butterfly key expansion, and ECDSA signature generation and verification.

All operations work over any ec256.Curve, so the same code serves NIST P-256
and secp256k1 credentials.

# Hash Inputs

Signatures are computed over e = H(H(tbs) || H(signer)) where the signer hash
is H("") for self-signed data.  Key reconstruction uses
H(CertU) = H(H(tbsCert) || H(issuer)).  Callers that hold complete encoded
certificates provide a TBSLocator that reports where the to-be-signed region
lies, which keeps certificate decoding outside of this package.

# Key Reconstruction

An implicit certificate carries a public reconstruction value P instead of a
public key.  Given the requester's initial private key k, the private
reconstruction value r from the issuer, and hash input e:

	private = e*k + r (mod n)
	public  = e*P + Q_issuer

Reconstructed pairs are always checked to satisfy public = private*G before
they are returned.  KeyCache remembers reconstructed public keys of peers.

# Butterfly Keys

Butterfly expansion derives the cocoon key for indices (i, j) from a
caterpillar key and an AES-128 expansion key.  CocoonKeyPair and
CocoonPublicKey give the device and registration authority views of the same
derivation and ButterflyReconstructKeyPair turns a cocoon key and a pseudonym
certificate into the final key pair.

# Signatures

A Signer produces signatures in three encodings of the ephemeral point R:
x-only, compressed, and uncompressed.  Nonce generation can be moved off the
signing path with a SigningPool whose refill loop is driven by Run:

	pool, err := security.NewSigningPool(&security.PoolConfig{
		Curve: ec256.NISTP256,
	})
	if err != nil {
		return err
	}
	go pool.Run(ctx)

	signer, err := security.NewSigner(&security.SignerConfig{
		Curve: ec256.NISTP256,
		Pool:  pool,
	})

The pool never hands the same parameters to two callers.  Verification
distinguishes a rejected signature (ErrSignatureInvalid) from a failure to
verify at all (ErrVerificationFailed).

# Errors

Errors returned by this package are of type Error and wrap one of the
ErrorKind values so callers can use errors.Is.
*/
package security
