// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"io"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
)

// KeyPair is a private scalar together with its public point.  Pairs
// produced by this package always satisfy Public = Private*G.
type KeyPair struct {
	Private ec256.Scalar
	Public  ec256.Point
}

// Zero clears the private half of the pair.
func (kp *KeyPair) Zero() {
	kp.Private.Zero()
}

// ValidateKeyPair ensures the private scalar is in [1, n-1] and that the
// public point equals Private*G.
func ValidateKeyPair(c ec256.Curve, kp *KeyPair) error {
	if err := ec256.ValidatePrivateScalar(c, &kp.Private); err != nil {
		return Error{Err: ErrKeyPairMismatch, Description: "private key is " +
			"out of range", RawErr: err}
	}
	pub, err := c.ScalarBaseMult(&kp.Private)
	if err != nil {
		return curveError(err, "unable to derive public key")
	}
	if !pub.Equals(&kp.Public) {
		return makeError(ErrKeyPairMismatch, "public key does not correspond "+
			"to private key")
	}
	return nil
}

// GenerateKeyPair draws a uniformly random private scalar from rand and
// returns it with its public point.  A nil rand selects the default
// cryptographically secure source.
func GenerateKeyPair(c ec256.Curve, rand io.Reader) (KeyPair, error) {
	priv, err := randomScalar(c, rand)
	if err != nil {
		return KeyPair{}, err
	}
	pub, err := c.ScalarBaseMult(&priv)
	if err != nil {
		priv.Zero()
		return KeyPair{}, curveError(err, "unable to derive public key")
	}
	return KeyPair{Private: priv, Public: pub}, nil
}
