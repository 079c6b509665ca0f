// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"fmt"
	"io"

	"github.com/decred/dcrd/crypto/rand"
	"github.com/eggandi/innowireless-dev-sub001/ec256"
)

// maxDrawAttempts bounds the rejection sampling loops.  An honest source
// produces an unusable draw with probability below 2^-32 per attempt, so
// exhausting the bound means the source is broken.
const maxDrawAttempts = 64

// SigningParams are the precomputed per-signature values derived from an
// ephemeral nonce k: r = (k*G).x mod n, KInv = k^-1 mod n, and the point
// R = k*G itself.
//
// A set of parameters must be used for exactly one signature.  Signing two
// different digests with the same parameters and key reveals the key.
type SigningParams struct {
	R     ec256.Scalar
	KInv  ec256.Scalar
	Point ec256.Point
}

// Zero clears the parameters.
func (p *SigningParams) Zero() {
	p.R.Zero()
	p.KInv.Zero()
	p.Point = ec256.Point{}
}

// defaultRand returns r when it is non-nil and the process-wide
// cryptographically secure source otherwise.
func defaultRand(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader()
	}
	return r
}

// drawScalar reads one 32-byte candidate from r and reports whether it lies
// in [1, n-1].
func drawScalar(c ec256.Curve, r io.Reader) (ec256.Scalar, bool, error) {
	var buf [ec256.ScalarSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return ec256.Scalar{}, false, Error{Err: ErrRandomSource,
			Description: "unable to read random scalar", RawErr: err}
	}
	k, err := c.ScalarFromBytes(buf[:])
	buf = [ec256.ScalarSize]byte{}
	if err != nil || k.IsZero() {
		return ec256.Scalar{}, false, nil
	}
	return k, true, nil
}

// randomScalar returns a uniformly random scalar in [1, n-1] by rejection
// sampling.
func randomScalar(c ec256.Curve, r io.Reader) (ec256.Scalar, error) {
	r = defaultRand(r)
	for i := 0; i < maxDrawAttempts; i++ {
		k, ok, err := drawScalar(c, r)
		if err != nil {
			return ec256.Scalar{}, err
		}
		if ok {
			return k, nil
		}
	}
	str := fmt.Sprintf("no usable scalar after %d draws", maxDrawAttempts)
	return ec256.Scalar{}, makeError(ErrRandomSource, str)
}

// ComputeSigningParameters draws an ephemeral nonce k in [1, n-1] from rand
// and derives the signing parameters for it.  Draws for which r or k^-1 would
// be zero are rejected and k is drawn again.  A nil rand selects the default
// cryptographically secure source.
//
// Failures of the random source or of the point arithmetic are returned
// immediately without retrying.
func ComputeSigningParameters(c ec256.Curve, rand io.Reader) (SigningParams, error) {
	rand = defaultRand(rand)
	for i := 0; i < maxDrawAttempts; i++ {
		k, ok, err := drawScalar(c, rand)
		if err != nil {
			return SigningParams{}, err
		}
		if !ok {
			continue
		}

		point, err := c.ScalarBaseMult(&k)
		if err != nil {
			k.Zero()
			return SigningParams{}, curveError(err, "unable to compute "+
				"nonce point")
		}
		r := c.ReduceScalar(point.X[:])
		if r.IsZero() {
			k.Zero()
			continue
		}
		kInv := c.InverseScalar(&k)
		k.Zero()
		if kInv.IsZero() {
			continue
		}
		return SigningParams{R: r, KInv: kInv, Point: point}, nil
	}
	str := fmt.Sprintf("no usable nonce after %d draws", maxDrawAttempts)
	return SigningParams{}, makeError(ErrRandomSource, str)
}
