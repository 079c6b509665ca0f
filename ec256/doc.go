// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ec256 provides a uniform view of the 256-bit elliptic curves used for
IEEE 1609.2 credentials.

Scalars and points are fixed-width values with value semantics so they can be
copied freely between goroutines.  All arithmetic is performed by a Curve,
which reduces scalar results modulo the group order n and keeps points in
affine form.  The point at infinity is never returned; operations that would
produce it fail with ErrPointAtInfinity instead.

Two curves are provided:

  - NISTP256 - the curve mandated by IEEE 1609.2 for ecdsaNistP256 signatures
    and implicit certificates
  - Secp256k1 - the Koblitz curve, backed by the dcrd secp256k1 package

Both curves expose the library ECDSA primitive via SignDigest and
VerifyDigest so higher layers can delegate the x-only signature form to a
well-reviewed implementation.

# Encodings

Scalars are 32-byte big-endian.  Points encode either as 65-byte uncompressed
octets (0x04 || X || Y) or as 33-byte compressed octets (0x02/0x03 || X) per
SEC 1.
*/
package ec256
