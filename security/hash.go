// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"encoding/hex"
	"fmt"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
	"github.com/minio/sha256-simd"
)

// HashSize is the size of a SHA-256 digest in bytes.
const HashSize = sha256.Size

// Hash256 is a SHA-256 digest.
type Hash256 [HashSize]byte

// String returns the digest as a hex-encoded string.  Unlike chain hashes the
// bytes are not reversed.
func (h Hash256) String() string {
	return hex.EncodeToString(h[:])
}

// IsEqual returns whether the two digests are the same.
func (h *Hash256) IsEqual(target *Hash256) bool {
	if h == nil || target == nil {
		return h == target
	}
	return *h == *target
}

// HashFromHex decodes a 64 character hex string into a digest.
func HashFromHex(s string) (Hash256, error) {
	var h Hash256
	if len(s) != 2*HashSize {
		str := fmt.Sprintf("hash hex has length %d, want %d", len(s),
			2*HashSize)
		return h, makeError(ErrInvalidEncoding, str)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, Error{Err: ErrInvalidEncoding, Description: "invalid hash hex",
			RawErr: err}
	}
	return h, nil
}

// HashBytes returns H(b).
func HashBytes(b []byte) Hash256 {
	return sha256.Sum256(b)
}

// emptyHash is H of the empty string.  It stands in for the signer hash of
// self-signed data.
var emptyHash = HashBytes(nil)

// hashPair returns H(a || b).
func hashPair(a, b *Hash256) Hash256 {
	var buf [2 * HashSize]byte
	copy(buf[:HashSize], a[:])
	copy(buf[HashSize:], b[:])
	return sha256.Sum256(buf[:])
}

// SignatureHashInput returns the digest e = H(H(tbs) || signerHash) that is
// signed over a to-be-signed buffer.  A nil signerHash selects H("").
func SignatureHashInput(tbs []byte, signerHash *Hash256) Hash256 {
	tbsHash := HashBytes(tbs)
	return SignatureHashInputFromTBSHash(&tbsHash, signerHash)
}

// SignatureHashInputFromTBSHash is the same as SignatureHashInput for a caller
// that already holds H(tbs).
func SignatureHashInputFromTBSHash(tbsHash, signerHash *Hash256) Hash256 {
	if signerHash == nil {
		signerHash = &emptyHash
	}
	return hashPair(tbsHash, signerHash)
}

// KeyReconstructionHashInput returns H(CertU) = H(tbsCertHash || issuerHash),
// the hash input used to reconstruct implicit certificate keys.
func KeyReconstructionHashInput(tbsCertHash, issuerHash *Hash256) Hash256 {
	return hashPair(tbsCertHash, issuerHash)
}

// HashToScalar interprets the digest as a big-endian integer reduced modulo
// the curve order.
func HashToScalar(c ec256.Curve, h *Hash256) ec256.Scalar {
	return c.ReduceScalar(h[:])
}

// TBSLocator locates the to-be-signed region of an encoded certificate.
// Certificate codecs implement it so this package never needs to understand
// the certificate encoding.
type TBSLocator interface {
	TBSRegion(cert []byte) (offset, size int, err error)
}

// TBSLocatorFunc is an adapter that allows an ordinary function to be used as
// a TBSLocator.
type TBSLocatorFunc func(cert []byte) (offset, size int, err error)

// TBSRegion calls f(cert).
func (f TBSLocatorFunc) TBSRegion(cert []byte) (int, int, error) {
	return f(cert)
}

// WholeCertificate is a TBSLocator that treats the entire buffer as the
// to-be-signed region.
var WholeCertificate = TBSLocatorFunc(func(cert []byte) (int, int, error) {
	return 0, len(cert), nil
})

// TBSBytes returns the to-be-signed region of cert as reported by loc.  The
// returned slice aliases cert.
func TBSBytes(cert []byte, loc TBSLocator) ([]byte, error) {
	offset, size, err := loc.TBSRegion(cert)
	if err != nil {
		return nil, Error{Err: ErrTBSRegion, Description: "unable to locate " +
			"to-be-signed region", RawErr: err}
	}
	if offset < 0 || size < 0 || offset > len(cert) || size > len(cert)-offset {
		str := fmt.Sprintf("to-be-signed region [%d, +%d) exceeds certificate "+
			"length %d", offset, size, len(cert))
		return nil, makeError(ErrTBSRegion, str)
	}
	return cert[offset : offset+size], nil
}

// CertKeyReconstructionHashInput locates and hashes the to-be-signed region of
// cert and returns the key reconstruction hash input for it.
func CertKeyReconstructionHashInput(cert []byte, loc TBSLocator, issuerHash *Hash256) (Hash256, error) {
	tbs, err := TBSBytes(cert, loc)
	if err != nil {
		return Hash256{}, err
	}
	tbsHash := HashBytes(tbs)
	return KeyReconstructionHashInput(&tbsHash, issuerHash), nil
}

// CertSignatureHashInput locates the to-be-signed region of cert and returns
// the signature hash input over it.
func CertSignatureHashInput(cert []byte, loc TBSLocator, signerHash *Hash256) (Hash256, error) {
	tbs, err := TBSBytes(cert, loc)
	if err != nil {
		return Hash256{}, err
	}
	return SignatureHashInput(tbs, signerHash), nil
}
