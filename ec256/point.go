// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ec256

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const (
	// FieldSize is the size of an encoded field element (coordinate).
	FieldSize = 32

	// CompressedPointSize is the size of a SEC 1 compressed point.
	CompressedPointSize = 1 + FieldSize

	// UncompressedPointSize is the size of a SEC 1 uncompressed point.
	UncompressedPointSize = 1 + 2*FieldSize

	// Point encoding tags.
	tagCompressedEven byte = 0x02
	tagCompressedOdd  byte = 0x03
	tagUncompressed   byte = 0x04
)

// Point is an affine curve point with big-endian coordinates.
type Point struct {
	X [FieldSize]byte
	Y [FieldSize]byte
}

// YIsOdd returns whether the Y coordinate is odd.  This is the parity bit
// carried by the compressed encoding.
func (p *Point) YIsOdd() bool {
	return p.Y[FieldSize-1]&1 == 1
}

// Equals returns whether or not the two points are the same.
func (p *Point) Equals(other *Point) bool {
	return subtle.ConstantTimeCompare(p.X[:], other.X[:])&
		subtle.ConstantTimeCompare(p.Y[:], other.Y[:]) == 1
}

// SerializeCompressed returns the 33-byte SEC 1 compressed encoding.
func (p *Point) SerializeCompressed() []byte {
	b := make([]byte, CompressedPointSize)
	b[0] = tagCompressedEven
	if p.YIsOdd() {
		b[0] = tagCompressedOdd
	}
	copy(b[1:], p.X[:])
	return b
}

// SerializeUncompressed returns the 65-byte SEC 1 uncompressed encoding.
func (p *Point) SerializeUncompressed() []byte {
	b := make([]byte, UncompressedPointSize)
	b[0] = tagUncompressed
	copy(b[1:], p.X[:])
	copy(b[1+FieldSize:], p.Y[:])
	return b
}

// String returns the compressed encoding as a hex string.
func (p Point) String() string {
	return hex.EncodeToString(p.SerializeCompressed())
}

// checkPointEncoding performs the length and tag checks shared by every
// backend before the coordinates are handed to the curve library.
func checkPointEncoding(b []byte) error {
	switch len(b) {
	case CompressedPointSize:
		if b[0] != tagCompressedEven && b[0] != tagCompressedOdd {
			str := fmt.Sprintf("invalid compressed point tag %#02x", b[0])
			return makeError(ErrInvalidEncoding, str)
		}
	case UncompressedPointSize:
		if b[0] != tagUncompressed {
			str := fmt.Sprintf("invalid uncompressed point tag %#02x", b[0])
			return makeError(ErrInvalidEncoding, str)
		}
	default:
		str := fmt.Sprintf("malformed point: len %d, want %d or %d", len(b),
			CompressedPointSize, UncompressedPointSize)
		return makeError(ErrInvalidEncoding, str)
	}
	return nil
}

// pointFromUncompressed splits validated uncompressed octets into a Point.
func pointFromUncompressed(b []byte) Point {
	var p Point
	copy(p.X[:], b[1:1+FieldSize])
	copy(p.Y[:], b[1+FieldSize:])
	return p
}
