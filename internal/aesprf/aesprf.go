// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package aesprf provides the AES-128 based pseudorandom function shared by
// butterfly key expansion and linkage value derivation.
package aesprf

import (
	"crypto/aes"
	"crypto/cipher"
)

const (
	// KeySize is the size of an AES-128 key.
	KeySize = 16

	// BlockSize is the AES block size.
	BlockSize = aes.BlockSize
)

// PRF evaluates AES(key, x) XOR x for a fixed key.  It is safe for concurrent
// use since the underlying block cipher is read only after key expansion.
type PRF struct {
	block cipher.Block
}

// New expands the provided 16-byte key.
func New(key *[KeySize]byte) (*PRF, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return &PRF{block: block}, nil
}

// Eval returns AES(key, x) XOR x.
func (p *PRF) Eval(x *[BlockSize]byte) [BlockSize]byte {
	var out [BlockSize]byte
	p.block.Encrypt(out[:], x[:])
	XOR(&out, x)
	return out
}

// XOR sets dst to dst XOR src.
func XOR(dst, src *[BlockSize]byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
