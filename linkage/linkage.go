// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package linkage computes the linkage values that tie a batch of pseudonym
// certificates to a pair of linkage authority seeds so the whole batch can be
// revoked by publishing the seeds.
package linkage

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/eggandi/innowireless-dev-sub001/internal/aesprf"
)

const (
	// IDSize is the size of a linkage authority identifier.
	IDSize = 8

	// SeedSize is the size of a linkage seed.
	SeedSize = aesprf.KeySize

	// PreValueSize is the size of a pre-linkage value.
	PreValueSize = aesprf.BlockSize

	// ValueSize is the size of a linkage value.
	ValueSize = 9
)

// ID identifies a linkage authority.
type ID [IDSize]byte

// Seed is a linkage seed held by a linkage authority.
type Seed [SeedSize]byte

// Zero clears the seed.
func (s *Seed) Zero() {
	*s = Seed{}
}

// PreValue is the pre-linkage value contributed by one linkage authority.
type PreValue [PreValueSize]byte

// Value is the linkage value carried by a pseudonym certificate.
type Value [ValueSize]byte

// String returns the linkage value as a hex-encoded string.
func (v Value) String() string {
	return hex.EncodeToString(v[:])
}

// decodeFixed decodes a hex string into dst, which must be filled exactly.
func decodeFixed(dst []byte, s, what string) error {
	if len(s) != 2*len(dst) {
		str := fmt.Sprintf("%s hex has length %d, want %d", what, len(s),
			2*len(dst))
		return makeError(ErrInvalidEncoding, str)
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return makeError(ErrInvalidEncoding, "invalid "+what+" hex: "+
			err.Error())
	}
	return nil
}

// ValueFromHex decodes an 18 character hex string into a linkage value.
func ValueFromHex(s string) (Value, error) {
	var v Value
	err := decodeFixed(v[:], s, "linkage value")
	return v, err
}

// IDFromHex decodes a 16 character hex string into an identifier.
func IDFromHex(s string) (ID, error) {
	var id ID
	err := decodeFixed(id[:], s, "linkage authority id")
	return id, err
}

// SeedFromHex decodes a 32 character hex string into a linkage seed.
func SeedFromHex(s string) (Seed, error) {
	var seed Seed
	err := decodeFixed(seed[:], s, "linkage seed")
	return seed, err
}

// Inputs houses the values from both linkage authorities needed to derive a
// linkage value.
type Inputs struct {
	LA1, LA2 ID
	LS1, LS2 Seed
}

// Zero clears both seeds.
func (in *Inputs) Zero() {
	in.LS1.Zero()
	in.LS2.Zero()
}

// preValueInput returns la || BE32(j) || 0x00000000.
func preValueInput(la *ID, j uint32) [aesprf.BlockSize]byte {
	var data [aesprf.BlockSize]byte
	copy(data[:IDSize], la[:])
	binary.BigEndian.PutUint32(data[IDSize:IDSize+4], j)
	return data
}

// newPRF expands a linkage seed.
func newPRF(ls *Seed) (*aesprf.PRF, error) {
	prf, err := aesprf.New((*[aesprf.KeySize]byte)(ls))
	if err != nil {
		return nil, makeError(ErrKeySchedule, "unable to expand linkage "+
			"seed: "+err.Error())
	}
	return prf, nil
}

// PreLinkageValue returns AES(ls, data) XOR data where
// data = la || BE32(j) || 0x00000000.
func PreLinkageValue(la *ID, ls *Seed, j uint32) (PreValue, error) {
	prf, err := newPRF(ls)
	if err != nil {
		return PreValue{}, err
	}
	data := preValueInput(la, j)
	return prf.Eval(&data), nil
}

// combine returns the leading bytes of plv1 XOR plv2.
func combine(plv1, plv2 *PreValue) Value {
	var v Value
	for i := range v {
		v[i] = plv1[i] ^ plv2[i]
	}
	return v
}

// DeriveValue returns the linkage value for period j: the first ValueSize
// bytes of the XOR of both pre-linkage values.
func DeriveValue(j uint32, in *Inputs) (Value, error) {
	plv1, err := PreLinkageValue(&in.LA1, &in.LS1, j)
	if err != nil {
		return Value{}, err
	}
	plv2, err := PreLinkageValue(&in.LA2, &in.LS2, j)
	if err != nil {
		return Value{}, err
	}
	return combine(&plv1, &plv2), nil
}

// deriveRange returns the linkage values for periods 0 through jMax,
// expanding each seed only once.
func deriveRange(in *Inputs, jMax uint32) ([]Value, error) {
	prf1, err := newPRF(&in.LS1)
	if err != nil {
		return nil, err
	}
	prf2, err := newPRF(&in.LS2)
	if err != nil {
		return nil, err
	}

	values := make([]Value, 0, uint64(jMax)+1)
	for j := uint32(0); ; j++ {
		d1 := preValueInput(&in.LA1, j)
		d2 := preValueInput(&in.LA2, j)
		plv1 := PreValue(prf1.Eval(&d1))
		plv2 := PreValue(prf2.Eval(&d2))
		values = append(values, combine(&plv1, &plv2))
		if j == jMax {
			break
		}
	}
	return values, nil
}
