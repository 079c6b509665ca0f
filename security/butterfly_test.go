// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
)

// testExpansionKey is the butterfly expansion key used throughout the tests.
var testExpansionKey = SymmetricKey{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
}

// testSeedPriv is the caterpillar private key used throughout the tests.
var testSeedPriv = hexToScalar("4f3c2b1a09f8e7d6c5b4a39281706f5e4d3c2b1a0918f7" +
	"e6d5c4b3a291807f6e")

// TestExpansionInputs ensures the signing and encryption expansion inputs
// encode the indices identically and differ only in their leading bytes.
func TestExpansionInputs(t *testing.T) {
	tests := []struct {
		i, j uint32
	}{
		{0, 0},
		{1, 2},
		{7, 3},
		{0xffffffff, 0x01020304},
	}

	for _, test := range tests {
		sx := SigningExpansionInput(test.i, test.j)
		ex := EncryptionExpansionInput(test.i, test.j)
		if !bytes.Equal(sx[4:], ex[4:]) {
			t.Errorf("(%d, %d): inputs differ past prefix: %x vs %x", test.i,
				test.j, sx, ex)
		}
		if !bytes.Equal(sx[:4], []byte{0, 0, 0, 0}) {
			t.Errorf("(%d, %d): bad signing prefix %x", test.i, test.j, sx[:4])
		}
		if !bytes.Equal(ex[:4], []byte{0xff, 0xff, 0xff, 0xff}) {
			t.Errorf("(%d, %d): bad encryption prefix %x", test.i, test.j,
				ex[:4])
		}
		if binary.BigEndian.Uint32(sx[4:8]) != test.i ||
			binary.BigEndian.Uint32(sx[8:12]) != test.j {

			t.Errorf("(%d, %d): indices not encoded: %x", test.i, test.j, sx)
		}
		if !bytes.Equal(sx[12:], []byte{0, 0, 0, 0}) {
			t.Errorf("(%d, %d): nonzero trailer %x", test.i, test.j, sx[12:])
		}
	}
}

// TestExpansionFunction ensures the expansion function matches known outputs
// and is deterministic.
func TestExpansionFunction(t *testing.T) {
	tests := []struct {
		name string
		x    [16]byte
		want string
	}{{
		name: "signing (7, 3)",
		x:    SigningExpansionInput(7, 3),
		want: "7dc36925216271bb1bcda5d2f54fd4f07737a8bbbe52ed9fa93c5de5cd610bc4" +
			"6b152c93a7e49c7f86a9dd6f055604ac",
	}, {
		name: "encryption (7, 3)",
		x:    EncryptionExpansionInput(7, 3),
		want: "839336ab9faa27705c40d110f669411fcafdca3ef51f84c6507d978f5f2608eb" +
			"0bc3faf69d0ce64da058cb750573381f",
	}}

	for _, test := range tests {
		got, err := ExpansionFunction(&testExpansionKey, &test.x)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.name, err)
			continue
		}
		if !bytes.Equal(got[:], hexToBytes(test.want)) {
			t.Errorf("%q: got %x, want %s", test.name, got, test.want)
			continue
		}
		again, _ := ExpansionFunction(&testExpansionKey, &test.x)
		if again != got {
			t.Errorf("%q: expansion is not deterministic", test.name)
		}
	}
}

// TestCocoonKeys ensures the device and registration authority derivations
// produce the known cocoon keys and agree with each other.
func TestCocoonKeys(t *testing.T) {
	tests := []struct {
		name       string
		curve      ec256.Curve
		seedPub    string
		cocoonPriv string
		cocoonPub  string
		encPriv    string
	}{{
		name:       "P-256",
		curve:      ec256.NISTP256,
		seedPub:    "03bbc7b305b0641f74a63e662df68939f8b0be6aa78c8eff170f87869f67e8addf",
		cocoonPriv: "3d943d1d9797f61becd0b8ca644c58a3645b6f0d8ab5c5fc22acfc119ab11b1c",
		cocoonPub:  "02c34d6161ccd82a8c55170ddf20f05dbc4b3da013e2bf168b836a8420e375ee17",
		encPriv:    "0fe23bc8c6f4fbd9d4398734158f33c9b6a41119274cbdf70a895daff28f0978",
	}, {
		name:       "secp256k1",
		curve:      ec256.Secp256k1,
		seedPub:    "029dc6090573bc6f28765a0942e3b75b9129ee95c1bc9236908e6631f0e6409c4c",
		cocoonPriv: "6644c4645789dec75ebcbecf89072f1ee6a1fe2bff5c995fbfc158914daa41e9",
		cocoonPub:  "0392777d532e45c2ff414e5ef30eed0577e2a7c82a521268bfd1af1c259bf15500",
		encPriv:    "c16d8d5f506f03a6467007c66ce9b47b162cd9c01f56f7a6ff103e9a8ff10e6d",
	}}

	for _, test := range tests {
		c := test.curve
		kp, err := CocoonKeyPair(c, 7, 3, &testExpansionKey, &testSeedPriv)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.name, err)
			continue
		}
		wantPriv := hexToScalar(test.cocoonPriv)
		wantPub := hexToPoint(c, test.cocoonPub)
		if !kp.Private.Equals(&wantPriv) || !kp.Public.Equals(&wantPub) {
			t.Errorf("%q: got (%v, %v), want (%s, %s)", test.name,
				kp.Private, kp.Public, test.cocoonPriv, test.cocoonPub)
			continue
		}
		if err := ValidateKeyPair(c, &kp); err != nil {
			t.Errorf("%q: cocoon pair does not verify: %v", test.name, err)
			continue
		}

		seedPub := hexToPoint(c, test.seedPub)
		raPub, err := CocoonPublicKey(c, 7, 3, &testExpansionKey, &seedPub)
		if err != nil {
			t.Errorf("%q: unexpected public error: %v", test.name, err)
			continue
		}
		if !raPub.Equals(&kp.Public) {
			t.Errorf("%q: registration authority key %v != device key %v",
				test.name, raPub, kp.Public)
			continue
		}

		enc, err := EncryptionCocoonKeyPair(c, 7, 3, &testExpansionKey,
			&testSeedPriv)
		if err != nil {
			t.Errorf("%q: unexpected encryption error: %v", test.name, err)
			continue
		}
		wantEnc := hexToScalar(test.encPriv)
		if !enc.Private.Equals(&wantEnc) {
			t.Errorf("%q: encryption key got %v, want %s", test.name,
				enc.Private, test.encPriv)
			continue
		}
		encPub, err := EncryptionCocoonPublicKey(c, 7, 3, &testExpansionKey,
			&seedPub)
		if err != nil || !encPub.Equals(&enc.Public) {
			t.Errorf("%q: encryption public key %v (err %v), want %v",
				test.name, encPub, err, enc.Public)
		}
	}
}

// TestButterflyReconstruct ensures a pseudonym certificate key pair is
// reconstructed from its cocoon key and that inconsistent inputs fail.
func TestButterflyReconstruct(t *testing.T) {
	tests := []struct {
		name      string
		curve     ec256.Curve
		issuerPub string
		reconPriv string
		reconPub  string
		priv      string
		pub       string
	}{{
		name:      "P-256",
		curve:     ec256.NISTP256,
		issuerPub: reconstructionTests[0].issuerPub,
		reconPriv: "d3abc427801e61b582dcc6cb28e626b5c73b77395b803ef9175eef6cee74bddd",
		reconPub:  "03493546cbca9a8cd5a6977b765fc267496f39fcdd666711c0fa9f97ba711ba252",
		priv:      "4d0f679bee9f05598a362ec65ca68b3927f81c275a828a30d5db0ea4ba72ba52",
		pub:       "026830f85bdf4e8e9e8e649bf16a7fcc8250d96c8c4f76a786769f9e1cdad0f923",
	}, {
		name:      "secp256k1",
		curve:     ec256.Secp256k1,
		issuerPub: reconstructionTests[1].issuerPub,
		reconPriv: "b2be4471d14f503cdf273dea29b035c591e0e861e844d795dda853c6610fa44a",
		reconPub:  "031352108c6cfc7cf070612ac5e264223aa4c7adfde65dbc767e362bd4d3e0dab7",
		priv:      "f34a9d16d7f2cfec112e757bf944e968f112b090a6b268f304c13e16e995a9cd",
		pub:       "039776333f09c06370cae72514cdf0fb12dd034dcac600f94536d67751fe9fdb85",
	}}

	for _, test := range tests {
		c := test.curve
		tbsHash := testTBSHash
		params := ButterflyParams{
			I:            7,
			J:            3,
			ExpansionKey: testExpansionKey,
			SeedPrivate:  testSeedPriv,
			ReconPrivate: hexToScalar(test.reconPriv),
			ReconPublic:  hexToBytes(test.reconPub),
			TBSHash:      &tbsHash,
			IssuerHash:   testIssuerHash,
			IssuerPublic: hexToBytes(test.issuerPub),
		}
		kp, err := ButterflyReconstructKeyPair(c, &params)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.name, err)
			continue
		}
		wantPriv := hexToScalar(test.priv)
		wantPub := hexToPoint(c, test.pub)
		if !kp.Private.Equals(&wantPriv) || !kp.Public.Equals(&wantPub) {
			t.Errorf("%q: got (%v, %v), want (%s, %s)", test.name,
				kp.Private, kp.Public, test.priv, test.pub)
			continue
		}

		// The certificate path hashes the to-be-signed bytes itself.
		certParams := params
		certParams.TBSHash = nil
		certParams.Cert = []byte("v2x test tbs certificate")
		kp2, err := ButterflyReconstructKeyPair(c, &certParams)
		if err != nil || kp2 != kp {
			t.Errorf("%q: certificate path got %v (err %v)", test.name, kp2,
				err)
			continue
		}

		// Reconstructing with the wrong indices must be rejected rather
		// than yield a plausible looking key.
		wrong := params
		wrong.J = 4
		_, err = ButterflyReconstructKeyPair(c, &wrong)
		if !errors.Is(err, ErrKeyPairMismatch) {
			t.Errorf("%q: wrong index got error %v, want %v", test.name, err,
				ErrKeyPairMismatch)
		}

		missing := params
		missing.TBSHash = nil
		_, err = ButterflyReconstructKeyPair(c, &missing)
		if !errors.Is(err, ErrTBSRegion) {
			t.Errorf("%q: missing hash got error %v, want %v", test.name, err,
				ErrTBSRegion)
		}
	}
}

// TestCocoonKeyErrors ensures invalid caterpillar keys are rejected.
func TestCocoonKeyErrors(t *testing.T) {
	for _, c := range allCurves {
		var zero ec256.Scalar
		if _, err := CocoonKeyPair(c, 0, 0, &testExpansionKey, &zero); !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("%s: zero seed got error %v, want %v", c.Name(), err,
				ErrInvalidEncoding)
		}
		var offCurve ec256.Point
		offCurve.X[31] = 1
		offCurve.Y[31] = 1
		if _, err := CocoonPublicKey(c, 0, 0, &testExpansionKey, &offCurve); !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("%s: off curve seed got error %v, want %v", c.Name(),
				err, ErrInvalidEncoding)
		}
	}
}
