// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"errors"
	"math/big"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/eggandi/innowireless-dev-sub001/ec256"
)

// reconstructionTest describes a known implicit certificate issuance: the
// requester's initial key, the issuer's outputs, and the resulting key pair.
type reconstructionTest struct {
	name      string
	curve     ec256.Curve
	initPriv  string // requester initial private key
	reconPriv string // private reconstruction value
	reconPub  string // compressed public reconstruction value
	issuerPub string // compressed issuer public key
	priv      string // expected private key
	pub       string // expected public key
}

var reconstructionTests = []reconstructionTest{{
	name:      "P-256",
	curve:     ec256.NISTP256,
	initPriv:  "1384c31d6982d52bca3bed8a7e60f52fecdab44e5c0ea166815a8159e09ffb42",
	reconPriv: "16295a2a53c315302aa2e3af49016cdab4e2dc6394d6bed13f3fca573634bdce",
	reconPub:  "0336df7bd2c204b657f1911df21a722f3471d418f3aa3acd891b6e18abd1e5ee67",
	issuerPub: "02e48813e656219b4090c282a020f40e07b4e1efd60a3dd17492a1667c5758ee5b",
	priv:      "fb2beaf7ccd5e2582e54064a4c6a6f9d76d3c09f33b784fe2d9c530144f3d046",
	pub: "04ecd8a2ee14c266b54ccf8270e8de8d7e6bccc6ef15b3ce85517e2f126adc2f80" +
		"49c0fd43f2112a6acc08ff224eb1565ba3c23488868c841e668fc98e587144d5",
}, {
	name:      "secp256k1",
	curve:     ec256.Secp256k1,
	initPriv:  "1384c31d6982d52bca3bed8a7e60f52fecdab44e5c0ea166815a8159e09ffb42",
	reconPriv: "d21e16ec818b46741ba63399ace214de99d8c8ecf73088bbec70621acd191123",
	reconPub:  "03e271cfd16927065cf389320a135a68dad4c2315d381a8ba5cdb8bab0d0efcc8e",
	issuerPub: "021b6d5a0ee72c1a077b0af91723952bdee620e585bf44ad0f0b633714bfe9b9ca",
	priv:      "8ce8660ed89f5a2c0518b27e16b9704a2fd380125777d421c35720ea44c13dfb",
	pub: "041056d68c68de5b67ce5770cc8ca280146822bd6d6a689096b5e1f3b96f368ac2" +
		"82d73d29d82bc213d94e0afda445bea8adf4cd9f099ca3b59ddae8aa8683b9c3",
}}

// TestReconstructKeyPairGolden ensures every reconstruction entry point
// produces the known key pair for fixed issuance values.
func TestReconstructKeyPairGolden(t *testing.T) {
	for _, test := range reconstructionTests {
		c := test.curve
		initPriv := hexToScalar(test.initPriv)
		reconPriv := hexToScalar(test.reconPriv)
		reconPub := hexToBytes(test.reconPub)
		issuerPub := hexToBytes(test.issuerPub)
		wantPriv := hexToScalar(test.priv)
		wantPub := hexToPoint(c, test.pub)

		priv, err := ReconstructPrivateKeyFromTBSHash(c, &initPriv,
			&reconPriv, &testTBSHash, &testIssuerHash)
		if err != nil {
			t.Errorf("%q: unexpected private key error: %v", test.name, err)
			continue
		}
		if !priv.Equals(&wantPriv) {
			t.Errorf("%q: mismatched private key: got %v, want %v",
				test.name, priv, wantPriv)
			continue
		}

		pub, err := ReconstructPublicKeyFromTBSHash(c, reconPub,
			&testTBSHash, &testIssuerHash, issuerPub)
		if err != nil {
			t.Errorf("%q: unexpected public key error: %v", test.name, err)
			continue
		}
		if !pub.Equals(&wantPub) {
			t.Errorf("%q: mismatched public key: got %x, want %s", test.name,
				pub.SerializeUncompressed(), test.pub)
			continue
		}

		// The raw certificate path must agree with the pre-hashed path.
		cert := []byte("v2x test tbs certificate")
		kp, err := ReconstructKeyPairFromCert(c, &initPriv, &reconPriv,
			reconPub, cert, WholeCertificate, &testIssuerHash, issuerPub)
		if err != nil {
			t.Errorf("%q: unexpected key pair error: %v", test.name, err)
			continue
		}
		want := KeyPair{Private: wantPriv, Public: wantPub}
		if kp != want {
			t.Errorf("%q: mismatched key pair:\ngot: %v\nwant: %v", test.name,
				spew.Sdump(kp), spew.Sdump(want))
			continue
		}
		certPriv, err := ReconstructPrivateKeyFromCert(c, &initPriv,
			&reconPriv, cert, WholeCertificate, &testIssuerHash)
		if err != nil || !certPriv.Equals(&wantPriv) {
			t.Errorf("%q: certificate private key %v (err %v)", test.name,
				certPriv, err)
		}
		certPub, err := ReconstructPublicKeyFromCert(c, reconPub, cert,
			WholeCertificate, &testIssuerHash, issuerPub)
		if err != nil || !certPub.Equals(&wantPub) {
			t.Errorf("%q: certificate public key %v (err %v)", test.name,
				certPub, err)
		}
	}
}

// TestReconstructRandomIssuance runs random issuances through the full
// requester and issuer computations and ensures the reconstructed halves
// always correspond.
func TestReconstructRandomIssuance(t *testing.T) {
	for _, c := range allCurves {
		for i := 0; i < 8; i++ {
			initKey, err := GenerateKeyPair(c, nil)
			if err != nil {
				t.Fatalf("%s: unable to generate initial key: %v", c.Name(), err)
			}
			issuerKey, err := GenerateKeyPair(c, nil)
			if err != nil {
				t.Fatalf("%s: unable to generate issuer key: %v", c.Name(), err)
			}
			ephemeral, err := GenerateKeyPair(c, nil)
			if err != nil {
				t.Fatalf("%s: unable to generate issuer nonce: %v", c.Name(), err)
			}

			// Issuer side: P = initPub + eph*G, r = e*eph + dCA.
			reconPub, err := c.AddPoints(&initKey.Public, &ephemeral.Public)
			if err != nil {
				t.Fatalf("%s: unable to form reconstruction value: %v",
					c.Name(), err)
			}
			h := KeyReconstructionHashInput(&testTBSHash, &testIssuerHash)
			hInput := HashToScalar(c, &h)
			t1 := c.MulScalars(&hInput, &ephemeral.Private)
			reconPriv := c.AddScalars(&t1, &issuerKey.Private)

			kp, err := ReconstructKeyPair(c, &initKey.Private, &reconPriv,
				&reconPub, &hInput, &issuerKey.Public)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", c.Name(), err)
			}
			if err := ValidateKeyPair(c, &kp); err != nil {
				t.Fatalf("%s: reconstructed pair does not verify: %v",
					c.Name(), err)
			}
		}
	}
}

// TestReconstructErrors ensures malformed inputs and inconsistent issuance
// values are reported with the expected error kinds and no key material.
func TestReconstructErrors(t *testing.T) {
	defer useTestLogger(t)()

	test := reconstructionTests[0]
	c := test.curve
	initPriv := hexToScalar(test.initPriv)
	reconPriv := hexToScalar(test.reconPriv)
	reconPub := hexToPoint(c, test.reconPub)
	issuerPub := hexToPoint(c, test.issuerPub)
	h := KeyReconstructionHashInput(&testTBSHash, &testIssuerHash)
	hInput := HashToScalar(c, &h)

	// The issuer key the values were issued with yields a valid pair.
	kp, err := ReconstructKeyPair(c, &initPriv, &reconPriv, &reconPub,
		&hInput, &issuerPub)
	if err != nil {
		t.Fatalf("issuer: unexpected error: %v", err)
	}
	if err := ValidateKeyPair(c, &kp); err != nil {
		t.Fatalf("issuer: invalid key pair: %v", err)
	}

	// Using the wrong issuer key yields a pair that does not correspond.
	wrongIssuer := hexToPoint(c, reconstructionTests[0].reconPub)
	kp, err = ReconstructKeyPair(c, &initPriv, &reconPriv, &reconPub,
		&hInput, &wrongIssuer)
	if !errors.Is(err, ErrKeyPairMismatch) {
		t.Fatalf("wrong issuer: got error %v, want %v", err, ErrKeyPairMismatch)
	}
	if kp != (KeyPair{}) {
		t.Fatalf("wrong issuer: key material returned on failure: %v", kp)
	}

	var zero ec256.Scalar
	if _, err := ReconstructPrivateKey(c, &zero, &reconPriv, &hInput); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("zero initial key: got error %v, want %v", err,
			ErrInvalidEncoding)
	}

	// A reconstruction value of -e*k makes the private key zero.
	ek := c.MulScalars(&hInput, &initPriv)
	var negEK ec256.Scalar
	order := c.Order()
	order.Sub(order, new(big.Int).SetBytes(ek[:])).FillBytes(negEK[:])
	if _, err := ReconstructPrivateKey(c, &initPriv, &negEK, &hInput); !errors.Is(err, ErrArithmetic) {
		t.Fatalf("zero result: got error %v, want %v", err, ErrArithmetic)
	}

	// Out of range scalars are encoding errors.
	overflow := hexToScalar("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")
	if _, err := ReconstructPrivateKey(c, &initPriv, &overflow, &hInput); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("overflow reconstruction value: got error %v, want %v", err,
			ErrInvalidEncoding)
	}

	// Malformed point octets are encoding errors.
	badPoints := []struct {
		name      string
		reconPub  []byte
		issuerPub []byte
	}{{
		name:      "truncated reconstruction value",
		reconPub:  hexToBytes(test.reconPub)[:20],
		issuerPub: hexToBytes(test.issuerPub),
	}, {
		name:      "bad issuer tag",
		reconPub:  hexToBytes(test.reconPub),
		issuerPub: append([]byte{0x05}, hexToBytes(test.issuerPub)[1:]...),
	}, {
		name:      "empty issuer key",
		reconPub:  hexToBytes(test.reconPub),
		issuerPub: nil,
	}}
	for _, bp := range badPoints {
		_, err := ReconstructPublicKeyFromTBSHash(c, bp.reconPub, &testTBSHash,
			&testIssuerHash, bp.issuerPub)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("%q: got error %v, want %v", bp.name, err,
				ErrInvalidEncoding)
		}
	}
}
