// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/eggandi/innowireless-dev-sub001/ec256"
	"github.com/eggandi/innowireless-dev-sub001/linkage"
	"github.com/eggandi/innowireless-dev-sub001/security"
	"golang.org/x/term"
)

// cmdEnv is the environment a command runs in.
type cmdEnv struct {
	ctx   context.Context
	curve ec256.Curve
	cfg   *config
	out   io.Writer

	// prompt reads a secret without echo.  It is replaced by tests.
	prompt func(what string) ([]byte, error)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0x00
	}
}

// promptSecret reads a hex encoded secret from the terminal without echo.
func promptSecret(what string) ([]byte, error) {
	fmt.Fprintf(os.Stderr, "%s: ", what)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprint(os.Stderr, "\n")
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", what, err)
	}
	return secret, nil
}

// bytesArg decodes a required hex argument.
func bytesArg(name, s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("the --%s option is required", name)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return b, nil
}

// secretArg decodes a hex secret.  The value "-" reads it from the terminal
// instead so it does not end up in shell history.
func (env *cmdEnv) secretArg(name, s string) ([]byte, error) {
	if s != "-" {
		return bytesArg(name, s)
	}
	secret, err := env.prompt(name)
	if err != nil {
		return nil, err
	}
	defer zero(secret)
	return bytesArg(name, strings.TrimSpace(string(secret)))
}

// scalarArg decodes a private scalar for the active curve.
func (env *cmdEnv) scalarArg(name, s string) (ec256.Scalar, error) {
	b, err := env.secretArg(name, s)
	if err != nil {
		return ec256.Scalar{}, err
	}
	defer zero(b)
	k, err := env.curve.ScalarFromBytes(b)
	if err != nil {
		return ec256.Scalar{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return k, nil
}

// symmetricKeyArg decodes a butterfly expansion key.
func (env *cmdEnv) symmetricKeyArg(name, s string) (security.SymmetricKey, error) {
	var key security.SymmetricKey
	b, err := env.secretArg(name, s)
	if err != nil {
		return key, err
	}
	defer zero(b)
	if len(b) != security.SymmetricKeySize {
		return key, fmt.Errorf("invalid --%s: got %d bytes, want %d", name,
			len(b), security.SymmetricKeySize)
	}
	copy(key[:], b)
	return key, nil
}

// hashArg decodes a hash.  An empty string is permitted when optional is set
// and yields nil.
func hashArg(name, s string, optional bool) (*security.Hash256, error) {
	if s == "" {
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("the --%s option is required", name)
	}
	h, err := security.HashFromHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &h, nil
}

// pointArg decodes an encoded point for the active curve.
func (env *cmdEnv) pointArg(name, s string) (ec256.Point, error) {
	b, err := bytesArg(name, s)
	if err != nil {
		return ec256.Point{}, err
	}
	p, err := env.curve.ParsePoint(b)
	if err != nil {
		return ec256.Point{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return p, nil
}

// certOpts identifies an implicit certificate and its issuer.
type certOpts struct {
	Cert       string `long:"cert" description:"Hex encoded certificate"`
	TBSOffset  int    `long:"tbsoffset" description:"Offset of the to-be-signed region within the certificate"`
	TBSSize    int    `long:"tbssize" default:"-1" description:"Size of the to-be-signed region (-1 for the rest of the certificate)"`
	TBSHash    string `long:"tbshash" description:"Hash of the to-be-signed certificate, used instead of --cert"`
	IssuerHash string `long:"issuerhash" description:"Hash of the issuer certificate"`
	IssuerPub  string `long:"issuerpub" description:"Issuer public key"`
}

// locator returns the TBS locator described by the options.
func (o *certOpts) locator() security.TBSLocator {
	offset, size := o.TBSOffset, o.TBSSize
	return security.TBSLocatorFunc(func(cert []byte) (int, int, error) {
		if size < 0 {
			return offset, len(cert) - offset, nil
		}
		return offset, size, nil
	})
}

// parsedCert houses decoded certOpts.
type parsedCert struct {
	cert       []byte
	tbsHash    *security.Hash256
	issuerHash security.Hash256
	issuerPub  []byte
}

func (o *certOpts) parse() (*parsedCert, error) {
	var pc parsedCert
	var err error
	switch {
	case o.Cert != "" && o.TBSHash != "":
		return nil, errors.New("--cert and --tbshash are mutually exclusive")
	case o.Cert != "":
		if pc.cert, err = bytesArg("cert", o.Cert); err != nil {
			return nil, err
		}
	default:
		if pc.tbsHash, err = hashArg("tbshash", o.TBSHash, false); err != nil {
			return nil, err
		}
	}
	issuerHash, err := hashArg("issuerhash", o.IssuerHash, false)
	if err != nil {
		return nil, err
	}
	pc.issuerHash = *issuerHash
	if pc.issuerPub, err = bytesArg("issuerpub", o.IssuerPub); err != nil {
		return nil, err
	}
	return &pc, nil
}

// hashInput returns the key reconstruction hash input of the certificate.
func (pc *parsedCert) hashInput(o *certOpts) (security.Hash256, error) {
	if pc.cert != nil {
		return security.CertKeyReconstructionHashInput(pc.cert, o.locator(),
			&pc.issuerHash)
	}
	return security.KeyReconstructionHashInput(pc.tbsHash, &pc.issuerHash), nil
}

func printKeyPair(w io.Writer, kp *security.KeyPair) {
	fmt.Fprintf(w, "private: %s\n", kp.Private)
	fmt.Fprintf(w, "public:  %x\n", kp.Public.SerializeCompressed())
}

// reconstructCmd reconstructs the key pair of an implicit certificate.
type reconstructCmd struct {
	InitPriv  string `long:"initpriv" description:"Initial private key in hex (- to prompt); omit to reconstruct only the public key"`
	ReconPriv string `long:"reconpriv" description:"Private reconstruction value in hex (- to prompt)"`
	ReconPub  string `long:"reconpub" description:"Public reconstruction value"`
	certOpts
}

func (c *reconstructCmd) run(env *cmdEnv, _ []string) error {
	pc, err := c.certOpts.parse()
	if err != nil {
		return err
	}
	reconPub, err := bytesArg("reconpub", c.ReconPub)
	if err != nil {
		return err
	}
	h, err := pc.hashInput(&c.certOpts)
	if err != nil {
		return err
	}

	reconPoint, issuerPoint, err := parsePoints(env.curve, reconPub,
		pc.issuerPub)
	if err != nil {
		return err
	}
	hInput := security.HashToScalar(env.curve, &h)
	defer hInput.Zero()

	if c.InitPriv == "" {
		pub, err := security.ReconstructPublicKey(env.curve, &reconPoint,
			&hInput, &issuerPoint)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.out, "public:  %x\n", pub.SerializeCompressed())
		return nil
	}

	initPriv, err := env.scalarArg("initpriv", c.InitPriv)
	if err != nil {
		return err
	}
	defer initPriv.Zero()
	reconPriv, err := env.scalarArg("reconpriv", c.ReconPriv)
	if err != nil {
		return err
	}
	defer reconPriv.Zero()

	kp, err := security.ReconstructKeyPair(env.curve, &initPriv, &reconPriv,
		&reconPoint, &hInput, &issuerPoint)
	if err != nil {
		return err
	}
	defer kp.Zero()
	printKeyPair(env.out, &kp)
	return nil
}

func parsePoints(c ec256.Curve, reconPub, issuerPub []byte) (ec256.Point, ec256.Point, error) {
	reconPoint, err := c.ParsePoint(reconPub)
	if err != nil {
		return ec256.Point{}, ec256.Point{}, fmt.Errorf("invalid --reconpub: %w", err)
	}
	issuerPoint, err := c.ParsePoint(issuerPub)
	if err != nil {
		return ec256.Point{}, ec256.Point{}, fmt.Errorf("invalid --issuerpub: %w", err)
	}
	return reconPoint, issuerPoint, nil
}

// butterflyCmd reconstructs a butterfly pseudonym certificate key pair.
type butterflyCmd struct {
	I            uint32 `short:"i" long:"i" description:"Time period index"`
	J            uint32 `short:"j" long:"j" description:"Certificate index within the period"`
	ExpansionKey string `long:"expansionkey" description:"Butterfly expansion key in hex (- to prompt)"`
	SeedPriv     string `long:"seedpriv" description:"Caterpillar private key in hex (- to prompt)"`
	ReconPriv    string `long:"reconpriv" description:"Private reconstruction value in hex (- to prompt)"`
	ReconPub     string `long:"reconpub" description:"Public reconstruction value"`
	certOpts
}

func (c *butterflyCmd) run(env *cmdEnv, _ []string) error {
	pc, err := c.certOpts.parse()
	if err != nil {
		return err
	}
	p := security.ButterflyParams{
		I:            c.I,
		J:            c.J,
		Cert:         pc.cert,
		TBSHash:      pc.tbsHash,
		IssuerHash:   pc.issuerHash,
		IssuerPublic: pc.issuerPub,
	}
	if pc.cert != nil {
		p.Locator = c.certOpts.locator()
	}
	if p.ReconPublic, err = bytesArg("reconpub", c.ReconPub); err != nil {
		return err
	}
	if p.ExpansionKey, err = env.symmetricKeyArg("expansionkey", c.ExpansionKey); err != nil {
		return err
	}
	defer p.ExpansionKey.Zero()
	if p.SeedPrivate, err = env.scalarArg("seedpriv", c.SeedPriv); err != nil {
		return err
	}
	defer p.SeedPrivate.Zero()
	if p.ReconPrivate, err = env.scalarArg("reconpriv", c.ReconPriv); err != nil {
		return err
	}
	defer p.ReconPrivate.Zero()

	kp, err := security.ButterflyReconstructKeyPair(env.curve, &p)
	if err != nil {
		return err
	}
	defer kp.Zero()
	printKeyPair(env.out, &kp)
	return nil
}

// cocoonCmd derives a cocoon key from the caterpillar key.
type cocoonCmd struct {
	I            uint32 `short:"i" long:"i" description:"Time period index"`
	J            uint32 `short:"j" long:"j" description:"Certificate index within the period"`
	ExpansionKey string `long:"expansionkey" description:"Butterfly expansion key in hex (- to prompt)"`
	SeedPriv     string `long:"seedpriv" description:"Caterpillar private key in hex (- to prompt)"`
	SeedPub      string `long:"seedpub" description:"Caterpillar public key, derives only the cocoon public key"`
	Encryption   bool   `long:"encryption" description:"Derive the encryption cocoon key instead of the signing one"`
}

func (c *cocoonCmd) run(env *cmdEnv, _ []string) error {
	if (c.SeedPriv == "") == (c.SeedPub == "") {
		return errors.New("exactly one of --seedpriv and --seedpub is required")
	}
	key, err := env.symmetricKeyArg("expansionkey", c.ExpansionKey)
	if err != nil {
		return err
	}
	defer key.Zero()

	if c.SeedPub != "" {
		seedPub, err := env.pointArg("seedpub", c.SeedPub)
		if err != nil {
			return err
		}
		derive := security.CocoonPublicKey
		if c.Encryption {
			derive = security.EncryptionCocoonPublicKey
		}
		pub, err := derive(env.curve, c.I, c.J, &key, &seedPub)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.out, "public:  %x\n", pub.SerializeCompressed())
		return nil
	}

	seedPriv, err := env.scalarArg("seedpriv", c.SeedPriv)
	if err != nil {
		return err
	}
	defer seedPriv.Zero()
	derive := security.CocoonKeyPair
	if c.Encryption {
		derive = security.EncryptionCocoonKeyPair
	}
	kp, err := derive(env.curve, c.I, c.J, &key, &seedPriv)
	if err != nil {
		return err
	}
	defer kp.Zero()
	printKeyPair(env.out, &kp)
	return nil
}

// messageArg returns the message given either in hex or as positional text.
func messageArg(hexMsg string, args []string) ([]byte, error) {
	if hexMsg != "" {
		if len(args) != 0 {
			return nil, errors.New("--msg and a positional message are " +
				"mutually exclusive")
		}
		return bytesArg("msg", hexMsg)
	}
	return []byte(strings.Join(args, " ")), nil
}

// signCmd signs a message.
type signCmd struct {
	Priv       string `long:"priv" description:"Signing private key in hex (- to prompt)"`
	Form       string `long:"form" description:"Signature form {x-only, compressed, uncompressed}"`
	SignerHash string `long:"signerhash" description:"Hash of the signer certificate; omit for self-signed data"`
	Msg        string `long:"msg" description:"Hex encoded message; the positional arguments are signed as text otherwise"`
}

func (c *signCmd) run(env *cmdEnv, args []string) error {
	form, err := security.ParseSignatureForm(c.Form)
	if err != nil {
		return err
	}
	signerHash, err := hashArg("signerhash", c.SignerHash, true)
	if err != nil {
		return err
	}
	msg, err := messageArg(c.Msg, args)
	if err != nil {
		return err
	}
	priv, err := env.scalarArg("priv", c.Priv)
	if err != nil {
		return err
	}
	defer priv.Zero()

	signer, err := security.NewSigner(&security.SignerConfig{Curve: env.curve})
	if err != nil {
		return err
	}
	sig, err := signer.Sign(form, msg, signerHash, &priv)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.out, "%x\n", sig.Serialize())
	return nil
}

// verifyCmd verifies a message signature.  The verification key is given
// directly or reconstructed from the signer's implicit certificate.
type verifyCmd struct {
	Pub        string `long:"pub" description:"Verification public key"`
	ReconPub   string `long:"reconpub" description:"Public reconstruction value of the signer certificate, used instead of --pub"`
	Sig        string `long:"sig" description:"Hex encoded signature"`
	SignerHash string `long:"signerhash" description:"Hash of the signer certificate; omit for self-signed data"`
	Msg        string `long:"msg" description:"Hex encoded message; the positional arguments are verified as text otherwise"`
	certOpts
}

func (c *verifyCmd) run(env *cmdEnv, args []string) error {
	sig, err := bytesArg("sig", c.Sig)
	if err != nil {
		return err
	}
	signerHash, err := hashArg("signerhash", c.SignerHash, true)
	if err != nil {
		return err
	}
	msg, err := messageArg(c.Msg, args)
	if err != nil {
		return err
	}

	var pub []byte
	switch {
	case c.Pub != "" && c.ReconPub != "":
		return errors.New("--pub and --reconpub are mutually exclusive")
	case c.Pub != "":
		if pub, err = bytesArg("pub", c.Pub); err != nil {
			return err
		}
	default:
		pc, err := c.certOpts.parse()
		if err != nil {
			return err
		}
		if pc.cert == nil {
			return errors.New("reconstructing the verification key " +
				"requires --cert")
		}
		reconPub, err := bytesArg("reconpub", c.ReconPub)
		if err != nil {
			return err
		}
		cache := security.NewKeyCache(env.curve, env.cfg.KeyCacheSize,
			env.cfg.KeyCacheTTL)
		point, err := cache.PublicKeyFromCert(pc.cert, c.certOpts.locator(),
			reconPub, &pc.issuerHash, pc.issuerPub)
		if err != nil {
			return err
		}
		pub = point.SerializeCompressed()
	}

	if err := security.VerifyBytes(env.curve, msg, signerHash, pub, sig); err != nil {
		return err
	}
	fmt.Fprintln(env.out, "valid")
	return nil
}

// linkageOpts holds the linkage authority inputs of a certificate batch.
type linkageOpts struct {
	LA1 string `long:"la1" description:"Linkage authority 1 identifier (8 bytes hex)"`
	LA2 string `long:"la2" description:"Linkage authority 2 identifier (8 bytes hex)"`
	LS1 string `long:"ls1" description:"Linkage seed 1 (16 bytes hex, - to prompt)"`
	LS2 string `long:"ls2" description:"Linkage seed 2 (16 bytes hex, - to prompt)"`
}

func (o *linkageOpts) inputs(env *cmdEnv) (*linkage.Inputs, error) {
	var in linkage.Inputs
	var err error
	if in.LA1, err = linkage.IDFromHex(o.LA1); err != nil {
		return nil, fmt.Errorf("invalid --la1: %w", err)
	}
	if in.LA2, err = linkage.IDFromHex(o.LA2); err != nil {
		return nil, fmt.Errorf("invalid --la2: %w", err)
	}
	seed := func(name, s string, dst *linkage.Seed) error {
		b, err := env.secretArg(name, s)
		if err != nil {
			return err
		}
		defer zero(b)
		if len(b) != linkage.SeedSize {
			return fmt.Errorf("invalid --%s: got %d bytes, want %d", name,
				len(b), linkage.SeedSize)
		}
		copy(dst[:], b)
		return nil
	}
	if err := seed("ls1", o.LS1, &in.LS1); err != nil {
		return nil, err
	}
	if err := seed("ls2", o.LS2, &in.LS2); err != nil {
		in.Zero()
		return nil, err
	}
	return &in, nil
}

// linkageCmd derives consecutive linkage values.
type linkageCmd struct {
	J     uint32 `short:"j" long:"j" description:"First time period index"`
	Count uint32 `short:"n" long:"count" description:"Number of consecutive periods to derive"`
	linkageOpts
}

func (c *linkageCmd) run(env *cmdEnv, _ []string) error {
	if c.Count == 0 || c.Count > linkage.MaxValuesPerEntry {
		return fmt.Errorf("--count must be in [1, %d]", linkage.MaxValuesPerEntry)
	}
	if uint64(c.J)+uint64(c.Count)-1 > math.MaxUint32 {
		return fmt.Errorf("--j %d with --count %d runs past the last time "+
			"period %d", c.J, c.Count, uint32(math.MaxUint32))
	}
	in, err := c.linkageOpts.inputs(env)
	if err != nil {
		return err
	}
	defer in.Zero()

	for i := uint32(0); i < c.Count; i++ {
		j := c.J + i
		lv, err := linkage.DeriveValue(j, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.out, "%d %s\n", j, lv)
	}
	return nil
}

// revokedCmd checks linkage values against a revoked certificate batch.
type revokedCmd struct {
	JMax uint32 `long:"jmax" description:"Last revoked time period index"`
	linkageOpts
}

func (c *revokedCmd) run(env *cmdEnv, args []string) error {
	if len(args) == 0 {
		return errors.New("no linkage values to check")
	}
	values := make([]linkage.Value, 0, len(args))
	for _, arg := range args {
		lv, err := linkage.ValueFromHex(arg)
		if err != nil {
			return err
		}
		values = append(values, lv)
	}
	in, err := c.linkageOpts.inputs(env)
	if err != nil {
		return err
	}
	entry := linkage.RevocationEntry{Inputs: *in, JMax: c.JMax}
	in.Zero()
	defer entry.Zero()

	rl := linkage.NewRevocationList()
	n, err := rl.Add(&entry)
	if err != nil {
		return err
	}
	v2xsLog.Debugf("Expanded revoked batch into %d linkage values", n)

	for i := range values {
		status := "not revoked"
		if rl.IsRevoked(&values[i]) {
			status = "revoked"
		}
		fmt.Fprintf(env.out, "%s %s\n", values[i], status)
	}
	return nil
}
