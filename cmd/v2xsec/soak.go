// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/decred/dcrd/crypto/rand"
	"github.com/eggandi/innowireless-dev-sub001/ec256"
	"github.com/eggandi/innowireless-dev-sub001/internal/progresslog"
	"github.com/eggandi/innowireless-dev-sub001/security"
)

// soakCertSize is the size of the random certificate body issued for a soak
// run.
const soakCertSize = 128

// syntheticCert is an implicit certificate issued locally for a soak run
// along with its holder's reconstructed key pair.
type syntheticCert struct {
	cert       []byte
	reconPub   []byte
	issuerHash security.Hash256
	issuerPub  []byte
	keys       security.KeyPair
}

// issueSyntheticCert plays both the issuing authority and the requester of an
// implicit certificate and returns the reconstructed result.
func issueSyntheticCert(c ec256.Curve) (*syntheticCert, error) {
	ca, err := security.GenerateKeyPair(c, nil)
	if err != nil {
		return nil, err
	}
	defer ca.Zero()
	initial, err := security.GenerateKeyPair(c, nil)
	if err != nil {
		return nil, err
	}
	defer initial.Zero()
	ephemeral, err := security.GenerateKeyPair(c, nil)
	if err != nil {
		return nil, err
	}
	defer ephemeral.Zero()

	sc := syntheticCert{
		cert:      make([]byte, soakCertSize),
		issuerPub: ca.Public.SerializeCompressed(),
	}
	rand.Read(sc.cert)
	var issuerCert [soakCertSize]byte
	rand.Read(issuerCert[:])
	sc.issuerHash = security.HashBytes(issuerCert[:])

	// Issuer side: P_U = initial + ephemeral and r = e*k + d_CA.
	reconPoint, err := c.AddPoints(&initial.Public, &ephemeral.Public)
	if err != nil {
		return nil, err
	}
	sc.reconPub = reconPoint.SerializeCompressed()
	h, err := security.CertKeyReconstructionHashInput(sc.cert,
		security.WholeCertificate, &sc.issuerHash)
	if err != nil {
		return nil, err
	}
	e := security.HashToScalar(c, &h)
	ek := c.MulScalars(&e, &ephemeral.Private)
	reconPriv := c.AddScalars(&ek, &ca.Private)
	defer reconPriv.Zero()
	ek.Zero()

	// Requester side.
	sc.keys, err = security.ReconstructKeyPairFromCert(c, &initial.Private,
		&reconPriv, sc.reconPub, sc.cert, security.WholeCertificate,
		&sc.issuerHash, sc.issuerPub)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// soakCmd signs and verifies concurrently with parameters from a running
// signing pool.
type soakCmd struct {
	Duration time.Duration `long:"duration" description:"How long to run"`
	Workers  int           `long:"workers" description:"Number of concurrent signers"`
	Form     string        `long:"form" description:"Signature form {x-only, compressed, uncompressed}"`
	MsgSize  int           `long:"msgsize" default:"100" description:"Size of each random message"`
}

func (c *soakCmd) run(env *cmdEnv, _ []string) error {
	if c.Duration <= 0 {
		return errors.New("--duration must be positive")
	}
	if c.Workers < 1 {
		return errors.New("--workers must be positive")
	}
	if c.MsgSize < 0 {
		return errors.New("--msgsize must not be negative")
	}
	form, err := security.ParseSignatureForm(c.Form)
	if err != nil {
		return err
	}

	sc, err := issueSyntheticCert(env.curve)
	if err != nil {
		return err
	}
	defer sc.keys.Zero()

	pool, err := security.NewSigningPool(&security.PoolConfig{
		Curve:          env.curve,
		Capacity:       env.cfg.PoolSize,
		RefillInterval: env.cfg.RefillInterval,
	})
	if err != nil {
		return err
	}
	signer, err := security.NewSigner(&security.SignerConfig{
		Curve: env.curve,
		Pool:  pool,
	})
	if err != nil {
		return err
	}
	cache := security.NewKeyCache(env.curve, env.cfg.KeyCacheSize,
		env.cfg.KeyCacheTTL)

	ctx, cancel := context.WithTimeout(env.ctx, c.Duration)
	defer cancel()

	v2xsLog.Infof("Soaking %s %s signatures with %d workers for %v",
		env.curve.Name(), form, c.Workers, c.Duration)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := pool.Run(ctx); err != nil {
			v2xsLog.Errorf("Signing pool: %v", err)
		}
	}()

	progress := progresslog.New("Soaked", v2xsLog)
	var signed atomic.Uint64
	var errMtx sync.Mutex
	var firstErr error
	fail := func(err error) {
		errMtx.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		errMtx.Unlock()
	}

	start := time.Now()
	for i := 0; i < c.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := make([]byte, c.MsgSize)
			for ctx.Err() == nil {
				rand.Read(msg)
				sig, err := signer.Sign(form, msg, &sc.issuerHash,
					&sc.keys.Private)
				if err != nil {
					// Take fails once the pool is flushed at shutdown.
					if !errors.Is(err, security.ErrPoolClosed) {
						fail(err)
					}
					return
				}
				pub, err := cache.PublicKeyFromCert(sc.cert,
					security.WholeCertificate, sc.reconPub, &sc.issuerHash,
					sc.issuerPub)
				if err != nil {
					fail(err)
					return
				}
				err = security.Verify(env.curve, msg, &sc.issuerHash, &pub, sig)
				if err != nil {
					fail(fmt.Errorf("signature %d: %w", signed.Load(), err))
					return
				}
				signed.Add(1)
				progress.LogProgress(1, 1, 0, false)
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if firstErr != nil {
		return firstErr
	}

	stats := pool.Stats()
	progress.LogProgress(0, 0, stats.FreshDraws, true)
	n := signed.Load()
	fmt.Fprintf(env.out, "signatures:   %d (%.0f/s)\n", n,
		float64(n)/elapsed.Seconds())
	fmt.Fprintf(env.out, "pool:         capacity %d\n", stats.Capacity)
	fmt.Fprintf(env.out, "pool takes:   %d (fresh draws %d, refills %d)\n",
		stats.Takes, stats.FreshDraws, stats.Refills)
	fmt.Fprintf(env.out, "key cache:    %d entries, hit ratio %.2f\n",
		cache.Len(), cache.HitRatio())
	return nil
}
