// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package security

import (
	"time"

	"github.com/decred/dcrd/container/lru"
	"github.com/eggandi/innowireless-dev-sub001/ec256"
	"github.com/minio/sha256-simd"
)

const (
	// DefaultKeyCacheSize is the number of reconstructed public keys kept
	// when no size is configured.
	DefaultKeyCacheSize = 1024

	// DefaultKeyCacheTTL is how long a reconstructed public key is kept
	// when no lifetime is configured.
	DefaultKeyCacheTTL = 10 * time.Minute
)

// KeyCache remembers public keys reconstructed from implicit certificates so
// a certificate that signs many messages is only reconstructed once.
//
// Entries are keyed by every input the reconstruction depends on: the hash of
// the to-be-signed region reported by the locator, the issuer hash, and the
// encoded reconstruction and issuer public keys.  The cache is safe for
// concurrent access.
type KeyCache struct {
	curve ec256.Curve
	keys  *lru.Map[Hash256, ec256.Point]
}

// NewKeyCache returns a cache holding up to limit keys for at most ttl each.
// Zero values select DefaultKeyCacheSize and DefaultKeyCacheTTL.
func NewKeyCache(c ec256.Curve, limit uint32, ttl time.Duration) *KeyCache {
	if limit == 0 {
		limit = DefaultKeyCacheSize
	}
	if ttl == 0 {
		ttl = DefaultKeyCacheTTL
	}
	return &KeyCache{
		curve: c,
		keys:  lru.NewMapWithDefaultTTL[Hash256, ec256.Point](limit, ttl),
	}
}

// cacheKey returns the hash of the to-be-signed region of cert along with the
// cache key
//
//	H(tbsHash || issuerHash || len(reconPub) || reconPub || len(issuerPub) || issuerPub)
//
// where each length is a single byte.
func cacheKey(cert []byte, loc TBSLocator, reconPub []byte, issuerHash *Hash256, issuerPub []byte) (Hash256, Hash256, error) {
	tbs, err := TBSBytes(cert, loc)
	if err != nil {
		return Hash256{}, Hash256{}, err
	}
	if len(reconPub) > 0xff || len(issuerPub) > 0xff {
		return Hash256{}, Hash256{}, makeError(ErrInvalidEncoding,
			"public key encoding is too long")
	}
	tbsHash := HashBytes(tbs)

	h := sha256.New()
	h.Write(tbsHash[:])
	h.Write(issuerHash[:])
	h.Write([]byte{byte(len(reconPub))})
	h.Write(reconPub)
	h.Write([]byte{byte(len(issuerPub))})
	h.Write(issuerPub)
	var key Hash256
	h.Sum(key[:0])
	return tbsHash, key, nil
}

// PublicKeyFromCert returns the public key of the implicit certificate cert,
// reconstructing and caching it on a miss.  Failed reconstructions are not
// cached.
func (kc *KeyCache) PublicKeyFromCert(cert []byte, loc TBSLocator, reconPub []byte, issuerHash *Hash256, issuerPub []byte) (ec256.Point, error) {
	tbsHash, key, err := cacheKey(cert, loc, reconPub, issuerHash, issuerPub)
	if err != nil {
		return ec256.Point{}, err
	}
	if pub, ok := kc.keys.Get(key); ok {
		return pub, nil
	}
	pub, err := ReconstructPublicKeyFromTBSHash(kc.curve, reconPub, &tbsHash,
		issuerHash, issuerPub)
	if err != nil {
		return ec256.Point{}, err
	}
	if evicted := kc.keys.Put(key, pub); evicted > 0 {
		log.Tracef("Evicted %d reconstructed keys from cache", evicted)
	}
	return pub, nil
}

// Contains returns whether the key reconstructed from the provided inputs is
// cached.
func (kc *KeyCache) Contains(cert []byte, loc TBSLocator, reconPub []byte, issuerHash *Hash256, issuerPub []byte) bool {
	_, key, err := cacheKey(cert, loc, reconPub, issuerHash, issuerPub)
	return err == nil && kc.keys.Exists(key)
}

// Forget removes the key reconstructed from the provided inputs from the
// cache.
func (kc *KeyCache) Forget(cert []byte, loc TBSLocator, reconPub []byte, issuerHash *Hash256, issuerPub []byte) {
	_, key, err := cacheKey(cert, loc, reconPub, issuerHash, issuerPub)
	if err == nil {
		kc.keys.Delete(key)
	}
}

// Len returns the number of cached keys.
func (kc *KeyCache) Len() int {
	return int(kc.keys.Len())
}

// HitRatio returns the percentage of lookups that were served from the
// cache.
func (kc *KeyCache) HitRatio() float64 {
	return kc.keys.HitRatio()
}
