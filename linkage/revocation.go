// Copyright (c) 2025-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linkage

import (
	"fmt"
	"sync"
)

// MaxValuesPerEntry is the maximum number of linkage values a single
// revocation entry may expand into.
const MaxValuesPerEntry = 1 << 16

// RevocationEntry describes a revoked certificate batch by the seeds of both
// linkage authorities.  Every linkage value for periods 0 through JMax is
// considered revoked.
type RevocationEntry struct {
	Inputs
	JMax uint32
}

// RevocationList answers whether a linkage value belongs to a revoked batch.
// It is safe for concurrent access.
type RevocationList struct {
	mtx     sync.RWMutex
	values  map[Value]int // value -> entry index
	entries int
}

// NewRevocationList returns an empty revocation list.
func NewRevocationList() *RevocationList {
	return &RevocationList{values: make(map[Value]int)}
}

// Add expands the entry into its linkage values and adds them to the list.
// It returns the number of values that were not already present.
func (rl *RevocationList) Add(entry *RevocationEntry) (int, error) {
	if uint64(entry.JMax)+1 > MaxValuesPerEntry {
		str := fmt.Sprintf("revocation entry expands into %d values, max %d",
			uint64(entry.JMax)+1, MaxValuesPerEntry)
		return 0, makeError(ErrTooManyValues, str)
	}

	// Values are derived before the lock is taken.
	values, err := deriveRange(&entry.Inputs, entry.JMax)
	if err != nil {
		return 0, err
	}

	rl.mtx.Lock()
	idx := rl.entries
	rl.entries++
	added := 0
	for _, v := range values {
		if _, ok := rl.values[v]; ok {
			continue
		}
		rl.values[v] = idx
		added++
	}
	total := len(rl.values)
	rl.mtx.Unlock()

	log.Debugf("Added revocation entry %d: %d new linkage values (%d total)",
		idx, added, total)
	return added, nil
}

// IsRevoked returns whether the linkage value belongs to a revoked batch.
func (rl *RevocationList) IsRevoked(v *Value) bool {
	rl.mtx.RLock()
	_, ok := rl.values[*v]
	rl.mtx.RUnlock()
	return ok
}

// Len returns the number of distinct revoked linkage values.
func (rl *RevocationList) Len() int {
	rl.mtx.RLock()
	n := len(rl.values)
	rl.mtx.RUnlock()
	return n
}

// Entries returns the number of revocation entries added.
func (rl *RevocationList) Entries() int {
	rl.mtx.RLock()
	n := rl.entries
	rl.mtx.RUnlock()
	return n
}
