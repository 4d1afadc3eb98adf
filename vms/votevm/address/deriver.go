// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import (
	"github.com/luxfi/cache/lru"
	"github.com/luxfi/ids"
)

const defaultCacheSize = 1024

// Derived is a program address together with the bump that produced it.
type Derived struct {
	Address ids.ID
	Bump    uint8
}

// Seeds returns the full seed list, bump included, that authorizes
// [Derived.Address] on behalf of its program.
func (d Derived) Seeds(name []byte, domain []byte) [][]byte {
	return [][]byte{name, domain, {d.Bump}}
}

// Deriver computes record addresses for subject names. Every record of a
// program is keyed by the seeds [name, domain].
//
// Results are memoized, which is safe because derivation is a pure function of
// its inputs.
type Deriver struct {
	programID ids.ID
	domain    []byte
	cache     *lru.Cache[string, Derived]
}

// NewDeriver returns a Deriver for [programID]. If [domain] is empty the
// program ID bytes are used as the domain separation constant.
func NewDeriver(programID ids.ID, domain []byte, cacheSize int) *Deriver {
	if len(domain) == 0 {
		domain = programID[:]
	}
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	return &Deriver{
		programID: programID,
		domain:    domain,
		cache:     lru.NewCache[string, Derived](cacheSize),
	}
}

// ProgramID returns the program that owns derived addresses.
func (d *Deriver) ProgramID() ids.ID {
	return d.programID
}

// Domain returns the domain separation constant.
func (d *Deriver) Domain() []byte {
	return d.domain
}

// Derive returns the canonical record address of [name].
func (d *Deriver) Derive(name []byte) (Derived, error) {
	if derived, ok := d.cache.Get(string(name)); ok {
		return derived, nil
	}

	addr, bump, err := FindProgramAddress([][]byte{name, d.domain}, d.programID)
	if err != nil {
		return Derived{}, err
	}
	derived := Derived{
		Address: addr,
		Bump:    bump,
	}
	d.cache.Put(string(name), derived)
	return derived, nil
}
