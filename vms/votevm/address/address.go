// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package address derives program-owned addresses.
//
// A program address is the SHA-256 digest of a list of seeds, the owning
// program's ID and a fixed marker. Digests that happen to decode as an ed25519
// point are rejected, so no externally held private key can ever sign for a
// program address. Only the owning program can authorize changes to it.
package address

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/luxfi/ids"
	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
)

const (
	// Len is the byte length of an address.
	Len = 32
	// MaxSeeds is the maximum number of seeds, bump included.
	MaxSeeds = 16
	// MaxSeedLen is the maximum length of a single seed.
	MaxSeedLen = 32
)

var (
	ErrMaxSeedLengthExceeded = errors.New("seed length exceeded")
	ErrOnCurve               = errors.New("derived address is a valid curve point")
	ErrNoViableBump          = errors.New("no viable bump seed")

	errInvalidLength = errors.New("invalid address length")

	marker = []byte("ProgramDerivedAddress")
)

// CreateProgramAddress hashes [seeds] together with [programID]. It fails if
// the result lies on the ed25519 curve.
func CreateProgramAddress(seeds [][]byte, programID ids.ID) (ids.ID, error) {
	if len(seeds) > MaxSeeds {
		return ids.Empty, fmt.Errorf("%w: %d seeds", ErrMaxSeedLengthExceeded, len(seeds))
	}
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return ids.Empty, fmt.Errorf("%w: %d bytes", ErrMaxSeedLengthExceeded, len(seed))
		}
		_, _ = h.Write(seed)
	}
	_, _ = h.Write(programID[:])
	_, _ = h.Write(marker)

	var addr ids.ID
	copy(addr[:], h.Sum(nil))
	if IsOnCurve(addr) {
		return ids.Empty, ErrOnCurve
	}
	return addr, nil
}

// FindProgramAddress returns the canonical address for [seeds] together with
// the bump that produced it. Bumps are tried from 255 downward and the first
// one that yields an off-curve address wins.
func FindProgramAddress(seeds [][]byte, programID ids.ID) (ids.ID, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return ids.Empty, 0, fmt.Errorf("%w: %d seeds", ErrMaxSeedLengthExceeded, len(seeds)+1)
	}

	var bumpSeed [1]byte
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	withBump[len(seeds)] = bumpSeed[:]

	for bump := 255; bump >= 0; bump-- {
		bumpSeed[0] = uint8(bump)
		addr, err := CreateProgramAddress(withBump, programID)
		switch {
		case err == nil:
			return addr, uint8(bump), nil
		case errors.Is(err, ErrOnCurve):
			continue
		default:
			return ids.Empty, 0, err
		}
	}
	return ids.Empty, 0, ErrNoViableBump
}

// IsOnCurve reports whether [addr] is the compressed encoding of an ed25519
// point.
func IsOnCurve(addr ids.ID) bool {
	_, err := new(edwards25519.Point).SetBytes(addr[:])
	return err == nil
}

// Format returns the base58 form of [addr].
func Format(addr ids.ID) string {
	return base58.Encode(addr[:])
}

// Parse decodes a base58 address.
func Parse(s string) (ids.ID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return ids.Empty, fmt.Errorf("couldn't decode %q: %w", s, err)
	}
	if len(b) != Len {
		return ids.Empty, fmt.Errorf("%w: %d bytes", errInvalidLength, len(b))
	}
	var addr ids.ID
	copy(addr[:], b)
	return addr, nil
}
