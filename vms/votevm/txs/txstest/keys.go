// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txstest provides deterministic keys for tests.
package txstest

import (
	"crypto/ed25519"

	"github.com/luxfi/ids"
)

// Key returns a deterministic private key for index [i].
func Key(i byte) ed25519.PrivateKey {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = i
	seed[ed25519.SeedSize-1] = 0x5a
	return ed25519.NewKeyFromSeed(seed)
}

// Address returns the account address controlled by [key].
func Address(key ed25519.PrivateKey) ids.ID {
	var addr ids.ID
	copy(addr[:], key.Public().(ed25519.PublicKey))
	return addr
}
