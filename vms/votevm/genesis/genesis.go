// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis describes the initial balances of a vote ledger.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/votevm/vms/votevm/address"

	avajson "github.com/luxfi/votevm/utils/json"
)

var errDuplicateAllocation = errors.New("duplicate allocation")

type Allocation struct {
	Address string         `json:"address"` // base58
	Balance avajson.Uint64 `json:"balance"`
}

type Genesis struct {
	Allocations []Allocation `json:"allocations"`
}

// Parse decodes [b]. Empty input is an empty genesis.
func Parse(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if len(b) == 0 {
		return g, nil
	}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal genesis: %w", err)
	}
	return g, nil
}

// Balances returns the funded addresses of the genesis.
func (g *Genesis) Balances() (map[ids.ID]uint64, error) {
	balances := make(map[ids.ID]uint64, len(g.Allocations))
	for _, alloc := range g.Allocations {
		addr, err := address.Parse(alloc.Address)
		if err != nil {
			return nil, err
		}
		if _, ok := balances[addr]; ok {
			return nil, fmt.Errorf("%w: %s", errDuplicateAllocation, alloc.Address)
		}
		balances[addr] = uint64(alloc.Balance)
	}
	return balances, nil
}
