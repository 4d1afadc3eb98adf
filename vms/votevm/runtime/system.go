// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/votevm/vms/votevm/address"
	"github.com/luxfi/votevm/vms/votevm/state"

	safemath "github.com/luxfi/votevm/utils/math"
)

// MaxAccountDataSize bounds the data a single account may hold.
const MaxAccountDataSize = 10 * 1024 * 1024

var (
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrAccountNotWritable       = errors.New("account not writable")
	ErrAccountInUse             = errors.New("account already in use")
	ErrInvalidSeeds             = errors.New("seeds do not match account address")
	ErrInvalidAccountDataSize   = errors.New("invalid account data size")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrFromHasData              = errors.New("funding account carries data")
)

var _ Env = (*invokeEnv)(nil)

// invokeEnv is the Env of one instruction.
type invokeEnv struct {
	programID ids.ID
	// baseline holds the account states that the post-instruction checks
	// compare against. Changes made by the system program itself are folded
	// into the baseline as they happen.
	baseline map[ids.ID]*state.Account
	// onCommit is shared by every instruction of the transaction.
	onCommit *[]func()
}

func (e *invokeEnv) ProgramID() ids.ID {
	return e.programID
}

func (e *invokeEnv) OnCommit(f func()) {
	*e.onCommit = append(*e.onCommit, f)
}

func (e *invokeEnv) CreateAccount(from, to *AccountInfo, balance, space uint64, owner ids.ID, seeds [][]byte) error {
	switch {
	case !from.IsSigner:
		return fmt.Errorf("%w: funding account %s", ErrMissingRequiredSignature, from.Address)
	case !from.IsWritable:
		return fmt.Errorf("%w: %s", ErrAccountNotWritable, from.Address)
	case !to.IsWritable:
		return fmt.Errorf("%w: %s", ErrAccountNotWritable, to.Address)
	case len(from.Data) != 0:
		return fmt.Errorf("%w: %s", ErrFromHasData, from.Address)
	case !to.IsEmpty() || to.Owner != state.SystemProgramID:
		return fmt.Errorf("%w: %s", ErrAccountInUse, to.Address)
	case space > MaxAccountDataSize:
		return fmt.Errorf("%w: %d > %d", ErrInvalidAccountDataSize, space, MaxAccountDataSize)
	}

	if !to.IsSigner {
		derived, err := address.CreateProgramAddress(seeds, e.programID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSeeds, err)
		}
		if derived != to.Address {
			return fmt.Errorf("%w: derived %s, expected %s", ErrInvalidSeeds, derived, to.Address)
		}
	}

	remaining, err := safemath.Sub(from.Balance, balance)
	if err != nil {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, from.Address, from.Balance, balance)
	}

	from.Balance = remaining
	to.Balance = balance
	to.Data = make([]byte, space)
	to.Owner = owner

	e.baseline[from.Address] = from.Account.Clone()
	e.baseline[to.Address] = to.Account.Clone()
	return nil
}
