// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/votevm/vms/votevm/state"
)

// AccountInfo is an account as seen by a single instruction.
//
// Accounts that appear more than once in a transaction share the same
// underlying *state.Account, so changes made by one instruction are visible to
// the next.
type AccountInfo struct {
	*state.Account

	// IsSigner is true only when the transaction carries a verified signature
	// from the account's key.
	IsSigner bool
	// IsWritable is true when the transaction declared the account writable.
	IsWritable bool
}

// Env is the host interface offered to an executing program.
type Env interface {
	// ProgramID returns the ID of the executing program.
	ProgramID() ids.ID

	// CreateAccount allocates [space] zeroed bytes at [to], assigns it to
	// [owner] and moves [balance] from [from] into it.
	//
	// [from] must be a writable signer. [to] must be unused and either a
	// signer or the program address produced by [seeds] under the executing
	// program.
	CreateAccount(from, to *AccountInfo, balance, space uint64, owner ids.ID, seeds [][]byte) error

	// OnCommit registers [f] to run once the transaction's effects are
	// committed. It never runs for a transaction that is rolled back.
	OnCommit(f func())
}

// Program is on-ledger logic invoked by instructions addressed to its ID.
type Program interface {
	ID() ids.ID
	Process(env Env, accounts []*AccountInfo, data []byte) error
}
