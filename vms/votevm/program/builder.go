// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/votevm/vms/votevm/address"
	"github.com/luxfi/votevm/vms/votevm/instruction"
	"github.com/luxfi/votevm/vms/votevm/state"
	"github.com/luxfi/votevm/vms/votevm/txs"
)

// NewVoteInstruction returns the instruction by which [voter] votes for
// [name], with the record slot derived by [deriver].
func NewVoteInstruction(deriver *address.Deriver, voter ids.ID, name string) (txs.Instruction, error) {
	derived, err := deriver.Derive([]byte(name))
	if err != nil {
		return txs.Instruction{}, err
	}
	data, err := (&instruction.Vote{Name: name}).Bytes()
	if err != nil {
		return txs.Instruction{}, err
	}
	return txs.Instruction{
		ProgramID: deriver.ProgramID(),
		Accounts: []txs.AccountMeta{
			{
				Address:    voter,
				IsSigner:   true,
				IsWritable: true,
			},
			{
				Address:    derived.Address,
				IsWritable: true,
			},
			{
				Address: state.SystemProgramID,
			},
		},
		Data: data,
	}, nil
}
