// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"bytes"

	"github.com/luxfi/ids"
)

// SystemProgramID owns every account that has not been assigned to a program.
var SystemProgramID = ids.Empty

// Account is the persistent state stored at an address.
type Account struct {
	Address ids.ID `json:"address"`

	// Nonce is the nonce the next transaction paid by this account must
	// carry.
	Nonce      uint64 `serialize:"true" json:"nonce"`
	Balance    uint64 `serialize:"true" json:"balance"`
	Owner      ids.ID `serialize:"true" json:"owner"`
	Data       []byte `serialize:"true" json:"data"`
	Executable bool   `serialize:"true" json:"executable"`
}

// NewAccount returns the implicit state of an address that was never written:
// no balance, no data, owned by the system program.
func NewAccount(addr ids.ID) *Account {
	return &Account{
		Address: addr,
		Owner:   SystemProgramID,
	}
}

// IsEmpty reports whether the account is indistinguishable from one that was
// never written. An account that ever paid for a transaction is not empty.
func (a *Account) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance == 0 && len(a.Data) == 0
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	c := *a
	c.Data = bytes.Clone(a.Data)
	return &c
}

// Equal reports whether the persisted fields of both accounts match.
func (a *Account) Equal(o *Account) bool {
	return a.Address == o.Address &&
		a.Nonce == o.Nonce &&
		a.Balance == o.Balance &&
		a.Owner == o.Owner &&
		a.Executable == o.Executable &&
		bytes.Equal(a.Data, o.Data)
}
