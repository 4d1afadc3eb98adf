// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists ledger accounts.
package state

import (
	"errors"
	"fmt"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"
)

const codecVersion = 0

var (
	accountPrefix = []byte("account")

	accountCodec codec.Manager
)

func init() {
	c := linearcodec.NewDefault()
	accountCodec = codec.NewDefaultManager()
	if err := accountCodec.RegisterCodec(codecVersion, c); err != nil {
		panic(err)
	}
}

// Chain reads and writes accounts.
type Chain interface {
	GetAccount(addr ids.ID) (*Account, error)
	PutAccount(acct *Account) error
}

type state struct {
	accounts database.Database
}

// New returns account state stored in [db]. [db] is typically a versiondb so
// that the caller controls commit and abort.
func New(db database.Database) Chain {
	return &state{
		accounts: prefixdb.New(accountPrefix, db),
	}
}

// GetAccount returns the account at [addr]. Addresses that were never written
// yield an empty account owned by the system program.
func (s *state) GetAccount(addr ids.ID) (*Account, error) {
	b, err := s.accounts.Get(addr[:])
	if errors.Is(err, database.ErrNotFound) {
		return NewAccount(addr), nil
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't read account %s: %w", addr, err)
	}

	acct := &Account{}
	if _, err := accountCodec.Unmarshal(b, acct); err != nil {
		return nil, fmt.Errorf("couldn't parse account %s: %w", addr, err)
	}
	acct.Address = addr
	return acct, nil
}

// PutAccount writes [acct]. Empty accounts are deleted.
func (s *state) PutAccount(acct *Account) error {
	if acct.IsEmpty() {
		return s.accounts.Delete(acct.Address[:])
	}

	b, err := accountCodec.Marshal(codecVersion, acct)
	if err != nil {
		return fmt.Errorf("couldn't marshal account %s: %w", acct.Address, err)
	}
	return s.accounts.Put(acct.Address[:], b)
}
