// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api serves the vote ledger over JSON-RPC.
package api

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/votevm/vms/votevm/address"
	"github.com/luxfi/votevm/vms/votevm/record"
	"github.com/luxfi/votevm/vms/votevm/state"
	"github.com/luxfi/votevm/vms/votevm/txs"

	avajson "github.com/luxfi/votevm/utils/json"
)

// Name is the name the service is registered under.
const Name = "vote"

var (
	ErrAirdropDisabled = errors.New("airdrop disabled")

	errMissingTx = errors.New("argument 'tx' not given")
)

// Ledger is the state the service reads and the executor it submits to.
type Ledger interface {
	Execute(ctx context.Context, tx *txs.Tx) error
	Airdrop(ctx context.Context, addr ids.ID, amount uint64) error
	GetAccount(addr ids.ID) (*state.Account, error)
}

// Service defines the API calls that can be made to the vote ledger.
type Service struct {
	log          log.Logger
	ledger       Ledger
	deriver      *address.Deriver
	allowAirdrop bool
}

func NewService(logger log.Logger, ledger Ledger, deriver *address.Deriver, allowAirdrop bool) *Service {
	return &Service{
		log:          logger,
		ledger:       ledger,
		deriver:      deriver,
		allowAirdrop: allowAirdrop,
	}
}

type NameArgs struct {
	Name string `json:"name"`
}

type DeriveAddressReply struct {
	Address string        `json:"address"`
	Bump    avajson.Uint8 `json:"bump"`
}

// DeriveAddress returns the record address of a subject.
func (s *Service) DeriveAddress(_ *http.Request, args *NameArgs, reply *DeriveAddressReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "deriveAddress"),
	)

	derived, err := s.deriver.Derive([]byte(args.Name))
	if err != nil {
		return err
	}
	reply.Address = address.Format(derived.Address)
	reply.Bump = avajson.Uint8(derived.Bump)
	return nil
}

type GetRecordReply struct {
	Address string         `json:"address"`
	Exists  bool           `json:"exists"`
	Name    string         `json:"name"`
	Votes   avajson.Uint64 `json:"votes"`
}

// GetRecord returns the tally of a subject. Subjects nobody voted for have
// zero votes.
func (s *Service) GetRecord(_ *http.Request, args *NameArgs, reply *GetRecordReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getRecord"),
		log.String("name", args.Name),
	)

	derived, err := s.deriver.Derive([]byte(args.Name))
	if err != nil {
		return err
	}
	acct, err := s.ledger.GetAccount(derived.Address)
	if err != nil {
		return err
	}

	reply.Address = address.Format(derived.Address)
	reply.Name = args.Name
	if acct.IsEmpty() || acct.Owner != s.deriver.ProgramID() {
		return nil
	}

	r, err := record.Decode(acct.Data)
	if err != nil {
		return err
	}
	reply.Exists = true
	reply.Votes = avajson.Uint64(r.Votes)
	return nil
}

type AddressArgs struct {
	Address string `json:"address"`
}

type GetAccountReply struct {
	Address    string         `json:"address"`
	Nonce      avajson.Uint64 `json:"nonce"`
	Balance    avajson.Uint64 `json:"balance"`
	Owner      string         `json:"owner"`
	Data       string         `json:"data"` // hex
	Executable bool           `json:"executable"`
}

// GetAccount returns the committed state of an account.
func (s *Service) GetAccount(_ *http.Request, args *AddressArgs, reply *GetAccountReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "getAccount"),
		log.String("address", args.Address),
	)

	addr, err := address.Parse(args.Address)
	if err != nil {
		return err
	}
	acct, err := s.ledger.GetAccount(addr)
	if err != nil {
		return err
	}
	*reply = newGetAccountReply(acct)
	return nil
}

func newGetAccountReply(acct *state.Account) GetAccountReply {
	return GetAccountReply{
		Address:    address.Format(acct.Address),
		Nonce:      avajson.Uint64(acct.Nonce),
		Balance:    avajson.Uint64(acct.Balance),
		Owner:      address.Format(acct.Owner),
		Data:       hex.EncodeToString(acct.Data),
		Executable: acct.Executable,
	}
}

type IssueTxArgs struct {
	// Tx is the hex encoding of a signed transaction.
	Tx string `json:"tx"`
}

type IssueTxReply struct {
	TxID ids.ID `json:"txID"`
}

// IssueTx executes a signed transaction.
func (s *Service) IssueTx(r *http.Request, args *IssueTxArgs, reply *IssueTxReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "issueTx"),
	)

	if args.Tx == "" {
		return errMissingTx
	}
	txBytes, err := hex.DecodeString(strings.TrimPrefix(args.Tx, "0x"))
	if err != nil {
		return fmt.Errorf("couldn't decode tx: %w", err)
	}
	tx, err := txs.Parse(txBytes)
	if err != nil {
		return err
	}
	if err := s.ledger.Execute(r.Context(), tx); err != nil {
		return err
	}
	reply.TxID = tx.ID()
	return nil
}

type AirdropArgs struct {
	Address string         `json:"address"`
	Amount  avajson.Uint64 `json:"amount"`
}

type EmptyReply struct{}

// Airdrop credits an account. Only available on ledgers configured to allow
// it.
func (s *Service) Airdrop(r *http.Request, args *AirdropArgs, _ *EmptyReply) error {
	s.log.Debug("API called",
		log.String("service", Name),
		log.String("method", "airdrop"),
		log.String("address", args.Address),
	)

	if !s.allowAirdrop {
		return ErrAirdropDisabled
	}
	addr, err := address.Parse(args.Address)
	if err != nil {
		return err
	}
	return s.ledger.Airdrop(r.Context(), addr, uint64(args.Amount))
}
