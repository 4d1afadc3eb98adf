// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package program implements the vote program: a single instruction that
// counts one vote for a named subject.
//
// Every subject's tally lives in its own record account whose address is
// derived from the subject name. The first vote creates the record, funded by
// the voter; later votes increment it in place.
package program

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"go.uber.org/zap"

	"github.com/luxfi/votevm/utils/units"
	"github.com/luxfi/votevm/vms/votevm/address"
	"github.com/luxfi/votevm/vms/votevm/instruction"
	"github.com/luxfi/votevm/vms/votevm/metrics"
	"github.com/luxfi/votevm/vms/votevm/record"
	"github.com/luxfi/votevm/vms/votevm/runtime"
	"github.com/luxfi/votevm/vms/votevm/state"

	safemath "github.com/luxfi/votevm/utils/math"
)

// NumAccounts is the number of accounts a vote instruction takes: the voter,
// the record slot and the system program.
const NumAccounts = 3

var (
	ErrMalformedInstruction = instruction.ErrMalformed
	ErrMalformedAccountData = record.ErrMalformedAccountData
	ErrMissingAccounts      = errors.New("missing accounts")
	ErrUnauthorizedCaller   = errors.New("unauthorized caller")
	ErrAddressMismatch      = errors.New("record address mismatch")
	ErrVoteCountOverflow    = errors.New("vote count overflow")

	errNotOwned = errors.New("record slot not owned by the vote program")

	_ runtime.Program = (*Program)(nil)
)

// Config parameterizes a vote program.
type Config struct {
	ProgramID ids.ID
	// Domain is the seed that separates this program's records from other
	// addresses derived from the same names. Defaults to the program ID.
	Domain []byte
	// RecordFunding is moved from the voter into every new record.
	RecordFunding uint64
	// DeriveCacheSize bounds the memoized name to address derivations.
	DeriveCacheSize int
}

// Program is the vote program.
type Program struct {
	id      ids.ID
	funding uint64
	deriver *address.Deriver
	log     log.Logger
	metrics metrics.Metrics
}

// New returns the vote program described by [config].
func New(logger log.Logger, m metrics.Metrics, config Config) *Program {
	if config.RecordFunding == 0 {
		config.RecordFunding = units.RecordFunding
	}
	return &Program{
		id:      config.ProgramID,
		funding: config.RecordFunding,
		deriver: address.NewDeriver(config.ProgramID, config.Domain, config.DeriveCacheSize),
		log:     logger,
		metrics: m,
	}
}

func (p *Program) ID() ids.ID {
	return p.id
}

// Deriver returns the record address deriver of this program.
func (p *Program) Deriver() *address.Deriver {
	return p.deriver
}

// Process executes one vote instruction.
func (p *Program) Process(env runtime.Env, accounts []*runtime.AccountInfo, data []byte) error {
	if err := p.process(env, accounts, data); err != nil {
		p.metrics.MarkVoteFailed(reason(err))
		p.log.Debug("vote failed",
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (p *Program) process(env runtime.Env, accounts []*runtime.AccountInfo, data []byte) error {
	d, payload, err := instruction.Split(data)
	if err != nil {
		return err
	}

	switch d {
	case instruction.VoteDiscriminator:
		return p.vote(env, accounts, payload)
	default:
		return fmt.Errorf("%w: unhandled %s", ErrMalformedInstruction, d)
	}
}

// vote validates the accounts before decoding [payload], so that a call with
// the wrong accounts fails the same way whatever name it carries.
func (p *Program) vote(env runtime.Env, accounts []*runtime.AccountInfo, payload []byte) error {
	if len(accounts) != NumAccounts {
		return fmt.Errorf("%w: expected %d, got %d", ErrMissingAccounts, NumAccounts, len(accounts))
	}
	caller, slot, system := accounts[0], accounts[1], accounts[2]
	if !caller.IsSigner {
		return fmt.Errorf("%w: %s", ErrUnauthorizedCaller, caller.Address)
	}
	if system.Address != state.SystemProgramID {
		return fmt.Errorf("%w: system program expected, got %s", ErrMissingAccounts, system.Address)
	}

	v, err := instruction.ParseVote(payload)
	if err != nil {
		return err
	}

	name := []byte(v.Name)
	derived, err := p.deriver.Derive(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedInstruction, err)
	}
	if derived.Address != slot.Address {
		return fmt.Errorf("%w: %q derives %s, got %s", ErrAddressMismatch, v.Name, derived.Address, slot.Address)
	}

	if slot.Balance == 0 && len(slot.Data) == 0 {
		return p.create(env, caller, slot, v.Name, derived.Seeds(name, p.deriver.Domain()))
	}
	return p.increment(env, slot)
}

func (p *Program) create(env runtime.Env, caller, slot *runtime.AccountInfo, name string, seeds [][]byte) error {
	data, err := record.Encode(record.VoteRecord{
		Name:  name,
		Votes: 1,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedInstruction, err)
	}

	if err := env.CreateAccount(caller, slot, p.funding, record.Size, p.id, seeds); err != nil {
		return err
	}
	copy(slot.Data, data[:])

	env.OnCommit(p.metrics.MarkRecordCreated)
	p.log.Debug("created vote record",
		log.String("name", name),
		log.Stringer("address", slot.Address),
		log.Stringer("voter", caller.Address),
	)
	return nil
}

func (p *Program) increment(env runtime.Env, slot *runtime.AccountInfo) error {
	if slot.Owner != p.id {
		return fmt.Errorf("%w: %w", ErrMalformedAccountData, errNotOwned)
	}

	r, err := record.Decode(slot.Data)
	if err != nil {
		return err
	}
	r.Votes, err = safemath.Add(r.Votes, 1)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrVoteCountOverflow, r.Name)
	}

	data, err := record.Encode(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedAccountData, err)
	}
	copy(slot.Data, data[:])

	env.OnCommit(p.metrics.MarkVoteCounted)
	p.log.Debug("counted vote",
		log.String("name", r.Name),
		log.Uint64("votes", r.Votes),
	)
	return nil
}

// reason returns the metrics label of a failed vote.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedInstruction):
		return "malformed_instruction"
	case errors.Is(err, ErrMissingAccounts):
		return "missing_accounts"
	case errors.Is(err, ErrUnauthorizedCaller):
		return "unauthorized_caller"
	case errors.Is(err, ErrAddressMismatch):
		return "address_mismatch"
	case errors.Is(err, ErrMalformedAccountData):
		return "malformed_account_data"
	case errors.Is(err, ErrVoteCountOverflow):
		return "vote_count_overflow"
	default:
		return "other"
	}
}
