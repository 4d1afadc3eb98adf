// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package runtime executes transactions against ledger accounts.
//
// Each transaction runs atomically: its writable accounts are locked for the
// whole execution, every instruction operates on a versioned view of the
// database, and the view is committed only if all instructions succeed.
package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/cache/lru"
	"github.com/luxfi/database"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/votevm/vms/votevm/metrics"
	"github.com/luxfi/votevm/vms/votevm/state"
	"github.com/luxfi/votevm/vms/votevm/txs"

	safemath "github.com/luxfi/votevm/utils/math"
)

const (
	DefaultRecentTxsSize = 4096
	DefaultParallelism   = 8
)

var (
	ErrDuplicateTx            = errors.New("duplicate transaction")
	ErrInvalidNonce           = errors.New("invalid nonce")
	ErrNonceModified          = errors.New("account nonce modified")
	ErrUnknownProgram         = errors.New("unknown program")
	ErrDuplicateProgram       = errors.New("duplicate program")
	ErrReadonlyModified       = errors.New("read-only account modified")
	ErrExternalDataModified   = errors.New("data of an account not owned by the program modified")
	ErrExternalBalanceDebited = errors.New("balance of an account not owned by the program debited")
	ErrOwnerModified          = errors.New("owner of an account not owned by the program modified")
	ErrExecutableModified     = errors.New("executable flag modified")
	ErrUnbalancedInstruction  = errors.New("instruction changed the total balance")
)

// Config tunes the runtime.
type Config struct {
	// RecentTxsSize is how many executed tx IDs are remembered for duplicate
	// detection.
	RecentTxsSize int
	// Parallelism bounds the number of transactions ExecuteBatch runs at once.
	Parallelism int
}

// Runtime executes transactions.
type Runtime struct {
	log      log.Logger
	metrics  metrics.Metrics
	db       database.Database
	programs map[ids.ID]Program

	parallelism int
	locks       *addressLocks

	recentLock sync.Mutex
	recentTxs  *lru.Cache[ids.ID, struct{}]
}

// New returns a runtime over [db] that dispatches to [programs].
func New(
	logger log.Logger,
	m metrics.Metrics,
	db database.Database,
	config Config,
	programs ...Program,
) (*Runtime, error) {
	if config.RecentTxsSize <= 0 {
		config.RecentTxsSize = DefaultRecentTxsSize
	}
	if config.Parallelism <= 0 {
		config.Parallelism = DefaultParallelism
	}

	r := &Runtime{
		log:         logger,
		metrics:     m,
		db:          db,
		programs:    make(map[ids.ID]Program, len(programs)),
		parallelism: config.Parallelism,
		locks:       newAddressLocks(),
		recentTxs:   lru.NewCache[ids.ID, struct{}](config.RecentTxsSize),
	}
	for _, p := range programs {
		id := p.ID()
		if _, ok := r.programs[id]; ok || id == state.SystemProgramID {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProgram, id)
		}
		r.programs[id] = p
	}
	return r, nil
}

// GetAccount returns the committed state of [addr].
func (r *Runtime) GetAccount(addr ids.ID) (*state.Account, error) {
	return state.New(r.db).GetAccount(addr)
}

// Airdrop credits [amount] to [addr] out of thin air. It exists to fund
// accounts on development and test ledgers.
func (r *Runtime) Airdrop(ctx context.Context, addr ids.ID, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock := r.locks.Lock([]ids.ID{addr})
	defer unlock()

	vdb := versiondb.New(r.db)
	defer vdb.Abort()

	chain := state.New(vdb)
	acct, err := chain.GetAccount(addr)
	if err != nil {
		return err
	}
	acct.Balance, err = safemath.Add(acct.Balance, amount)
	if err != nil {
		return fmt.Errorf("couldn't credit %s: %w", addr, err)
	}
	if err := chain.PutAccount(acct); err != nil {
		return err
	}
	return vdb.Commit()
}

// Execute runs [tx]. Either all of its effects are committed or none are.
func (r *Runtime) Execute(ctx context.Context, tx *txs.Tx) error {
	txID := tx.ID()
	if err := r.execute(ctx, tx); err != nil {
		r.metrics.MarkTxRejected()
		r.log.Debug("transaction rejected",
			log.Stringer("txID", txID),
			zap.Error(err),
		)
		return err
	}

	r.metrics.MarkTxAccepted()
	r.log.Debug("transaction accepted",
		log.Stringer("txID", txID),
		log.Int("numInstructions", len(tx.Message.Instructions)),
	)
	return nil
}

// ExecuteBatch runs [batch] concurrently and returns one result per tx.
// Transactions that write to a common account are serialized; the order in
// which they apply is unspecified.
func (r *Runtime) ExecuteBatch(ctx context.Context, batch []*txs.Tx) []error {
	errs := make([]error, len(batch))

	var eg errgroup.Group
	eg.SetLimit(r.parallelism)
	for i, tx := range batch {
		eg.Go(func() error {
			errs[i] = r.Execute(ctx, tx)
			return nil
		})
	}
	_ = eg.Wait()
	return errs
}

func (r *Runtime) execute(ctx context.Context, tx *txs.Tx) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	signers, err := tx.Verify()
	if err != nil {
		return err
	}

	txID := tx.ID()
	if err := r.claim(txID); err != nil {
		return err
	}

	if err := r.apply(tx, signers); err != nil {
		r.release(txID)
		return err
	}
	return nil
}

// claim marks [txID] as executed, failing if it already was.
func (r *Runtime) claim(txID ids.ID) error {
	r.recentLock.Lock()
	defer r.recentLock.Unlock()

	if _, ok := r.recentTxs.Get(txID); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTx, txID)
	}
	r.recentTxs.Put(txID, struct{}{})
	return nil
}

// release forgets [txID] so that a tx that failed may be retried.
func (r *Runtime) release(txID ids.ID) {
	r.recentLock.Lock()
	defer r.recentLock.Unlock()

	r.recentTxs.Evict(txID)
}

func (r *Runtime) apply(tx *txs.Tx, signers set.Set[ids.ID]) error {
	writable := tx.Message.Writable()
	unlock := r.locks.Lock(writable.List())
	defer unlock()

	vdb := versiondb.New(r.db)
	defer vdb.Abort()

	chain := state.New(vdb)
	loaded := make(map[ids.ID]*state.Account)
	load := func(addr ids.ID) (*state.Account, error) {
		if acct, ok := loaded[addr]; ok {
			return acct, nil
		}
		acct, err := chain.GetAccount(addr)
		if err != nil {
			return nil, err
		}
		loaded[addr] = acct
		return acct, nil
	}

	// The payer is always loaded so that its nonce is written back.
	payer, err := load(tx.Message.Payer)
	if err != nil {
		return err
	}
	if payer.Nonce != tx.Message.Nonce {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidNonce, payer.Nonce, tx.Message.Nonce)
	}
	payer.Nonce, err = safemath.Add(payer.Nonce, 1)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNonce, err)
	}

	var onCommit []func()

	for i, inst := range tx.Message.Instructions {
		program, ok := r.programs[inst.ProgramID]
		if !ok {
			return fmt.Errorf("instruction %d: %w: %s", i, ErrUnknownProgram, inst.ProgramID)
		}

		infos := make([]*AccountInfo, len(inst.Accounts))
		env := &invokeEnv{
			programID: inst.ProgramID,
			baseline:  make(map[ids.ID]*state.Account, len(inst.Accounts)),
			onCommit:  &onCommit,
		}
		for j, meta := range inst.Accounts {
			acct, err := load(meta.Address)
			if err != nil {
				return err
			}
			infos[j] = &AccountInfo{
				Account:    acct,
				IsSigner:   signers.Contains(meta.Address),
				IsWritable: writable.Contains(meta.Address),
			}
			if _, ok := env.baseline[meta.Address]; !ok {
				env.baseline[meta.Address] = acct.Clone()
			}
		}

		if err := program.Process(env, infos, inst.Data); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
		if err := verifyChanges(inst.ProgramID, env.baseline, infos); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}

	for _, addr := range writable.List() {
		acct, ok := loaded[addr]
		if !ok {
			continue
		}
		if err := chain.PutAccount(acct); err != nil {
			return err
		}
	}
	if err := vdb.Commit(); err != nil {
		return err
	}
	for _, f := range onCommit {
		f()
	}
	return nil
}

// verifyChanges enforces the rules every instruction must obey. Read-only
// accounts stay untouched, only the owning program may change data, debit
// balance or reassign an account, nonces and the executable flag never
// change, and the sum of balances is preserved.
func verifyChanges(programID ids.ID, baseline map[ids.ID]*state.Account, infos []*AccountInfo) error {
	var (
		before, after uint64
		checked       = set.NewSet[ids.ID](len(infos))
	)
	for _, info := range infos {
		if checked.Contains(info.Address) {
			continue
		}
		checked.Add(info.Address)

		pre := baseline[info.Address]
		post := info.Account
		if !pre.Equal(post) {
			ownedByProgram := pre.Owner == programID
			switch {
			case !info.IsWritable:
				return fmt.Errorf("%w: %s", ErrReadonlyModified, info.Address)
			case pre.Executable != post.Executable:
				return fmt.Errorf("%w: %s", ErrExecutableModified, info.Address)
			case pre.Nonce != post.Nonce:
				return fmt.Errorf("%w: %s", ErrNonceModified, info.Address)
			case ownedByProgram:
			case pre.Owner != post.Owner:
				return fmt.Errorf("%w: %s", ErrOwnerModified, info.Address)
			case !bytes.Equal(pre.Data, post.Data):
				return fmt.Errorf("%w: %s", ErrExternalDataModified, info.Address)
			case post.Balance < pre.Balance:
				return fmt.Errorf("%w: %s", ErrExternalBalanceDebited, info.Address)
			}
		}

		var err error
		before, err = safemath.Add(before, pre.Balance)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnbalancedInstruction, err)
		}
		after, err = safemath.Add(after, post.Balance)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnbalancedInstruction, err)
		}
	}
	if before != after {
		return fmt.Errorf("%w: %d before, %d after", ErrUnbalancedInstruction, before, after)
	}
	return nil
}
