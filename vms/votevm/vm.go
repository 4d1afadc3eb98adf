// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package votevm implements the vote VM: a ledger whose only program counts
// votes for named subjects.
package votevm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/luxfi/utils/json"
	"go.uber.org/zap"

	"github.com/luxfi/votevm/vms/votevm/address"
	"github.com/luxfi/votevm/vms/votevm/api"
	"github.com/luxfi/votevm/vms/votevm/config"
	"github.com/luxfi/votevm/vms/votevm/genesis"
	"github.com/luxfi/votevm/vms/votevm/metrics"
	"github.com/luxfi/votevm/vms/votevm/program"
	"github.com/luxfi/votevm/vms/votevm/runtime"
	"github.com/luxfi/votevm/vms/votevm/state"
	"github.com/luxfi/votevm/vms/votevm/txs"

	vmcore "github.com/luxfi/votevm"
)

const (
	// Version of the vote VM
	Version = "1.0.0"

	// VMID is the unique identifier for the vote VM
	VMID = "votevm"
)

var (
	errVMShutdown     = errors.New("VM is shutting down")
	errNotInitialized = errors.New("VM is not initialized")

	// genesisKey marks a database whose genesis was applied.
	genesisKey = []byte("genesis")

	_ vmcore.VM  = (*VM)(nil)
	_ api.Ledger = (*VM)(nil)
)

// VM implements the vote Virtual Machine.
type VM struct {
	config.Config

	log     log.Logger
	db      database.Database
	program *program.Program
	runtime *runtime.Runtime

	rpcServer *rpc.Server

	stateLock sync.RWMutex
	state     vmcore.State
}

// Initialize initializes the vote VM.
func (vm *VM) Initialize(ctx context.Context, cfg *vmcore.Config) error {
	if vm.log == nil {
		vm.log = log.NewNoOpLogger()
	}
	if err := vm.SetState(ctx, vmcore.Bootstrapping); err != nil {
		return err
	}

	// Parse configuration
	if len(cfg.ConfigBytes) > 0 || vm.Config.ProgramID == "" {
		parsed, err := config.ParseConfig(cfg.ConfigBytes)
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		vm.Config = parsed
	}
	if err := vm.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	programID, err := vm.Config.ParsedProgramID()
	if err != nil {
		return err
	}

	registerer := cfg.Registerer
	if registerer == nil {
		registerer = metric.NewRegistry()
	}
	m, err := metrics.New(registerer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	vm.db = cfg.DB
	if vm.db == nil {
		vm.db = memdb.New()
	}

	vm.program = program.New(vm.log, m, program.Config{
		ProgramID:       programID,
		Domain:          []byte(vm.Config.Domain),
		RecordFunding:   vm.Config.RecordFunding,
		DeriveCacheSize: vm.Config.DeriveCacheSize,
	})
	vm.runtime, err = runtime.New(vm.log, m, vm.db, runtime.Config{
		RecentTxsSize: vm.Config.RecentTxsCacheSize,
		Parallelism:   vm.Config.Parallelism,
	}, vm.program)
	if err != nil {
		return err
	}

	if err := vm.initGenesis(cfg.GenesisBytes); err != nil {
		return fmt.Errorf("failed to initialize genesis state: %w", err)
	}

	// Initialize HTTP handlers
	if err := vm.initializeHTTPHandlers(m); err != nil {
		return fmt.Errorf("failed to initialize HTTP handlers: %w", err)
	}

	vm.log.Info("vote VM initialized",
		log.String("version", Version),
		log.Stringer("chainID", cfg.ChainID),
		log.String("programID", address.Format(programID)),
		log.Uint64("recordFunding", vm.Config.RecordFunding),
		log.Bool("allowAirdrop", vm.Config.AllowAirdrop),
	)
	return vm.SetState(ctx, vmcore.NormalOp)
}

// initGenesis funds the genesis allocations the first time [vm.db] is used.
func (vm *VM) initGenesis(genesisBytes []byte) error {
	applied, err := vm.db.Has(genesisKey)
	if err != nil || applied {
		return err
	}

	g, err := genesis.Parse(genesisBytes)
	if err != nil {
		return err
	}
	balances, err := g.Balances()
	if err != nil {
		return err
	}

	vdb := versiondb.New(vm.db)
	defer vdb.Abort()

	chain := state.New(vdb)
	for addr, balance := range balances {
		acct := state.NewAccount(addr)
		acct.Balance = balance
		if err := chain.PutAccount(acct); err != nil {
			return err
		}
	}
	if err := vdb.Put(genesisKey, nil); err != nil {
		return err
	}
	if err := vdb.Commit(); err != nil {
		return err
	}

	vm.log.Info("applied genesis",
		log.Int("numAllocations", len(balances)),
	)
	return nil
}

func (vm *VM) initializeHTTPHandlers(interceptor metric.APIInterceptor) error {
	vm.rpcServer = rpc.NewServer()
	vm.rpcServer.RegisterCodec(json.NewCodec(), "application/json")
	vm.rpcServer.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	vm.rpcServer.RegisterInterceptFunc(interceptor.InterceptRequest)
	vm.rpcServer.RegisterAfterFunc(interceptor.AfterRequest)

	service := api.NewService(vm.log, vm, vm.program.Deriver(), vm.Config.AllowAirdrop)
	return vm.rpcServer.RegisterService(service, api.Name)
}

// CreateHandlers returns HTTP handlers for the VM.
func (vm *VM) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	if vm.rpcServer == nil {
		return nil, errNotInitialized
	}
	return map[string]http.Handler{
		"/" + api.Name: vm.rpcServer,
	}, nil
}

// SetState sets the VM state.
func (vm *VM) SetState(_ context.Context, newState vmcore.State) error {
	vm.stateLock.Lock()
	defer vm.stateLock.Unlock()

	if vm.state == vmcore.Stopped {
		return errVMShutdown
	}
	if vm.log != nil {
		vm.log.Info("vote VM state transition",
			log.Stringer("from", vm.state),
			log.Stringer("to", newState),
		)
	}
	vm.state = newState
	return nil
}

// Shutdown shuts down the VM.
func (vm *VM) Shutdown(context.Context) error {
	vm.stateLock.Lock()
	defer vm.stateLock.Unlock()

	if vm.state == vmcore.Stopped {
		return nil
	}
	vm.state = vmcore.Stopped
	if vm.db == nil {
		return nil
	}
	if err := vm.db.Close(); err != nil {
		vm.log.Warn("failed to close database", zap.Error(err))
		return err
	}
	return nil
}

// Version returns the version of the VM.
func (*VM) Version(context.Context) (string, error) {
	return Version, nil
}

// ProgramID returns the address of the vote program.
func (vm *VM) ProgramID() ids.ID {
	return vm.program.ID()
}

// Deriver returns the record address deriver of the vote program.
func (vm *VM) Deriver() *address.Deriver {
	return vm.program.Deriver()
}

// Execute runs a signed transaction against the ledger.
func (vm *VM) Execute(ctx context.Context, tx *txs.Tx) error {
	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	if err := vm.checkRunning(); err != nil {
		return err
	}
	return vm.runtime.Execute(ctx, tx)
}

// ExecuteBatch runs signed transactions concurrently.
func (vm *VM) ExecuteBatch(ctx context.Context, batch []*txs.Tx) ([]error, error) {
	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	if err := vm.checkRunning(); err != nil {
		return nil, err
	}
	return vm.runtime.ExecuteBatch(ctx, batch), nil
}

// Airdrop credits an account.
func (vm *VM) Airdrop(ctx context.Context, addr ids.ID, amount uint64) error {
	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	if err := vm.checkRunning(); err != nil {
		return err
	}
	return vm.runtime.Airdrop(ctx, addr, amount)
}

// GetAccount returns the committed state of an account.
func (vm *VM) GetAccount(addr ids.ID) (*state.Account, error) {
	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	if err := vm.checkRunning(); err != nil {
		return nil, err
	}
	return vm.runtime.GetAccount(addr)
}

// checkRunning must be called with [stateLock] held.
func (vm *VM) checkRunning() error {
	switch vm.state {
	case vmcore.NormalOp:
		return nil
	case vmcore.Stopped:
		return errVMShutdown
	default:
		return errNotInitialized
	}
}
