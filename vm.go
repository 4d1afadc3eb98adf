// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vm defines the lifecycle of a vote ledger VM instance.
package vm

import (
	"context"
	"net/http"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/metric"
)

// VM defines the interface for a virtual machine
type VM interface {
	// Initialize initializes the VM with the given configuration
	Initialize(context.Context, *Config) error

	// Shutdown cleanly stops the VM
	Shutdown(context.Context) error

	// Version returns the VM version
	Version(context.Context) (string, error)

	// SetState transitions the VM to the specified state
	SetState(context.Context, State) error

	// CreateHandlers returns the HTTP handlers of the VM, keyed by the path
	// they are served under relative to the VM's endpoint.
	CreateHandlers(context.Context) (map[string]http.Handler, error)
}

// Config is everything a VM receives from the node hosting it.
type Config struct {
	ChainID   ids.ID
	NetworkID uint32
	NodeID    ids.NodeID

	// DB persists the ledger. The VM takes ownership and closes it on
	// shutdown.
	DB database.Database
	// Registerer receives the VM's metrics. Optional; when set it must be a
	// metric.Registry.
	Registerer metric.Registerer

	GenesisBytes []byte
	ConfigBytes  []byte
}
