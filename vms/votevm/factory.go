// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package votevm

import (
	"github.com/luxfi/log"

	"github.com/luxfi/votevm/vms/votevm/config"

	vmcore "github.com/luxfi/votevm"
)

var _ vmcore.Factory = (*Factory)(nil)

// Factory creates vote VM instances.
type Factory struct {
	config.Config
}

// New creates a new vote VM instance.
func (f *Factory) New(logger log.Logger) (interface{}, error) {
	// Set default configuration if not provided
	if f.Config.ProgramID == "" {
		f.Config = config.DefaultConfig()
	}

	if err := f.Config.Validate(); err != nil {
		return nil, err
	}

	return &VM{
		Config: f.Config,
		log:    logger,
	}, nil
}

// NewFactory creates a new vote VM factory with the given configuration.
func NewFactory(cfg config.Config) *Factory {
	return &Factory{Config: cfg}
}

// NewDefaultFactory creates a new vote VM factory with default configuration.
func NewDefaultFactory() *Factory {
	return &Factory{Config: config.DefaultConfig()}
}
