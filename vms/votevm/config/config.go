// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/votevm/utils/units"
	"github.com/luxfi/votevm/vms/votevm/address"
)

// DefaultProgramID is the address the vote program is deployed at unless
// configured otherwise.
const DefaultProgramID = "22222222222222222222222222222222222222222222"

var (
	ErrInvalidProgramID     = errors.New("invalid program ID")
	ErrInvalidDomain        = errors.New("invalid domain")
	ErrInvalidRecordFunding = errors.New("invalid record funding")
	ErrInvalidCacheSize     = errors.New("invalid cache size")
	ErrInvalidParallelism   = errors.New("invalid parallelism")
)

// Config holds configuration for the vote VM.
type Config struct {
	// Program settings
	ProgramID     string `json:"programID"`     // base58
	Domain        string `json:"domain"`        // Default: program ID bytes
	RecordFunding uint64 `json:"recordFunding"` // Default: 0.5 Lux

	// Caches
	DeriveCacheSize    int `json:"deriveCacheSize"`
	RecentTxsCacheSize int `json:"recentTxsCacheSize"`

	// Execution
	Parallelism int `json:"parallelism"`

	// API
	AllowAirdrop bool `json:"allowAirdrop"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() Config {
	return Config{
		ProgramID:          DefaultProgramID,
		RecordFunding:      units.RecordFunding,
		DeriveCacheSize:    1024,
		RecentTxsCacheSize: 4096,
		Parallelism:        8,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := c.ParsedProgramID(); err != nil {
		return err
	}
	if len(c.Domain) > address.MaxSeedLen {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidDomain, len(c.Domain), address.MaxSeedLen)
	}
	if c.RecordFunding == 0 {
		return ErrInvalidRecordFunding
	}
	if c.DeriveCacheSize <= 0 || c.RecentTxsCacheSize <= 0 {
		return ErrInvalidCacheSize
	}
	if c.Parallelism <= 0 {
		return ErrInvalidParallelism
	}
	return nil
}

// ParsedProgramID decodes ProgramID.
func (c *Config) ParsedProgramID() (ids.ID, error) {
	id, err := address.Parse(c.ProgramID)
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: %w", ErrInvalidProgramID, err)
	}
	if id == ids.Empty {
		return ids.Empty, fmt.Errorf("%w: reserved for the system program", ErrInvalidProgramID)
	}
	return id, nil
}

// ParseConfig parses configuration from JSON bytes.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(data) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
