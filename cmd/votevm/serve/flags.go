// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serve

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

const (
	ConfigFileKey  = "config-file"
	GenesisFileKey = "genesis-file"
	DataDirKey     = "data-dir"
	HTTPHostKey    = "http-host"
	HTTPPortKey    = "http-port"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(ConfigFileKey, "", "JSON file holding the VM configuration")
	flags.String(GenesisFileKey, "", "JSON file holding the genesis allocations")
	flags.String(DataDirKey, "", "Directory to persist the ledger in. The ledger is kept in memory if empty")
	flags.String(HTTPHostKey, "127.0.0.1", "Address of the HTTP server")
	flags.Uint16(HTTPPortKey, 9650, "Port of the HTTP server")
}

type Config struct {
	ConfigBytes  []byte
	GenesisBytes []byte
	DataDir      string
	HTTPHost     string
	HTTPPort     uint16
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	configFile, err := flags.GetString(ConfigFileKey)
	if err != nil {
		return nil, err
	}
	configBytes, err := readOptional(configFile)
	if err != nil {
		return nil, err
	}

	genesisFile, err := flags.GetString(GenesisFileKey)
	if err != nil {
		return nil, err
	}
	genesisBytes, err := readOptional(genesisFile)
	if err != nil {
		return nil, err
	}

	dataDir, err := flags.GetString(DataDirKey)
	if err != nil {
		return nil, err
	}

	host, err := flags.GetString(HTTPHostKey)
	if err != nil {
		return nil, err
	}

	port, err := flags.GetUint16(HTTPPortKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		ConfigBytes:  configBytes,
		GenesisBytes: genesisBytes,
		DataDir:      dataDir,
		HTTPHost:     host,
		HTTPPort:     port,
	}, nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read %s: %w", path, err)
	}
	return b, nil
}
