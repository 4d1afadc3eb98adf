// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	require := require.New(t)

	configFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(os.WriteFile(configFile, []byte(`{"allowAirdrop":true}`), 0o600))

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	AddFlags(flags)
	config, err := ParseFlags(flags, []string{
		"--" + ConfigFileKey, configFile,
		"--" + HTTPPortKey, "9700",
	})
	require.NoError(err)
	require.Equal([]byte(`{"allowAirdrop":true}`), config.ConfigBytes)
	require.Nil(config.GenesisBytes)
	require.Empty(config.DataDir)
	require.Equal("127.0.0.1", config.HTTPHost)
	require.Equal(uint16(9700), config.HTTPPort)
}

func TestParseFlagsMissingFile(t *testing.T) {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	AddFlags(flags)
	_, err := ParseFlags(flags, []string{
		"--" + GenesisFileKey, filepath.Join(t.TempDir(), "missing.json"),
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}
