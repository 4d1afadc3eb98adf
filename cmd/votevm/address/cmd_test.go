// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressCommand(t *testing.T) {
	require := require.New(t)

	cmd := Command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"onkel.sol"})
	require.NoError(cmd.Execute())
	require.Equal("7hUEMh6pwQWVrTwn3nGvkyL8Kkb4BJJVXkt7PLB5ksa7 253\n", out.String())
}

func TestAddressCommandRejectsBadProgramID(t *testing.T) {
	cmd := Command()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--program-id", "0OIl", "onkel.sol"})
	require.Error(t, cmd.Execute())
}
