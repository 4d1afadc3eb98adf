// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Unknown:       "Unknown",
		Bootstrapping: "Bootstrapping",
		NormalOp:      "NormalOp",
		Stopped:       "Stopped",
		State(42):     "Unknown",
	}
	for state, expected := range tests {
		require.Equal(t, expected, state.String())
	}
}
