// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package json

import (
	stdjson "encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64(t *testing.T) {
	require := require.New(t)

	b, err := stdjson.Marshal(Uint64(500000000))
	require.NoError(err)
	require.JSONEq(`"500000000"`, string(b))

	var u Uint64
	require.NoError(stdjson.Unmarshal([]byte(`"42"`), &u))
	require.Equal(Uint64(42), u)
	require.NoError(stdjson.Unmarshal([]byte(`7`), &u))
	require.Equal(Uint64(7), u)
	require.Error(stdjson.Unmarshal([]byte(`"-1"`), &u))
}

func TestUint8(t *testing.T) {
	require := require.New(t)

	var u Uint8
	require.NoError(stdjson.Unmarshal([]byte(`"255"`), &u))
	require.Equal(Uint8(255), u)
	require.Error(stdjson.Unmarshal([]byte(`"256"`), &u))
}
