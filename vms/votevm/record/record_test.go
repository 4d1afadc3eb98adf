// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package record

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/votevm/utils/wrappers"
)

func TestEncodeLayout(t *testing.T) {
	require := require.New(t)

	data, err := Encode(VoteRecord{Name: "bob", Votes: 0x0102})
	require.NoError(err)

	expected := [Size]byte{3, 'b', 'o', 'b', 0, 0x02, 0x01}
	require.Equal(expected, data)
}

func TestRoundTrip(t *testing.T) {
	tests := []VoteRecord{
		{Name: "", Votes: 0},
		{Name: "onkel.sol", Votes: 1},
		{Name: "onkel.sol", Votes: 2},
		{Name: "\U0001F5F3 ballot", Votes: 1 << 40},
		{Name: strings.Repeat("m", MaxNameLen), Votes: math.MaxUint64},
	}
	for _, r := range tests {
		t.Run(r.Name, func(t *testing.T) {
			require := require.New(t)

			data, err := Encode(r)
			require.NoError(err)

			decoded, err := Decode(data[:])
			require.NoError(err)
			require.Equal(r, decoded)
		})
	}
}

func TestEncodeNameTooLong(t *testing.T) {
	_, err := Encode(VoteRecord{Name: strings.Repeat("m", MaxNameLen+1)})
	require.ErrorIs(t, err, ErrNameTooLong)
}

func TestDecodeErrors(t *testing.T) {
	overlong := make([]byte, Size)
	overlong[0] = MaxNameLen + 1

	invalidUTF8 := make([]byte, Size)
	invalidUTF8[0] = 2
	invalidUTF8[1] = 0xc3
	invalidUTF8[2] = 0x28

	maxLen := make([]byte, Size)
	maxLen[0] = 0xff

	tests := []struct {
		name        string
		data        []byte
		expectedErr error
	}{
		{
			name:        "empty",
			data:        nil,
			expectedErr: errInvalidSize,
		},
		{
			name:        "short",
			data:        make([]byte, Size-1),
			expectedErr: errInvalidSize,
		},
		{
			name:        "long",
			data:        make([]byte, Size+1),
			expectedErr: errInvalidSize,
		},
		{
			name:        "votes out of bounds",
			data:        overlong,
			expectedErr: wrappers.ErrInsufficientLength,
		},
		{
			name:        "name out of bounds",
			data:        maxLen,
			expectedErr: wrappers.ErrInsufficientLength,
		},
		{
			name:        "invalid utf-8",
			data:        invalidUTF8,
			expectedErr: errInvalidUTF8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.ErrorIs(t, err, ErrMalformedAccountData)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestDecodeZeroedData(t *testing.T) {
	r, err := Decode(make([]byte, Size))
	require.NoError(t, err)
	require.Equal(t, VoteRecord{}, r)
}
