// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackerFixedCapacity(t *testing.T) {
	require := require.New(t)

	var buf [12]byte
	p := NewFixedPacker(buf[:])
	p.PackByte(3)
	p.PackFixedBytes([]byte("abc"))
	p.PackLong(0x0102030405060708)
	require.NoError(p.Err)
	require.Equal(12, p.Offset)
	require.Equal([]byte{3, 'a', 'b', 'c', 8, 7, 6, 5, 4, 3, 2, 1}, buf[:])

	p.PackByte(0)
	require.ErrorIs(p.Err, ErrInsufficientLength)
}

func TestPackerSkipZeroes(t *testing.T) {
	require := require.New(t)

	buf := []byte{9, 9, 9, 9}
	p := NewFixedPacker(buf)
	p.PackByte(1)
	p.Skip(2)
	p.PackByte(2)
	require.NoError(p.Err)
	require.Equal([]byte{1, 0, 0, 2}, buf)
}

func TestUnpacker(t *testing.T) {
	require := require.New(t)

	p := NewUnpacker([]byte{2, 'h', 'i', 0, 1, 0, 0, 0, 0, 0, 0, 0})
	require.Equal([]byte("hi"), p.UnpackShortStr())
	p.Skip(1)
	require.Equal(uint64(1), p.UnpackLong())
	require.NoError(p.Err)
	require.Zero(p.Remaining())

	require.Zero(p.UnpackByte())
	require.ErrorIs(p.Err, ErrInsufficientLength)
}

func TestUnpackShortStrTruncated(t *testing.T) {
	p := NewUnpacker([]byte{5, 'a', 'b'})
	require.Nil(t, p.UnpackShortStr())
	require.ErrorIs(t, p.Err, ErrInsufficientLength)
}

func TestPackShortStrTooLong(t *testing.T) {
	var buf [512]byte
	p := NewFixedPacker(buf[:])
	p.PackShortStr(string(make([]byte, MaxShortStrLen+1)))
	require.ErrorIs(t, p.Err, errInvalidInput)
}

func TestErrsKeepsFirst(t *testing.T) {
	errs := Errs{}
	errs.Add(nil, ErrInsufficientLength, errInvalidInput)
	errs.Add(errNegativeOffset)
	require.ErrorIs(t, errs.Err, ErrInsufficientLength)
	require.True(t, errs.Errored())
}
