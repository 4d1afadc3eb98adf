// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package record encodes vote records into fixed size account data.
//
// Layout:
//
//	[0]             name length n
//	[1:1+n]         name
//	[1+n]           unused, zero
//	[2+n:10+n]      votes, little-endian uint64
//	[10+n:Size]     zero padding
package record

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/luxfi/votevm/utils/wrappers"
)

const (
	// Size is the length of the account data that backs a record.
	Size = 64

	gapLen = wrappers.ByteLen

	// MaxNameLen is the longest name whose encoding fits into Size bytes.
	MaxNameLen = Size - wrappers.ByteLen - gapLen - wrappers.LongLen
)

var (
	ErrMalformedAccountData = errors.New("malformed account data")
	ErrNameTooLong          = errors.New("name too long")

	errInvalidSize = errors.New("invalid data size")
	errInvalidUTF8 = errors.New("name is not valid utf-8")
)

// VoteRecord is the persistent tally of one subject.
type VoteRecord struct {
	Name  string
	Votes uint64
}

// Encode returns the fixed size encoding of [r].
func Encode(r VoteRecord) ([Size]byte, error) {
	var data [Size]byte
	if len(r.Name) > MaxNameLen {
		return data, fmt.Errorf("%w: %d > %d bytes", ErrNameTooLong, len(r.Name), MaxNameLen)
	}

	p := wrappers.NewFixedPacker(data[:])
	p.PackShortStr(r.Name)
	p.Skip(gapLen)
	p.PackLong(r.Votes)
	return data, p.Err
}

// Decode parses account data previously written by Encode.
func Decode(data []byte) (VoteRecord, error) {
	if len(data) != Size {
		return VoteRecord{}, fmt.Errorf("%w: %w %d", ErrMalformedAccountData, errInvalidSize, len(data))
	}

	p := wrappers.NewUnpacker(data)
	name := p.UnpackShortStr()
	p.Skip(gapLen)
	votes := p.UnpackLong()
	if p.Err != nil {
		return VoteRecord{}, fmt.Errorf("%w: %w", ErrMalformedAccountData, p.Err)
	}
	if !utf8.Valid(name) {
		return VoteRecord{}, fmt.Errorf("%w: %w", ErrMalformedAccountData, errInvalidUTF8)
	}
	return VoteRecord{
		Name:  string(name),
		Votes: votes,
	}, nil
}
