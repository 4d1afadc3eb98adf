// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package instruction decodes the instruction payloads accepted by the vote
// program.
//
// Wire format:
//
//	[0]      discriminator
//	[1]      name length
//	[2:2+n]  name, UTF-8
//
// Bytes following the name are ignored.
package instruction

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/luxfi/votevm/utils/wrappers"
)

var (
	ErrMalformed = errors.New("malformed instruction data")

	errEmpty               = errors.New("empty instruction")
	errUnknownDiscriminant = errors.New("unknown discriminator")
	errInvalidUTF8         = errors.New("name is not valid utf-8")
)

// Discriminator selects the operation an instruction runs.
type Discriminator byte

const (
	// VoteDiscriminator selects the vote operation.
	VoteDiscriminator Discriminator = 1
)

func (d Discriminator) String() string {
	switch d {
	case VoteDiscriminator:
		return "vote"
	default:
		return fmt.Sprintf("unknown(%d)", byte(d))
	}
}

// Instruction is a decoded instruction. The set of implementations is closed:
// one per Discriminator.
type Instruction interface {
	Discriminator() Discriminator
	// Bytes returns the wire encoding, discriminator included.
	Bytes() ([]byte, error)
}

// Vote casts one vote for Name.
type Vote struct {
	Name string
}

func (*Vote) Discriminator() Discriminator {
	return VoteDiscriminator
}

func (v *Vote) Bytes() ([]byte, error) {
	buf := make([]byte, wrappers.ByteLen+wrappers.ShortStrLen(v.Name))
	p := wrappers.NewFixedPacker(buf)
	p.PackByte(byte(VoteDiscriminator))
	p.PackShortStr(v.Name)
	if p.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, p.Err)
	}
	return buf, nil
}

// Split returns the discriminator of [data] and the payload that follows it.
// Unknown discriminators are rejected before anything else is decoded.
func Split(data []byte) (Discriminator, []byte, error) {
	if len(data) == 0 {
		return 0, nil, fmt.Errorf("%w: %w", ErrMalformed, errEmpty)
	}

	d := Discriminator(data[0])
	switch d {
	case VoteDiscriminator:
		return d, data[1:], nil
	default:
		return 0, nil, fmt.Errorf("%w: %w %d", ErrMalformed, errUnknownDiscriminant, byte(d))
	}
}

// Parse decodes [data] into the instruction selected by its first byte.
func Parse(data []byte) (Instruction, error) {
	d, payload, err := Split(data)
	if err != nil {
		return nil, err
	}

	switch d {
	case VoteDiscriminator:
		return ParseVote(payload)
	default:
		return nil, fmt.Errorf("%w: %w %d", ErrMalformed, errUnknownDiscriminant, byte(d))
	}
}

// ParseVote decodes the payload of a vote instruction, discriminator
// excluded.
func ParseVote(payload []byte) (*Vote, error) {
	p := wrappers.NewUnpacker(payload)
	name := p.UnpackShortStr()
	if p.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, p.Err)
	}
	if !utf8.Valid(name) {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, errInvalidUTF8)
	}
	return &Vote{Name: string(name)}, nil
}
