// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	// MaxShortStrLen is the longest string that fits behind a one byte length
	// prefix.
	MaxShortStrLen = math.MaxUint8
)

var (
	ErrInsufficientLength = errors.New("packer has insufficient length for input")
	errNegativeOffset     = errors.New("negative offset")
	errInvalidInput       = errors.New("input does not match expected format")
)

// ShortStrLen returns the packed length of a string with a one byte length
// prefix.
func ShortStrLen(str string) int {
	return ByteLen + len(str)
}

// Packer packs and unpacks a fixed capacity byte array from/to standard
// values. Integers are little-endian.
//
// A Packer never grows past MaxSize. Once an error is recorded every
// subsequent call is a no-op, so a sequence of calls can be checked once at the
// end.
type Packer struct {
	Errs

	// The largest allowed size of expanding the byte array
	MaxSize int
	// The current byte array
	Bytes []byte
	// The offset that is being written to in the byte array
	Offset int
}

// NewFixedPacker returns a packer that writes into buf without ever
// reallocating it.
func NewFixedPacker(buf []byte) *Packer {
	return &Packer{
		MaxSize: len(buf),
		Bytes:   buf[:0],
	}
}

// NewUnpacker returns a packer that reads from buf.
func NewUnpacker(buf []byte) *Packer {
	return &Packer{
		MaxSize: len(buf),
		Bytes:   buf,
	}
}

// PackByte appends a byte to the byte array
func (p *Packer) PackByte(val byte) {
	p.expand(ByteLen)
	if p.Errored() {
		return
	}

	p.Bytes[p.Offset] = val
	p.Offset++
}

// UnpackByte unpacks a byte from the byte array
func (p *Packer) UnpackByte() byte {
	p.checkSpace(ByteLen)
	if p.Errored() {
		return 0
	}

	val := p.Bytes[p.Offset]
	p.Offset += ByteLen
	return val
}

// PackLong appends a little-endian long to the byte array
func (p *Packer) PackLong(val uint64) {
	p.expand(LongLen)
	if p.Errored() {
		return
	}

	binary.LittleEndian.PutUint64(p.Bytes[p.Offset:], val)
	p.Offset += LongLen
}

// UnpackLong unpacks a little-endian long from the byte array
func (p *Packer) UnpackLong() uint64 {
	p.checkSpace(LongLen)
	if p.Errored() {
		return 0
	}

	val := binary.LittleEndian.Uint64(p.Bytes[p.Offset:])
	p.Offset += LongLen
	return val
}

// PackFixedBytes appends a byte slice with no length descriptor to the byte array
func (p *Packer) PackFixedBytes(bytes []byte) {
	p.expand(len(bytes))
	if p.Errored() {
		return
	}

	copy(p.Bytes[p.Offset:], bytes)
	p.Offset += len(bytes)
}

// UnpackFixedBytes unpacks a byte slice with no length descriptor from the
// byte array. The returned slice aliases the packer's buffer.
func (p *Packer) UnpackFixedBytes(size int) []byte {
	p.checkSpace(size)
	if p.Errored() {
		return nil
	}

	bytes := p.Bytes[p.Offset : p.Offset+size]
	p.Offset += size
	return bytes
}

// PackShortStr appends a string behind a one byte length prefix
func (p *Packer) PackShortStr(str string) {
	if len(str) > MaxShortStrLen {
		p.Add(errInvalidInput)
		return
	}
	p.PackByte(byte(len(str)))
	p.PackFixedBytes([]byte(str))
}

// UnpackShortStr unpacks the raw bytes of a string stored behind a one byte
// length prefix.
func (p *Packer) UnpackShortStr() []byte {
	size := p.UnpackByte()
	return p.UnpackFixedBytes(int(size))
}

// Skip advances the offset by [bytes]. When packing the skipped bytes are
// zeroed.
func (p *Packer) Skip(bytes int) {
	if bytes < 0 {
		p.Add(errInvalidInput)
		return
	}
	if p.Offset+bytes <= len(p.Bytes) {
		p.checkSpace(bytes)
		if !p.Errored() {
			p.Offset += bytes
		}
		return
	}
	p.expand(bytes)
	if p.Errored() {
		return
	}
	clear(p.Bytes[p.Offset : p.Offset+bytes])
	p.Offset += bytes
}

// Remaining returns the number of unread bytes.
func (p *Packer) Remaining() int {
	return max(len(p.Bytes)-p.Offset, 0)
}

// checkSpace requires that there is at least bytes of write space left in the
// byte array. If this is not true, an error is added to the packer.
func (p *Packer) checkSpace(bytes int) {
	switch {
	case p.Offset < 0:
		p.Add(errNegativeOffset)
	case bytes < 0:
		p.Add(errInvalidInput)
	case len(p.Bytes)-p.Offset < bytes:
		p.Add(ErrInsufficientLength)
	}
}

// expand ensures that there is bytes bytes left of space in the byte slice.
// If this is not allowed due to the maximum size, an error is added to the packer.
func (p *Packer) expand(bytes int) {
	neededSize := bytes + p.Offset
	switch {
	case p.Errored():
		return
	case neededSize <= len(p.Bytes):
		return
	case neededSize > p.MaxSize:
		p.Err = ErrInsufficientLength
		return
	case neededSize <= cap(p.Bytes):
		p.Bytes = p.Bytes[:neededSize]
		return
	default:
		p.Bytes = append(p.Bytes[:cap(p.Bytes)], make([]byte, neededSize-cap(p.Bytes))...)
	}
}
