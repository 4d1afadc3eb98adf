// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the transactions executed by the vote VM runtime.
//
// A transaction is a Message signed by every account the message marks as a
// signer. Account addresses of external keys are raw ed25519 public keys.
package txs

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
	"github.com/minio/sha256-simd"
)

var (
	ErrNoPayer             = errors.New("missing payer")
	ErrNoInstructions      = errors.New("no instructions")
	ErrSignatureCount      = errors.New("wrong number of signatures")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrMissingSigningKey   = errors.New("missing signing key")
	ErrTooManyInstructions = errors.New("too many instructions")
)

// MaxInstructions bounds the instructions of a single message.
const MaxInstructions = 64

// AccountMeta names an account an instruction touches and how it touches it.
type AccountMeta struct {
	Address    ids.ID `serialize:"true" json:"address"`
	IsSigner   bool   `serialize:"true" json:"isSigner"`
	IsWritable bool   `serialize:"true" json:"isWritable"`
}

// Instruction invokes ProgramID with Accounts and opaque Data.
type Instruction struct {
	ProgramID ids.ID        `serialize:"true" json:"programID"`
	Accounts  []AccountMeta `serialize:"true" json:"accounts"`
	Data      []byte        `serialize:"true" json:"data"`
}

// Message is the signed portion of a transaction. The payer is always a
// writable signer. Nonce must equal the payer's account nonce, which every
// executed transaction increments.
type Message struct {
	Payer        ids.ID        `serialize:"true" json:"payer"`
	Nonce        uint64        `serialize:"true" json:"nonce"`
	Instructions []Instruction `serialize:"true" json:"instructions"`
}

// Bytes returns the canonical encoding of the message. This is what signers
// sign.
func (m *Message) Bytes() ([]byte, error) {
	return Codec.Marshal(CodecVersion, m)
}

// Signers returns every address that must sign the message: the payer first,
// followed by instruction signers in order of first appearance.
func (m *Message) Signers() []ids.ID {
	signers := []ids.ID{m.Payer}
	seen := set.Of(m.Payer)
	for _, inst := range m.Instructions {
		for _, meta := range inst.Accounts {
			if !meta.IsSigner || seen.Contains(meta.Address) {
				continue
			}
			seen.Add(meta.Address)
			signers = append(signers, meta.Address)
		}
	}
	return signers
}

// Writable returns the set of addresses any instruction may modify, payer
// included.
func (m *Message) Writable() set.Set[ids.ID] {
	writable := set.Of(m.Payer)
	for _, inst := range m.Instructions {
		for _, meta := range inst.Accounts {
			if meta.IsWritable {
				writable.Add(meta.Address)
			}
		}
	}
	return writable
}

// SyntacticVerify checks the message shape without touching state.
func (m *Message) SyntacticVerify() error {
	switch {
	case m.Payer == ids.Empty:
		return ErrNoPayer
	case len(m.Instructions) == 0:
		return ErrNoInstructions
	case len(m.Instructions) > MaxInstructions:
		return fmt.Errorf("%w: %d > %d", ErrTooManyInstructions, len(m.Instructions), MaxInstructions)
	default:
		return nil
	}
}

// Tx is a message together with one signature per signer, in the order
// returned by Message.Signers.
type Tx struct {
	Message    Message                       `serialize:"true" json:"message"`
	Signatures [][ed25519.SignatureSize]byte `serialize:"true" json:"signatures"`

	id    ids.ID
	bytes []byte
}

// Sign signs [msg] with [keys]. Every signer of the message needs a key; extra
// keys are ignored.
func Sign(msg Message, keys ...ed25519.PrivateKey) (*Tx, error) {
	msgBytes, err := msg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal message: %w", err)
	}

	byAddress := make(map[ids.ID]ed25519.PrivateKey, len(keys))
	for _, key := range keys {
		var addr ids.ID
		copy(addr[:], key.Public().(ed25519.PublicKey))
		byAddress[addr] = key
	}

	signers := msg.Signers()
	tx := &Tx{
		Message:    msg,
		Signatures: make([][ed25519.SignatureSize]byte, len(signers)),
	}
	for i, signer := range signers {
		key, ok := byAddress[signer]
		if !ok {
			return nil, fmt.Errorf("%w for %s", ErrMissingSigningKey, signer)
		}
		copy(tx.Signatures[i][:], ed25519.Sign(key, msgBytes))
	}
	return tx, tx.initialize()
}

// Parse decodes a signed transaction.
func Parse(b []byte) (*Tx, error) {
	tx := &Tx{}
	if _, err := Codec.Unmarshal(b, tx); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal tx: %w", err)
	}
	tx.bytes = b
	tx.id = ids.ID(sha256.Sum256(b))
	return tx, nil
}

func (tx *Tx) initialize() error {
	b, err := Codec.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal tx: %w", err)
	}
	tx.bytes = b
	tx.id = ids.ID(sha256.Sum256(b))
	return nil
}

// ID returns the hash of the signed bytes.
func (tx *Tx) ID() ids.ID {
	return tx.id
}

// Bytes returns the signed bytes.
func (tx *Tx) Bytes() []byte {
	return tx.bytes
}

// Verify checks the message shape and every signature. On success it returns
// the set of verified signers.
func (tx *Tx) Verify() (set.Set[ids.ID], error) {
	if err := tx.Message.SyntacticVerify(); err != nil {
		return nil, err
	}

	signers := tx.Message.Signers()
	if len(signers) != len(tx.Signatures) {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrSignatureCount, len(signers), len(tx.Signatures))
	}

	msgBytes, err := tx.Message.Bytes()
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal message: %w", err)
	}

	verified := set.NewSet[ids.ID](len(signers))
	for i, signer := range signers {
		if !ed25519.Verify(ed25519.PublicKey(signer[:]), msgBytes, tx.Signatures[i][:]) {
			return nil, fmt.Errorf("%w from %s", ErrInvalidSignature, signer)
		}
		verified.Add(signer)
	}
	return verified, nil
}
