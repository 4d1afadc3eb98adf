// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/votevm/utils/units"
	"github.com/luxfi/votevm/vms/votevm/address"
	"github.com/luxfi/votevm/vms/votevm/metrics"
	"github.com/luxfi/votevm/vms/votevm/program"
	"github.com/luxfi/votevm/vms/votevm/runtime"
	"github.com/luxfi/votevm/vms/votevm/txs"
	"github.com/luxfi/votevm/vms/votevm/txs/txstest"

	avajson "github.com/luxfi/votevm/utils/json"
)

func newTestService(t *testing.T, allowAirdrop bool) *Service {
	programID, err := address.Parse("22222222222222222222222222222222222222222222")
	require.NoError(t, err)

	p := program.New(log.NewNoOpLogger(), metrics.NewNoOp(), program.Config{
		ProgramID: programID,
	})
	rt, err := runtime.New(log.NewNoOpLogger(), metrics.NewNoOp(), memdb.New(), runtime.Config{}, p)
	require.NoError(t, err)
	return NewService(log.NewNoOpLogger(), rt, p.Deriver(), allowAirdrop)
}

func TestDeriveAddress(t *testing.T) {
	require := require.New(t)

	s := newTestService(t, false)
	reply := DeriveAddressReply{}
	require.NoError(s.DeriveAddress(nil, &NameArgs{Name: "onkel.sol"}, &reply))
	require.Equal("7hUEMh6pwQWVrTwn3nGvkyL8Kkb4BJJVXkt7PLB5ksa7", reply.Address)
	require.Equal(avajson.Uint8(253), reply.Bump)
}

func TestAirdropDisabled(t *testing.T) {
	s := newTestService(t, false)
	err := s.Airdrop(httptest.NewRequest("POST", "/", nil), &AirdropArgs{
		Address: address.Format(txstest.Address(txstest.Key(1))),
		Amount:  1,
	}, &EmptyReply{})
	require.ErrorIs(t, err, ErrAirdropDisabled)
}

func TestIssueVoteTx(t *testing.T) {
	require := require.New(t)

	s := newTestService(t, true)
	req := httptest.NewRequest("POST", "/", nil)
	key := txstest.Key(1)
	voter := txstest.Address(key)

	require.NoError(s.Airdrop(req, &AirdropArgs{
		Address: address.Format(voter),
		Amount:  avajson.Uint64(units.Lux),
	}, &EmptyReply{}))

	record := GetRecordReply{}
	require.NoError(s.GetRecord(req, &NameArgs{Name: "alice"}, &record))
	require.False(record.Exists)
	require.Zero(record.Votes)

	inst, err := program.NewVoteInstruction(s.deriver, voter, "alice")
	require.NoError(err)
	tx, err := txs.Sign(txs.Message{
		Payer:        voter,
		Instructions: []txs.Instruction{inst},
	}, key)
	require.NoError(err)

	issued := IssueTxReply{}
	require.NoError(s.IssueTx(req, &IssueTxArgs{Tx: "0x" + hex.EncodeToString(tx.Bytes())}, &issued))
	require.Equal(tx.ID(), issued.TxID)

	require.NoError(s.GetRecord(req, &NameArgs{Name: "alice"}, &record))
	require.True(record.Exists)
	require.Equal("alice", record.Name)
	require.Equal(avajson.Uint64(1), record.Votes)

	acct := GetAccountReply{}
	require.NoError(s.GetAccount(req, &AddressArgs{Address: record.Address}, &acct))
	require.Equal(avajson.Uint64(units.RecordFunding), acct.Balance)
	require.Equal(address.Format(s.deriver.ProgramID()), acct.Owner)
	require.Len(acct.Data, 2*64)

	require.NoError(s.GetAccount(req, &AddressArgs{Address: address.Format(voter)}, &acct))
	require.Equal(avajson.Uint64(1), acct.Nonce)

	require.ErrorIs(
		s.IssueTx(req, &IssueTxArgs{Tx: hex.EncodeToString(tx.Bytes())}, &issued),
		runtime.ErrDuplicateTx,
	)
}

func TestIssueTxErrors(t *testing.T) {
	s := newTestService(t, false)
	req := httptest.NewRequest("POST", "/", nil)

	require.ErrorIs(t, s.IssueTx(req, &IssueTxArgs{}, &IssueTxReply{}), errMissingTx)
	require.Error(t, s.IssueTx(req, &IssueTxArgs{Tx: "zz"}, &IssueTxReply{}))
	require.Error(t, s.IssueTx(req, &IssueTxArgs{Tx: "00"}, &IssueTxReply{}))
}
