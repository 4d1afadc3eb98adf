// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"

	"github.com/luxfi/metric"

	"github.com/luxfi/votevm/utils/wrappers"
)

const (
	resultLabel = "result"
	reasonLabel = "reason"
)

var (
	_ Metrics = (*metricsImpl)(nil)

	errNotRegistry = errors.New("registerer must implement metric.Registry")
)

type Metrics interface {
	metric.APIInterceptor

	// MarkTxAccepted records a transaction whose effects were committed.
	MarkTxAccepted()
	// MarkTxRejected records a transaction that was rolled back.
	MarkTxRejected()

	// MarkRecordCreated records a committed first vote for a subject.
	MarkRecordCreated()
	// MarkVoteCounted records a committed vote added to an existing record.
	MarkVoteCounted()
	// MarkVoteFailed records a failed vote instruction, labelled by [reason].
	MarkVoteFailed(reason string)
}

type metricsImpl struct {
	metric.APIInterceptor

	txs         metric.CounterVec
	votes       metric.CounterVec
	failedVotes metric.CounterVec

	acceptedTxs, rejectedTxs   metric.Counter
	createdVotes, countedVotes metric.Counter
}

func New(registerer metric.Registerer) (Metrics, error) {
	registry, ok := registerer.(metric.Registry)
	if !ok {
		return nil, errNotRegistry
	}

	m := &metricsImpl{
		txs: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "txs_executed",
				Help: "number of transactions executed",
			},
			[]string{resultLabel},
		),
		votes: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "votes_cast",
				Help: "number of committed votes",
			},
			[]string{resultLabel},
		),
		failedVotes: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "votes_failed",
				Help: "number of vote instructions that failed",
			},
			[]string{reasonLabel},
		),
	}
	m.acceptedTxs = m.txs.With(metric.Labels{resultLabel: "accepted"})
	m.rejectedTxs = m.txs.With(metric.Labels{resultLabel: "rejected"})
	m.createdVotes = m.votes.With(metric.Labels{resultLabel: "created"})
	m.countedVotes = m.votes.With(metric.Labels{resultLabel: "counted"})

	apiRequestMetrics, err := metric.NewAPIInterceptor(registry)
	errs := wrappers.Errs{Err: err}
	m.APIInterceptor = apiRequestMetrics

	errs.Add(
		registerer.Register(metric.AsCollector(m.txs)),
		registerer.Register(metric.AsCollector(m.votes)),
		registerer.Register(metric.AsCollector(m.failedVotes)),
	)
	return m, errs.Err
}

func (m *metricsImpl) MarkTxAccepted() {
	m.acceptedTxs.Inc()
}

func (m *metricsImpl) MarkTxRejected() {
	m.rejectedTxs.Inc()
}

func (m *metricsImpl) MarkRecordCreated() {
	m.createdVotes.Inc()
}

func (m *metricsImpl) MarkVoteCounted() {
	m.countedVotes.Inc()
}

func (m *metricsImpl) MarkVoteFailed(reason string) {
	m.failedVotes.With(metric.Labels{reasonLabel: reason}).Inc()
}

// NewNoOp returns metrics that are not exported anywhere.
func NewNoOp() Metrics {
	m, _ := New(metric.NewRegistry())
	return m
}
