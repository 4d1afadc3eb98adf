// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"
)

// counterValue returns the value of the [name] sample carrying [labels], or
// zero if [registry] has no such sample.
func counterValue(t *testing.T, registry metric.Registry, name string, labels metric.Labels) float64 {
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.Name != name {
			continue
		}
		for _, sample := range family.Metrics {
			if hasLabels(sample.Labels, labels) {
				return sample.Value.Value
			}
		}
	}
	return 0
}

func hasLabels(pairs []metric.LabelPair, labels metric.Labels) bool {
	matched := 0
	for _, pair := range pairs {
		if value, ok := labels[pair.Name]; ok && value == pair.Value {
			matched++
		}
	}
	return matched == len(labels)
}

func TestMetrics(t *testing.T) {
	require := require.New(t)

	registry := metric.NewRegistry()
	m, err := New(registry)
	require.NoError(err)

	m.MarkTxAccepted()
	m.MarkTxAccepted()
	m.MarkTxRejected()
	m.MarkRecordCreated()
	m.MarkVoteCounted()
	m.MarkVoteCounted()
	m.MarkVoteFailed("address_mismatch")

	require.InDelta(2, counterValue(t, registry, "txs_executed", metric.Labels{resultLabel: "accepted"}), 0)
	require.InDelta(1, counterValue(t, registry, "txs_executed", metric.Labels{resultLabel: "rejected"}), 0)
	require.InDelta(1, counterValue(t, registry, "votes_cast", metric.Labels{resultLabel: "created"}), 0)
	require.InDelta(2, counterValue(t, registry, "votes_cast", metric.Labels{resultLabel: "counted"}), 0)
	require.InDelta(1, counterValue(t, registry, "votes_failed", metric.Labels{reasonLabel: "address_mismatch"}), 0)
	require.Zero(counterValue(t, registry, "votes_failed", metric.Labels{reasonLabel: "other"}))
}

func TestAPIInterceptor(t *testing.T) {
	require := require.New(t)

	m, err := New(metric.NewRegistry())
	require.NoError(err)

	info := &rpc.RequestInfo{
		Method:  "vote.getRecord",
		Request: httptest.NewRequest(http.MethodPost, "/", nil),
	}
	info.Request = m.InterceptRequest(info)
	require.NotNil(info.Request)
	m.AfterRequest(info)
}

func TestDuplicateRegistration(t *testing.T) {
	registry := metric.NewRegistry()
	_, err := New(registry)
	require.NoError(t, err)

	_, err = New(registry)
	require.Error(t, err) //nolint:forbidigo // the error is not exported
}
