// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serve

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luxfi/metric"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
)

func TestGathererServesNativeRegistry(t *testing.T) {
	require := require.New(t)

	registry := metric.NewRegistry()
	counter := metric.NewCounterVec(metric.CounterOpts{
		Name: "votes_cast",
		Help: "number of committed votes",
	}, []string{"result"})
	require.NoError(registry.Register(metric.AsCollector(counter)))
	counter.With(metric.Labels{"result": "accepted"}).Inc()

	families, err := gatherer(registry).Gather()
	require.NoError(err)
	require.Len(families, 1)
	require.Equal("votes_cast", families[0].GetName())

	w := httptest.NewRecorder()
	handler := promhttp.HandlerFor(gatherer(registry), promhttp.HandlerOpts{})
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Body.String(), `votes_cast{result="accepted"} 1`)
}
