// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test error")

type handlerVM struct {
	handlers map[string]http.Handler
	err      error
}

func (vm *handlerVM) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	return vm.handlers, vm.err
}

func TestDelegateHandlers(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	handlers, err := DelegateHandlers(ctx, struct{}{})
	require.NoError(err)
	require.Nil(handlers)

	_, err = DelegateHandlers(ctx, &handlerVM{err: errTest})
	require.ErrorIs(err, errTest)
}

func TestMount(t *testing.T) {
	require := require.New(t)

	router := mux.NewRouter()
	vm := &handlerVM{
		handlers: map[string]http.Handler{
			"/vote": http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			}),
		},
	}
	paths, err := Mount(context.Background(), router, "/ext", vm)
	require.NoError(err)
	require.Equal([]string{"/ext/vote"}, paths)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ext/vote", nil))
	require.Equal(http.StatusTeapot, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ext/other", nil))
	require.Equal(http.StatusNotFound, w.Code)

	_, err = Mount(context.Background(), router, "/ext", &handlerVM{err: errTest})
	require.ErrorIs(err, errTest)
}
