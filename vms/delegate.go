// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vms holds helpers shared by hosts of VM implementations.
package vms

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

// HandlerProvider is the interface that VMs must implement to provide HTTP handlers
type HandlerProvider interface {
	CreateHandlers(context.Context) (map[string]http.Handler, error)
}

// DelegateHandlers returns the HTTP handlers of [vm], if it serves any.
func DelegateHandlers(ctx context.Context, vm interface{}) (map[string]http.Handler, error) {
	if handlerCreator, ok := vm.(HandlerProvider); ok {
		return handlerCreator.CreateHandlers(ctx)
	}
	return nil, nil
}

// Mount registers the handlers of [vm] on [router], each under [prefix]
// joined with its own path.
func Mount(ctx context.Context, router *mux.Router, prefix string, vm interface{}) ([]string, error) {
	handlers, err := DelegateHandlers(ctx, vm)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(handlers))
	for path, handler := range handlers {
		router.Handle(prefix+path, handler)
		paths = append(paths, prefix+path)
	}
	return paths, nil
}
