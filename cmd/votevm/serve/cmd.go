// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/luxfi/database"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/luxfi/utils/ulimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	dto "github.com/prometheus/client_model/go"

	"github.com/luxfi/votevm/vms"
	"github.com/luxfi/votevm/vms/votevm"

	vmcore "github.com/luxfi/votevm"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

var errUnexpectedVM = errors.New("factory returned an unexpected VM")

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Runs a vote ledger and serves its API",
		RunE:  serveFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func serveFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	logger := log.NewLogger(votevm.VMID)
	if err := ulimit.Set(ulimit.DefaultFDLimit, logger); err != nil {
		return fmt.Errorf("failed to set fd limit: %w", err)
	}

	db, err := openDB(config.DataDir)
	if err != nil {
		return err
	}

	vmIntf, err := votevm.NewDefaultFactory().New(logger)
	if err != nil {
		return err
	}
	vm, ok := vmIntf.(*votevm.VM)
	if !ok {
		return fmt.Errorf("%w: %T", errUnexpectedVM, vmIntf)
	}

	ctx := c.Context()
	registry := metric.NewRegistry()
	err = vm.Initialize(ctx, &vmcore.Config{
		DB:           db,
		Registerer:   registry,
		GenesisBytes: config.GenesisBytes,
		ConfigBytes:  config.ConfigBytes,
	})
	if err != nil {
		return errors.Join(err, db.Close())
	}

	router := mux.NewRouter()
	paths, err := vms.Mount(ctx, router, "/ext", vm)
	if err != nil {
		return errors.Join(err, vm.Shutdown(ctx))
	}
	router.Handle("/metrics", promhttp.HandlerFor(gatherer(registry), promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              net.JoinHostPort(config.HTTPHost, strconv.Itoa(int(config.HTTPPort))),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("serving",
			log.String("address", server.Addr),
			zap.Strings("paths", paths),
		)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = eg.Wait()
	logger.Info("shutting down")
	return errors.Join(err, vm.Shutdown(context.Background()))
}

func openDB(dataDir string) (database.Database, error) {
	if dataDir == "" {
		return memdb.New(), nil
	}
	db, err := badgerdb.New(
		dataDir,
		nil, // configBytes - use default
		"",  // namespace
		nil, // metrics
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't open database at %s: %w", dataDir, err)
	}
	return db, nil
}

// gatherer exposes a native registry in the exposition format promhttp serves.
func gatherer(registry metric.Registry) prometheus.Gatherer {
	return prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		families, err := registry.Gather()
		return metric.NativeToDTO(families), err
	})
}
