// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/luxfi/votevm/cmd/votevm/address"
	"github.com/luxfi/votevm/cmd/votevm/serve"
)

func main() {
	cmd := &cobra.Command{
		Use:          "votevm",
		Short:        "Runs and inspects a vote ledger",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		serve.Command(),
		address.Command(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "command failed %v\n", err)
		stop()
		os.Exit(1)
	}
}
