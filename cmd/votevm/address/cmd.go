// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package address

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/votevm/vms/votevm/address"
	"github.com/luxfi/votevm/vms/votevm/config"
)

const (
	ProgramIDKey = "program-id"
	DomainKey    = "domain"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "address NAME",
		Short: "Prints the record address of a subject",
		Args:  cobra.ExactArgs(1),
		RunE:  addressFunc,
	}
	flags := c.Flags()
	flags.String(ProgramIDKey, config.DefaultProgramID, "Address of the vote program")
	flags.String(DomainKey, "", "Domain separation seed. Defaults to the program ID")
	return c
}

func addressFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	programIDStr, err := flags.GetString(ProgramIDKey)
	if err != nil {
		return err
	}
	domain, err := flags.GetString(DomainKey)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.ProgramID = programIDStr
	cfg.Domain = domain
	if err := cfg.Validate(); err != nil {
		return err
	}
	programID, err := cfg.ParsedProgramID()
	if err != nil {
		return err
	}

	derived, err := address.NewDeriver(programID, []byte(domain), 1).Derive([]byte(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.OutOrStdout(), "%s %d\n", address.Format(derived.Address), derived.Bump)
	return nil
}
