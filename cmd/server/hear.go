package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"petclinic/internal/hearing"
)

func newHearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hear",
		Short: "Print the word the active profile produces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			producer, err := hearing.NewProducer(cfg.Profile, cfg.Say.Word)
			if err != nil {
				return err
			}
			word := hearing.NewInterpreter(producer, log).WhatIHeard(cmd.Context())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), word)
			return err
		},
	}
}
