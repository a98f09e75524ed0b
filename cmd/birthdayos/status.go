package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the collection and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				s, err := a.uc.Summary(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Charms:       %d\n", len(s.Charms))
				fmt.Fprintf(out, "Bonus points: %s\n", formatPoints(s.BonusPoints))
				fmt.Fprintf(out, "Total points: %s\n", formatPoints(s.TotalPoints))
				fmt.Fprintf(out, "Redeemed:     %t\n", s.Redeemed)
				printProgress(out, s)
				return nil
			})
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all stored BirthdayOS data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to erase everything without --yes")
			}
			return withApp(cmd, opts, func(a *app) error {
				if err := a.uc.ResetAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All BirthdayOS data erased.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
