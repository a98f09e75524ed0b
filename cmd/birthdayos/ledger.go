package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
)

func newBonusCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bonus",
		Short: "Manage bonus points",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "award <amount> <reason>",
		Short: "Award bonus points once per reason",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount %q: %w", args[0], err)
			}
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return fmt.Errorf("amount %q must be a finite number", args[0])
			}
			return withApp(cmd, opts, func(a *app) error {
				paid, err := a.uc.AwardBonus(cmd.Context(), amount, args[1])
				if err != nil {
					return err
				}
				if paid {
					fmt.Fprintf(cmd.OutOrStdout(), "Awarded %s points for %q\n", formatPoints(max(amount, 0)), args[1])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Bonus %q was already awarded\n", args[1])
				}
				return nil
			})
		},
	})
	return cmd
}

func newRedeemCmd(opts *rootOptions) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "redeem",
		Short: "Mark the collection as redeemed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if err := a.uc.SetRedeemed(cmd.Context(), !undo); err != nil {
					return err
				}
				if undo {
					fmt.Fprintln(cmd.OutOrStdout(), "Redemption undone.")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Collection redeemed.")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "clear the redeemed flag")
	return cmd
}
