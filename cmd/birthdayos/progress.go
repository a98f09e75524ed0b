package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/usecase"
)

func newProgressCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show or edit milestone progress",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show milestones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				s, err := a.uc.Summary(cmd.Context())
				if err != nil {
					return err
				}
				printProgress(cmd.OutOrStdout(), s)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "complete <milestone>",
		Short: "Mark a milestone as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if err := a.uc.CompleteMilestone(cmd.Context(), domain.MilestoneID(args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", args[0])
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear every milestone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if err := a.uc.ResetProgress(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
				return nil
			})
		},
	})
	return cmd
}

func printProgress(out io.Writer, s usecase.Summary) {
	for _, m := range s.Milestones {
		mark := " "
		if m.Completed {
			mark = "x"
		}
		fmt.Fprintf(out, "[%s] %-15s %s\n", mark, m.ID, m.Label)
	}
	fmt.Fprintf(out, "Progress: %d%%\n", s.ProgressPercent)
}
