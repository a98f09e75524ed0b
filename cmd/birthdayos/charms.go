package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"svw.info/birthdayos/internal/domain"
	"svw.info/birthdayos/internal/usecase"
)

func newCharmsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charms",
		Short: "Inspect and edit the charm collection",
	}
	cmd.AddCommand(newCharmsListCmd(opts))
	cmd.AddCommand(newCharmsCatalogCmd())
	cmd.AddCommand(newCharmsAddCmd(opts))
	cmd.AddCommand(newCharmsRemoveCmd(opts))
	cmd.AddCommand(newCharmsClearCmd(opts))
	return cmd
}

func newCharmsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List collected charms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				s, err := a.uc.Summary(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(s.Charms) == 0 {
					fmt.Fprintln(out, "No charms collected yet.")
				} else {
					printCharms(out, s.Charms)
				}
				fmt.Fprintf(out, "Total points: %s\n", formatPoints(s.TotalPoints))
				return nil
			})
		},
	}
}

func newCharmsCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List charms that can be unlocked",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printCharms(cmd.OutOrStdout(), usecase.Catalog())
		},
	}
}

func newCharmsAddCmd(opts *rootOptions) *cobra.Command {
	var rawJSON string

	cmd := &cobra.Command{
		Use:   "add [catalog-id]",
		Short: "Unlock a catalog charm, or add one described with --json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (rawJSON == "") {
				return fmt.Errorf("give either a catalog id or --json")
			}
			return withApp(cmd, opts, func(a *app) error {
				var (
					added bool
					err   error
					id    string
				)
				if rawJSON != "" {
					var c domain.Charm
					if err := json.Unmarshal([]byte(rawJSON), &c); err != nil {
						return fmt.Errorf("parse --json: %w", err)
					}
					id = c.ID
					added, err = a.uc.AddCharm(cmd.Context(), c)
				} else {
					id = args[0]
					added, err = a.uc.SnapPhoto(cmd.Context(), id)
				}
				if err != nil {
					return err
				}
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s\n", id)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already in the collection\n", id)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rawJSON, "json", "", "charm record as JSON")
	return cmd
}

func newCharmsRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a charm from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				removed, err := a.uc.RemoveCharm(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("charm %q is not in the collection", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			})
		},
	}
}

func newCharmsClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every charm; bonus points are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if err := a.uc.ClearCharms(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Charm collection cleared.")
				return nil
			})
		},
	}
}

func printCharms(out io.Writer, charms []domain.Charm) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPOWER\tPOINTS")
	for _, c := range charms {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", c.ID, c.Icon, c.Name, c.Power, formatPoints(c.Points))
	}
	w.Flush()
}

// formatPoints drops the fraction for whole numbers.
func formatPoints(p float64) string {
	return fmt.Sprintf("%g", p)
}
