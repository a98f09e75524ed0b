package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"svw.info/birthdayos/internal/adapters/tui"
)

var errNotTerminal = errors.New("play needs an interactive terminal")

// isTerminal is swapped out in tests.
var isTerminal = term.IsTerminal

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var size, candles int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the candle game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(int(os.Stdin.Fd())) || !isTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}
			return runPlay(cmd, opts, size, candles)
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "grid size (default from config)")
	cmd.Flags().IntVar(&candles, "candles", 0, "number of candles (default from config)")
	return cmd
}

func runPlay(cmd *cobra.Command, opts *rootOptions, size, candles int) error {
	a, err := openApp(cmd, opts, true)
	if err != nil {
		return err
	}
	defer a.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ui := tui.New(screen, a.uc, a.log)
	if err := ui.Start(cmd.Context(), size, candles); err != nil {
		return err
	}
	return ui.Run(cmd.Context())
}
