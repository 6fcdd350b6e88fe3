// Package commands adds inventory subcommands to the PocketBase CLI.
package commands

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"github.com/websoft9/inventory/internal/serial"
	"github.com/websoft9/inventory/internal/worker"
)

// NewSerialsCommand returns the "serials" command group. app must be
// bootstrapped before the subcommands run, which pocketbase.Start does.
func NewSerialsCommand(app core.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serials",
		Short: "Inspect and rebuild stock item serial_int values",
	}

	cmd.AddCommand(newSerialsRebuildCommand(app))
	cmd.AddCommand(newSerialsParseCommand())

	return cmd
}

func newSerialsRebuildCommand(app core.App) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Recompute serial_int from serial for every stock item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := worker.RebuildSerials(app, "", "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"visited %d, saved %d, skipped %d (no serial), defaulted %d\n",
				stats.Visited, stats.Saved, stats.Skipped, stats.Defaulted)
			return nil
		},
	}
}

func newSerialsParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse SERIAL...",
		Short: "Print the serial_int each serial would get",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", s, serial.Int(s))
			}
			return nil
		},
	}
}
