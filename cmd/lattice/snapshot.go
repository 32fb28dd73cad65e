package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/lattice/internal/presentation/tui"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"snap"},
	Short:   "Manage saved run snapshots",
	Long:    `List, inspect, advance and remove the snapshots saved by conway and cups runs.`,
}

var snapshotListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved snapshots",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.openServices(0)
		if err != nil {
			return err
		}
		defer svc.close()

		ids, err := svc.manager.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list snapshots: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No snapshots found.")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		return nil
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a snapshot as JSON, or draw it with --render",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		render, _ := cmd.Flags().GetBool("render")

		svc, err := app.openServices(0)
		if err != nil {
			return err
		}
		defer svc.close()

		snap, err := svc.manager.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load snapshot %q: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if render && snap.Kind == domain.KindConway {
			return tui.RenderLayers(out, snap, profileFor(out))
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}

var snapshotAdvanceCmd = &cobra.Command{
	Use:   "advance <id>",
	Short: "Resume a saved run for more cycles or moves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		every, _ := cmd.Flags().GetInt("checkpoint-every")
		if steps < 0 {
			return fmt.Errorf("steps must not be negative")
		}

		svc, err := app.openServices(every)
		if err != nil {
			return err
		}
		defer svc.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		start := time.Now()
		snap, err := svc.runner.Resume(ctx, args[0], steps)
		if err != nil {
			return fmt.Errorf("advance %s: %w", args[0], err)
		}
		return printReport(cmd.OutOrStdout(), tui.Report(snap, time.Since(start)))
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Remove one or more snapshots",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.openServices(0)
		if err != nil {
			return err
		}
		defer svc.close()

		var errs []error
		for _, id := range args {
			if err := svc.manager.Delete(cmd.Context(), id); err != nil {
				errs = append(errs, fmt.Errorf("remove %q: %w", id, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed snapshot '%s'\n", id)
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotListCmd, snapshotShowCmd, snapshotAdvanceCmd, snapshotDeleteCmd)

	snapshotShowCmd.Flags().Bool("render", false, "Draw automaton snapshots layer by layer")
	snapshotAdvanceCmd.Flags().IntP("steps", "n", 1, "Cycles or moves to add")
	snapshotAdvanceCmd.Flags().Int("checkpoint-every", 0, "Save a snapshot every N steps (0: only at the end)")
}
