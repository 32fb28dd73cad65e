package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/lattice/internal/conway"
	"github.com/aretw0/lattice/internal/presentation/tui"
	"github.com/aretw0/lattice/internal/watch"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/spf13/cobra"
)

var conwayCmd = &cobra.Command{
	Use:   "conway [slice-file]",
	Short: "Run an N-dimensional automaton from a 2D slice",
	Long: `Reads a '.'/'#' slice (from the file, or stdin when omitted or "-"), lifts it
into the requested number of dimensions and runs the given number of cycles.
Every active cell survives with 2 or 3 active neighbors; an inactive one turns
on with exactly 3.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dims, _ := cmd.Flags().GetInt("dims")
		cycles, _ := cmd.Flags().GetInt("cycles")
		id, _ := cmd.Flags().GetString("id")
		every, _ := cmd.Flags().GetInt("checkpoint-every")
		render, _ := cmd.Flags().GetBool("render")
		watchFile, _ := cmd.Flags().GetBool("watch")

		if !cmd.Flags().Changed("dims") {
			dims = app.cfg.Conway.Dimensions
		}
		if !cmd.Flags().Changed("cycles") {
			cycles = app.cfg.Conway.Cycles
		}
		if id == "" {
			id = newRunID(string(domain.KindConway))
		}

		svc, err := app.openServices(every)
		if err != nil {
			return err
		}
		defer svc.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		once := func(ctx context.Context) error {
			rows, err := readSliceArg(cmd, args)
			if err != nil {
				return err
			}

			start := time.Now()
			snap, err := svc.runner.Conway(ctx, id, rows, dims, cycles)
			if err != nil {
				return fmt.Errorf("run %s: %w", id, err)
			}

			out := cmd.OutOrStdout()
			if render {
				if err := tui.RenderLayers(out, snap, profileFor(out)); err != nil {
					return err
				}
				fmt.Fprintln(out)
			}
			return printReport(out, tui.Report(snap, time.Since(start)))
		}

		if !watchFile {
			return once(ctx)
		}
		if len(args) == 0 || args[0] == "-" {
			return fmt.Errorf("--watch needs a slice file")
		}
		app.logger.Info("Watching slice", "path", args[0], "id", id)
		return watch.New(args[0], watch.WithLogger(app.logger)).Run(ctx, once)
	},
}

func init() {
	rootCmd.AddCommand(conwayCmd)
	conwayCmd.Flags().IntP("dims", "d", 3, "Number of dimensions (2-4)")
	conwayCmd.Flags().IntP("cycles", "n", 6, "Number of cycles to run")
	conwayCmd.Flags().String("id", "", "Run id used for the snapshot (generated when empty)")
	conwayCmd.Flags().Int("checkpoint-every", 0, "Save a snapshot every N cycles (0: only at the end)")
	conwayCmd.Flags().Bool("render", false, "Draw the final grid layer by layer")
	conwayCmd.Flags().BoolP("watch", "w", false, "Re-run whenever the slice file changes")
}

func readSliceArg(cmd *cobra.Command, args []string) ([][]bool, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return conway.ReadSlice(r)
}
