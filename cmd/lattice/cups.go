package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aretw0/lattice/internal/cups"
	"github.com/aretw0/lattice/internal/presentation/tui"
	"github.com/aretw0/lattice/pkg/domain"
	"github.com/spf13/cobra"
)

var cupsCmd = &cobra.Command{
	Use:   "cups <labels>",
	Short: "Play the crab cup game",
	Long: `Plays the cup game on the given digit labels (e.g. 389125467). With --total the
ring is padded with consecutive labels and the product of the two cups after
cup 1 is reported; otherwise the labels after cup 1 are.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		moves, _ := cmd.Flags().GetInt("moves")
		total, _ := cmd.Flags().GetInt("total")
		id, _ := cmd.Flags().GetString("id")
		every, _ := cmd.Flags().GetInt("checkpoint-every")
		checks, _ := cmd.Flags().GetBool("checks")

		if !cmd.Flags().Changed("moves") {
			moves = app.cfg.Cups.Moves
		}
		if !cmd.Flags().Changed("total") {
			total = app.cfg.Cups.Total
		}
		if id == "" {
			id = newRunID(string(domain.KindCups))
		}

		labels, err := cups.Parse(args[0])
		if err != nil {
			return err
		}

		svc, err := app.openServices(every)
		if err != nil {
			return err
		}
		defer svc.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		start := time.Now()
		g, err := svc.runner.Cups(ctx, id, labels, moves, cups.WithTotal(total), cups.WithChecks(checks))
		if err != nil {
			return fmt.Errorf("run %s: %w", id, err)
		}
		snap := g.Snapshot(id)
		elapsed := time.Since(start)

		var result tui.Field
		if total > len(labels) {
			product, err := g.ProductAfterOne()
			if err != nil {
				return err
			}
			result = tui.Field{Name: "Product after 1", Value: strconv.Itoa(product)}
		} else {
			sum, err := g.Checksum()
			if err != nil {
				return err
			}
			result = tui.Field{Name: "Labels after 1", Value: sum}
		}
		return printReport(cmd.OutOrStdout(), tui.Report(snap, elapsed, result))
	},
}

func init() {
	rootCmd.AddCommand(cupsCmd)
	cupsCmd.Flags().IntP("moves", "n", 100, "Number of moves to play")
	cupsCmd.Flags().Int("total", 0, "Pad the ring to this many cups")
	cupsCmd.Flags().String("id", "", "Run id used for the snapshot (generated when empty)")
	cupsCmd.Flags().Int("checkpoint-every", 0, "Save a snapshot every N moves (0: only at the end)")
	cupsCmd.Flags().Bool("checks", false, "Verify list membership on every splice (slow)")
}
