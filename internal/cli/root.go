// Package cli implements the rtalgs command-line surface: the root
// simulate command plus the history and serve subcommands (spec §6.3).
package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rtalgs/rtalgs/internal/appconfig"
	"github.com/rtalgs/rtalgs/internal/config"
	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/history"
	"github.com/rtalgs/rtalgs/internal/kernel"
	"github.com/rtalgs/rtalgs/internal/kernel/policy"
	"github.com/rtalgs/rtalgs/internal/render"
)

var (
	flagRM          bool
	flagEDF         bool
	flagLLF         bool
	flagMUF         bool
	flagPerTask     bool
	flagWidth       int
	flagVerbose     bool
	flagRecord      bool
	flagHistoryPath string
)

var rootCmd = &cobra.Command{
	Use:   "rtalgs [flags] <taskset-file>...",
	Short: "Simulate hard real-time periodic task scheduling",
	Long: `rtalgs replays a periodic task set through a discrete-event
simulation kernel under one or more fixed scheduling policies (Rate
Monotonic, EDF, Least Laxity First, Maximum Urgency First), reporting
static schedulability, the tick-by-tick timeline, context switches, and
any deadline-miss or laxity-exhaustion events.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.Flags().BoolVarP(&flagRM, "rm", "r", false, "Rate Monotonic")
	rootCmd.Flags().BoolVarP(&flagEDF, "edf", "e", false, "Earliest Deadline First")
	rootCmd.Flags().BoolVarP(&flagLLF, "llf", "l", false, "Least Laxity First")
	rootCmd.Flags().BoolVarP(&flagMUF, "muf", "m", false, "Maximum Urgency First")
	rootCmd.Flags().BoolVarP(&flagPerTask, "per-task", "a", false, "per-task-row timeline layout")
	rootCmd.Flags().IntVarP(&flagWidth, "width", "w", 0, "screen width (default 72, or ~/.rtalgsrc.toml)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log progress during the simulation")
	rootCmd.Flags().BoolVar(&flagRecord, "record", false, "persist every run to the history ledger")
	rootCmd.PersistentFlags().StringVar(&flagHistoryPath, "history-db", defaultHistoryPath(), "path to the history ledger database")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the rtalgs root command, exiting the process non-zero
// on any fatal error (spec §7).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rtalgs-history.db"
	}
	return filepath.Join(home, ".rtalgs-history.db")
}

type selection struct {
	id  kernel.ID
	pol kernel.Policy
}

func selectedPolicies() []selection {
	var sels []selection
	if flagRM {
		sels = append(sels, selection{kernel.RM, policy.RM{}})
	}
	if flagEDF {
		sels = append(sels, selection{kernel.EDF, policy.EDF{}})
	}
	if flagLLF {
		sels = append(sels, selection{kernel.LLF, policy.LLF{}})
	}
	if flagMUF {
		sels = append(sels, selection{kernel.MUF, policy.MUF{}})
	}
	return sels
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sels := selectedPolicies()
	if len(sels) == 0 {
		return fmt.Errorf("%w: select at least one of -r/-e/-l/-m", domain.ErrNoAlgorithmSelected)
	}

	prefPath, _ := appconfig.Path()
	prefs, _ := appconfig.Load(prefPath)
	width := flagWidth
	if width == 0 {
		width = prefs.Width
	}
	if width == 0 {
		width = render.DefaultWidth
	}
	verbose := flagVerbose || prefs.Verbose

	var store *history.Store
	if flagRecord {
		s, err := history.Open(flagHistoryPath)
		if err != nil {
			return fmt.Errorf("open history ledger: %w", err)
		}
		defer s.Close()
		store = s
	}

	for _, path := range args {
		ts, err := config.Load(path)
		if err != nil {
			return err
		}

		for _, sel := range sels {
			// Each policy gets a fresh copy: a prior run's mutated
			// instance state must not leak into the next policy's run
			// against the same file (spec §7's reset-between-files
			// recovery policy applies equally between policies here).
			runTs := ts.Clone()
			ctx := kernel.NewContext(runTs)

			if verbose {
				log.Printf("simulating %s under %s (max_time=%d)", path, sel.id, runTs.MaxTime)
			}

			result := kernel.Run(ctx, sel.pol)

			fmt.Printf("\n=== %s: %s ===\n", path, sel.id)
			render.Diagnostics(os.Stdout, result.Diagnostics)
			render.SchedulabilityReport(os.Stdout, sel.id, result.Verdict)
			if flagPerTask {
				render.PerTaskRows(os.Stdout, result, runTs, runTs.MaxTime, width)
			} else {
				render.Timeline(os.Stdout, result, runTs.MaxTime, width)
			}
			render.CrossReference(os.Stdout, runTs)

			if store != nil {
				id, err := store.SaveRun(runTs, sel.id, result)
				if err != nil {
					return fmt.Errorf("record run: %w", err)
				}
				fmt.Printf("recorded as run %s\n", id)
			}
		}
	}
	return nil
}
