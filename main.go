package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logger = log.New(io.Discard, "cpu-scheduler: ", log.LstdFlags)

var (
	flagConfig    string
	flagVerbose   bool
	flagNoColor   bool
	flagAlgorithm string
	flagQuantum   int64
	flagPort      int
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpu-scheduler",
		Short: "Simulate FCFS, SJF, priority and round robin CPU scheduling",
		Long: `cpu-scheduler computes waiting, turnaround and completion times for a batch
of processes under first-come first-serve, shortest job first, priority and
round robin scheduling, and compares the four.

Processes are read from a CSV file (id, burst, arrival[, priority]), a JSON
file ({"processes": [{"arrival_time", "burst_time", "priority"}]}), or
interactively when no file is given.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetOutput(os.Stderr)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ./scheduler.yaml)")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log diagnostics to stderr")
	cmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(scheduleCmd())
	cmd.AddCommand(compareCmd())
	cmd.AddCommand(serveCmd())
	return cmd
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [file]",
		Short: "Run one algorithm, or all of them, and print each schedule",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, processes, err := setup(cmd, args)
			if err != nil {
				return err
			}

			algs := Algorithms
			if flagAlgorithm != "all" {
				alg, err := ParseAlgorithm(flagAlgorithm)
				if err != nil {
					return err
				}
				algs = []Algorithm{alg}
			}

			for _, alg := range algs {
				s, err := Run(alg, processes, cfg.RoundRobinTimeQuantum)
				if err != nil {
					return fmt.Errorf("%s: %w", alg, err)
				}
				if err := printSchedule(cmd.OutOrStdout(), s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagAlgorithm, "algorithm", "a", "all", "fcfs, sjf, priority, rr or all")
	cmd.Flags().Int64VarP(&flagQuantum, "quantum", "q", 0, "Round robin time quantum (default from config)")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Run all four algorithms on the same batch and rank them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, processes, err := setup(cmd, args)
			if err != nil {
				return err
			}

			c, err := Compare(processes, cfg.RoundRobinTimeQuantum)
			if err != nil {
				return err
			}
			printComparison(cmd.OutOrStdout(), c)
			return nil
		},
	}
	cmd.Flags().Int64VarP(&flagQuantum, "quantum", "q", 0, "Round robin time quantum (default from config)")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedulers over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flagConfig)
			if err != nil {
				return err
			}
			if flagPort != 0 {
				cfg.Port = flagPort
			}
			return serve(cfg)
		},
	}
	cmd.Flags().IntVarP(&flagPort, "port", "p", 0, "Listen port (default from config)")
	return cmd
}

// setup loads config, applies flag overrides and reads the batch from the
// file argument or, without one, from stdin.
func setup(cmd *cobra.Command, args []string) (SchedulerConfig, Batch, error) {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return cfg, nil, err
	}
	if flagQuantum != 0 {
		cfg.RoundRobinTimeQuantum = flagQuantum
	}
	if flagNoColor || !cfg.Color {
		color.NoColor = true
	}

	var processes Batch
	if len(args) == 1 {
		processes, err = loadFile(args[0])
	} else {
		processes, err = promptProcesses(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	if err != nil {
		return cfg, nil, err
	}
	logger.Printf("loaded %d processes, quantum %d", len(processes), cfg.RoundRobinTimeQuantum)
	return cfg, processes, nil
}
