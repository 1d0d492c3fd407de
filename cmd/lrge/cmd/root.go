// Package cmd is the command-line front end for lrge: flag parsing, logging
// setup, and temp-directory management, all treated as external
// collaborators of the estimation engine in package lrge (spec §1).
package cmd

import (
	"os"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/shenwei356/go-logging"
	"github.com/spf13/cobra"
)

var log = logging.MustGetLogger("lrge")

// checkError logs err as fatal and exits, matching the teacher's
// check-and-exit idiom used throughout its cmd package.
func checkError(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	format := logging.MustStringFormatter(`%{color}[%{level:.4s}]%{color:reset} %{message}`)
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, format)
	logging.SetBackend(backendFormatter)
}

// RootCmd is the single-verb entry point: estimate genome size from reads.
var RootCmd = &cobra.Command{
	Use:   "lrge <reads.fastq>",
	Short: "Estimate genome size from long reads without a reference or assembly",
	Long: `lrge estimates the size of an unknown genome from a set of long
sequencing reads (Nanopore or PacBio) by measuring how often reads overlap
each other. No reference sequence and no assembly step are required.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runEstimate(cmd, args)
	},
}

// Execute runs RootCmd, exiting non-zero on failure.
func Execute() {
	RootCmd.SilenceUsage = true
	if err := RootCmd.Execute(); err != nil {
		checkError(err)
	}
}

func init() {
	defaultThreads := runtime.NumCPU()

	RootCmd.Flags().StringP("output", "o", "-", `output file ("-" for stdout)`)
	RootCmd.Flags().Uint32P("target", "T", 0, "number of target reads (two-set strategy)")
	RootCmd.Flags().Uint32P("query", "Q", 0, "number of query reads (two-set strategy)")
	RootCmd.Flags().Uint32("num", 0, "use the all-vs-all strategy with this many reads instead of two-set")
	RootCmd.Flags().StringP("platform", "x", "ont", "sequencing platform: ont or pb")
	RootCmd.Flags().IntP("threads", "t", defaultThreads, "number of alignment threads")
	RootCmd.Flags().Bool("keep-temp", false, "keep the staged read and overlap files on disk")
	RootCmd.Flags().String("temp-dir", "", "directory for staged files (default: a managed temp dir)")
	RootCmd.Flags().Int64("seed", -1, "seed for read subsampling (-1: drawn from OS entropy)")
	RootCmd.Flags().Bool("include-infinite", false, "include zero-overlap (infinite-estimate) reads in aggregation")
	RootCmd.Flags().Bool("float-output", false, "report the estimate as a float instead of rounding to an integer")
	RootCmd.Flags().Float64("q-low", 0, "lower quantile for the confidence interval (0: use the built-in default)")
	RootCmd.Flags().Float64("q-high", 0, "upper quantile for the confidence interval (0: use the built-in default)")
	RootCmd.Flags().Float64("overhang-ratio", 0, "maximum overhang ratio before an overlap is dropped (0: use the built-in default)")
	RootCmd.Flags().Uint32("overlap-threshold", 0, "minimum chain score threshold, in bases (0: use the built-in default)")
	RootCmd.Flags().Bool("no-filter-internal", false, "do not drop internal/contained overlap matches")
	RootCmd.Flags().Bool("no-min-ref", false, "always use the target set as the minimap2 reference")
	RootCmd.Flags().BoolP("quiet", "q", false, "only print warnings and errors")
	RootCmd.Flags().BoolP("verbose", "v", false, "print debug-level logging")
	RootCmd.Flags().String("log", "", "redirect logging to this file instead of stderr")
}

func setLogLevel(quiet, verbose bool, logfile string) {
	level := logging.NOTICE
	switch {
	case quiet:
		level = logging.WARNING
	case verbose:
		level = logging.DEBUG
	}
	logging.SetLevel(level, "lrge")

	if logfile == "" {
		return
	}
	f, err := os.Create(logfile)
	checkError(err)
	format := logging.MustStringFormatter(`[%{level:.4s}] %{message}`)
	backend := logging.NewLogBackend(f, "", 0)
	logging.SetBackend(logging.NewBackendFormatter(backend, format))
}

// expandHome expands a leading "~" in path to the user's home directory, so
// --temp-dir, --log and --output accept the same shorthand a shell would
// otherwise expand for them.
func expandHome(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
