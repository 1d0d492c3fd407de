package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"

	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/mbhall88/lrge"
)

func runEstimate(cmd *cobra.Command, args []string) {
	input := args[0]

	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logfile, _ := cmd.Flags().GetString("log")
	if logfile != "" {
		logfile = expandHome(logfile)
	}
	setLogLevel(quiet, verbose, logfile)

	if input != "-" {
		exists, err := pathutil.Exists(input)
		checkError(err)
		if !exists {
			checkError(errorf("input file does not exist: %s", input))
		}
	}

	cfg := buildConfig(cmd, input)
	checkError(cfg.Validate())

	var strategy lrge.Estimate
	if cfg.Num != nil {
		strategy = lrge.NewAvaStrategy(cfg)
	} else {
		strategy = lrge.NewTwoSetStrategy(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notifyInterrupt(cancel)

	var pbs *mpb.Progress
	var bar *mpb.Bar
	if !quiet {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddBar(1,
			mpb.PrependDecorators(
				decor.Name("estimating genome size: ", decor.WC{W: len("estimating genome size: "), C: decor.DindentRight}),
			),
			mpb.AppendDecorators(
				decor.Name("elapsed: ", decor.WC{W: len("elapsed: ")}),
				decor.Elapsed(decor.ET_STYLE_GO),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)
	}

	estimates, noMapping, err := strategy.GenerateEstimates(ctx)
	if bar != nil {
		bar.IncrBy(1)
		pbs.Wait()
	}
	checkError(err)

	if noMapping > 0 {
		log.Warningf("%d read(s) had no retained overlaps", noMapping)
	}

	qLow, qHigh := cfg.QLow, cfg.QHigh
	result := lrge.Aggregate(estimates, cfg.IncludeInfinite, qLow, qHigh)
	if math.IsNaN(result.Estimate) {
		log.Notice("no overlaps found: emitting a zero/NaN estimate")
	}
	log.Infof("quantile interval: low=%v high=%v", result.Low, result.High)

	writeResult(cfg.Output, result, cfg.FloatOutput)
}

func buildConfig(cmd *cobra.Command, input string) lrge.Config {
	cfg := lrge.DefaultConfig(input)

	output, _ := cmd.Flags().GetString("output")
	if output != "-" {
		output = expandHome(output)
	}
	cfg.Output = output

	if v, _ := cmd.Flags().GetUint32("target"); v > 0 {
		cfg.Target = v
	}
	if v, _ := cmd.Flags().GetUint32("query"); v > 0 {
		cfg.Query = v
	}
	if v, _ := cmd.Flags().GetUint32("num"); v > 0 {
		cfg.Num = &v
	}

	platformFlag, _ := cmd.Flags().GetString("platform")
	platform, err := lrge.ParsePlatform(platformFlag)
	checkError(err)
	cfg.Platform = platform

	threads, _ := cmd.Flags().GetInt("threads")
	if threads > 0 {
		cfg.Threads = uint32(threads)
	}

	cfg.KeepTemp, _ = cmd.Flags().GetBool("keep-temp")
	if tmp, _ := cmd.Flags().GetString("temp-dir"); tmp != "" {
		cfg.TempDir = expandHome(tmp)
	}

	if seed, _ := cmd.Flags().GetInt64("seed"); seed >= 0 {
		s := uint64(seed)
		cfg.Seed = &s
	}

	cfg.IncludeInfinite, _ = cmd.Flags().GetBool("include-infinite")
	cfg.FloatOutput, _ = cmd.Flags().GetBool("float-output")

	if v, _ := cmd.Flags().GetFloat64("q-low"); v > 0 {
		cfg.QLow = v
	}
	if v, _ := cmd.Flags().GetFloat64("q-high"); v > 0 {
		cfg.QHigh = v
	}
	if v, _ := cmd.Flags().GetFloat64("overhang-ratio"); v > 0 {
		cfg.OverhangRatio = v
	}
	if v, _ := cmd.Flags().GetUint32("overlap-threshold"); v > 0 {
		cfg.OverlapThreshold = v
	}

	noFilterInternal, _ := cmd.Flags().GetBool("no-filter-internal")
	cfg.FilterInternal = !noFilterInternal

	noMinRef, _ := cmd.Flags().GetBool("no-min-ref")
	cfg.UseMinRef = !noMinRef

	cfg.Logger = log

	return cfg
}

func writeResult(output string, result lrge.Result, floatOutput bool) {
	var w *os.File
	if output == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(output)
		checkError(err)
		defer f.Close()
		w = f
	}

	if floatOutput {
		fmt.Fprintf(w, "%.2f\n", result.Estimate)
		return
	}
	if math.IsNaN(result.Estimate) {
		fmt.Fprintln(w, 0)
		return
	}
	fmt.Fprintf(w, "%d\n", int64(math.Round(result.Estimate)))
}

func notifyInterrupt(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		log.Warning("interrupted, shutting down...")
		cancel()
	}()
}

func errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
