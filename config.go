package lrge

import "github.com/shenwei356/go-logging"

// Config mirrors the configuration record the CLI front end hands to the
// engine (spec §6). The CLI's flag parsing itself is out of scope for this
// module; Config is the boundary the core validates and consumes.
type Config struct {
	// Input is the path to the FASTA/FASTQ file to read, or "-" for stdin.
	Input string
	// Output is the path to write the final estimate to, or "-" for
	// stdout. Informational logging never goes here.
	Output string

	// Target is the number of target reads for the two-set strategy.
	Target uint32
	// Query is the number of query reads for the two-set strategy.
	Query uint32
	// Num, if non-nil, selects the all-vs-all strategy with this many
	// reads instead of the two-set strategy.
	Num *uint32

	Platform Platform
	Threads  uint32

	KeepTemp bool
	TempDir  string

	// Seed, if nil, is drawn from OS entropy.
	Seed *uint64

	IncludeInfinite bool
	FloatOutput     bool
	QLow            float64
	QHigh           float64

	OverhangRatio    float64
	OverlapThreshold uint32
	FilterInternal   bool
	UseMinRef        bool

	// AllVsAllSubtractSelf controls whether the all-vs-all formula
	// subtracts the query read's own length from both the target sum and
	// target count when forming the mean (spec §9 "Open questions").
	// Defaults to true, the more recent of the two formulations the
	// original implementation's history left ambiguous.
	AllVsAllSubtractSelf bool

	// Logger receives informational and debug messages. If nil, a
	// discard logger is used so library consumers aren't forced to see
	// output; the CLI wires a real one.
	Logger *logging.Logger
}

// DefaultConfig returns a Config populated with the defaults named in
// spec §6.
func DefaultConfig(input string) Config {
	return Config{
		Input:                input,
		Output:               "-",
		Target:               DefaultTargetReads,
		Query:                DefaultQueryReads,
		Platform:             Nanopore,
		Threads:              1,
		QLow:                 LowerQuantile,
		QHigh:                UpperQuantile,
		OverhangRatio:        DefaultOverhangRatio,
		OverlapThreshold:     DefaultOverlapThreshold,
		FilterInternal:       true,
		UseMinRef:            true,
		AllVsAllSubtractSelf: true,
	}
}

// Validate checks for genuinely ambiguous configuration combinations and
// returns a *Error with Kind BadConfig when found. Combinations that merely
// shrink the amount of work done (e.g. target+query exceeding the number of
// reads available) are left to the staging step to handle by truncation,
// per spec §6.
func (c Config) Validate() error {
	if c.Input == "" {
		return NewError(BadConfig, "input path must not be empty")
	}
	if c.QLow < 0 || c.QLow > 1 {
		return NewError(BadConfig, "q_low must be in [0, 1], got %v", c.QLow)
	}
	if c.QHigh < 0 || c.QHigh > 1 {
		return NewError(BadConfig, "q_high must be in [0, 1], got %v", c.QHigh)
	}
	if c.QLow > c.QHigh {
		return NewError(BadConfig, "q_low (%v) must not be greater than q_high (%v)", c.QLow, c.QHigh)
	}
	if c.OverhangRatio < 0 {
		return NewError(BadConfig, "overhang_ratio must be non-negative, got %v", c.OverhangRatio)
	}
	if c.Threads == 0 {
		return NewError(BadConfig, "threads must be at least 1")
	}
	if c.Num == nil && (c.Target == 0 || c.Query == 0) {
		return NewError(BadConfig, "target and query read counts must both be positive in two-set mode")
	}
	if c.Num != nil && *c.Num == 0 {
		return NewError(BadConfig, "num must be positive in all-vs-all mode")
	}
	return nil
}

// logger returns c.Logger, falling back to a logger with output disabled.
func (c Config) logger() *logging.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}

var discardLogger = newDiscardLogger()

func newDiscardLogger() *logging.Logger {
	l := logging.MustGetLogger("lrge")
	l.SetLevel(logging.CRITICAL, "lrge")
	return l
}
