package lrge

// Default configuration values, per spec §6.
const (
	// DefaultTargetReads is the default number of target reads sampled
	// for the two-set strategy.
	DefaultTargetReads = 10000
	// DefaultQueryReads is the default number of query reads sampled for
	// the two-set strategy.
	DefaultQueryReads = 5000

	// LowerQuantile and UpperQuantile bound the default reported
	// estimate interval.
	LowerQuantile = 0.15
	UpperQuantile = 0.65

	// DefaultOverhangRatio is the default maximum ratio of overhanging
	// sequence, relative to alignment block length, tolerated before an
	// overlap is dropped as a likely chimera or mismapping.
	DefaultOverhangRatio = 0.2
	// DefaultOverlapThreshold is the default overlap threshold OT, in
	// bases, that PerReadEstimate subtracts twice from |q|+mean_T. The
	// internal-match filter uses paf.DefaultInternalMatchThreshold instead.
	DefaultOverlapThreshold = 100
)
