package lrge

import (
	"context"
	"io"
	"os"

	"github.com/shenwei356/go-logging"

	"github.com/mbhall88/lrge/align"
	"github.com/mbhall88/lrge/paf"
	"github.com/mbhall88/lrge/reader"
	"github.com/mbhall88/lrge/stage"
)

// DefaultAvaReads is the default subset size for the all-vs-all strategy,
// ported from liblrge's DEFAULT_AVA_NUM_READS.
const DefaultAvaReads = 25000

// AvaStrategy maps a single subset of reads against itself (spec §2). It
// is slightly more accurate than TwoSetStrategy but costs more memory and
// time, since every read is both a query and a potential target.
type AvaStrategy struct {
	input string

	numReads uint32

	threads  uint32
	seed     *uint64
	platform Platform

	overhangRatio    float64
	overlapThreshold uint32
	filterInternal   bool
	subtractSelf     bool

	tmpdir   string
	keepTemp bool

	logger *logging.Logger
}

// AvaBuilder builds an AvaStrategy, mirroring TwoSetBuilder's option chain.
type AvaBuilder struct {
	s AvaStrategy
}

// NewAvaBuilder returns an AvaBuilder populated with defaults.
func NewAvaBuilder() *AvaBuilder {
	return &AvaBuilder{s: AvaStrategy{
		numReads:         DefaultAvaReads,
		threads:          1,
		platform:         Nanopore,
		overhangRatio:    DefaultOverhangRatio,
		overlapThreshold: DefaultOverlapThreshold,
		filterInternal:   true,
		subtractSelf:     true,
		logger:           discardLogger,
	}}
}

func (b *AvaBuilder) NumReads(n uint32) *AvaBuilder  { b.s.numReads = n; return b }
func (b *AvaBuilder) Threads(n uint32) *AvaBuilder    { b.s.threads = n; return b }
func (b *AvaBuilder) Seed(seed uint64) *AvaBuilder    { b.s.seed = &seed; return b }
func (b *AvaBuilder) Platform(p Platform) *AvaBuilder { b.s.platform = p; return b }
func (b *AvaBuilder) OverhangRatio(r float64) *AvaBuilder {
	b.s.overhangRatio = r
	return b
}
func (b *AvaBuilder) OverlapThreshold(t uint32) *AvaBuilder {
	b.s.overlapThreshold = t
	return b
}
func (b *AvaBuilder) FilterInternal(on bool) *AvaBuilder { b.s.filterInternal = on; return b }
func (b *AvaBuilder) SubtractSelf(on bool) *AvaBuilder   { b.s.subtractSelf = on; return b }
func (b *AvaBuilder) TmpDir(dir string) *AvaBuilder      { b.s.tmpdir = dir; return b }
func (b *AvaBuilder) KeepTemp(on bool) *AvaBuilder       { b.s.keepTemp = on; return b }
func (b *AvaBuilder) Logger(l *logging.Logger) *AvaBuilder {
	if l != nil {
		b.s.logger = l
	}
	return b
}

// Build finalises the strategy for the given input path.
func (b *AvaBuilder) Build(input string) *AvaStrategy {
	s := b.s
	s.input = input
	return &s
}

// NewAvaStrategy builds an AvaStrategy from a Config (spec §6).
func NewAvaStrategy(cfg Config) *AvaStrategy {
	n := DefaultAvaReads
	if cfg.Num != nil {
		n = int(*cfg.Num)
	}
	b := NewAvaBuilder().
		NumReads(uint32(n)).
		Threads(cfg.Threads).
		Platform(cfg.Platform).
		OverhangRatio(cfg.OverhangRatio).
		OverlapThreshold(cfg.OverlapThreshold).
		FilterInternal(cfg.FilterInternal).
		SubtractSelf(cfg.AllVsAllSubtractSelf).
		TmpDir(cfg.TempDir).
		KeepTemp(cfg.KeepTemp).
		Logger(cfg.Logger)
	if cfg.Seed != nil {
		b.Seed(*cfg.Seed)
	}
	return b.Build(cfg.Input)
}

// GenerateEstimates implements Estimate. The staged subset is mapped
// against itself; for each read q_i, T is the subset minus q_i (spec
// §4.5), so the mean and count used in PerReadEstimate are adjusted
// per-read rather than fixed once, unlike TwoSetStrategy.
func (s *AvaStrategy) GenerateEstimates(ctx context.Context) ([]float64, uint32, error) {
	dir, cleanup, err := scopedTempDir(s.tmpdir, s.keepTemp)
	if err != nil {
		return nil, 0, err
	}
	defer cleanup()

	r, err := reader.Open(s.input)
	if err != nil {
		return nil, 0, err
	}
	defer r.Close()

	path, subset, totalBases, err := stage.One(r, int(s.numReads), s.seed, dir)
	if err != nil {
		return nil, 0, err
	}
	s.logger.Debugf("staged %d reads (%d bases) for all-vs-all overlap", subset.Len(), totalBases)

	driver, err := align.New(s.platform.Preset(), true, int(s.threads), s.logger)
	if err != nil {
		return nil, 0, err
	}
	defer driver.Close()

	if err := driver.BuildIndex(path, totalBases); err != nil {
		return nil, 0, err
	}

	var keep io.Writer
	if s.keepTemp {
		f, kerr := os.Create(dir + "/overlaps.paf")
		if kerr == nil {
			defer f.Close()
			keep = f
		}
	}

	records, errc := driver.Overlap(ctx, path, keep)

	filter := &paf.Filter{
		RemoveInternal:         s.filterInternal,
		InternalMatchThreshold: paf.DefaultInternalMatchThreshold,
		MaxOverhangRatio:       s.overhangRatio,
		DedupPairs:             true,
	}
	counts := &paf.OverlapCounts{}
	for rec := range records {
		if filter.Keep(rec) {
			counts.Add(rec)
		}
	}
	if err := drainErr(errc); err != nil {
		return nil, 0, err
	}

	n := subset.Len()
	if n == 0 {
		return nil, 0, NewError(BadConfig, "staged subset is empty, cannot form a mean target length")
	}

	ids := subset.Ids()
	estimates := make([]float64, 0, n)
	var noMapping uint32
	for _, id := range ids {
		qLen := subset.Length(id)
		overlaps := counts.Count(id)
		if overlaps == 0 {
			noMapping++
		}

		setSize := n - 1
		sumOthers, meanCount := totalBases, n
		if s.subtractSelf {
			sumOthers -= uint64(qLen)
			meanCount = setSize
		}
		var meanT float64
		if meanCount > 0 {
			meanT = float64(sumOthers) / float64(meanCount)
		}

		est := PerReadEstimate(qLen, setSize, meanT, overlaps, s.overlapThreshold)
		estimates = append(estimates, est)
	}

	if noMapping > 0 {
		percent := float64(noMapping) / float64(n) * 100
		s.logger.Infof("%d (%.2f%%) read(s) did not overlap any other read", noMapping, percent)
	}

	return estimates, noMapping, nil
}
