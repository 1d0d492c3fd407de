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

// Estimate is satisfied by every strategy: stage a read subset (or two),
// map it against an index, filter and count the resulting overlaps, and
// return one genome-size estimate per query read (spec §2, §4.5).
type Estimate interface {
	// GenerateEstimates runs the strategy end to end and returns the
	// per-read estimates plus the number of query reads that had zero
	// retained overlaps.
	GenerateEstimates(ctx context.Context) (estimates []float64, noMappingCount uint32, err error)
}

// TwoSetStrategy stages two disjoint subsets, target and query, and maps
// one against the other (spec §2). The target subset is the index side,
// unless useMinRef is set and the query subset has fewer total bases, in
// which case the two swap roles and estimates are made for the target
// reads. It is the default, cheaper strategy.
type TwoSetStrategy struct {
	input string

	targetNumReads uint32
	queryNumReads  uint32

	threads uint32
	seed    *uint64
	platform Platform

	overhangRatio    float64
	overlapThreshold uint32
	filterInternal   bool
	useMinRef        bool

	tmpdir   string
	keepTemp bool

	logger *logging.Logger
}

// TwoSetBuilder builds a TwoSetStrategy using the teacher's functional
// option-chain idiom, field names and defaults adapted from
// liblrge/src/twoset.rs's Builder.
type TwoSetBuilder struct {
	s TwoSetStrategy
}

// NewTwoSetBuilder returns a TwoSetBuilder populated with spec §6 defaults.
func NewTwoSetBuilder() *TwoSetBuilder {
	return &TwoSetBuilder{s: TwoSetStrategy{
		targetNumReads:   DefaultTargetReads,
		queryNumReads:    DefaultQueryReads,
		threads:          1,
		platform:         Nanopore,
		overhangRatio:    DefaultOverhangRatio,
		overlapThreshold: DefaultOverlapThreshold,
		filterInternal:   true,
		useMinRef:        true,
		logger:           discardLogger,
	}}
}

func (b *TwoSetBuilder) Target(n uint32) *TwoSetBuilder  { b.s.targetNumReads = n; return b }
func (b *TwoSetBuilder) Query(n uint32) *TwoSetBuilder   { b.s.queryNumReads = n; return b }
func (b *TwoSetBuilder) Threads(n uint32) *TwoSetBuilder { b.s.threads = n; return b }
func (b *TwoSetBuilder) Seed(seed uint64) *TwoSetBuilder { b.s.seed = &seed; return b }
func (b *TwoSetBuilder) Platform(p Platform) *TwoSetBuilder {
	b.s.platform = p
	return b
}
func (b *TwoSetBuilder) OverhangRatio(r float64) *TwoSetBuilder { b.s.overhangRatio = r; return b }
func (b *TwoSetBuilder) OverlapThreshold(t uint32) *TwoSetBuilder {
	b.s.overlapThreshold = t
	return b
}
func (b *TwoSetBuilder) FilterInternal(on bool) *TwoSetBuilder { b.s.filterInternal = on; return b }
func (b *TwoSetBuilder) UseMinRef(on bool) *TwoSetBuilder      { b.s.useMinRef = on; return b }
func (b *TwoSetBuilder) TmpDir(dir string) *TwoSetBuilder      { b.s.tmpdir = dir; return b }
func (b *TwoSetBuilder) KeepTemp(on bool) *TwoSetBuilder       { b.s.keepTemp = on; return b }
func (b *TwoSetBuilder) Logger(l *logging.Logger) *TwoSetBuilder {
	if l != nil {
		b.s.logger = l
	}
	return b
}

// Build finalises the strategy for the given input path.
func (b *TwoSetBuilder) Build(input string) *TwoSetStrategy {
	s := b.s
	s.input = input
	return &s
}

// NewTwoSetStrategy builds a TwoSetStrategy from a Config (spec §6), the
// boundary the CLI front end hands the engine.
func NewTwoSetStrategy(cfg Config) *TwoSetStrategy {
	b := NewTwoSetBuilder().
		Target(cfg.Target).
		Query(cfg.Query).
		Threads(cfg.Threads).
		Platform(cfg.Platform).
		OverhangRatio(cfg.OverhangRatio).
		OverlapThreshold(cfg.OverlapThreshold).
		FilterInternal(cfg.FilterInternal).
		UseMinRef(cfg.UseMinRef).
		TmpDir(cfg.TempDir).
		KeepTemp(cfg.KeepTemp).
		Logger(cfg.Logger)
	if cfg.Seed != nil {
		b.Seed(*cfg.Seed)
	}
	return b.Build(cfg.Input)
}

// GenerateEstimates implements Estimate.
func (s *TwoSetStrategy) GenerateEstimates(ctx context.Context) ([]float64, uint32, error) {
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

	targetPath, target, targetBases, queryPath, query, queryBases, err := stage.Two(
		r, int(s.targetNumReads), int(s.queryNumReads), s.seed, dir)
	if err != nil {
		return nil, 0, err
	}
	s.logger.Debugf("staged %d target reads (%d bases), %d query reads (%d bases)",
		target.Len(), targetBases, query.Len(), queryBases)

	refPath, refSet, refBases := targetPath, target, targetBases
	qryPath, qrySet := queryPath, query
	if s.useMinRef && queryBases < targetBases {
		refPath, refSet, refBases = queryPath, query, queryBases
		qryPath, qrySet = targetPath, target
		s.logger.Debugf("query set has fewer bases than target; using it as the minimap2 reference")
	}

	driver, err := align.New(s.platform.Preset(), true, int(s.threads), s.logger)
	if err != nil {
		return nil, 0, err
	}
	defer driver.Close()

	if err := driver.BuildIndex(refPath, refBases); err != nil {
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

	records, errc := driver.Overlap(ctx, qryPath, keep)

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

	if refSet.Len() == 0 {
		return nil, 0, NewError(BadConfig, "target subset is empty, cannot form a mean target length")
	}
	meanT := float64(refBases) / float64(refSet.Len())

	ids := qrySet.Ids()
	estimates := make([]float64, 0, len(ids))
	var noMapping uint32
	for _, id := range ids {
		overlaps := counts.Count(id)
		if overlaps == 0 {
			noMapping++
		}
		est := PerReadEstimate(qrySet.Length(id), refSet.Len(), meanT, overlaps, s.overlapThreshold)
		estimates = append(estimates, est)
	}

	if noMapping > 0 {
		percent := float64(noMapping) / float64(len(ids)) * 100
		s.logger.Infof("%d (%.2f%%) query read(s) did not overlap any target reads", noMapping, percent)
	}

	return estimates, noMapping, nil
}

func drainErr(errc <-chan error) error {
	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}
