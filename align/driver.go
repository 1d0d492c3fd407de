// Package align builds a minimap2 index over one staged read set and
// streams another against it, producing filtered-ready paf.Record values
// (spec §4.3, component C3).
package align

import (
	"context"
	"io"
	"sync"

	"github.com/shenwei356/go-logging"

	"github.com/mbhall88/lrge/internal/mm2"
	"github.com/mbhall88/lrge/paf"
	"github.com/mbhall88/lrge/reader"
)

// Driver owns a single native minimap2 index and streams a query file
// against it on demand.
type Driver struct {
	aligner *mm2.Aligner
	threads int
	logger  *logging.Logger
}

// New builds a Driver using the given minimap2 preset ("ava-ont" or
// "ava-pb"). When dual is true, dual-alignment reporting is turned on so
// query/target pairs aren't silently skipped on lexicographic name order
// (spec §4.3); when false it is turned off. threads
// sizes both the index-build worker pool and the PAF-decoding worker pool.
// A nil logger discards everything.
func New(preset string, dual bool, threads int, logger *logging.Logger) (*Driver, error) {
	aligner, err := mm2.New(preset, dual)
	if err != nil {
		return nil, err
	}
	if threads < 1 {
		threads = 1
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Driver{aligner: aligner, threads: threads, logger: logger}, nil
}

// BuildIndex builds the reference index from refPath in one pass, sized to
// hold refBytes of sequence in a single index part (spec §4.3, §9).
func (d *Driver) BuildIndex(refPath string, refBytes uint64) error {
	return d.aligner.BuildIndex(refPath, d.threads, refBytes)
}

// Close frees the native index. The Driver must not be used afterwards.
func (d *Driver) Close() {
	d.aligner.Close()
}

// Overlap streams qryPath against the built index and returns a channel of
// parsed (not yet filtered) paf.Record values plus a channel carrying at most one fatal
// error (a failure to open or read qryPath; per-line parse failures are
// logged and dropped, never surfaced here). The returned record channel is
// closed once the query stream and every decoding worker have finished, or
// once ctx is cancelled. If keep is non-nil, every formatted PAF line is
// also written there before parsing, for --keep-temp persistence (spec
// §4.3 "Persisted PAF").
func (d *Driver) Overlap(ctx context.Context, qryPath string, keep io.Writer) (<-chan paf.Record, <-chan error) {
	out := make(chan paf.Record, 256)
	errc := make(chan error, 1)
	lines := make(chan string, 256)

	var keepMu sync.Mutex

	go func() {
		defer close(lines)

		r, err := reader.Open(qryPath)
		if err != nil {
			errc <- err
			return
		}
		defer r.Close()

		for {
			if ctx.Err() != nil {
				return
			}

			rec, rerr := r.Next()
			if rerr == io.EOF {
				return
			}
			if rerr != nil {
				errc <- rerr
				return
			}

			mappings, merr := d.aligner.Map(rec.Seq)
			if merr != nil {
				d.logger.Debugf("mapping read %q: %v", rec.ID, merr)
				continue
			}

			queryName := string(rec.ID)
			for _, m := range mappings {
				line := m.String(queryName)
				if keep != nil {
					keepMu.Lock()
					io.WriteString(keep, line+"\n")
					keepMu.Unlock()
				}
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(d.threads)
	for i := 0; i < d.threads; i++ {
		go func() {
			defer wg.Done()
			for line := range lines {
				rec, perr := paf.Parse(line)
				if perr != nil {
					d.logger.Debugf("dropping unparsable PAF line: %v", perr)
					continue
				}
				select {
				case out <- rec:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, errc
}

func discardLogger() *logging.Logger {
	l := logging.MustGetLogger("lrge/align")
	l.SetLevel(logging.CRITICAL, "lrge/align")
	return l
}
