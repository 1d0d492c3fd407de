// Package stage reservoir-samples a bounded subset of reads from a
// reader.Reader and writes them to an uncompressed single-line FASTA file,
// ready to hand to the native aligner (spec §4.2).
package stage

import (
	"bufio"
	"bytes"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/mbhall88/lrge/errs"
	"github.com/mbhall88/lrge/reader"
	"github.com/mbhall88/lrge/sample"
)

// ReadSubset is an insertion-ordered mapping from read id to read length
// (spec §3). Membership is fixed once staging completes.
type ReadSubset struct {
	ids  []string
	lens map[string]int
}

func newReadSubset(n int) *ReadSubset {
	return &ReadSubset{ids: make([]string, 0, n), lens: make(map[string]int, n)}
}

func (s *ReadSubset) add(id string, length int) {
	if _, ok := s.lens[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.lens[id] = length
}

// Ids returns the subset's member ids, in the order they were staged.
func (s *ReadSubset) Ids() []string { return s.ids }

// Length returns the recorded length of id, or 0 if id is not a member.
func (s *ReadSubset) Length(id string) int { return s.lens[id] }

// Len returns the number of reads in the subset.
func (s *ReadSubset) Len() int { return len(s.ids) }

type stagedRead struct {
	id  string
	seq []byte
}

func validateID(id []byte) error {
	if bytes.IndexByte(id, 0) >= 0 {
		return errs.New(errs.InvalidId, "read id %q contains a NUL byte, incompatible with the native aligner", id)
	}
	return nil
}

func newRNG(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewSource(rand.Int63()))
	}
	return rand.New(rand.NewSource(int64(*seed)))
}

func writeFasta(path string, reads []stagedRead) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.Io, err, "creating staged FASTA file %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, r := range reads {
		if _, err := w.WriteString(">" + r.id + "\n"); err != nil {
			return errs.Wrap(errs.Io, err, "writing staged record for %q", r.id)
		}
		if _, err := w.Write(r.seq); err != nil {
			return errs.Wrap(errs.Io, err, "writing staged sequence for %q", r.id)
		}
		if err := w.WriteByte('\n'); err != nil {
			return errs.Wrap(errs.Io, err, "writing staged sequence for %q", r.id)
		}
	}
	if err := w.Flush(); err != nil {
		return errs.Wrap(errs.Io, err, "flushing staged FASTA file %s", path)
	}
	return nil
}

// One reservoir-samples up to k reads from r in a single pass and writes
// them to staged.fasta inside dir, for the all-vs-all strategy.
func One(r *reader.Reader, k int, seed *uint64, dir string) (path string, subset *ReadSubset, totalBases uint64, err error) {
	rng := newRNG(seed)
	reservoir := sample.NewReservoir[stagedRead](k, rng)

	for {
		rec, rerr := r.Next()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", nil, 0, rerr
		}
		id := string(rec.ID)
		if verr := validateID(rec.ID); verr != nil {
			return "", nil, 0, verr
		}
		reservoir.Offer(stagedRead{id: id, seq: append([]byte{}, rec.Seq...)})
	}

	reads := reservoir.Values()
	path = filepath.Join(dir, "staged.fasta")
	if err := writeFasta(path, reads); err != nil {
		return "", nil, 0, err
	}

	subset = newReadSubset(len(reads))
	for _, rd := range reads {
		subset.add(rd.id, len(rd.seq))
		totalBases += uint64(len(rd.seq))
	}

	return path, subset, totalBases, nil
}

// Two performs a single pass over r, partitioning records into a target
// reservoir of size kTarget and a disjoint query reservoir of size kQuery
// via a deterministic per-record coin flip (spec §4.2), writing each to its
// own FASTA file inside dir.
func Two(r *reader.Reader, kTarget, kQuery int, seed *uint64, dir string) (
	targetPath string, target *ReadSubset, targetBases uint64,
	queryPath string, query *ReadSubset, queryBases uint64,
	err error,
) {
	rng := newRNG(seed)
	partition := sample.NewTwoPartition[stagedRead](kTarget, kQuery, rng)

	for {
		rec, rerr := r.Next()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", nil, 0, "", nil, 0, rerr
		}
		id := string(rec.ID)
		if verr := validateID(rec.ID); verr != nil {
			return "", nil, 0, "", nil, 0, verr
		}
		partition.Offer(stagedRead{id: id, seq: append([]byte{}, rec.Seq...)})
	}

	targetReads := partition.First()
	queryReads := partition.Second()

	targetPath = filepath.Join(dir, "target.fasta")
	if err := writeFasta(targetPath, targetReads); err != nil {
		return "", nil, 0, "", nil, 0, err
	}
	queryPath = filepath.Join(dir, "query.fasta")
	if err := writeFasta(queryPath, queryReads); err != nil {
		return "", nil, 0, "", nil, 0, err
	}

	target = newReadSubset(len(targetReads))
	for _, rd := range targetReads {
		target.add(rd.id, len(rd.seq))
		targetBases += uint64(len(rd.seq))
	}
	query = newReadSubset(len(queryReads))
	for _, rd := range queryReads {
		query.add(rd.id, len(rd.seq))
		queryBases += uint64(len(rd.seq))
	}

	return targetPath, target, targetBases, queryPath, query, queryBases, nil
}
