// Package mm2 wraps the minimap2 C library via cgo, following the shape of
// the minimap2-sys / mappy FFI that the Rust implementation this module was
// derived from built on (see https://github.com/lh3/minimap2/blob/master/python/mappy.pyx).
// A single Aligner owns exactly one index, built in one call, and frees it
// when Close is called. BuildIndex raises the index batch size above the
// reference's total length so minimap2 never splits the index into
// multiple parts, which would otherwise make overlap bookkeeping
// inconsistent across parts.
package mm2

/*
#cgo pkg-config: minimap2
#include <stdlib.h>
#include <string.h>
#include "minimap.h"

static mm_mapopt_t *mm2_new_mapopt() {
	return calloc(1, sizeof(mm_mapopt_t));
}

static mm_idxopt_t *mm2_new_idxopt() {
	return calloc(1, sizeof(mm_idxopt_t));
}

// The mm_reg1_t fields below are packed C bitfields; cgo cannot address
// individual bitfields from Go, so values are pulled out on the C side.
static int mm2_reg_rev(const mm_reg1_t *r)  { return r->rev; }
static int mm2_reg_inv(const mm_reg1_t *r)  { return r->inv; }
static int mm2_reg_mapq(const mm_reg1_t *r) { return r->mapq; }
static float mm2_reg_div(const mm_reg1_t *r) {
	return r->p ? r->p->div : 0.0f;
}
static const char *mm2_idx_seq_name(const mm_idx_t *idx, int32_t rid) {
	return idx->seq[rid].name;
}
static int32_t mm2_idx_seq_len(const mm_idx_t *idx, int32_t rid) {
	return idx->seq[rid].len;
}
*/
import "C"

import (
	"strconv"
	"sync"
	"unsafe"

	"github.com/mbhall88/lrge/errs"
)

// Mapping is one alignment hit produced by Map, in the same field layout
// minimap2 writes to PAF (spec §4.3).
type Mapping struct {
	TargetName  string
	TargetLen   int
	TargetStart int
	TargetEnd   int
	QueryLen    int
	QueryStart  int
	QueryEnd    int
	Strand      byte
	MatchLen    int
	BlockLen    int
	MapQ        int

	// Type of alignment: P/primary, S/secondary, I/i inversion.
	TP byte
	// Number of minimizers on the chain.
	CM int
	// Chaining score.
	S1 int
	// Approximate per-base sequence divergence.
	DV float64
}

// String renders the mapping as a single PAF line for the given query.
func (m Mapping) String(queryName string) string {
	dv := strconv.FormatFloat(m.DV, 'f', 4, 64)
	return queryName + "\t" +
		strconv.Itoa(m.QueryLen) + "\t" +
		strconv.Itoa(m.QueryStart) + "\t" +
		strconv.Itoa(m.QueryEnd) + "\t" +
		string(m.Strand) + "\t" +
		m.TargetName + "\t" +
		strconv.Itoa(m.TargetLen) + "\t" +
		strconv.Itoa(m.TargetStart) + "\t" +
		strconv.Itoa(m.TargetEnd) + "\t" +
		strconv.Itoa(m.MatchLen) + "\t" +
		strconv.Itoa(m.BlockLen) + "\t" +
		strconv.Itoa(m.MapQ) + "\t" +
		"tp:A:" + string(m.TP) + "\t" +
		"cm:i:" + strconv.Itoa(m.CM) + "\t" +
		"s1:i:" + strconv.Itoa(m.S1) + "\t" +
		"dv:f:" + dv
}

// Aligner owns one minimap2 index and the thread-local mapping buffer used
// to query it.
type Aligner struct {
	idxopt *C.mm_idxopt_t
	mapopt *C.mm_mapopt_t
	idx    *C.mm_idx_t

	mu   sync.Mutex // mm_map is not safe to call concurrently on one thread buffer
	tbuf *C.mm_tbuf_t
}

// New builds an Aligner configured with the named preset ("map-ont",
// "map-pb", "ava-ont" or "ava-pb"; see Platform.Preset). When dual is true,
// dual-alignment reporting is turned on so query/target pairs aren't
// silently skipped based on name ordering; when false it is turned off.
func New(preset string, dual bool) (*Aligner, error) {
	a := &Aligner{
		idxopt: C.mm2_new_idxopt(),
		mapopt: C.mm2_new_mapopt(),
	}

	cp := C.CString(preset)
	defer C.free(unsafe.Pointer(cp))
	if C.mm_set_opt(cp, a.idxopt, a.mapopt) < 0 {
		C.free(unsafe.Pointer(a.idxopt))
		C.free(unsafe.Pointer(a.mapopt))
		return nil, errs.New(errs.IndexBuild, "unknown minimap2 preset %q", preset)
	}

	if dual {
		a.mapopt.flag &^= C.MM_F_NO_DUAL
	} else {
		a.mapopt.flag |= C.MM_F_NO_DUAL
	}

	a.tbuf = C.mm_tbuf_init()
	return a, nil
}

// BuildIndex loads path (FASTA/FASTQ, optionally gzipped) and builds a
// minimap2 index from it in a single pass, using threads worker threads.
// referenceBytes should be an upper bound on the total sequence length in
// path; the index batch size is forced above it so minimap2 never splits
// the reference into multiple index parts, which would otherwise change
// pairing semantics downstream (spec §4.3, §9).
func (a *Aligner) BuildIndex(path string, threads int, referenceBytes uint64) error {
	a.idxopt.batch_size = C.uint64_t(referenceBytes + 1<<20)

	cp := C.CString(path)
	defer C.free(unsafe.Pointer(cp))

	reader := C.mm_idx_reader_open(cp, a.idxopt, nil)
	if reader == nil {
		return errs.New(errs.IndexBuild, "opening %s for indexing", path)
	}
	defer C.mm_idx_reader_close(reader)

	idx := C.mm_idx_reader_read(reader, C.int(threads))
	if idx == nil {
		return errs.New(errs.IndexBuild, "building minimap2 index from %s", path)
	}

	C.mm_mapopt_update(a.mapopt, idx)
	C.mm_idx_index_name(idx)
	a.idx = idx
	return nil
}

// Map aligns seq against the built index, returning one Mapping per hit.
// queryName is not passed to minimap2; it is the caller's responsibility to
// attach it to the returned Mappings when formatting PAF output.
func (a *Aligner) Map(seq []byte) ([]Mapping, error) {
	if a.idx == nil {
		return nil, errs.New(errs.Internal, "Map called before BuildIndex")
	}
	if len(seq) == 0 {
		return nil, errs.New(errs.InvalidRecord, "empty sequence")
	}

	cseq := C.CBytes(seq)
	defer C.free(cseq)

	var nRegs C.int

	a.mu.Lock()
	regs := C.mm_map(a.idx, C.int(len(seq)), (*C.char)(cseq), &nRegs, a.tbuf, a.mapopt, nil)
	a.mu.Unlock()

	if regs == nil || nRegs == 0 {
		return nil, nil
	}
	defer C.free(unsafe.Pointer(regs))

	mappings := make([]Mapping, 0, int(nRegs))
	regSlice := unsafe.Slice(regs, int(nRegs))
	for i := range regSlice {
		reg := &regSlice[i]

		targetName := C.GoString(C.mm2_idx_seq_name(a.idx, reg.rid))
		targetLen := int(C.mm2_idx_seq_len(a.idx, reg.rid))

		strand := byte('+')
		if C.mm2_reg_rev(reg) != 0 {
			strand = '-'
		}

		isSecondary := reg.id != reg.parent
		isInversion := C.mm2_reg_inv(reg) != 0
		tp := byte('S')
		switch {
		case !isSecondary && !isInversion:
			tp = 'P'
		case !isSecondary && isInversion:
			tp = 'I'
		case isSecondary && isInversion:
			tp = 'i'
		}

		mappings = append(mappings, Mapping{
			TargetName:  targetName,
			TargetLen:   targetLen,
			TargetStart: int(reg.rs),
			TargetEnd:   int(reg.re),
			QueryLen:    len(seq),
			QueryStart:  int(reg.qs),
			QueryEnd:    int(reg.qe),
			Strand:      strand,
			MatchLen:    int(reg.mlen),
			BlockLen:    int(reg.blen),
			MapQ:        int(C.mm2_reg_mapq(reg)),
			TP:          tp,
			CM:          int(reg.cnt),
			S1:          int(reg.score),
			DV:          float64(C.mm2_reg_div(reg)),
		})
		if reg.p != nil {
			C.free(unsafe.Pointer(reg.p))
		}
	}

	return mappings, nil
}

// Close frees the index and thread buffer. The Aligner must not be used
// afterwards.
func (a *Aligner) Close() {
	if a.idx != nil {
		C.mm_idx_destroy(a.idx)
		a.idx = nil
	}
	if a.tbuf != nil {
		C.mm_tbuf_destroy(a.tbuf)
		a.tbuf = nil
	}
	C.free(unsafe.Pointer(a.idxopt))
	C.free(unsafe.Pointer(a.mapopt))
}
