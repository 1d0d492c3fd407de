// Package reader opens a FASTA/FASTQ input stream, transparently
// decompressing it if needed, and yields records one at a time with bounded
// memory (spec §4.1).
package reader

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/mbhall88/lrge/errs"
)

// Record is one FASTA/FASTQ entry. Qual is nil for FASTA records.
type Record struct {
	ID     []byte
	Seq    []byte
	Qual   []byte
	Length int
}

// magic byte prefixes used to sniff compression, per spec §4.1.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

type format int

const (
	formatNone format = iota
	formatGzip
	formatZstd
	formatBzip2
	formatXz
)

func sniff(b []byte) format {
	switch {
	case bytes.HasPrefix(b, xzMagic):
		return formatXz
	case bytes.HasPrefix(b, zstdMagic):
		return formatZstd
	case bytes.HasPrefix(b, bzip2Magic):
		return formatBzip2
	case bytes.HasPrefix(b, gzipMagic):
		return formatGzip
	default:
		return formatNone
	}
}

// Reader yields Records from a single input, in file order, closing its
// underlying resources when Close is called.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer
	isFQ   bool
	primed bool
	line   int
}

// Open opens path (or stdin, if path is "-"), sniffs its compression format
// from the leading bytes, and returns a Reader ready to stream records.
// File-extension heuristics play no role; only magic bytes are consulted.
func Open(path string) (*Reader, error) {
	var f io.Reader
	var closer io.Closer

	if path == "-" {
		f = os.Stdin
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, errs.Wrap(errs.Io, err, "opening %s", path)
		}
		f = fh
		closer = fh
	}

	br := bufio.NewReaderSize(f, 64*1024)
	peek, err := br.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		if closer != nil {
			closer.Close()
		}
		return nil, errs.Wrap(errs.Io, err, "reading header of %s", path)
	}

	dec, err := decompress(br, sniff(peek))
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}

	return &Reader{br: bufio.NewReaderSize(dec, 64*1024), closer: closer}, nil
}

// Next returns the next record, or io.EOF when the stream is exhausted.
func (r *Reader) Next() (Record, error) {
	if !r.primed {
		b, err := r.br.Peek(1)
		if err != nil {
			if err == io.EOF {
				return Record{}, io.EOF
			}
			return Record{}, errs.Wrap(errs.Io, err, "reading input")
		}
		switch b[0] {
		case '@':
			r.isFQ = true
		case '>':
			r.isFQ = false
		default:
			return Record{}, errs.New(errs.InvalidRecord, "expected '>' or '@' at start of record, got %q", b[0])
		}
		r.primed = true
	}

	if r.isFQ {
		return r.nextFastq()
	}
	return r.nextFasta()
}

// Close releases the underlying file handle, if any (stdin is left open).
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func (r *Reader) readLine() ([]byte, error) {
	line, err := r.br.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	line = bytes.TrimRight(line, "\r\n")
	return line, err // err may be io.EOF with a non-empty final line
}

func splitID(header []byte) []byte {
	id := header
	if i := bytes.IndexAny(id, " \t"); i >= 0 {
		id = id[:i]
	}
	return id
}

func (r *Reader) nextFasta() (Record, error) {
	header, err := r.readLine()
	if err != nil && err != io.EOF {
		return Record{}, errs.Wrap(errs.Io, err, "reading FASTA header")
	}
	if len(header) == 0 {
		return Record{}, io.EOF
	}
	if header[0] != '>' {
		return Record{}, errs.New(errs.InvalidRecord, "expected '>' at start of FASTA record")
	}
	id := append([]byte{}, splitID(header[1:])...)

	var seq []byte
	for {
		peek, perr := r.br.Peek(1)
		if perr != nil || len(peek) == 0 || peek[0] == '>' {
			break
		}
		line, lerr := r.readLine()
		seq = append(seq, line...)
		if lerr == io.EOF {
			break
		}
	}

	if len(seq) == 0 {
		return Record{}, errs.New(errs.InvalidRecord, "truncated FASTA record %q: no sequence", id)
	}

	return Record{ID: id, Seq: seq, Length: len(seq)}, nil
}

func (r *Reader) nextFastq() (Record, error) {
	header, err := r.readLine()
	if err != nil && err != io.EOF {
		return Record{}, errs.Wrap(errs.Io, err, "reading FASTQ header")
	}
	if len(header) == 0 {
		return Record{}, io.EOF
	}
	if header[0] != '@' {
		return Record{}, errs.New(errs.InvalidRecord, "expected '@' at start of FASTQ record")
	}
	id := append([]byte{}, splitID(header[1:])...)

	seqLine, err := r.readLine()
	if err != nil && err != io.EOF {
		return Record{}, errs.Wrap(errs.Io, err, "reading FASTQ sequence for %q", id)
	}
	if len(seqLine) == 0 && err == io.EOF {
		return Record{}, errs.New(errs.InvalidRecord, "truncated FASTQ record %q: missing sequence line", id)
	}
	seq := append([]byte{}, seqLine...)

	plusLine, err := r.readLine()
	if err != nil && err != io.EOF {
		return Record{}, errs.Wrap(errs.Io, err, "reading FASTQ separator for %q", id)
	}
	if len(plusLine) == 0 || plusLine[0] != '+' {
		return Record{}, errs.New(errs.InvalidRecord, "truncated FASTQ record %q: missing '+' separator", id)
	}

	qualLine, err := r.readLine()
	if err != nil && err != io.EOF {
		return Record{}, errs.Wrap(errs.Io, err, "reading FASTQ quality for %q", id)
	}
	qual := append([]byte{}, qualLine...)
	if len(qual) != len(seq) {
		return Record{}, errs.New(errs.InvalidRecord, "truncated FASTQ record %q: quality length %d != sequence length %d", id, len(qual), len(seq))
	}

	return Record{ID: id, Seq: seq, Qual: qual, Length: len(seq)}, nil
}
