package reader

import "io"

// decompress wraps r in the decoder matching f, or returns r unchanged for
// formatNone. Per-codec constructors live in codec_*.go files, each
// guarded by a build tag that lets a minimal build disable the codec; a
// disabled codec still gets recognised by sniff but fails with
// UnsupportedCompression instead of silently falling through.
func decompress(r io.Reader, f format) (io.Reader, error) {
	switch f {
	case formatGzip:
		return newGzipReader(r)
	case formatZstd:
		return newZstdReader(r)
	case formatBzip2:
		return newBzip2Reader(r)
	case formatXz:
		return newXzReader(r)
	default:
		return r, nil
	}
}
