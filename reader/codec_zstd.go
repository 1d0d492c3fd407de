//go:build !lrge_nozstd

package reader

import (
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/mbhall88/lrge/errs"
)

func newZstdReader(r io.Reader) (io.Reader, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(errs.Io, err, "opening zstd stream")
	}
	return zr.IOReadCloser(), nil
}
