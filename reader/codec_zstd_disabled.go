//go:build lrge_nozstd

package reader

import (
	"io"

	"github.com/mbhall88/lrge/errs"
)

func newZstdReader(io.Reader) (io.Reader, error) {
	return nil, errs.New(errs.UnsupportedCompression, "zstd support disabled at build time")
}
