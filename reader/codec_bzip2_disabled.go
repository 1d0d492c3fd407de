//go:build lrge_nobz2

package reader

import (
	"io"

	"github.com/mbhall88/lrge/errs"
)

func newBzip2Reader(io.Reader) (io.Reader, error) {
	return nil, errs.New(errs.UnsupportedCompression, "bzip2 support disabled at build time")
}
