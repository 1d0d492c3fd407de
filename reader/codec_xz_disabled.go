//go:build lrge_noxz

package reader

import (
	"io"

	"github.com/mbhall88/lrge/errs"
)

func newXzReader(io.Reader) (io.Reader, error) {
	return nil, errs.New(errs.UnsupportedCompression, "xz support disabled at build time")
}
