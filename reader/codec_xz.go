//go:build !lrge_noxz

package reader

import (
	"io"

	"github.com/ulikunitz/xz"

	"github.com/mbhall88/lrge/errs"
)

func newXzReader(r io.Reader) (io.Reader, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(errs.Io, err, "opening xz stream")
	}
	return xr, nil
}
