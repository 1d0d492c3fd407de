package reader

import (
	"io"

	"github.com/klauspost/pgzip"

	"github.com/mbhall88/lrge/errs"
)

// newGzipReader decodes gzip, including concatenated multi-member streams,
// transparently — pgzip.Reader defaults to MultiStream(true), matching the
// behaviour spec §4.1 requires.
func newGzipReader(r io.Reader) (io.Reader, error) {
	gz, err := pgzip.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(errs.Io, err, "opening gzip stream")
	}
	return gz, nil
}
