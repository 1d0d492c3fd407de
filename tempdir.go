package lrge

import "os"

// scopedTempDir returns a directory to stage intermediate files in, plus a
// cleanup function. If dir is non-empty it is used as-is and never removed
// (the caller owns it, per spec §4.2's tmpdir option); otherwise a fresh
// temp directory is created and, unless keep is set, removed by cleanup.
func scopedTempDir(dir string, keep bool) (path string, cleanup func(), err error) {
	if dir != "" {
		return dir, func() {}, nil
	}

	path, err = os.MkdirTemp("", "lrge-*")
	if err != nil {
		return "", nil, WrapError(Io, err, "creating scoped temporary directory")
	}
	if keep {
		return path, func() {}, nil
	}
	return path, func() { os.RemoveAll(path) }, nil
}
