// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package archive

import (
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nlepage/go-tarfs"
	"github.com/spf13/afero"
)

// Unpack extracts the gzipped tarball at source into dest. Extraction goes
// through an fs.FS view of the tarball, which rejects entries that would
// escape dest. Artist workstations run Windows as often as Linux, so no
// external tar binary is involved.
func Unpack(afs afero.Fs, source string, dest string) error {
	f, err := afs.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s is not a gzipped tarball: %w", source, err)
	}
	defer gz.Close()

	tfs, err := tarfs.New(gz)
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", source, err)
	}

	return fs.WalkDir(tfs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dest, filepath.FromSlash(path))

		if d.IsDir() {
			return afs.MkdirAll(target, 0o755)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		in, err := tfs.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := afs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}
