// Copyright (C) 2021-2023, Loomworks, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/spf13/afero"
)

// Checksummer digests a file on disk. Registry indexes publish hex-encoded
// sha256 digests, so that is what we hand back.
type Checksummer interface {
	Checksum(path string) (string, error)
}

var _ Checksummer = &SHA256{}

func NewSHA256(fs afero.Fs) *SHA256 {
	return &SHA256{
		h:  sha256.New(),
		fs: fs,
	}
}

type SHA256 struct {
	h  hash.Hash
	fs afero.Fs
}

func (s *SHA256) Checksum(path string) (string, error) {
	defer s.h.Reset()

	f, err := s.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for checksumming: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(s.h, f); err != nil {
		return "", fmt.Errorf("failed to read %s while checksumming: %w", path, err)
	}

	return hex.EncodeToString(s.h.Sum(nil)), nil
}
