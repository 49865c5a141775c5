// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements HEIC/HEIF-to-JPEG conversion with pluggable
// codecs, for single files and for discovered batches.
package convert

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pdiddy/heic-to-jpeg/internal/source"
)

// Request describes one conversion.
type Request struct {
	// Source is the HEIC/HEIF file to read.
	Source string
	// Destination is the JPEG file to write.
	Destination string
	// Quality is passed to the encoder unchanged.
	Quality int
	// Overwrite replaces an existing destination instead of failing.
	Overwrite bool
}

// Converter runs the conversion pipeline with a codec injected at
// construction time. It is safe for concurrent use.
type Converter struct {
	codec    Codec
	register func() error
}

// New creates a Converter. If codec implements Registrar, Register runs once,
// before the first decode, and its result is reused by every later call.
func New(codec Codec) *Converter {
	return &Converter{
		codec: codec,
		register: sync.OnceValue(func() error {
			if r, ok := codec.(Registrar); ok {
				return r.Register()
			}
			return nil
		}),
	}
}

// Convert converts req.Source to JPEG at req.Destination and returns the
// destination path. Steps run in order and each must pass before the next:
//
//  1. the source must be an existing HEIC/HEIF regular file (ErrInvalidInput)
//  2. the destination must not exist unless Overwrite is set (ErrAlreadyExists)
//  3. the destination directory is created
//  4. the source is decoded
//  5. pixels are normalized to opaque RGB
//  6. the JPEG is written to a temp file and renamed over the destination
//
// Failures in steps 3-6 return ErrCodecFailure. A failed conversion never
// leaves a partial file at the destination.
func (c *Converter) Convert(req Request) (string, error) {
	if !source.IsConvertible(req.Source) {
		return "", invalidInput(req.Source)
	}

	if _, err := os.Lstat(req.Destination); err == nil && !req.Overwrite {
		return "", alreadyExists(req.Destination)
	}

	if err := os.MkdirAll(filepath.Dir(req.Destination), 0o755); err != nil {
		return "", codecFailure("creating output directory", req.Destination, err)
	}

	if err := c.register(); err != nil {
		return "", codecFailure("registering decoder", req.Source, err)
	}

	img, err := c.codec.Decode(req.Source)
	if err != nil {
		return "", codecFailure("decoding", req.Source, err)
	}

	rgb := normalizeRGB(img)

	err = writeAtomic(req.Destination, func(w io.Writer) error {
		return c.codec.Encode(w, rgb, req.Quality)
	})
	if err != nil {
		return "", codecFailure("encoding", req.Source, err)
	}

	return req.Destination, nil
}

// writeAtomic streams write's output into a hidden temp file next to path,
// then renames it into place. A regular file being replaced keeps its
// permission bits; a new file gets 0644. The temp file is removed on any
// failure.
func writeAtomic(path string, write func(io.Writer) error) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Lstat(path); err == nil && fi.Mode().IsRegular() {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, path, err)
	}
	committed = true
	return nil
}
