// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package heiftool detects and runs external HEIC/HEIF decoders. It backs
// the "external" codec for hosts where the in-process decoder is unavailable
// or undesired.
package heiftool

import (
	"fmt"
	"os/exec"
	"strings"
)

const (
	binHeifConvert = "heif-convert"
	binSips        = "sips"
)

// Tool converts a HEIC/HEIF file into a PNG file on disk.
type Tool interface {
	// Name returns the tool binary name ("heif-convert" or "sips").
	Name() string

	// Available reports whether the tool binary exists on PATH.
	Available() bool

	// ToPNG decodes src and writes a PNG image to dst.
	ToPNG(src, dst string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// tool implements Tool for one binary. The tools differ only in name and
// argument layout.
type tool struct {
	bin  string
	args func(src, dst string) []string
	exec executor
}

func (t *tool) Name() string { return t.bin }

func (t *tool) Available() bool {
	_, err := t.exec.LookPath(t.bin)
	return err == nil
}

func (t *tool) ToPNG(src, dst string) error {
	out, err := t.exec.Run(t.bin, t.args(src, dst)...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("running %s on %s: %w (%s)", t.bin, src, err, msg)
		}
		return fmt.Errorf("running %s on %s: %w", t.bin, src, err)
	}
	return nil
}

// newHeifConvert returns the libheif command-line decoder.
func newHeifConvert(exec executor) *tool {
	return &tool{
		bin:  binHeifConvert,
		args: func(src, dst string) []string { return []string{src, dst} },
		exec: exec,
	}
}

// newSips returns the macOS scriptable image processing tool.
func newSips(exec executor) *tool {
	return &tool{
		bin: binSips,
		args: func(src, dst string) []string {
			return []string{"-s", "format", "png", src, "--out", dst}
		},
		exec: exec,
	}
}

var defaultExec = &osExecutor{}

// Detect tries heif-convert first and falls back to sips. It returns an
// error if neither is on PATH.
func Detect() (Tool, error) {
	return detect(defaultExec)
}

func detect(exec executor) (Tool, error) {
	heif := newHeifConvert(exec)
	if heif.Available() {
		return heif, nil
	}

	sips := newSips(exec)
	if sips.Available() {
		return sips, nil
	}

	return nil, fmt.Errorf(
		"no HEIF decoder tool available: neither %s nor %s found on PATH",
		binHeifConvert, binSips,
	)
}
