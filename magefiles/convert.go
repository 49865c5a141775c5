//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts every HEIC/HEIF file under input,
// writing JPEGs next to the sources.
func Convert(input string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, "--recursive", input)
}

// Formats builds the CLI and prints the supported extensions and decoder.
func Formats() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "formats")
}
