// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source classifies HEIC/HEIF source files, derives their JPEG
// destinations, and discovers convertible files under a root path.
// Classification is by extension only; file contents are never sniffed.
package source

import (
	"os"
	"path/filepath"
	"strings"
)

// jpegExt is the extension of every derived destination.
const jpegExt = ".jpg"

// supportedExtensions lists the recognized source extensions (lowercase,
// with leading dot).
var supportedExtensions = map[string]bool{
	".heic": true,
	".heif": true,
}

// SupportedExtensions returns the recognized source extensions in sorted order.
func SupportedExtensions() []string {
	return []string{".heic", ".heif"}
}

// HasSupportedExtension reports whether path ends in a recognized extension,
// compared case-insensitively. It does not touch the filesystem.
func HasSupportedExtension(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsConvertible reports whether path is an existing regular file with a
// supported extension. Symlinks are followed; a dangling link is not
// convertible.
func IsConvertible(path string) bool {
	if !HasSupportedExtension(path) {
		return false
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// Destination returns the JPEG path for src: {dir}/{stem}.jpg, where dir is
// targetDir when non-empty and the directory containing src otherwise.
// It never consults the filesystem.
func Destination(src, targetDir string) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := targetDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, stem+jpegExt)
}
