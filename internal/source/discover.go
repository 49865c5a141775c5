// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Discover returns the convertible files under root, sorted by full path.
//
// A root that is itself a convertible file yields just that file. A directory
// yields its convertible children, or its whole subtree when recursive is set.
// Anything else yields an empty slice: a missing path, a non-HEIC file, a
// special file, or a directory that cannot be listed. Unreadable
// subdirectories of a recursive scan are skipped the same way.
func Discover(root string, recursive bool) []string {
	if IsConvertible(root) {
		return []string{root}
	}

	fi, err := os.Stat(root)
	if err != nil || !fi.IsDir() {
		return []string{}
	}

	files := listDir(root, recursive)
	sort.Strings(files)
	return files
}

// listDir returns the convertible children of dir, or an empty slice when dir
// cannot be read. When recursive is set it also descends into subdirectories.
// The root is read with os.ReadDir so a symlinked root directory is followed;
// links below it are not.
func listDir(dir string, recursive bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if recursive {
				files = append(files, walkTree(path)...)
			}
			continue
		}
		if IsConvertible(path) {
			files = append(files, path)
		}
	}
	return files
}

// walkTree collects convertible files below root. Unreadable directories
// are skipped.
func walkTree(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsConvertible(path) {
			files = append(files, path)
		}
		return nil
	})
	return files
}
