// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsConvertible(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) string
		want  bool
	}{
		{
			name:  "lowercase heic",
			setup: func(t *testing.T, dir string) string { return writeFile(t, dir, "photo.heic") },
			want:  true,
		},
		{
			name:  "uppercase HEIC",
			setup: func(t *testing.T, dir string) string { return writeFile(t, dir, "photo.HEIC") },
			want:  true,
		},
		{
			name:  "heif",
			setup: func(t *testing.T, dir string) string { return writeFile(t, dir, "photo.heif") },
			want:  true,
		},
		{
			name:  "uppercase HEIF",
			setup: func(t *testing.T, dir string) string { return writeFile(t, dir, "photo.HEIF") },
			want:  true,
		},
		{
			name:  "mixed case extension",
			setup: func(t *testing.T, dir string) string { return writeFile(t, dir, "photo.HeIc") },
			want:  true,
		},
		{
			name:  "jpeg is not a source",
			setup: func(t *testing.T, dir string) string { return writeFile(t, dir, "photo.jpg") },
			want:  false,
		},
		{
			name:  "no extension",
			setup: func(t *testing.T, dir string) string { return writeFile(t, dir, "heic") },
			want:  false,
		},
		{
			name: "nonexistent path",
			setup: func(t *testing.T, dir string) string {
				return filepath.Join(dir, "missing.heic")
			},
			want: false,
		},
		{
			name: "directory with heic extension",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "album.heic")
				require.NoError(t, os.Mkdir(path, 0o755))
				return path
			},
			want: false,
		},
		{
			name: "dangling symlink",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "link.heic")
				require.NoError(t, os.Symlink(filepath.Join(dir, "gone.heic"), path))
				return path
			},
			want: false,
		},
		{
			name: "symlink to regular file",
			setup: func(t *testing.T, dir string) string {
				target := writeFile(t, dir, "real.heic")
				path := filepath.Join(dir, "link.heic")
				require.NoError(t, os.Symlink(target, path))
				return path
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t, t.TempDir())
			assert.Equal(t, tt.want, IsConvertible(path))
		})
	}
}

func TestHasSupportedExtension(t *testing.T) {
	assert.True(t, HasSupportedExtension("/a/b/IMG_0001.HEIC"))
	assert.True(t, HasSupportedExtension("x.heif"))
	assert.False(t, HasSupportedExtension("x.heic.bak"))
	assert.False(t, HasSupportedExtension("x.png"))
	assert.Equal(t, []string{".heic", ".heif"}, SupportedExtensions())
}

func TestDestination(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		targetDir string
		want      string
	}{
		{
			name: "next to source",
			src:  filepath.Join("photos", "IMG_0001.HEIC"),
			want: filepath.Join("photos", "IMG_0001.jpg"),
		},
		{
			name:      "target directory override",
			src:       filepath.Join("photos", "image.heic"),
			targetDir: filepath.Join("out", "converted"),
			want:      filepath.Join("out", "converted", "image.jpg"),
		},
		{
			name: "bare filename",
			src:  "image.heif",
			want: "image.jpg",
		},
		{
			name: "only final extension is replaced",
			src:  filepath.Join("a", "holiday.2024.heic"),
			want: filepath.Join("a", "holiday.2024.jpg"),
		},
		{
			name:      "absolute source with relative target",
			src:       "/data/in/pic.heic",
			targetDir: "out",
			want:      filepath.Join("out", "pic.jpg"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Destination(tt.src, tt.targetDir)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Destination(tt.src, tt.targetDir), "must be deterministic")
		})
	}
}

func TestDestinationDoesNotRequireTargetDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "not", "created", "yet")

	got := Destination(filepath.Join(dir, "a.heic"), target)

	assert.Equal(t, filepath.Join(target, "a.jpg"), got)
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err), "Destination must not create directories")
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "solo.HEIC")

	for _, recursive := range []bool{false, true} {
		got := Discover(path, recursive)
		assert.Equal(t, []string{path}, got)
	}
}

func TestDiscoverOrderingAndFiltering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.heic")
	writeFile(t, dir, "a.heic")
	writeFile(t, dir, "c.txt")

	got := Discover(dir, false)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.heic"),
		filepath.Join(dir, "b.heic"),
	}, got)
}

func TestDiscoverRecursion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.heic")
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))
	writeFile(t, nested, "b.heic")
	deeper := filepath.Join(nested, "deeper")
	require.NoError(t, os.Mkdir(deeper, 0o755))
	writeFile(t, deeper, "c.HEIF")
	writeFile(t, deeper, "notes.md")

	flat := Discover(dir, false)
	assert.Equal(t, []string{filepath.Join(dir, "a.heic")}, flat)

	all := Discover(dir, true)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.heic"),
		filepath.Join(nested, "b.heic"),
		filepath.Join(deeper, "c.HEIF"),
	}, all)
}

func TestDiscoverMixedExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.heic")
	writeFile(t, dir, "b.heif")
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))
	writeFile(t, nested, "c.heic")

	got := Discover(dir, false)
	assert.Equal(t, []string{filepath.Join(dir, "a.heic"), filepath.Join(dir, "b.heif")}, got)
}

func TestDiscoverEmptyResults(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name:  "nonexistent root",
			setup: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
		},
		{
			name:  "non-heic file root",
			setup: func(t *testing.T) string { return writeFile(t, t.TempDir(), "notes.txt") },
		},
		{
			name:  "empty directory",
			setup: func(t *testing.T) string { return t.TempDir() },
		},
		{
			name: "directory without matches",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "a.png")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.heic"), 0o755))
				return dir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, recursive := range []bool{false, true} {
				got := Discover(tt.setup(t), recursive)
				assert.Empty(t, got)
				assert.NotNil(t, got)
			}
		})
	}
}

func TestDiscoverSymlinkedRoot(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(target, 0o755))
	writeFile(t, target, "a.heic")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	got := Discover(link, true)
	assert.Equal(t, []string{filepath.Join(link, "a.heic")}, got)
}

func TestDiscoverUnreadableRoot(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, "a.heic")
	require.NoError(t, os.Chmod(dir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	for _, recursive := range []bool{false, true} {
		got := Discover(dir, recursive)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	}
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}
