// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/heic-to-jpeg/internal/heiftool"
)

// ToolCodec decodes by running an external tool (heif-convert or sips) that
// writes an intermediate PNG, then encodes JPEG in-process.
type ToolCodec struct {
	tool heiftool.Tool
}

// NewToolCodec creates a codec backed by tool.
func NewToolCodec(tool heiftool.Tool) *ToolCodec {
	return &ToolCodec{tool: tool}
}

// Register verifies the tool is still on PATH.
func (c *ToolCodec) Register() error {
	if !c.tool.Available() {
		return fmt.Errorf("%s not found on PATH", c.tool.Name())
	}
	return nil
}

// Decode converts path to a temporary PNG with the tool and decodes it.
// The temporary directory is removed before returning.
func (c *ToolCodec) Decode(path string) (image.Image, error) {
	tmpDir, err := os.MkdirTemp("", "heic-to-jpeg-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pngPath := filepath.Join(tmpDir, "decoded.png")
	if err := c.tool.ToPNG(path, pngPath); err != nil {
		return nil, err
	}

	f, err := os.Open(pngPath)
	if err != nil {
		return nil, fmt.Errorf("%s produced no output for %s: %w", c.tool.Name(), path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s output for %s: %w", c.tool.Name(), path, err)
	}
	return img, nil
}

// Encode writes img as JPEG.
func (c *ToolCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return encodeJPEG(w, img, quality)
}
