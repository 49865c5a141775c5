// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CodecBackend identifies the HEIC/HEIF decoder used by the pipeline.
type CodecBackend string

const (
	// BackendNative decodes in-process with goheif.
	BackendNative CodecBackend = "native"
	// BackendExternal shells out to heif-convert or sips.
	BackendExternal CodecBackend = "external"
)

// ReportFormat selects how batch results are written.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportYAML ReportFormat = "yaml"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// ConversionConfig holds settings for a conversion run. Values come from
// flags, the config file, and HEIC_TO_JPEG_* environment variables.
type ConversionConfig struct {
	// Input is the HEIC/HEIF file or directory to convert.
	Input string `json:"input" yaml:"input"`

	// OutputDir overrides the destination directory. Empty means each JPEG
	// is written next to its source.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Quality is the JPEG quality (1-100). The pipeline passes it through
	// to the encoder unchanged; range checks happen in the CLI.
	Quality int `json:"quality" yaml:"quality"`

	// Recursive scans the whole subtree when Input is a directory.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// Overwrite replaces existing JPEG files instead of skipping them.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// Jobs is the number of files converted concurrently (default 1).
	Jobs int `json:"jobs" yaml:"jobs"`

	// Backend selects the decoder: native or external.
	Backend CodecBackend `json:"backend" yaml:"backend"`

	// Report selects the output format: text or yaml.
	Report ReportFormat `json:"report" yaml:"report"`
}
