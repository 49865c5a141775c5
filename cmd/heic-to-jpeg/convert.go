// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/heic-to-jpeg/internal/convert"
	"github.com/pdiddy/heic-to-jpeg/internal/heiftool"
	"github.com/pdiddy/heic-to-jpeg/pkg/types"
)

func init() {
	f := rootCmd.Flags()
	f.StringP("output-dir", "o", "", "directory where converted JPEG files are saved")
	f.IntP("quality", "q", types.DefaultQuality, "JPEG quality from 1 to 100")
	f.BoolP("recursive", "r", false, "when input is a directory, scan recursively")
	f.Bool("overwrite", false, "overwrite existing JPEG files")
	f.IntP("jobs", "j", 1, "number of files to convert concurrently")
	f.String("report", string(types.ReportText), "report format: text or yaml")

	rootCmd.PersistentFlags().String("backend", string(types.BackendNative), "decoder backend: native (goheif) or external (heif-convert/sips)")

	for _, name := range []string{"output-dir", "quality", "recursive", "overwrite", "jobs", "report"} {
		_ = viper.BindPFlag(configKey(name), f.Lookup(name))
	}
	_ = viper.BindPFlag("backend", rootCmd.PersistentFlags().Lookup("backend"))
}

// configKey maps a flag name to its config file key (and, with the
// HEIC_TO_JPEG_ prefix, its environment variable).
func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// loadConfig resolves flags, config file, and environment into a
// ConversionConfig for input.
func loadConfig(input string) types.ConversionConfig {
	return types.ConversionConfig{
		Input:     input,
		OutputDir: viper.GetString("output_dir"),
		Quality:   viper.GetInt("quality"),
		Recursive: viper.GetBool("recursive"),
		Overwrite: viper.GetBool("overwrite"),
		Jobs:      viper.GetInt("jobs"),
		Backend:   types.CodecBackend(viper.GetString("backend")),
		Report:    types.ReportFormat(viper.GetString("report")),
	}
}

// validateConfig rejects settings the pipeline does not check itself.
func validateConfig(cfg types.ConversionConfig) error {
	if cfg.Quality < 1 || cfg.Quality > 100 {
		return usageError("--quality must be between 1 and 100 (got %d)", cfg.Quality)
	}
	if cfg.Jobs < 1 {
		return usageError("--jobs must be at least 1 (got %d)", cfg.Jobs)
	}
	switch cfg.Backend {
	case types.BackendNative, types.BackendExternal:
	default:
		return usageError("unknown --backend %q: want native or external", cfg.Backend)
	}
	switch cfg.Report {
	case types.ReportText, types.ReportYAML:
	default:
		return usageError("unknown --report %q: want text or yaml", cfg.Report)
	}
	return nil
}

// newCodec builds the codec for backend. The external backend requires
// heif-convert or sips on PATH.
func newCodec(backend types.CodecBackend) (convert.Codec, error) {
	if backend == types.BackendExternal {
		tool, err := heiftool.Detect()
		if err != nil {
			return nil, err
		}
		return convert.NewToolCodec(tool), nil
	}
	return convert.NewNativeCodec(), nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(args[0])
	if err := validateConfig(cfg); err != nil {
		return err
	}

	codec, err := newCodec(cfg.Backend)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	progress := out
	if cfg.Report == types.ReportYAML {
		progress = io.Discard
	}

	result := convert.New(codec).Run(cmd.Context(), cfg, progress)

	if cfg.Report == types.ReportYAML {
		if err := convert.WriteYAML(out, result); err != nil {
			return err
		}
	}

	return outcomeError(result.Outcome())
}

// outcomeError maps a run outcome to the error that carries its exit code.
func outcomeError(o types.Outcome) error {
	switch o {
	case types.OutcomeNoInput:
		return &exitError{code: exitNoInput, msg: "No HEIC/HEIF files found."}
	case types.OutcomeNoneConverted:
		return &exitError{code: exitNoneConverted}
	}
	return nil
}
