// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/heic-to-jpeg/internal/heiftool"
	"github.com/pdiddy/heic-to-jpeg/internal/source"
	"github.com/pdiddy/heic-to-jpeg/pkg/types"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input extensions and the active decoder",
	Long: `Formats prints the file extensions recognized as HEIC/HEIF sources
(matched case-insensitively) and the decoder selected by --backend. For the
external backend it reports which tool was found on PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Extensions: %s\n", strings.Join(source.SupportedExtensions(), ", "))

		backend := types.CodecBackend(viper.GetString("backend"))
		switch backend {
		case types.BackendNative:
			fmt.Fprintln(w, "Decoder:    native (goheif)")
		case types.BackendExternal:
			tool, err := heiftool.Detect()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Decoder:    external (%s)\n", tool.Name())
		default:
			return usageError("unknown --backend %q: want native or external", backend)
		}
		fmt.Fprintln(w, "Encoder:    JPEG (imaging)")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
