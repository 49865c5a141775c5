// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the heic-to-jpeg CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// Exit codes. Each run outcome maps to its own code.
const (
	exitOK            = 0
	exitNoneConverted = 1
	exitUsage         = 2
	exitNoInput       = 3
)

// exitError carries a process exit code out of a command. msg, when set,
// is printed to stderr.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func usageError(format string, args ...any) error {
	return &exitError{code: exitUsage, msg: fmt.Sprintf(format, args...)}
}

// rootCmd converts its single argument and hosts the helper subcommands.
var rootCmd = &cobra.Command{
	Use:   "heic-to-jpeg <input>",
	Short: "Convert HEIC/HEIF images to JPEG format",
	Long: `heic-to-jpeg converts a HEIC/HEIF file, or every HEIC/HEIF file in a
directory, to JPEG. Each JPEG keeps the source's file name with a .jpg
extension and is written next to the source unless --output-dir is given.

Existing JPEG files are skipped unless --overwrite is set. Settings may also
come from a YAML config file or HEIC_TO_JPEG_* environment variables.

Exit status is 0 when at least one file was converted, 1 when files were
found but none converted, 2 for usage errors, and 3 when no HEIC/HEIF files
were found.`,
	Args:          exactlyOneInput,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

// exactlyOneInput rejects any argument count other than one input path.
func exactlyOneInput(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageError("%s requires exactly one input path, received %d", cmd.Name(), len(args))
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./heic-to-jpeg.yaml or ~/.config/heic-to-jpeg/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("heic-to-jpeg")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "heic-to-jpeg"))
		}
	}

	viper.SetEnvPrefix("HEIC_TO_JPEG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// exitCode prints err, if any, and returns the process exit status for it.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(os.Stderr, ee.msg)
		}
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return exitNoneConverted
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}
