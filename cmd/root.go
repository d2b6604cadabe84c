// Package cmd provides the CLI commands for Lifeledger.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/lifeledger/internal/config"
	"github.com/manav03panchal/lifeledger/internal/output"
	"github.com/manav03panchal/lifeledger/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat    string
	flagColor     string
	flagDebug     bool
	flagConfigDir string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lifeledger",
	Short: "A local-first personal organizer",
	Long: `Lifeledger keeps your goals, tasks, notes, calendar, journal, habits
and money in one local database, with stats derived on every read.

Examples:
  lifeledger task add "Pay rent" --due tomorrow
  lifeledger habit check meditate
  lifeledger finance tx add 12.50 --type expense --category food
  lifeledger today
  lifeledger export -o backup.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for commands that never touch the store
		if skipsRuntime(cmd) {
			return nil
		}

		opts := runtime.DefaultOptions()
		opts.Format = output.ParseFormat(flagFormat)
		opts.ColorMode = output.ParseColorMode(flagColor)
		opts.Debug = flagDebug
		opts.Writer = cmd.OutOrStdout()
		if flagConfigDir != "" {
			opts.ConfigDir = flagConfigDir
		}

		var err error
		ctx, err = runtime.New(opts)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeContext()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today's agenda
		return runToday(cmd, args)
	},
}

// skipsRuntime reports whether cmd runs without opening the database.
func skipsRuntime(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "completion", "help", "version":
		return true
	}
	return cmd.Annotations["runtime"] == "none"
}

func closeContext() error {
	if ctx == nil {
		return nil
	}
	err := ctx.Close()
	ctx = nil
	return err
}

// Execute runs the root command and reports any error on stderr (or as
// JSON when --format json is set).
func Execute() error {
	err := run()
	if err != nil {
		reportError(rootCmd, err)
	}
	return err
}

// run executes the root command, closing the runtime even when a command
// fails and post-run hooks are skipped.
func run() error {
	defer closeContext()
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		fmt.Sprintf("Configuration directory (default %s)", config.DefaultConfigDir()))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("lifeledger %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}

// reportError prints err in the active output format.
func reportError(cmd *cobra.Command, err error) {
	report := runtime.Describe(err)
	if output.ParseFormat(flagFormat) == output.FormatJSON {
		f := output.NewFormatter()
		f.Writer = cmd.OutOrStdout()
		_ = output.NewJSONFormatter(f).PrintError(report.Message, report.Category.String(), report.Suggestion)
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+runtime.FormatError(err))
}
