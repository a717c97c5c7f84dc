// Command hashroute serves and inspects hash-routed applications.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	apperrors "github.com/vango-dev/hashroute/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	noColor    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		apperrors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "hashroute",
		Short: "Hash-fragment routing for single-page apps",
		Long: `hashroute maps URL hash fragments such as #/users/show/42 to routes
declared in a TOML manifest, and serves them to browsers over WebSocket.

  • #/users            → route at /users
  • #/users/show/42    → route at /users/show, sub-route "42"
  • anything else      → route at /`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to hashroute.toml")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		initCmd(),
		serveCmd(flags),
		resolveCmd(flags),
		routesCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

var (
	successMark = color.New(color.FgGreen).Sprint("✓")
	warnMark    = color.New(color.FgYellow).Sprint("⚠")
	labelStyle  = color.New(color.Bold)
)

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successMark, fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warnMark, fmt.Sprintf(format, args...))
}

// field prints an aligned "label: value" line.
func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Sprintf("%-10s", label+":"), value)
}
