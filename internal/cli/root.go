// Package cli implements the keyshard command-line interface.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/keyshard/internal/config"
	"github.com/mrz1836/keyshard/internal/output"
	"github.com/mrz1836/keyshard/internal/shardcrypto"
	"github.com/mrz1836/keyshard/internal/version"
	kserr "github.com/mrz1836/keyshard/pkg/errors"
)

var (
	// Global flags
	homeDir      string
	outputFormat string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter

	// Build info passed in from main
	buildInfo version.Info
)

// BuildInfo carries the ldflags-injected build identity.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "keyshard",
	Short: "Split secrets into recoverable shares, offline",
	Long: `Keyshard splits a secret into N shares such that any K of them
reconstruct it exactly, while K-1 reveal nothing. Shares are Base62 strings
designed to be printed, etched, or read over the phone.

Everything runs locally: no network, no persisted secrets, transient buffers
zeroized after every operation.

Example:
  keyshard split --shares 5 --threshold 3
  keyshard combine < shares.txt
  keyshard generate --length 32`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

//nolint:gochecknoinits // Cobra flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "keyshard home directory (default ~/.keyshard)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute(info BuildInfo) error {
	buildInfo = version.Info{Version: info.Version, Commit: info.Commit, Date: info.Date}

	err := rootCmd.Execute()
	if err != nil {
		formatErr(err)
		return err
	}
	return nil
}

// formatErr prints the error with proper formatting.
func formatErr(err error) {
	format := output.FormatText
	if formatter != nil {
		format = formatter.Format()
	}
	if fmtErr := output.FormatError(os.Stderr, err, format); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v (formatting failed: %v)\n", err, fmtErr)
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return kserr.ExitCode(err)
}

// initGlobals initializes global configuration, logger, and formatter.
func initGlobals(cmd *cobra.Command) error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	var err error
	cfg, err = config.Load(config.Path(home))
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		}
		cfg = config.Defaults()
	}
	cfg.Home = home
	config.ApplyEnvironment(cfg)

	// Resolve output format: flag > env/config > auto-detect.
	formatName := outputFormat
	if formatName == "" {
		formatName = cfg.GetOutputFormat()
	}
	format := output.ParseFormat(formatName)
	if format == output.FormatAuto && formatName != "" && formatName != "auto" {
		msg := fmt.Sprintf("unknown output format %q", formatName)
		if s := output.Suggest(formatName, output.Formats); s != "" {
			return kserr.WithSuggestion(kserr.Wrap(kserr.ErrInvalidInput, "%s", msg), fmt.Sprintf("did you mean %q?", s))
		}
		return kserr.Wrap(kserr.ErrInvalidInput, "%s", msg)
	}
	formatter = output.NewFormatter(output.DetectFormat(cmd.OutOrStdout(), format), cmd.OutOrStdout())

	if verbose {
		cfg.Output.Verbose = true
	}

	logger, err = config.NewLogger(config.ParseLogLevel(cfg.GetLoggingLevel()), cfg.GetLoggingFile())
	if err != nil {
		// Logging is best effort; never block the operation on it.
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		logger = config.NullLogger()
	}

	// Fail closed before any secret is touched if the CSPRNG is unwell.
	if err := shardcrypto.SelfTest(); err != nil {
		return mapError(err)
	}

	return nil
}

// cleanup releases global state after a command completes.
func cleanup() {
	if logger != nil {
		_ = logger.Close()
	}
}
