package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Minute

// exit statuses shared by every subcommand
const (
	exitOK     = 0
	exitIssues = 1
	exitFatal  = 2
)

// exitCodeError carries a non-zero exit status out of a command so that
// deferred cleanup runs before the process exits.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func exitWith(code int) error {
	if code == exitOK {
		return nil
	}
	return &exitCodeError{code: code}
}

// exitCode maps the error returned by the command tree to an exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitFatal
}

var (
	timeout time.Duration
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "sigoptlint",
	Short:            "sigoptlint - style and safety checks for Python, shell scripts and license headers",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			return cmd.Help()
		}
		// Format: sigoptlint [path1 path2 ...] => behaves like the python subcommand
		return pythonCmd.RunE(pythonCmd, args)
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Execute runs the command tree and returns the process exit status.
func Execute() int {
	defer func() { _ = logger.Sync() }()
	err := rootCmd.Execute()
	var exitErr *exitCodeError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return exitCode(err)
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for the linter")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(pythonCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(disclaimerCmd)
}
