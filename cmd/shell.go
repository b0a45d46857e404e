package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sigopt/sigopt-tools/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell [files...]",
	Short: "Check shell scripts for set -e, set -o pipefail and a bash shebang",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return exitWith(runShellLint(logger, args, cmd.OutOrStdout()))
	},
}

func runShellLint(logger *zap.Logger, paths []string, w io.Writer) int {
	var responses []string
	for _, path := range paths {
		problems, err := shell.LintFile(path)
		if err != nil {
			logger.Error("Error processing file", zap.String("file", path), zap.Error(err))
			return exitFatal
		}
		responses = append(responses, problems...)
	}
	if len(responses) == 0 {
		return exitOK
	}
	fmt.Fprintln(w, strings.Join(responses, "\n"))
	return exitIssues
}
