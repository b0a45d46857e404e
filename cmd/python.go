package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sigopt/sigopt-tools/formatter"
	"github.com/sigopt/sigopt-tools/internal"
	tt "github.com/sigopt/sigopt-tools/internal/types"
	"github.com/sigopt/sigopt-tools/lint"
)

type outputMode int

const (
	outputPlain outputMode = iota
	outputPretty
	outputJSON
)

var (
	includeRules string
	ignoreRules  string
	prettyOutput bool
	jsonOutput   bool
	showProgress bool
)

var pythonCmd = &cobra.Command{
	Use:   "python [paths...]",
	Short: "Lint Python sources",
	Long: `Runs the Python rules over each file, or over every .py file below each directory.
Exits 1 when any issue is found and 2 when a file cannot be linted.
Example) sigoptlint python --include SafeYield --ignore TrailingComma src/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "error: Please provide file or directory paths")
			return exitWith(exitFatal)
		}

		// timeout is a global variable declared in root.go
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := lint.New(splitList(includeRules), splitList(ignoreRules))
		if err != nil {
			logger.Error("Failed to initialize lint engine", zap.Error(err))
			return exitWith(exitFatal)
		}

		var opts []lint.Option
		if showProgress {
			opts = append(opts, lint.WithProgress(cmd.ErrOrStderr()))
		}

		mode := outputPlain
		switch {
		case jsonOutput:
			mode = outputJSON
		case prettyOutput:
			mode = outputPretty
		}

		return exitWith(runPythonLint(ctx, logger, engine, args, cmd.OutOrStdout(), mode, opts...))
	},
}

func init() {
	pythonCmd.Flags().StringVar(&includeRules, "include", "", "Comma-separated list of rules to enable on top of the defaults")
	pythonCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to disable")
	pythonCmd.Flags().BoolVar(&prettyOutput, "pretty", false, "Show a source snippet for every issue")
	pythonCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output issues in JSON format")
	pythonCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar on stderr")
}

// splitList splits a comma separated flag value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func runPythonLint(
	ctx context.Context,
	logger *zap.Logger,
	engine lint.LintEngine,
	paths []string,
	w io.Writer,
	mode outputMode,
	opts ...lint.Option,
) int {
	// on failure, issues of the files before the failing one are still printed
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile, opts...)
	if err == nil || len(issues) > 0 {
		if perr := printIssues(w, logger, issues, mode); perr != nil {
			logger.Error("Error printing issues", zap.Error(perr))
			return exitFatal
		}
	}
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return exitFatal
	}

	if len(issues) > 0 {
		return exitIssues
	}
	return exitOK
}

func printIssues(w io.Writer, logger *zap.Logger, issues []tt.Issue, mode outputMode) error {
	switch mode {
	case outputJSON:
		issuesByFile := make(map[string][]tt.Issue)
		for _, issue := range issues {
			issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
		}
		d, err := json.Marshal(issuesByFile)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(d))
		return err
	case outputPretty:
		for _, fileIssues := range groupByFile(issues) {
			filename := fileIssues[0].Filename
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				sourceCode = &internal.SourceCode{}
			}
			if _, err := fmt.Fprint(w, formatter.GenerateFormattedIssue(fileIssues, sourceCode)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprint(w, formatter.FormatPlain(issues))
		return err
	}
}

// groupByFile splits issues into runs per file, keeping the order in which
// files first appear.
func groupByFile(issues []tt.Issue) [][]tt.Issue {
	index := make(map[string]int)
	var groups [][]tt.Issue
	for _, issue := range issues {
		i, ok := index[issue.Filename]
		if !ok {
			i = len(groups)
			index[issue.Filename] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], issue)
	}
	return groups
}
