package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sigopt/sigopt-tools/internal/disclaimer"
)

var (
	licenseName string
	ownerName   string
	fixInPlace  bool
)

var disclaimerCmd = &cobra.Command{
	Use:   "disclaimer [files...]",
	Short: "Check copyright and license disclaimers",
	Long: `Checks that every file of a known type starts with a copyright and SPDX license header.
With --fix-in-place the header is inserted into files that lack one.
Example) sigoptlint disclaimer --license "Apache License 2.0" -f $(git ls-files)`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		header := disclaimer.Header{License: licenseName, Owner: ownerName}
		return exitWith(runDisclaimerCheck(logger, args, header, fixInPlace, verbose, cmd.OutOrStdout()))
	},
}

func init() {
	disclaimerCmd.Flags().StringVar(&licenseName, "license", "", "License named in the SPDX-License-Identifier line")
	disclaimerCmd.Flags().StringVar(&ownerName, "owner", disclaimer.DefaultOwner, "Copyright holder")
	disclaimerCmd.Flags().BoolVarP(&fixInPlace, "fix-in-place", "f", false, "Insert missing disclaimers")
	_ = disclaimerCmd.MarkFlagRequired("license")
}

func runDisclaimerCheck(
	logger *zap.Logger,
	paths []string,
	header disclaimer.Header,
	fix bool,
	verbose bool,
	w io.Writer,
) int {
	var missing []string
	for _, path := range paths {
		if _, known := disclaimer.GuessFiletype(path); known && verbose {
			fmt.Fprintf(w, "Checking: %s\n", path)
		}
		needs, err := disclaimer.NeedsDisclaimer(path)
		if err != nil {
			logger.Error("Error reading file", zap.String("file", path), zap.Error(err))
			return exitFatal
		}
		if needs {
			missing = append(missing, path)
		}
	}

	if fix {
		var failed []string
		for _, path := range missing {
			if verbose {
				fmt.Fprintf(w, "Fixing %s\n", path)
			}
			if err := disclaimer.FixFile(path, header); err != nil {
				fmt.Fprintf(w, "failed to fix %s: %v\n", path, err)
				failed = append(failed, path)
			}
		}
		missing = failed
	}

	if len(missing) > 0 {
		fmt.Fprintf(w, "\nThe following files failed the copyright + license check:\n\t%s\n", strings.Join(missing, "\n\t"))
		return exitIssues
	}
	if verbose {
		fmt.Fprintln(w, "\nAll files have disclaimer")
	}
	return exitOK
}
