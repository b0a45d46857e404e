package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sigopt/sigopt-tools/internal"
)

var defaultMarkStyle = color.New(color.FgGreen, color.Bold)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available Python rules",
	Run: func(cmd *cobra.Command, args []string) {
		listRules(cmd.OutOrStdout())
	},
}

func listRules(w io.Writer) {
	for _, name := range internal.RuleNames() {
		if internal.IsDefaultRule(name) {
			fmt.Fprintf(w, "%s %s\n", name, defaultMarkStyle.Sprint("(default)"))
			continue
		}
		fmt.Fprintln(w, name)
	}
}
