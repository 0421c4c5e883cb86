package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phseiff/gender-render/pkg/genderrender"
)

var checkCmd = &cobra.Command{
	Use:   "check [template...]",
	Short: "Check templates and print them in canonical form",
	Long: `Parses every template and prints it with all sections typed and all
multi-value contexts split up. All templates are checked; every error found
is reported at the end.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	errs := genderrender.NewMultiError()
	w := cmd.OutOrStdout()
	for _, path := range args {
		tmpl, err := engine.ParseFile(path)
		if err != nil {
			errs.Add(err)
			continue
		}
		fmt.Fprintf(w, "%s: ok\n%s\n", path, tmpl.Canonical())
	}
	return errs.Err()
}
