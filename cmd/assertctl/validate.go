package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.assertions/pkg/asserts"
	"digital.vasic.assertions/pkg/checks"
)

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|directory>...",
		Short: "Validate check files without running them",
		Long: `Validate check files against the check file schema and the
known assertion kinds.

Examples:
  assertctl validate smoke.yaml
  assertctl validate ./checks/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := discover(args)
			if err != nil {
				return err
			}
			if !validateAll(cmd, files, false) {
				return errInvalidFiles
			}
			return nil
		},
	}
}

func discover(args []string) ([]string, error) {
	files, err := checks.Discover(args...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .yaml, .yml or .json files found")
	}
	return files, nil
}

// validateAll reports whether all files are valid. Invalid files are
// always reported; valid ones only when quiet is false.
func validateAll(cmd *cobra.Command, files []string, quiet bool) bool {
	ok := true
	for _, f := range files {
		errs := checks.ValidateFile(f, asserts.Registry())
		if len(errs) == 0 {
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", f)
			}
			continue
		}
		ok = false
		fmt.Fprintf(cmd.ErrOrStderr(), "Invalid: %s\n", f)
		for _, e := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", e)
		}
	}
	return ok
}
