package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"digital.vasic.assertions/pkg/assertion"
	"digital.vasic.assertions/pkg/asserts"
)

func (a *app) newListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assertion kinds and their parameters",
		Long: `List every assertion kind with its parameters. Optional
parameters are shown in brackets; kinds marked "Go only" take a
callable and cannot be used in check files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds := asserts.Registry().Kinds()
			if asJSON {
				data, err := json.MarshalIndent(kinds, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			name := color.New(color.Bold)
			note := color.New(color.Faint)
			for _, k := range kinds {
				line := fmt.Sprintf("%s(%s)", name.Sprint(k.Name), signature(k))
				if k.Scoped {
					line += note.Sprint(" [Go only]")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n    %s\n", line, k.Doc)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print kinds as JSON")
	return cmd
}

// signature renders the parameters of k, e.g. "first, second[, places][, delta]".
func signature(k assertion.Kind) string {
	var sb strings.Builder
	for i, p := range k.Params {
		sep := ""
		if i > 0 {
			sep = ", "
		}
		if i >= k.Required {
			fmt.Fprintf(&sb, "[%s%s]", sep, p)
		} else {
			sb.WriteString(sep + p)
		}
	}
	if k.Variadic {
		sb.WriteString(", args...")
	}
	return sb.String()
}
