package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ecoreport/internal/templates"
)

func newTemplatesCmd(_ *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the report templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := templates.Default()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSECTIONS")
			for _, t := range registry.List() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", t.ID, t.Name, len(t.Sections))
				if verbose {
					fmt.Fprintf(w, "\t  %s\t\n", strings.Join(t.Titles(), " / "))
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show section titles")
	return cmd
}
