package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ecoreport/internal/storage"
)

func newListCmd(_ *app) *cobra.Command {
	var (
		dest  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rendered reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storage.Open(cmd.Context(), dest)
			if err != nil {
				return err
			}
			defer store.Close()

			paths, err := store.ListReports(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), store.Location(p))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "reports", "Output directory or gs://bucket/prefix")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of reports (0 for all)")
	return cmd
}
