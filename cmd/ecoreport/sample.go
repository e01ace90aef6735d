package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ecoreport/internal/mocks"
	"ecoreport/internal/storage"
)

func newSampleCmd(_ *app) *cobra.Command {
	var (
		name string
		out  string
		list bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a built-in snapshot fixture as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := mocks.NewMockService("")

			if list {
				names, err := service.Names()
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}

			data, err := service.LoadSnapshotJSON(name)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			store, err := storage.NewLocalStore(filepath.Dir(out))
			if err != nil {
				return err
			}
			return store.StoreFile(cmd.Context(), filepath.Base(out), data)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "sample", "Fixture name")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&list, "list", false, "List fixture names")
	return cmd
}
