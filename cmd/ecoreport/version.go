package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ecoreport/internal/config"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// configuration is not needed here
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ecoreport %s\n", config.GetVersion())
		},
	}
}
