package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memohai/targetresolver/internal/version"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := opts.jsonOutput()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), version.Get())
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "targetctl %s\n", version.GetInfo())
			return err
		},
	}
}
