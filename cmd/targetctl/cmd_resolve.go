package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/memohai/targetresolver/internal/channel"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [input...]",
		Short: "Resolve a recipient, looking names up in the directory",
		Long: `Resolve accepts everything parse does and additionally turns user names
into user ids through the configured directory backends.

It fails when the name matches nobody or more than one user.`,
		Example: `  targetctl resolve john.doe
  targetctl resolve -o json @alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.targetRequest(args)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), opts, func(ctx context.Context, svc *channel.Service) error {
				res, err := svc.ResolveTarget(ctx, req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), opts, res)
			})
		},
	}
}
