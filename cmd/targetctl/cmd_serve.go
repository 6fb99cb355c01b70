package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/memohai/targetresolver/cmd/targetctl/modules"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the parse and resolve API over HTTP",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fx.New(
				fx.Supply(modules.ConfigPath(opts.configPath)),
				modules.InfraModule,
				modules.ChannelModule,
				modules.DirectoryModule,
				modules.ServerModule,
				modules.FxLogger(slog.LevelInfo),
			).Run()
		},
	}
}
