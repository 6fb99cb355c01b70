// Command targetctl parses and resolves messaging recipients from the command line
// and serves the same operations over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath  string
	platform    string
	defaultKind string
	botID       string
	output      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "targetctl",
		Short: "Resolve messaging recipients into user and channel targets",
		Long: `targetctl interprets recipient strings such as "user:123", "<@123>",
"channel:456" or "john.doe" for a messaging platform.

parse and channel-id are purely syntactic; resolve consults the configured
directories (Discord guild member search, the contacts database, a static YAML
file) to turn names into user ids.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: $CONFIG_PATH or config.toml)")
	rootCmd.PersistentFlags().StringVarP(&opts.platform, "platform", "p", "discord", "Channel platform")
	rootCmd.PersistentFlags().StringVar(&opts.defaultKind, "default-kind", "", "Kind for bare numeric ids: user or channel (default from config)")
	rootCmd.PersistentFlags().StringVar(&opts.botID, "bot-id", "", "Bot whose directory is searched (default from config)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "Output format: text or json")

	rootCmd.AddCommand(
		newParseCmd(opts),
		newChannelIDCmd(opts),
		newResolveCmd(opts),
		newServeCmd(opts),
		newVersionCmd(opts),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
