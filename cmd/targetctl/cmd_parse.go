package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memohai/targetresolver/internal/channel"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var ambiguousMessage string
	cmd := &cobra.Command{
		Use:   "parse [input...]",
		Short: "Parse a recipient without directory lookups",
		Long: `Parse classifies a recipient syntactically.

Mentions and "user:"/"discord:"/"@<digits>" forms are users; "channel:" and
free text are channels. A bare numeric id needs --default-kind.`,
		Example: `  targetctl parse "<@123456789012345678>"
  targetctl parse --default-kind channel 123456789012345678`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.targetRequest(args)
			if err != nil {
				return err
			}
			req.AmbiguousMessage = ambiguousMessage
			return withService(cmd.Context(), opts, func(_ context.Context, svc *channel.Service) error {
				res, err := svc.ParseTarget(req)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), opts, res)
			})
		},
	}
	cmd.Flags().StringVar(&ambiguousMessage, "ambiguous-message", "", "Message reported for an ambiguous bare id")
	return cmd
}

func newChannelIDCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "channel-id <input>",
		Short:   "Print the channel id of a channel reference",
		Example: `  targetctl channel-id channel:123456789012345678`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, func(_ context.Context, svc *channel.Service) error {
				id, err := svc.ChannelID(opts.platform, args[0])
				if err != nil {
					return err
				}
				asJSON, err := opts.jsonOutput()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"channel_id": id})
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
				return err
			})
		},
	}
}
