package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/memohai/targetresolver/cmd/targetctl/modules"
	"github.com/memohai/targetresolver/internal/channel"
)

// withService builds the resolution graph without the HTTP server, runs fn, and tears
// the graph down again.
func withService(ctx context.Context, opts *rootOptions, fn func(ctx context.Context, svc *channel.Service) error) error {
	var svc *channel.Service
	app := fx.New(
		fx.Supply(modules.ConfigPath(opts.configPath)),
		modules.InfraModule,
		modules.ChannelModule,
		modules.DirectoryModule,
		modules.FxLogger(slog.LevelDebug),
		fx.Populate(&svc),
	)
	if err := app.Err(); err != nil {
		return err
	}
	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
		defer cancel()
		_ = app.Stop(stopCtx)
	}()
	return fn(ctx, svc)
}

func (o *rootOptions) targetRequest(args []string) (channel.TargetRequest, error) {
	kind, err := channel.ParseTargetKind(o.defaultKind)
	if err != nil {
		return channel.TargetRequest{}, err
	}
	return channel.TargetRequest{
		Platform:    o.platform,
		Input:       strings.Join(args, " "),
		DefaultKind: kind,
		BotID:       o.botID,
	}, nil
}

func (o *rootOptions) jsonOutput() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(o.output)) {
	case "", "text":
		return false, nil
	case "json":
		return true, nil
	default:
		return false, fmt.Errorf("unsupported output format %q (use text or json)", o.output)
	}
}

// printResult writes "kind:id<TAB>mention" in text mode; a zero target prints nothing.
func printResult(w io.Writer, opts *rootOptions, res channel.TargetResult) error {
	asJSON, err := opts.jsonOutput()
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, res)
	}
	if res.Target.IsZero() {
		return nil
	}
	if res.Formatted != "" && res.Formatted != res.Target.String() {
		_, err = fmt.Fprintf(w, "%s\t%s\n", res.Target, res.Formatted)
		return err
	}
	_, err = fmt.Fprintln(w, res.Target)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
