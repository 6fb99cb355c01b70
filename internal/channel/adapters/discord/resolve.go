package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/memohai/targetresolver/internal/channel"
)

//go:generate mockgen -destination=mock_peer_lister_test.go -package=discord github.com/memohai/targetresolver/internal/channel PeerLister

// directoryLookupLimit caps the entries requested per name lookup.
const directoryLookupLimit = 5

// Resolver resolves recipient strings, consulting a peer directory for name-like input.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	directory channel.PeerLister
	logger    *slog.Logger
}

func NewResolver(log *slog.Logger, directory channel.PeerLister) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		directory: directory,
		logger:    log.With(slog.String("component", "discord_resolver")),
	}
}

// Resolve returns the target raw refers to. Explicit forms resolve locally; name-like
// input is looked up in the directory with cfg as account context.
func (r *Resolver) Resolve(ctx context.Context, cfg channel.Config, raw string, opts channel.ParseOptions) (channel.Target, error) {
	c := classify(raw)
	if c.form == formEmpty {
		return channel.Target{}, nil
	}
	likelyUsername := c.likelyUsername()
	explicitUser := c.explicitUserLookup(opts.DefaultKind)

	direct := parseClassified(c, opts)
	// Direct non-channel targets bypass the directory; this must precede the no-lookup check.
	if direct.ok() && direct.target.Kind() != channel.TargetChannel && !likelyUsername {
		return direct.target, nil
	}
	if !explicitUser && !likelyUsername {
		return direct.target, direct.err
	}

	if r.directory == nil {
		return channel.Target{}, errors.New("discord directory not configured")
	}
	r.logger.Debug("directory lookup",
		slog.String("config_id", cfg.ID),
		slog.String("query", c.input),
		slog.String("form", c.form.String()),
	)
	entries, err := r.directory.ListPeers(ctx, cfg, channel.DirectoryQuery{
		Query: c.input,
		Limit: directoryLookupLimit,
		Kind:  channel.DirectoryEntryUser,
	})
	if err != nil {
		r.logger.Warn("directory lookup failed", slog.String("config_id", cfg.ID), slog.Any("error", err))
		return channel.Target{}, fmt.Errorf("discord directory lookup: %w", err)
	}

	id, ok := selectUserID(c.input, entries)
	if !ok {
		if len(entries) == 0 {
			return channel.Target{}, noMatchError(c.input)
		}
		return channel.Target{}, ambiguousMatchError(c.input, len(entries))
	}
	return channel.BuildTarget(channel.TargetUser, id, c.input)
}

func noMatchError(input string) error {
	return &channel.TargetError{
		Err:   channel.ErrNoMatch,
		Input: input,
		Message: fmt.Sprintf("%s recipient %q did not match a user; use user:<id>, a <@id> mention, or channel:<id>",
			platformLabel, input),
	}
}

func ambiguousMatchError(input string, count int) error {
	return &channel.TargetError{
		Err:   channel.ErrAmbiguousMatch,
		Input: input,
		Message: fmt.Sprintf("multiple %s users matched %q (%d results); use user:<id> or a <@id> mention to pick one",
			platformLabel, input, count),
	}
}
