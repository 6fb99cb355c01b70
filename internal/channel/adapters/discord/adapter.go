package discord

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/memohai/targetresolver/internal/channel"
)

const (
	defaultRequestsPerSecond = 2
	defaultBurst             = 1
)

// AdapterOptions tunes the pacing of Discord API calls per bot token.
type AdapterOptions struct {
	RequestsPerSecond float64
	Burst             int
}

// Adapter is the Discord channel adapter. It parses and resolves recipients and
// serves guild member search as a peer directory.
type Adapter struct {
	logger      *slog.Logger
	baseLogger  *slog.Logger
	opts        AdapterOptions
	resolver    *Resolver
	newSearcher func(token string) (memberSearcher, error)

	mu       sync.Mutex
	sessions map[string]*guildSession
}

func NewAdapter(log *slog.Logger, opts AdapterOptions) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRequestsPerSecond
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	a := &Adapter{
		logger:      log.With(slog.String("adapter", "discord")),
		baseLogger:  log,
		opts:        opts,
		newSearcher: newSessionSearcher,
		sessions:    map[string]*guildSession{},
	}
	a.resolver = NewResolver(log, a)
	return a
}

// UseDirectory replaces the directory consulted for name lookups. The default is the
// adapter's own guild member search. Call it before the adapter is shared.
func (a *Adapter) UseDirectory(directory channel.PeerLister) {
	if directory == nil {
		directory = a
	}
	a.resolver = NewResolver(a.baseLogger, directory)
}

func (a *Adapter) Type() channel.Type {
	return Type
}

func (a *Adapter) Descriptor() channel.Descriptor {
	return descriptor()
}

func (a *Adapter) ParseTarget(raw string, opts channel.ParseOptions) (channel.Target, error) {
	return ParseTarget(raw, opts)
}

func (a *Adapter) ChannelID(raw string) (string, error) {
	return ChannelID(raw)
}

func (a *Adapter) ResolveTarget(ctx context.Context, cfg channel.Config, raw string, opts channel.ParseOptions) (channel.Target, error) {
	return a.resolver.Resolve(ctx, cfg, raw, opts)
}

func (a *Adapter) FormatTarget(target channel.Target) string {
	return FormatTarget(target)
}

// FormatTarget renders target as a Discord mention (<@id> or <#id>).
func FormatTarget(target channel.Target) string {
	switch target.Kind() {
	case channel.TargetUser:
		return (&discordgo.User{ID: target.ID()}).Mention()
	case channel.TargetChannel:
		return (&discordgo.Channel{ID: target.ID()}).Mention()
	default:
		return ""
	}
}
