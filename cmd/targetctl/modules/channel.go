package modules

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/memohai/targetresolver/internal/channel"
	"github.com/memohai/targetresolver/internal/channel/adapters/discord"
	"github.com/memohai/targetresolver/internal/config"
)

var ChannelModule = fx.Module(
	"channel",
	fx.Provide(
		provideDiscordAdapter,
		provideChannelRegistry,
		provideChannelConfigs,
		provideChannelService,
	),
)

// ---------------------------------------------------------------------------
// channel
// ---------------------------------------------------------------------------

func provideDiscordAdapter(log *slog.Logger, cfg config.Config) *discord.Adapter {
	return discord.NewAdapter(log, discord.AdapterOptions{
		RequestsPerSecond: cfg.Discord.RequestsPerSecond,
		Burst:             cfg.Discord.Burst,
	})
}

func provideChannelRegistry(adapter *discord.Adapter) *channel.Registry {
	registry := channel.NewRegistry()
	registry.MustRegister(adapter)
	return registry
}

func provideChannelConfigs(cfg config.Config) *channel.ConfigSet {
	return channel.NewConfigSet(channel.Config{
		ID:          "discord-default",
		BotID:       cfg.Directory.BotID,
		Type:        discord.Type,
		Credentials: discord.Credentials(cfg.Discord.BotToken, cfg.Discord.GuildID),
	})
}

func provideChannelService(log *slog.Logger, registry *channel.Registry, configs *channel.ConfigSet, cfg config.Config) (*channel.Service, error) {
	kind, err := channel.ParseTargetKind(cfg.Resolver.DefaultKind)
	if err != nil {
		return nil, err
	}
	return channel.NewService(log, registry, configs, channel.ServiceOptions{
		DefaultKind: kind,
		Timeout:     cfg.Discord.Timeout(),
	}), nil
}
