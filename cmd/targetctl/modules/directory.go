package modules

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/memohai/targetresolver/internal/channel"
	"github.com/memohai/targetresolver/internal/channel/adapters/discord"
	"github.com/memohai/targetresolver/internal/config"
	"github.com/memohai/targetresolver/internal/contacts"
	"github.com/memohai/targetresolver/internal/directory"
)

var DirectoryModule = fx.Module(
	"directory",
	fx.Provide(
		provideContactsStore,
		provideDirectory,
	),
	fx.Invoke(useDirectory),
)

// ---------------------------------------------------------------------------
// directory
// ---------------------------------------------------------------------------

// provideContactsStore opens the contacts database when the contacts backend is enabled,
// and yields a nil store otherwise.
func provideContactsStore(lc fx.Lifecycle, cfg config.Config) (*contacts.Store, error) {
	if !cfg.Directory.Enabled(config.BackendContacts) {
		return nil, nil
	}
	store, err := contacts.Open(cfg.Directory.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open contacts: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}

// provideDirectory combines the configured backends, in order, into one peer directory.
func provideDirectory(log *slog.Logger, cfg config.Config, adapter *discord.Adapter, store *contacts.Store) (channel.PeerLister, error) {
	backends := make([]channel.PeerLister, 0, len(cfg.Directory.Backends))
	for _, name := range cfg.Directory.Backends {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case config.BackendDiscord:
			if cfg.Discord.BotToken == "" || cfg.Discord.GuildID == "" {
				log.Warn("discord directory skipped: bot_token and guild_id are required for member search")
				continue
			}
			backends = append(backends, adapter)
		case config.BackendContacts:
			backends = append(backends, directory.NewLocalService(log, store))
		case config.BackendStatic:
			static, err := directory.LoadStatic(cfg.Directory.StaticPath)
			if err != nil {
				return nil, err
			}
			log.Info("static directory loaded", slog.Int("entries", static.Len()))
			backends = append(backends, static)
		default:
			return nil, fmt.Errorf("unknown directory backend %q", name)
		}
	}
	return directory.NewMulti(log, backends...), nil
}

func useDirectory(adapter *discord.Adapter, dir channel.PeerLister) {
	adapter.UseDirectory(dir)
}
