package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/memohai/targetresolver/internal/channel"
)

const (
	defaultDirectoryLimit = 25
	maxDirectoryLimit     = 1000
)

func directoryLimit(n int) int {
	if n <= 0 {
		return defaultDirectoryLimit
	}
	if n > maxDirectoryLimit {
		return maxDirectoryLimit
	}
	return n
}

// memberSearcher is the slice of *discordgo.Session used for directory lookups.
type memberSearcher interface {
	GuildMembersSearch(guildID, query string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
}

type guildSession struct {
	api     memberSearcher
	limiter *rate.Limiter
}

func newSessionSearcher(token string) (memberSearcher, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (a *Adapter) getOrCreateSession(token string) (*guildSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if sess, ok := a.sessions[token]; ok {
		return sess, nil
	}
	api, err := a.newSearcher(token)
	if err != nil {
		return nil, fmt.Errorf("discord create session: %w", err)
	}
	sess := &guildSession{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(a.opts.RequestsPerSecond), a.opts.Burst),
	}
	a.sessions[token] = sess
	return sess, nil
}

// ListPeers searches guild members whose username or nickname starts with the query.
// Only user queries are served; an empty query returns no entries.
func (a *Adapter) ListPeers(ctx context.Context, cfg channel.Config, query channel.DirectoryQuery) ([]channel.DirectoryEntry, error) {
	if query.Kind != "" && query.Kind != channel.DirectoryEntryUser {
		return nil, nil
	}
	discordCfg, err := parseConfig(cfg.Credentials)
	if err != nil {
		return nil, err
	}
	if discordCfg.GuildID == "" {
		return nil, errors.New("discord guildId is required for member search")
	}
	search := memberSearchQuery(query.Query)
	if search == "" {
		return nil, nil
	}
	sess, err := a.getOrCreateSession(discordCfg.BotToken)
	if err != nil {
		return nil, err
	}
	if err := sess.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("discord member search: %w", err)
	}
	members, err := sess.api.GuildMembersSearch(discordCfg.GuildID, search, directoryLimit(query.Limit), discordgo.WithContext(ctx))
	if err != nil {
		a.logger.Warn("member search failed",
			slog.String("config_id", cfg.ID),
			slog.String("guild_id", discordCfg.GuildID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("discord member search: %w", err)
	}
	entries := make([]channel.DirectoryEntry, 0, len(members))
	for _, m := range members {
		if m == nil || m.User == nil {
			continue
		}
		entries = append(entries, memberToEntry(discordCfg.GuildID, m))
	}
	return entries, nil
}

// memberSearchQuery strips the user marker Discord's member search does not understand.
func memberSearchQuery(raw string) string {
	needle, ok := channel.LookupNeedle(raw)
	if !ok {
		return ""
	}
	return needle
}

func memberToEntry(guildID string, m *discordgo.Member) channel.DirectoryEntry {
	u := m.User
	name := strings.TrimSpace(m.Nick)
	if name == "" {
		name = strings.TrimSpace(u.GlobalName)
	}
	if name == "" {
		name = strings.TrimSpace(u.Username)
	}
	handle := strings.TrimSpace(u.Username)
	if handle != "" {
		handle = "@" + handle
	}
	meta := map[string]any{
		"guild_id": guildID,
		"bot":      u.Bot,
	}
	if m.Nick != "" {
		meta["nick"] = m.Nick
	}
	if u.GlobalName != "" {
		meta["global_name"] = u.GlobalName
	}
	return channel.DirectoryEntry{
		Kind:      channel.DirectoryEntryUser,
		ID:        u.ID,
		Name:      name,
		Handle:    handle,
		AvatarURL: u.AvatarURL(""),
		Metadata:  meta,
	}
}
