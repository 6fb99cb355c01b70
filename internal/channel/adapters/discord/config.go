package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/memohai/targetresolver/internal/channel"
)

type Config struct {
	BotToken string
	GuildID  string
}

func parseConfig(raw map[string]any) (Config, error) {
	token := strings.TrimSpace(channel.ReadString(raw, "botToken", "bot_token"))
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bot "))
	if token == "" {
		return Config{}, errors.New("discord botToken is required")
	}
	guildID := strings.TrimSpace(channel.ReadString(raw, "guildId", "guild_id"))
	if guildID != "" && !numericPattern.MatchString(guildID) {
		return Config{}, fmt.Errorf("discord guildId must be a numeric id, got %q", guildID)
	}
	return Config{BotToken: token, GuildID: guildID}, nil
}

// Credentials builds the credentials map accepted by parseConfig.
func Credentials(botToken, guildID string) map[string]any {
	creds := map[string]any{}
	if v := strings.TrimSpace(botToken); v != "" {
		creds["botToken"] = v
	}
	if v := strings.TrimSpace(guildID); v != "" {
		creds["guildId"] = v
	}
	return creds
}
