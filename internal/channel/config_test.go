package channel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/memohai/targetresolver/internal/channel"
)

func TestReadString(t *testing.T) {
	t.Parallel()
	raw := map[string]any{
		"botToken":  "  ",
		"bot_token": "secret",
		"guildId":   float64(42),
	}
	if got := channel.ReadString(raw, "botToken", "bot_token"); got != "secret" {
		t.Errorf("ReadString(token) = %q", got)
	}
	if got := channel.ReadString(raw, "guildId"); got != "42" {
		t.Errorf("ReadString(guild) = %q", got)
	}
	if got := channel.ReadString(raw, "missing"); got != "" {
		t.Errorf("ReadString(missing) = %q", got)
	}
}

func TestDecodeConfigMap(t *testing.T) {
	t.Parallel()
	got, err := channel.DecodeConfigMap([]byte(`{"botToken":"x"}`))
	if err != nil || got["botToken"] != "x" {
		t.Fatalf("DecodeConfigMap = %v, %v", got, err)
	}
	empty, err := channel.DecodeConfigMap(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("DecodeConfigMap(nil) = %v, %v", empty, err)
	}
	if _, err := channel.DecodeConfigMap([]byte("{")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestConfigSet_ResolveEffectiveConfig(t *testing.T) {
	t.Parallel()
	set := channel.NewConfigSet(channel.Config{
		ID:          "discord-default",
		BotID:       "bot-1",
		Type:        "Discord",
		Credentials: map[string]any{"botToken": "t"},
	})
	cfg, err := set.ResolveEffectiveConfig(context.Background(), "", "discord")
	if err != nil {
		t.Fatalf("ResolveEffectiveConfig: %v", err)
	}
	if cfg.BotID != "bot-1" || cfg.Credential("botToken") != "t" {
		t.Errorf("cfg = %+v", cfg)
	}
	cfg, err = set.ResolveEffectiveConfig(context.Background(), "bot-2", "discord")
	if err != nil || cfg.BotID != "bot-2" {
		t.Errorf("override = %+v, %v", cfg, err)
	}
	if _, err := set.ResolveEffectiveConfig(context.Background(), "", "telegram"); !errors.Is(err, channel.ErrConfigNotFound) {
		t.Fatalf("missing config error = %v", err)
	}
}
