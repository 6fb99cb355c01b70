package channel

import "strings"

// Type identifies a messaging platform (e.g. "discord").
type Type string

func (t Type) String() string {
	return string(t)
}

// Config is the account context a channel adapter operates with.
type Config struct {
	ID          string         `json:"id"`
	BotID       string         `json:"bot_id,omitempty"`
	Type        Type           `json:"type"`
	Credentials map[string]any `json:"-"`
}

// Credential reads the first non-empty credential value among keys.
func (c Config) Credential(keys ...string) string {
	return strings.TrimSpace(ReadString(c.Credentials, keys...))
}

func normalizeType(raw string) Type {
	normalized := strings.TrimSpace(strings.ToLower(raw))
	if normalized == "" {
		return ""
	}
	return Type(normalized)
}
