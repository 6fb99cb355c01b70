package contacts

import "time"

// Contact is a person a bot knows, addressable through one or more platform channels.
type Contact struct {
	ID          string         `json:"id"`
	BotID       string         `json:"bot_id"`
	UserID      string         `json:"user_id,omitempty"`
	DisplayName string         `json:"display_name,omitempty"`
	Alias       string         `json:"alias,omitempty"`
	Tags        []string       `json:"tags"`
	Status      string         `json:"status"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ContactChannel links a contact to its id on one platform.
type ContactChannel struct {
	ID         string         `json:"id"`
	BotID      string         `json:"bot_id"`
	ContactID  string         `json:"contact_id"`
	Platform   string         `json:"platform"`
	ExternalID string         `json:"external_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type CreateRequest struct {
	BotID       string         `json:"bot_id,omitempty"`
	UserID      string         `json:"user_id,omitempty"`
	DisplayName string         `json:"display_name,omitempty"`
	Alias       string         `json:"alias,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Status      string         `json:"status,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type ChannelRequest struct {
	ContactID  string         `json:"contact_id,omitempty"`
	Platform   string         `json:"platform"`
	ExternalID string         `json:"external_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
