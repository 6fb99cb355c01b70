// Package discord implements the Discord channel adapter: recipient parsing,
// directory-assisted target resolution and guild member search.
package discord

import "github.com/memohai/targetresolver/internal/channel"

// Type is the registered channel type identifier for Discord.
const Type channel.Type = "discord"

// platformLabel prefixes user-facing error messages.
const platformLabel = "Discord"

func descriptor() channel.Descriptor {
	return channel.Descriptor{
		Type:        Type,
		DisplayName: platformLabel,
		Target: channel.TargetSpec{
			Format: "user:<id> | channel:<id> | <@id> | username",
			Hints: []channel.TargetHint{
				{Label: "User ID", Example: "user:123456789012345678"},
				{Label: "Mention", Example: "<@123456789012345678>"},
				{Label: "Channel ID", Example: "channel:123456789012345678"},
				{Label: "Username", Example: "john.doe"},
			},
		},
	}
}
