package channel

import (
	"context"
	"strings"
)

type DirectoryEntryKind string

const (
	DirectoryEntryUser  DirectoryEntryKind = "user"
	DirectoryEntryGroup DirectoryEntryKind = "group"
)

type DirectoryEntry struct {
	Kind      DirectoryEntryKind `json:"kind,omitempty" yaml:"kind"`
	ID        string             `json:"id,omitempty" yaml:"id"`
	Name      string             `json:"name,omitempty" yaml:"name"`
	Handle    string             `json:"handle,omitempty" yaml:"handle"`
	AvatarURL string             `json:"avatar_url,omitempty" yaml:"avatar_url"`
	Metadata  map[string]any     `json:"metadata,omitempty" yaml:"metadata"`
}

type DirectoryQuery struct {
	Query string             `json:"query,omitempty"`
	Limit int                `json:"limit,omitempty"`
	Kind  DirectoryEntryKind `json:"kind,omitempty"`
}

// PeerLister searches a directory for peers (users) reachable through cfg.
// Implementations own pacing and connection reuse; callers invoke it at most once per resolution.
type PeerLister interface {
	ListPeers(ctx context.Context, cfg Config, query DirectoryQuery) ([]DirectoryEntry, error)
}

// userMarkers are the prefixes that explicitly address a user. Directories search by the name behind them.
var userMarkers = []string{"user:", "discord:", "@"}

// LookupNeedle strips one leading user marker from a directory query.
// It reports false when only a marker remains.
func LookupNeedle(query string) (string, bool) {
	q := strings.TrimSpace(query)
	for _, prefix := range userMarkers {
		if rest, ok := strings.CutPrefix(q, prefix); ok {
			rest = strings.TrimSpace(rest)
			return rest, rest != ""
		}
	}
	return q, true
}
