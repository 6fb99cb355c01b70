package discord

import (
	"strings"

	"github.com/samber/lo"

	"github.com/memohai/targetresolver/internal/channel"
)

// selectUserID picks one user id out of directory entries.
// A unique exact match on name, handle or id wins; otherwise a lone candidate
// is accepted; anything else is ambiguous.
func selectUserID(query string, entries []channel.DirectoryEntry) (string, bool) {
	candidates := lo.Filter(entries, func(e channel.DirectoryEntry, _ int) bool {
		return e.Kind == channel.DirectoryEntryUser && e.ID != ""
	})
	if len(candidates) == 0 {
		return "", false
	}
	needle := normalizeLookup(query)
	exact := lo.Filter(candidates, func(e channel.DirectoryEntry, _ int) bool {
		return matchesExactly(e, needle)
	})

	var chosen channel.DirectoryEntry
	switch {
	case len(exact) == 1:
		chosen = exact[0]
	case len(candidates) == 1:
		chosen = candidates[0]
	default:
		return "", false
	}
	id := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(chosen.ID), "user:"))
	return id, id != ""
}

func matchesExactly(e channel.DirectoryEntry, needle string) bool {
	if needle == "" {
		return false
	}
	name := normalizeLookup(e.Name)
	handle := strings.TrimPrefix(normalizeLookup(e.Handle), "@")
	id := strings.TrimSpace(strings.TrimPrefix(normalizeLookup(e.ID), "user:"))
	return name == needle || handle == needle || id == needle
}

func normalizeLookup(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
