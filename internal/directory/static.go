package directory

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/memohai/targetresolver/internal/channel"
)

// StaticEntry is a directory entry scoped to one platform.
type StaticEntry struct {
	Platform               string `yaml:"platform"`
	channel.DirectoryEntry `yaml:",inline"`
}

type staticFile struct {
	Entries []StaticEntry `yaml:"entries"`
}

// StaticDirectory serves a fixed set of entries, typically loaded from YAML.
type StaticDirectory struct {
	entries []StaticEntry
}

func NewStatic(entries []StaticEntry) *StaticDirectory {
	normalized := make([]StaticEntry, 0, len(entries))
	for _, e := range entries {
		e.Platform = strings.ToLower(strings.TrimSpace(e.Platform))
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			continue
		}
		if e.Kind == "" {
			e.Kind = channel.DirectoryEntryUser
		}
		normalized = append(normalized, e)
	}
	return &StaticDirectory{entries: normalized}
}

// LoadStatic reads a YAML document of the form:
//
//	entries:
//	  - platform: discord
//	    id: "123"
//	    name: Alice
//	    handle: "@alice"
func LoadStatic(path string) (*StaticDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read static directory: %w", err)
	}
	return ParseStatic(data)
}

func ParseStatic(data []byte) (*StaticDirectory, error) {
	var file staticFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse static directory: %w", err)
	}
	return NewStatic(file.Entries), nil
}

// ListPeers returns entries on cfg's platform whose id, name or handle contains the query.
// Entries without a platform match every platform; an empty query matches every entry.
func (d *StaticDirectory) ListPeers(_ context.Context, cfg channel.Config, query channel.DirectoryQuery) ([]channel.DirectoryEntry, error) {
	platform := strings.ToLower(strings.TrimSpace(cfg.Type.String()))
	needle, ok := channel.LookupNeedle(query.Query)
	if !ok {
		return nil, nil
	}
	matched := lo.Filter(d.entries, func(e StaticEntry, _ int) bool {
		if e.Platform != "" && platform != "" && e.Platform != platform {
			return false
		}
		if query.Kind != "" && e.Kind != query.Kind {
			return false
		}
		return matchesQuery(needle, e.ID, e.Name, strings.TrimPrefix(strings.TrimSpace(e.Handle), "@"))
	})
	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}
	return lo.Map(matched, func(e StaticEntry, _ int) channel.DirectoryEntry {
		return e.DirectoryEntry
	}), nil
}

// Len reports the number of loaded entries.
func (d *StaticDirectory) Len() int {
	return len(d.entries)
}
