package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/targetresolver/internal/channel"
)

const staticYAML = `
entries:
  - platform: discord
    id: "111"
    name: Alice Liddell
    handle: "@alice"
    metadata:
      team: wonderland
  - platform: Discord
    id: "222"
    name: Alicia
  - platform: telegram
    id: "333"
    name: Alice on Telegram
  - id: "444"
    name: Everywhere Alice
  - platform: discord
    kind: group
    id: "555"
    name: alice-fans
  - platform: discord
    name: No Id
`

func TestParseStatic(t *testing.T) {
	dir, err := ParseStatic([]byte(staticYAML))
	require.NoError(t, err)
	assert.Equal(t, 5, dir.Len())

	_, err = ParseStatic([]byte("entries: [oops"))
	assert.Error(t, err)
}

func TestStaticDirectory_ListPeers(t *testing.T) {
	dir, err := ParseStatic([]byte(staticYAML))
	require.NoError(t, err)
	ctx := context.Background()
	ids := func(entries []channel.DirectoryEntry) []string {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.ID)
		}
		return out
	}

	entries, err := dir.ListPeers(ctx, discordConfig, channel.DirectoryQuery{Query: "ali", Kind: channel.DirectoryEntryUser})
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222", "444"}, ids(entries))
	assert.Equal(t, "wonderland", entries[0].Metadata["team"])
	assert.Equal(t, channel.DirectoryEntryUser, entries[1].Kind)

	entries, err = dir.ListPeers(ctx, discordConfig, channel.DirectoryQuery{Query: "@alice", Kind: channel.DirectoryEntryUser, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"111"}, ids(entries))

	entries, err = dir.ListPeers(ctx, discordConfig, channel.DirectoryQuery{Query: "discord:alice", Kind: channel.DirectoryEntryUser})
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "444"}, ids(entries), "legacy prefix is stripped like the other user markers")

	entries, err = dir.ListPeers(ctx, discordConfig, channel.DirectoryQuery{Query: "fans"})
	require.NoError(t, err)
	assert.Equal(t, []string{"555"}, ids(entries))

	entries, err = dir.ListPeers(ctx, discordConfig, channel.DirectoryQuery{Query: "user:"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadStatic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(staticYAML), 0o600))

	dir, err := LoadStatic(path)
	require.NoError(t, err)
	assert.Equal(t, 5, dir.Len())

	_, err = LoadStatic(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
