package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/memohai/targetresolver/internal/channel"
)

func user(id, name, handle string) channel.DirectoryEntry {
	return channel.DirectoryEntry{Kind: channel.DirectoryEntryUser, ID: id, Name: name, Handle: handle}
}

func TestSelectUserID(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		entries []channel.DirectoryEntry
		want    string
		ok      bool
	}{
		{
			name:    "two case-insensitive exact matches",
			query:   "alice",
			entries: []channel.DirectoryEntry{user("1", "Alice", ""), user("2", "alice", "")},
		},
		{
			name:    "single candidate without textual match",
			query:   "xyz",
			entries: []channel.DirectoryEntry{user("5", "", "@bob")},
			want:    "5",
			ok:      true,
		},
		{
			name:    "unique handle match among several",
			query:   "bob",
			entries: []channel.DirectoryEntry{user("1", "Robert", "@bob"), user("2", "Bobby", "@bobby")},
			want:    "1",
			ok:      true,
		},
		{
			name:    "id match ignores user prefix",
			query:   "77",
			entries: []channel.DirectoryEntry{user("user:77", "x", ""), user("78", "y", "")},
			want:    "77",
			ok:      true,
		},
		{
			name:    "query is trimmed and lower-cased",
			query:   "  ALICE ",
			entries: []channel.DirectoryEntry{user("1", "alice", ""), user("2", "alicia", "")},
			want:    "1",
			ok:      true,
		},
		{
			name:    "several candidates and no exact match",
			query:   "al",
			entries: []channel.DirectoryEntry{user("1", "alice", ""), user("2", "alan", "")},
		},
		{
			name:  "non-user and id-less entries are not candidates",
			query: "alice",
			entries: []channel.DirectoryEntry{
				{Kind: channel.DirectoryEntryGroup, ID: "g1", Name: "alice"},
				{Kind: channel.DirectoryEntryUser, Name: "alice"},
				{ID: "3", Name: "alice"},
			},
		},
		{
			name:    "filtered to one candidate",
			query:   "zed",
			entries: []channel.DirectoryEntry{{Kind: channel.DirectoryEntryGroup, ID: "g1"}, user("9", "Zoe", "")},
			want:    "9",
			ok:      true,
		},
		{
			name:    "chosen id empty after prefix strip",
			query:   "x",
			entries: []channel.DirectoryEntry{user("user:", "x", "")},
		},
		{
			name:  "no entries",
			query: "x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := selectUserID(tt.query, tt.entries)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectUserID_OrderIndependent(t *testing.T) {
	a := []channel.DirectoryEntry{user("1", "carol", ""), user("2", "caroline", "")}
	b := []channel.DirectoryEntry{a[1], a[0]}
	got1, ok1 := selectUserID("carol", a)
	got2, ok2 := selectUserID("carol", b)
	assert.True(t, ok1 && ok2)
	assert.Equal(t, got1, got2)
}
