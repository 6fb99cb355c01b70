package contacts

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	bot_id TEXT NOT NULL,
	user_id TEXT NOT NULL DEFAULT '',
	display_name TEXT NOT NULL DEFAULT '',
	alias TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	status TEXT NOT NULL DEFAULT 'active',
	metadata TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contacts_bot ON contacts(bot_id);

CREATE TABLE IF NOT EXISTS contact_channels (
	id TEXT PRIMARY KEY,
	bot_id TEXT NOT NULL,
	contact_id TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
	platform TEXT NOT NULL,
	external_id TEXT NOT NULL,
	metadata TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE(bot_id, platform, external_id)
);
CREATE INDEX IF NOT EXISTS idx_contact_channels_contact ON contact_channels(contact_id);
`
