// Package contacts persists bot contacts and their platform channels in SQLite.
package contacts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("contact not found")

const contactColumns = `id, bot_id, user_id, display_name, alias, tags, status, metadata, created_at, updated_at`

const channelColumns = `id, bot_id, contact_id, platform, external_id, metadata, created_at, updated_at`

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store reads and writes contacts. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the SQLite database at path and applies the schema.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("contacts database path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create contacts directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open contacts database: %w", err)
	}
	// SQLite serializes writers, and each in-memory connection is its own database.
	db.SetMaxOpenConns(1)
	store, err := NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an open database handle and applies the schema.
func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("contacts database is nil")
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply contacts schema: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Create(ctx context.Context, req CreateRequest) (Contact, error) {
	botID := strings.TrimSpace(req.BotID)
	if botID == "" {
		return Contact{}, errors.New("bot id is required")
	}
	tags, err := json.Marshal(normalizeTags(req.Tags))
	if err != nil {
		return Contact{}, err
	}
	metadata, err := json.Marshal(defaultMetadata(req.Metadata))
	if err != nil {
		return Contact{}, err
	}
	id := uuid.NewString()
	now := formatTime(s.now())
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO contacts (`+contactColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, botID, strings.TrimSpace(req.UserID), strings.TrimSpace(req.DisplayName), strings.TrimSpace(req.Alias),
		string(tags), normalizeStatus(req.Status), string(metadata), now, now,
	)
	if err != nil {
		return Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *Store) GetByID(ctx context.Context, contactID string) (Contact, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, strings.TrimSpace(contactID))
	contact, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Contact{}, ErrNotFound
	}
	return contact, err
}

// UpsertChannel links the contact to externalID on platform. An existing link for the same
// bot, platform and external id is moved to the contact.
func (s *Store) UpsertChannel(ctx context.Context, req ChannelRequest) (ContactChannel, error) {
	platform := strings.TrimSpace(req.Platform)
	externalID := strings.TrimSpace(req.ExternalID)
	if platform == "" || externalID == "" {
		return ContactChannel{}, errors.New("platform and external id are required")
	}
	contact, err := s.GetByID(ctx, req.ContactID)
	if err != nil {
		return ContactChannel{}, err
	}
	metadata, err := json.Marshal(defaultMetadata(req.Metadata))
	if err != nil {
		return ContactChannel{}, err
	}
	now := formatTime(s.now())
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO contact_channels (`+channelColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(bot_id, platform, external_id) DO UPDATE SET
			contact_id = excluded.contact_id,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at`,
		uuid.NewString(), contact.BotID, contact.ID, platform, externalID, string(metadata), now, now,
	)
	if err != nil {
		return ContactChannel{}, fmt.Errorf("upsert contact channel: %w", err)
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+channelColumns+` FROM contact_channels WHERE bot_id = ? AND platform = ? AND external_id = ?`,
		contact.BotID, platform, externalID,
	)
	return scanChannel(row)
}

func (s *Store) ListByBot(ctx context.Context, botID string) ([]Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE bot_id = ? ORDER BY created_at, rowid`,
		strings.TrimSpace(botID),
	)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

// Search matches display name or alias by case-insensitive substring, or a channel external id exactly.
// An empty query lists every contact of the bot.
func (s *Store) Search(ctx context.Context, botID, query string) ([]Contact, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.ListByBot(ctx, botID)
	}
	pattern := "%" + escapeLike(strings.ToLower(trimmed)) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts c
		WHERE c.bot_id = ? AND (
			lower(c.display_name) LIKE ? ESCAPE '\'
			OR lower(c.alias) LIKE ? ESCAPE '\'
			OR EXISTS (SELECT 1 FROM contact_channels cc WHERE cc.contact_id = c.id AND cc.external_id = ?)
		)
		ORDER BY c.created_at, c.rowid`,
		strings.TrimSpace(botID), pattern, pattern, trimmed,
	)
	if err != nil {
		return nil, err
	}
	return collectContacts(rows)
}

func (s *Store) ListChannelsByContact(ctx context.Context, contactID string) ([]ContactChannel, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+channelColumns+` FROM contact_channels WHERE contact_id = ? ORDER BY created_at, rowid`,
		strings.TrimSpace(contactID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ContactChannel
	for rows.Next() {
		item, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func collectContacts(rows *sql.Rows) ([]Contact, error) {
	defer rows.Close()
	var items []Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, contact)
	}
	return items, rows.Err()
}

func scanContact(row scanner) (Contact, error) {
	var (
		c                    Contact
		tags, metadata       string
		createdAt, updatedAt string
	)
	if err := row.Scan(&c.ID, &c.BotID, &c.UserID, &c.DisplayName, &c.Alias, &tags, &c.Status, &metadata, &createdAt, &updatedAt); err != nil {
		return Contact{}, err
	}
	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		return Contact{}, fmt.Errorf("decode contact tags: %w", err)
	}
	c.Tags = normalizeTags(c.Tags)
	meta, err := decodeMetadata(metadata)
	if err != nil {
		return Contact{}, err
	}
	c.Metadata = meta
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}

func scanChannel(row scanner) (ContactChannel, error) {
	var (
		ch                   ContactChannel
		metadata             string
		createdAt, updatedAt string
	)
	if err := row.Scan(&ch.ID, &ch.BotID, &ch.ContactID, &ch.Platform, &ch.ExternalID, &metadata, &createdAt, &updatedAt); err != nil {
		return ContactChannel{}, err
	}
	meta, err := decodeMetadata(metadata)
	if err != nil {
		return ContactChannel{}, err
	}
	ch.Metadata = meta
	ch.CreatedAt = parseTime(createdAt)
	ch.UpdatedAt = parseTime(updatedAt)
	return ch, nil
}

func decodeMetadata(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

func defaultMetadata(value map[string]any) map[string]any {
	if value == nil {
		return map[string]any{}
	}
	return value
}

func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

func normalizeStatus(status string) string {
	switch trimmed := strings.ToLower(strings.TrimSpace(status)); trimmed {
	case "active", "blocked", "pending":
		return trimmed
	default:
		return "active"
	}
}

func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
