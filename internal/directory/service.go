// Package directory provides peer directories backed by local data: the contacts store,
// a static YAML file, and a fan-out over several directories.
package directory

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/memohai/targetresolver/internal/channel"
	"github.com/memohai/targetresolver/internal/contacts"
)

type ContactReader interface {
	Search(ctx context.Context, botID, query string) ([]contacts.Contact, error)
	ListChannelsByContact(ctx context.Context, contactID string) ([]contacts.ContactChannel, error)
}

// LocalService serves peers from the bot's contact book.
type LocalService struct {
	contacts ContactReader
	logger   *slog.Logger
}

func NewLocalService(log *slog.Logger, contacts ContactReader) *LocalService {
	if log == nil {
		log = slog.Default()
	}
	return &LocalService{
		contacts: contacts,
		logger:   log.With(slog.String("service", "directory")),
	}
}

// ListPeers returns one user entry per contact channel on cfg's platform whose contact
// matches the query. An empty query lists every contact; user markers ("user:", "@") are
// ignored, and a query that is nothing but a marker matches nothing.
func (s *LocalService) ListPeers(ctx context.Context, cfg channel.Config, query channel.DirectoryQuery) ([]channel.DirectoryEntry, error) {
	if s.contacts == nil {
		return nil, errors.New("contacts store not configured")
	}
	if query.Kind != "" && query.Kind != channel.DirectoryEntryUser {
		return nil, nil
	}
	needle, ok := channel.LookupNeedle(query.Query)
	if !ok {
		return nil, nil
	}
	platform := strings.TrimSpace(cfg.Type.String())
	items, err := s.contacts.Search(ctx, cfg.BotID, needle)
	if err != nil {
		return nil, err
	}
	results := make([]channel.DirectoryEntry, 0, len(items))
	for _, contact := range items {
		channels, err := s.contacts.ListChannelsByContact(ctx, contact.ID)
		if err != nil {
			s.logger.Warn("list contact channels failed", slog.String("contact_id", contact.ID), slog.Any("error", err))
			continue
		}
		for _, ch := range channels {
			if platform != "" && ch.Platform != platform {
				continue
			}
			entry := channel.DirectoryEntry{
				Kind:     channel.DirectoryEntryUser,
				ID:       strings.TrimSpace(ch.ExternalID),
				Name:     chooseContactName(contact, ch),
				Handle:   strings.TrimSpace(contact.Alias),
				Metadata: map[string]any{},
			}
			if entry.ID == "" {
				continue
			}
			entry.Metadata["contact_id"] = contact.ID
			if contact.UserID != "" {
				entry.Metadata["user_id"] = contact.UserID
			}
			entry.Metadata["platform"] = ch.Platform
			results = append(results, entry)
			if query.Limit > 0 && len(results) >= query.Limit {
				return results, nil
			}
		}
	}
	return results, nil
}

func chooseContactName(contact contacts.Contact, ch contacts.ContactChannel) string {
	if strings.TrimSpace(contact.DisplayName) != "" {
		return strings.TrimSpace(contact.DisplayName)
	}
	if strings.TrimSpace(contact.Alias) != "" {
		return strings.TrimSpace(contact.Alias)
	}
	return strings.TrimSpace(ch.ExternalID)
}

func matchesQuery(query string, fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(strings.TrimSpace(field)), needle) {
			return true
		}
	}
	return false
}
