package directory

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/memohai/targetresolver/internal/channel"
)

// Multi queries several directories concurrently and concatenates their results
// in backend order. Any backend failure fails the whole query.
type Multi struct {
	backends []channel.PeerLister
	logger   *slog.Logger
}

func NewMulti(log *slog.Logger, backends ...channel.PeerLister) *Multi {
	if log == nil {
		log = slog.Default()
	}
	return &Multi{
		backends: lo.Filter(backends, func(b channel.PeerLister, _ int) bool { return b != nil }),
		logger:   log.With(slog.String("service", "directory_multi")),
	}
}

func (m *Multi) ListPeers(ctx context.Context, cfg channel.Config, query channel.DirectoryQuery) ([]channel.DirectoryEntry, error) {
	results := make([][]channel.DirectoryEntry, len(m.backends))
	g, gctx := errgroup.WithContext(ctx)
	for i, backend := range m.backends {
		i, backend := i, backend
		g.Go(func() error {
			entries, err := backend.ListPeers(gctx, cfg, query)
			if err != nil {
				m.logger.Warn("directory backend failed", slog.Int("backend", i), slog.Any("error", err))
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	merged := lo.Flatten(results)
	if query.Limit > 0 && len(merged) > query.Limit {
		merged = merged[:query.Limit]
	}
	return merged, nil
}
