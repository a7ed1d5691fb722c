package sites

import (
	"context"

	"github.com/MrSnakeDoc/termtab/internal/domain"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/store"
)

// Recent records searches into the recentSites list.
type Recent struct {
	store  store.Store
	logger logger.Logger
}

// NewRecent creates the recent-search policy.
func NewRecent(s store.Store, log logger.Logger) *Recent {
	return &Recent{store: s, logger: log}
}

// List returns the recorded searches, newest first.
func (r *Recent) List(ctx context.Context) ([]domain.SiteEntry, error) {
	return store.GetSites(ctx, r.store, store.KeyRecentSites)
}

// RecentEntry is the tile recorded for a search line.
func RecentEntry(query string) domain.SiteEntry {
	return domain.SiteEntry{
		Name: domain.Truncate(query, RecentNameLen),
		URL:  SearchURL(query),
		Icon: duckDuckGoIcon,
	}
}

// Record moves query to the front of the list, dropping any older entry with
// the same URL and anything past the sixth. It returns once the store has
// acknowledged the write.
//
// The read-modify-write is not serialised: two searches racing each other can
// lose one entry.
func (r *Recent) Record(ctx context.Context, query string) ([]domain.SiteEntry, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	entry := RecentEntry(query)

	next := make([]domain.SiteEntry, 0, domain.MaxSites)
	next = append(next, entry)
	for _, existing := range list {
		if existing.URL == entry.URL {
			continue
		}
		if len(next) == domain.MaxSites {
			break
		}
		next = append(next, existing)
	}

	if err := store.SetSites(ctx, r.store, store.KeyRecentSites, next); err != nil {
		return nil, err
	}

	r.logger.Debug("recorded search",
		logger.String("name", entry.Name),
		logger.Int("entries", len(next)))
	return next, nil
}
