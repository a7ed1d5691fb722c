package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/termtab/internal/domain"
)

// GetSites loads a site list record. A missing record is an empty list.
func GetSites(ctx context.Context, s Store, key string) ([]domain.SiteEntry, error) {
	var sites []domain.SiteEntry
	if err := s.Get(ctx, key, &sites); err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.SiteEntry{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if sites == nil {
		sites = []domain.SiteEntry{}
	}
	return sites, nil
}

// SetSites replaces a site list record.
func SetSites(ctx context.Context, s Store, key string, sites []domain.SiteEntry) error {
	if err := s.Set(ctx, key, sites); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// GetColors loads the theme override record. found is false when no
// override was ever stored.
func GetColors(ctx context.Context, s Store) (colors domain.ColorTheme, found bool, err error) {
	if err := s.Get(ctx, KeyCustomColors, &colors); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.ColorTheme{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to load %s: %w", KeyCustomColors, err)
	}
	return colors, true, nil
}

// Exists reports whether a record is present.
func Exists(ctx context.Context, s Store, key string) (bool, error) {
	var raw any
	err := s.Get(ctx, key, &raw)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
