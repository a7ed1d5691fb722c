package sites

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/termtab/internal/domain"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/store"
)

// NewIndex marks a Save that creates a bookmark instead of editing one.
const NewIndex = -1

// Bookmarks manages the user-curated bookmarks list.
type Bookmarks struct {
	store  store.Store
	logger logger.Logger
}

// NewBookmarks creates the bookmark policy.
func NewBookmarks(s store.Store, log logger.Logger) *Bookmarks {
	return &Bookmarks{store: s, logger: log}
}

// List returns the bookmarks in insertion/edit order.
func (b *Bookmarks) List(ctx context.Context) ([]domain.SiteEntry, error) {
	return store.GetSites(ctx, b.store, store.KeyBookmarks)
}

// Get returns the bookmark at index.
func (b *Bookmarks) Get(ctx context.Context, index int) (domain.SiteEntry, error) {
	list, err := b.List(ctx)
	if err != nil {
		return domain.SiteEntry{}, err
	}
	if index < 0 || index >= len(list) {
		return domain.SiteEntry{}, ErrIndexOutOfRange
	}
	return list[index], nil
}

// Save validates name and rawURL, then replaces the bookmark at index or,
// with NewIndex, appends a new one. The list is left untouched on any error.
func (b *Bookmarks) Save(ctx context.Context, index int, name, rawURL string) ([]domain.SiteEntry, error) {
	entry, err := NewBookmark(name, rawURL)
	if err != nil {
		return nil, err
	}

	list, err := b.List(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case index == NewIndex:
		if len(list) >= domain.MaxSites {
			return nil, ErrCapacity
		}
		list = append(list, entry)
	case index >= 0 && index < len(list):
		list[index] = entry
	default:
		return nil, ErrIndexOutOfRange
	}

	if err := store.SetSites(ctx, b.store, store.KeyBookmarks, list); err != nil {
		return nil, err
	}

	b.logger.Info("bookmark saved",
		logger.String("name", entry.Name),
		logger.String("url", entry.URL),
		logger.Int("index", index))
	return list, nil
}

// Delete removes the bookmark at index; later bookmarks shift down.
func (b *Bookmarks) Delete(ctx context.Context, index int) ([]domain.SiteEntry, error) {
	list, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(list) {
		return nil, ErrIndexOutOfRange
	}

	removed := list[index]
	list = append(list[:index], list[index+1:]...)

	if err := store.SetSites(ctx, b.store, store.KeyBookmarks, list); err != nil {
		return nil, err
	}

	b.logger.Info("bookmark deleted",
		logger.String("name", removed.Name),
		logger.Int("index", index))
	return list, nil
}

// hasScheme matches a leading "scheme://"; a URL inside the query or
// fragment does not count.
var hasScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// NewBookmark builds a validated entry: both fields non-blank, https://
// assumed when no scheme is given, and the result must parse as an absolute
// URL with a host.
func NewBookmark(name, rawURL string) (domain.SiteEntry, error) {
	name = strings.TrimSpace(name)
	rawURL = strings.TrimSpace(rawURL)
	if name == "" || rawURL == "" {
		return domain.SiteEntry{}, ErrBlankField
	}

	if !hasScheme.MatchString(rawURL) {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" || strings.ContainsAny(u.Host, " \t") {
		return domain.SiteEntry{}, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	return domain.SiteEntry{
		Name: domain.Truncate(name, BookmarkNameLen),
		URL:  u.String(),
		Icon: IconURL(u.String()),
	}, nil
}
