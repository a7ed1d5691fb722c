// Package theme resolves the page color variables from the stored override
// record and applies or resets that record.
package theme

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/termtab/internal/domain"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/store"
)

// Loader reads and writes the customColors record.
type Loader struct {
	store  store.Store
	logger logger.Logger
}

// NewLoader creates a theme loader over s.
func NewLoader(s store.Store, log logger.Logger) *Loader {
	return &Loader{store: s, logger: log}
}

// Load returns the defaults with the stored overrides merged on top.
func (l *Loader) Load(ctx context.Context) (domain.ColorTheme, error) {
	overrides, _, err := store.GetColors(ctx, l.store)
	if err != nil {
		return domain.DefaultTheme(), err
	}
	return domain.Merge(overrides), nil
}

// Apply stores the non-blank values as the complete override record and
// returns the resolved theme. Unknown slot names are dropped.
func (l *Loader) Apply(ctx context.Context, values map[string]string) (domain.ColorTheme, error) {
	overrides := domain.ColorTheme{}
	for name, value := range values {
		slot := domain.Slot(name)
		value = strings.TrimSpace(value)
		if !slot.Valid() || value == "" {
			continue
		}
		overrides[slot] = value
	}

	if err := l.store.Set(ctx, store.KeyCustomColors, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply colors: %w", err)
	}

	l.logger.Info("colors applied", logger.Int("overrides", len(overrides)))
	return domain.Merge(overrides), nil
}

// Reset removes the override record and returns the defaults.
func (l *Loader) Reset(ctx context.Context) (domain.ColorTheme, error) {
	if err := l.store.Remove(ctx, store.KeyCustomColors); err != nil {
		return nil, fmt.Errorf("failed to reset colors: %w", err)
	}

	l.logger.Info("colors reset to default")
	return domain.DefaultTheme(), nil
}

// CSS renders the theme as custom properties on :root, slots in display
// order. Values are stripped of characters that could end the declaration.
func CSS(t domain.ColorTheme) string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, slot := range orderedSlots(t) {
		fmt.Fprintf(&b, "--%s:%s;", slot, sanitize(t[slot]))
	}
	b.WriteString("}")
	return b.String()
}

func orderedSlots(t domain.ColorTheme) []domain.Slot {
	slots := make([]domain.Slot, 0, len(t))
	for _, slot := range domain.Slots {
		if _, ok := t[slot]; ok {
			slots = append(slots, slot)
		}
	}
	extra := make([]domain.Slot, 0)
	for slot := range t {
		if !slot.Valid() {
			extra = append(extra, slot)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(slots, extra...)
}

// sanitize drops characters that could end the declaration or open a CSS
// comment. Without '*' no comment can start, so '/' stays for rgb(r g b / a).
func sanitize(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\', '\n', '\r', '*':
			return -1
		}
		return r
	}, v)
}
