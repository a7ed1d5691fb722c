package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/sources/seed"
	"github.com/MrSnakeDoc/termtab/internal/store"
)

// Seeder initialises absent store records from the seed file, once at start
// and again whenever the manual trigger fires. Records that already exist are
// never overwritten.
type Seeder struct {
	loader        *seed.Loader
	store         store.Store
	logger        logger.Logger
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSeeder creates a seeder for seedFile.
func NewSeeder(
	seedFile string,
	s store.Store,
	log logger.Logger,
	manualTrigger chan struct{},
) *Seeder {
	return &Seeder{
		loader:        seed.NewLoader(seedFile),
		store:         s,
		logger:        log.With(logger.String("seed_file", seedFile)),
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start seeds immediately, then listens for manual triggers in the
// background until Stop or ctx is done.
func (s *Seeder) Start(ctx context.Context) error {
	if _, err := s.Seed(ctx); err != nil {
		return fmt.Errorf("initial seed failed: %w", err)
	}

	go func() {
		for {
			select {
			case <-s.manualTrigger:
				s.logger.Info("manual seed triggered")
				if _, err := s.Seed(ctx); err != nil {
					s.logger.Error("failed to seed store", logger.Error(err))
				}
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop ends the trigger loop.
func (s *Seeder) Stop() {
	close(s.stopCh)
}

// Seed writes every record the seed file defines and the store lacks. It
// returns the keys that were written.
func (s *Seeder) Seed(ctx context.Context) ([]string, error) {
	cfg, err := s.loader.Load()
	if err != nil {
		return nil, err
	}

	records := seed.Map(cfg)
	for _, reason := range records.Skipped {
		s.logger.Warn("skipping seed entry", logger.String("reason", reason))
	}
	if records.Empty() {
		s.logger.Info("seed file defines no records")
		return nil, nil
	}

	candidates := []struct {
		key   string
		value any
		set   bool
	}{
		{store.KeyCustomColors, records.Theme, records.Theme != nil},
		{store.KeyBookmarks, records.Bookmarks, records.Bookmarks != nil},
		{store.KeyRecentSites, records.Recent, records.Recent != nil},
	}

	var written []string
	for _, c := range candidates {
		if !c.set {
			continue
		}

		exists, err := store.Exists(ctx, s.store, c.key)
		if err != nil {
			return written, fmt.Errorf("failed to check %s: %w", c.key, err)
		}
		if exists {
			s.logger.Debug("record already present, keeping it", logger.String("key", c.key))
			continue
		}

		if err := s.store.Set(ctx, c.key, c.value); err != nil {
			return written, fmt.Errorf("failed to seed %s: %w", c.key, err)
		}
		written = append(written, c.key)
	}

	s.logger.Info("seeded store",
		logger.Int("written", len(written)),
		logger.String("backend", s.store.Backend()))
	return written, nil
}
