// Package clock formats the dashboard clock and drives its once-per-second
// refresh.
package clock

import (
	"context"
	"time"
)

// Format renders t as 24-hour HH:MM.
func Format(t time.Time) string {
	return t.Format("15:04")
}

// Run calls emit with the formatted time immediately and then on every tick
// until ctx is done or emit returns an error. The error is returned; a
// cancelled context is not an error.
func Run(ctx context.Context, interval time.Duration, now func() time.Time, emit func(string) error) error {
	if now == nil {
		now = time.Now
	}
	if err := emit(Format(now())); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			if err := emit(Format(now())); err != nil {
				return err
			}
		}
	}
}
