// Package command classifies what is typed into the dashboard's command line
// and carries it out: a redirect for URLs and searches, console output for
// the built-in commands.
package command

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/termtab/internal/console"
	"github.com/MrSnakeDoc/termtab/internal/domain"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/sites"
)

// Recorder stores a search in the recent list.
type Recorder interface {
	Record(ctx context.Context, query string) ([]domain.SiteEntry, error)
}

// ThemeSource resolves the current colors for the config panel.
type ThemeSource interface {
	Load(ctx context.Context) (domain.ColorTheme, error)
}

// Options configures a Dispatcher.
type Options struct {
	Mode     sites.Mode
	Recorder Recorder // only used in recent mode
	Sites    sites.Lister
	Theme    ThemeSource
	Logger   logger.Logger
	Now      func() time.Time
}

// Dispatcher runs submitted lines.
type Dispatcher struct {
	mode     sites.Mode
	recorder Recorder
	sites    sites.Lister
	theme    ThemeSource
	logger   logger.Logger
	now      func() time.Time
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(o Options) *Dispatcher {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	return &Dispatcher{
		mode:     o.Mode,
		recorder: o.Recorder,
		sites:    o.Sites,
		theme:    o.Theme,
		logger:   o.Logger,
		now:      o.Now,
	}
}

// Result is what the caller has to do with a dispatched line: follow
// Action.URL for Navigate and Search, show Console for Local.
type Result struct {
	Action  Action
	Console *console.Console
}

// Redirect reports whether the result leaves the dashboard.
func (r Result) Redirect() bool {
	return r.Action.Kind == ActionNavigate || r.Action.Kind == ActionSearch
}

// BookmarkMode reports whether the grid shows bookmarks.
func (d *Dispatcher) BookmarkMode() bool {
	return d.mode == sites.ModeBookmarks
}

// Dispatch classifies input and runs it. Searches are recorded before
// returning; a failed write is logged and the search still goes ahead.
func (d *Dispatcher) Dispatch(ctx context.Context, input string, info ClientInfo) Result {
	action := Classify(input, d.BookmarkMode())
	res := Result{Action: action, Console: console.New()}

	switch action.Kind {
	case ActionNone:
		d.logger.Debug("empty command line")

	case ActionNavigate:
		d.logger.Info("navigate", logger.String("url", action.URL))

	case ActionLocal:
		d.logger.Info("local command", logger.String("command", string(action.Local)))
		d.runLocal(ctx, action.Local, res.Console, info)

	case ActionSearch:
		d.logger.Info("search",
			logger.String("engine", action.Engine.Name),
			logger.String("url", action.URL))
		d.record(ctx, action.Query)
	}

	return res
}

func (d *Dispatcher) record(ctx context.Context, query string) {
	if d.mode != sites.ModeRecent || d.recorder == nil {
		return
	}
	if _, err := d.recorder.Record(ctx, query); err != nil {
		d.logger.Warn("failed to record search", logger.Error(err))
	}
}

func (d *Dispatcher) runLocal(ctx context.Context, kind LocalKind, out *console.Console, info ClientInfo) {
	out.Clear()
	switch kind {
	case LocalHelp:
		Help(out, d.BookmarkMode())
	case LocalNeofetch:
		Neofetch(out, info, d.now())
	case LocalHist:
		d.hist(ctx, out)
	case LocalConfig:
		d.config(ctx, out)
	}
	d.logger.Debug("local command output",
		logger.String("command", string(kind)),
		logger.Strings("lines", out.Plain()))
}

func (d *Dispatcher) hist(ctx context.Context, out *console.Console) {
	var list []domain.SiteEntry
	if d.sites != nil {
		var err error
		if list, err = d.sites.List(ctx); err != nil {
			d.logger.Warn("failed to load sites for history", logger.Error(err))
		}
	}
	Hist(out, list, d.BookmarkMode())
}

func (d *Dispatcher) config(ctx context.Context, out *console.Console) {
	colors := domain.DefaultTheme()
	if d.theme != nil {
		loaded, err := d.theme.Load(ctx)
		if err != nil {
			d.logger.Warn("failed to load colors for config panel", logger.Error(err))
		}
		if loaded != nil {
			colors = loaded
		}
	}
	Config(out, colors)
}
