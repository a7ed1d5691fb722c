package deps

import (
	"time"

	"github.com/MrSnakeDoc/termtab/internal/command"
	"github.com/MrSnakeDoc/termtab/internal/logger"
	"github.com/MrSnakeDoc/termtab/internal/sites"
	"github.com/MrSnakeDoc/termtab/internal/store"
	"github.com/MrSnakeDoc/termtab/internal/theme"
	"github.com/MrSnakeDoc/termtab/internal/weather"
	"github.com/MrSnakeDoc/termtab/internal/web"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time    // for testing, defaults to time.Now
	AllowedHosts  []string            // Host headers allowed to access the server
	AllowedCIDRS  []string            // IPs allowed to access the server
	TrustProxy    bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimit     int                 // requests per minute per IP on mutating routes
	Mode          sites.Mode          // which list backs the grid
	Store         store.Store         // record store (redis or memory)
	Theme         *theme.Loader       // customColors record
	Sites         sites.Lister        // list shown in the grid
	Bookmarks     *sites.Bookmarks    // nil unless Mode is bookmarks
	Dispatcher    *command.Dispatcher // command line
	Weather       *weather.Client     // nil when the widget is disabled
	Pages         *web.Renderer       // dashboard template
	SeedFile      string              // optional seed file, empty when unset
	SeedTrigger   chan struct{}       // manual re-seed, nil without a seed file
	ClockInterval time.Duration       // SSE tick, defaults to one second
	StreamsDone   <-chan struct{}     // closed when the server shuts down
}

// Now returns TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
