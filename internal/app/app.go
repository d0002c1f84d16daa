// ABOUTME: Wires storage, stores, outbox, and the persistence bridge together.
// ABOUTME: One App per process; no package-level singletons.
package app

import (
	"log/slog"

	"github.com/harperreed/gym/internal/bridge"
	"github.com/harperreed/gym/internal/catalog"
	"github.com/harperreed/gym/internal/config"
	"github.com/harperreed/gym/internal/outbox"
	"github.com/harperreed/gym/internal/session"
	"github.com/harperreed/gym/internal/settings"
	"github.com/harperreed/gym/internal/storage"
)

// App owns the full data layer: one adapter, the three stores, the outbox
// queue, and the bridge that persists them.
type App struct {
	Adapter  storage.Adapter
	Session  *session.Store
	Catalog  *catalog.Store
	Settings *settings.Store
	Outbox   *outbox.Queue
	Bridge   *bridge.Bridge

	log *slog.Logger
}

// Options tune App construction. Zero value is fine.
type Options struct {
	Logger *slog.Logger

	// Delays overrides the bridge flush delays, for tests.
	Delays bridge.Delays
}

// New opens storage per config and wires the stores. A storage open failure
// is not fatal: the app falls back to an in-memory adapter so the session
// still works for the process lifetime.
func New(cfg *config.Config, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	adapter, err := cfg.OpenStorage()
	if err != nil {
		logger.Warn("storage unavailable, continuing in memory", "backend", cfg.GetBackend(), "error", err)
		adapter = storage.NewMemory()
	}

	settingsStore := settings.NewStore()
	catalogStore := catalog.NewStore()
	queue := outbox.NewQueue()

	sessionStore := session.NewStore(session.Deps{
		GetSettings: settingsStore.Settings,
		GetCatalog: func() session.Catalog {
			return session.Catalog{
				Programs:  catalogStore.Programs(),
				Exercises: catalogStore.Exercises(),
			}
		},
		Emit: func(eventType outbox.EventType, payload map[string]any) {
			queue.Enqueue(eventType, payload)
		},
	})

	a := &App{
		Adapter:  adapter,
		Session:  sessionStore,
		Catalog:  catalogStore,
		Settings: settingsStore,
		Outbox:   queue,
		log:      logger,
	}
	a.Bridge = bridge.New(bridge.Deps{
		Adapter:  adapter,
		Session:  sessionStore,
		Catalog:  catalogStore,
		Settings: settingsStore,
		Outbox:   queue,
		Logger:   logger,
		Delays:   opts.Delays,
	})
	return a
}

// Hydrate loads all persisted state into the stores. Settings and catalog go
// first so session hydration sees them; the outbox goes last so events
// enqueued before hydration survive the merge.
func (a *App) Hydrate() {
	a.Settings.Hydrate(a.Adapter)
	a.Catalog.Hydrate(a.Adapter)
	a.Session.Hydrate(a.Adapter)
	a.Outbox.Hydrate(a.Adapter)
}

// Close flushes pending writes and releases storage.
func (a *App) Close() {
	a.Bridge.Flush()
	a.Bridge.Close()
	a.Adapter.Close()
}
