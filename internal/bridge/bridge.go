// ABOUTME: Persistence bridge between the observable stores and storage.
// ABOUTME: Coalesces rapid mutations into one debounced write per store.
package bridge

import (
	"log/slog"
	"sync"
	"time"

	"github.com/harperreed/gym/internal/catalog"
	"github.com/harperreed/gym/internal/outbox"
	"github.com/harperreed/gym/internal/session"
	"github.com/harperreed/gym/internal/settings"
	"github.com/harperreed/gym/internal/storage"
)

// Default quiet periods per store. Rapid successive mutations inside a
// window coalesce into a single write of the latest state.
const (
	DefaultSessionDelay  = 180 * time.Millisecond
	DefaultSettingsDelay = 200 * time.Millisecond
	DefaultCatalogDelay  = 240 * time.Millisecond
	DefaultOutboxDelay   = 200 * time.Millisecond
)

// Delays overrides the per-store quiet periods; zero values keep defaults.
type Delays struct {
	Session  time.Duration
	Settings time.Duration
	Catalog  time.Duration
	Outbox   time.Duration
}

func (d Delays) withDefaults() Delays {
	if d.Session == 0 {
		d.Session = DefaultSessionDelay
	}
	if d.Settings == 0 {
		d.Settings = DefaultSettingsDelay
	}
	if d.Catalog == 0 {
		d.Catalog = DefaultCatalogDelay
	}
	if d.Outbox == 0 {
		d.Outbox = DefaultOutboxDelay
	}
	return d
}

// Deps are the stores the bridge observes and the adapter it writes through.
type Deps struct {
	Adapter  storage.Adapter
	Session  *session.Store
	Catalog  *catalog.Store
	Settings *settings.Store
	Outbox   *outbox.Queue
	Logger   *slog.Logger
	Delays   Delays
}

// flusher is one coalescing write worker. Dirty signals restart its quiet
// timer; when the timer fires it serializes the store's current state.
type flusher struct {
	name  string
	delay time.Duration
	dirty chan struct{}
	flush func()
}

func (f *flusher) mark() {
	select {
	case f.dirty <- struct{}{}:
	default:
	}
}

// Bridge is the sole writer of persisted snapshots. Stores stay synchronous
// and adapter-agnostic; the bridge derives persistence from their changes.
type Bridge struct {
	deps     Deps
	log      *slog.Logger
	flushers []*flusher
	done     chan struct{}
	wg       sync.WaitGroup
	unsubs   []func()

	mu              sync.Mutex
	lastLegacyToken uint64
	now             func() int64
}

// New wires the bridge to the stores and starts its flush workers. Callers
// must Close it to cancel outstanding timers before tearing down stores.
func New(deps Deps) *Bridge {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	deps.Delays = deps.Delays.withDefaults()

	b := &Bridge{
		deps: deps,
		log:  logger,
		done: make(chan struct{}),
		now:  func() int64 { return time.Now().UnixMilli() },
	}

	settingsFlusher := b.newFlusher("settings", deps.Delays.Settings, b.flushSettings)
	catalogFlusher := b.newFlusher("catalog", deps.Delays.Catalog, b.flushCatalog)
	sessionFlusher := b.newFlusher("session", deps.Delays.Session, b.flushSession)
	outboxFlusher := b.newFlusher("outbox", deps.Delays.Outbox, b.flushOutbox)

	b.unsubs = append(b.unsubs,
		deps.Settings.Subscribe(func() {
			if deps.Settings.HasHydrated() {
				settingsFlusher.mark()
			}
		}),
		deps.Catalog.Subscribe(func() {
			if deps.Catalog.HasHydrated() {
				catalogFlusher.mark()
			}
		}),
		deps.Session.Subscribe(func() {
			b.drainLegacyIfRequested()
			if deps.Session.HasHydrated() {
				sessionFlusher.mark()
			}
		}),
	)
	deps.Outbox.OnChange(func() {
		if deps.Outbox.HasHydrated() {
			outboxFlusher.mark()
		}
	})

	for _, f := range b.flushers {
		b.wg.Add(1)
		go b.run(f)
	}
	return b
}

func (b *Bridge) newFlusher(name string, delay time.Duration, flush func()) *flusher {
	f := &flusher{
		name:  name,
		delay: delay,
		dirty: make(chan struct{}, 1),
		flush: flush,
	}
	b.flushers = append(b.flushers, f)
	return f
}

func (b *Bridge) run(f *flusher) {
	defer b.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-b.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-f.dirty:
			// A newer schedule supersedes the pending one.
			if timer == nil {
				timer = time.NewTimer(f.delay)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(f.delay)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			f.flush()
			b.log.Debug("persisted store snapshot", "store", f.name)
		}
	}
}

// drainLegacyIfRequested purges the legacy workout partition when the
// session store's clear token has advanced.
func (b *Bridge) drainLegacyIfRequested() {
	token := b.deps.Session.LegacyClearToken()

	b.mu.Lock()
	drain := token > b.lastLegacyToken
	if drain {
		b.lastLegacyToken = token
	}
	b.mu.Unlock()

	if drain {
		b.deps.Adapter.ClearLegacyWorkouts()
		b.log.Debug("cleared legacy workout partition")
	}
}

func (b *Bridge) flushSettings() {
	if !b.deps.Settings.HasHydrated() {
		return
	}
	b.deps.Adapter.SetSettings(storage.SettingsRecord{
		SchemaVersion: settings.SchemaVersion,
		Value:         b.deps.Settings.Settings(),
		UpdatedAt:     b.now(),
	})
}

func (b *Bridge) flushCatalog() {
	if !b.deps.Catalog.HasHydrated() {
		return
	}
	b.deps.Adapter.ClearPrograms()
	b.deps.Adapter.ClearExercises()
	for _, exercise := range b.deps.Catalog.Exercises() {
		b.deps.Adapter.PutExercise(exercise)
	}
	for _, program := range b.deps.Catalog.Programs() {
		b.deps.Adapter.PutProgram(program)
	}
	b.deps.Adapter.SetMeta(storage.MetaRecord{
		ID:    "catalog",
		Value: storage.MetaValue{SchemaVersion: catalog.SchemaVersion, UpdatedAt: b.now()},
	})
}

func (b *Bridge) flushSession() {
	if !b.deps.Session.HasHydrated() {
		return
	}
	b.deps.Adapter.SetSessionSnapshot(storage.SessionRecord{
		SchemaVersion: session.SchemaVersion,
		Value:         b.deps.Session.Snapshot(),
		UpdatedAt:     b.now(),
	})
}

func (b *Bridge) flushOutbox() {
	if !b.deps.Outbox.HasHydrated() {
		return
	}
	b.deps.Outbox.Persist(b.deps.Adapter)
}

// Flush writes every hydrated store through immediately, without waiting
// for quiet periods. Used on process exit.
func (b *Bridge) Flush() {
	b.flushSettings()
	b.flushCatalog()
	b.flushSession()
	b.flushOutbox()
}

// Close detaches from the stores and stops the flush workers, cancelling
// any outstanding timers. Writes scheduled but not yet due are dropped;
// callers that need them should Flush first.
func (b *Bridge) Close() {
	for _, unsub := range b.unsubs {
		unsub()
	}
	close(b.done)
	b.wg.Wait()
}
