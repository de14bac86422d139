package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/desktop"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/resilience"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/storage"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

// Store keys
const (
	KeyFileSystem    = "fileSystem"
	KeyFiles         = "webos-files"
	KeyInstalledApps = "webos-installed-apps"
	KeyDeletedApps   = "deletedApps"
	KeyPinnedApps    = "pinnedApps"
)

const writeTimeout = 5 * time.Second

// Options configures write timing
type Options struct {
	// Debounce delays file-system snapshots; bursts of edits write once
	Debounce time.Duration
	// AppDebounce delays app, pin and file-log writes; zero writes inline
	AppDebounce time.Duration
	// Breaker guards store writes; nil gives the binder its own
	Breaker *resilience.Breaker
}

// DefaultOptions waits one second before saving the tree and saves the rest
// immediately
func DefaultOptions() Options {
	return Options{Debounce: time.Second}
}

// Binder keeps one desktop's store in step with its state
type Binder struct {
	store    storage.Store
	codec    *Codec
	desk     *desktop.Desktop
	opts     Options
	debounce *Debouncer
	logger   *zap.Logger
	metrics  *monitoring.Metrics

	mu      sync.Mutex
	fileLog []types.Item // Protected by mu
	cancel  func()
}

// NewBinder creates a binder. store should already be scoped to the profile.
func NewBinder(store storage.Store, codec *Codec, desk *desktop.Desktop, opts Options, logger *zap.Logger) *Binder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Breaker == nil {
		opts.Breaker = NewWriteBreaker(nil, logger)
	}
	return &Binder{
		store:    store,
		codec:    codec,
		desk:     desk,
		opts:     opts,
		debounce: NewDebouncer(),
		logger:   logger.Named("persistence").With(zap.String("profile", desk.Profile)),
	}
}

// WithMetrics adds metrics tracking to the binder
func (b *Binder) WithMetrics(metrics *monitoring.Metrics) *Binder {
	b.metrics = metrics
	return b
}

// Restore loads every key into the desktop. A missing or unreadable tree
// is replaced by the default tree; restored reports whether a saved tree
// was found.
func (b *Binder) Restore(ctx context.Context) (restored bool, err error) {
	var items []types.Item
	switch found, err := b.read(ctx, KeyFileSystem, &items); {
	case err != nil:
		b.logger.Warn("Discarding unreadable file system", zap.Error(err))
		fallthrough
	case !found:
		if err := b.desk.Files.Seed(); err != nil {
			return false, fmt.Errorf("failed to seed file system: %w", err)
		}
	default:
		b.desk.Files.Load(items)
		restored = true
	}

	var apps []types.App
	found, err := b.read(ctx, KeyInstalledApps, &apps)
	if err != nil {
		b.logger.Warn("Discarding unreadable app list", zap.Error(err))
		if err := b.store.Delete(ctx, KeyInstalledApps); err != nil {
			return restored, fmt.Errorf("failed to reset app list: %w", err)
		}
		found = false
	}
	if !found {
		apps = nil
	}
	b.desk.Apps.Load(apps)

	var deleted []types.DeletedApp
	if _, err := b.read(ctx, KeyDeletedApps, &deleted); err != nil {
		b.logger.Warn("Ignoring unreadable uninstall log", zap.Error(err))
	}
	b.desk.Apps.LoadDeleted(deleted)

	var pins []types.PinnedApp
	if _, err := b.read(ctx, KeyPinnedApps, &pins); err != nil {
		b.logger.Warn("Ignoring unreadable pinned apps", zap.Error(err))
	}
	b.desk.Apps.LoadPinned(pins)

	var fileLog []types.Item
	if _, err := b.read(ctx, KeyFiles, &fileLog); err != nil {
		b.logger.Warn("Ignoring unreadable file log", zap.Error(err))
	}
	b.mu.Lock()
	b.fileLog = fileLog
	b.mu.Unlock()

	b.logger.Debug("Desktop restored", zap.Bool("saved_tree", restored), zap.Int("items", b.desk.Files.Len()))
	return restored, nil
}

// Attach starts writing on every desktop event. Calling it twice is a no-op.
func (b *Binder) Attach() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		return
	}
	b.cancel = b.desk.Events.Subscribe(b.handle)
}

// SaveAll schedules a write of every key
func (b *Binder) SaveAll() {
	b.scheduleTree()
	b.scheduleApps()
	b.scheduleDeleted()
	b.schedulePins()
}

// Flush performs pending writes now
func (b *Binder) Flush() {
	b.debounce.Flush()
}

// Close detaches from the desktop and flushes pending writes
func (b *Binder) Close() {
	b.mu.Lock()
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	b.debounce.Stop()
}

// Pending returns the number of keys waiting to be written
func (b *Binder) Pending() int {
	return b.debounce.Pending()
}

func (b *Binder) handle(ev types.Event) {
	switch ev.Kind.Topic() {
	case "item":
		b.scheduleTree()
		if ev.Kind == types.EventItemCreated && ev.Item != nil && !ev.Item.IsFolder() {
			b.appendFileLog(*ev.Item)
		}
	case "app":
		b.scheduleApps()
		if ev.Kind == types.EventAppRemoved {
			b.scheduleDeleted()
		}
	case "pins":
		b.schedulePins()
	}
}

func (b *Binder) scheduleTree() {
	b.debounce.Schedule(KeyFileSystem, b.opts.Debounce, func() {
		b.write(KeyFileSystem, b.desk.Files.Visible())
	})
}

func (b *Binder) scheduleApps() {
	b.debounce.Schedule(KeyInstalledApps, b.opts.AppDebounce, func() {
		b.write(KeyInstalledApps, b.desk.Apps.List())
	})
}

func (b *Binder) scheduleDeleted() {
	b.debounce.Schedule(KeyDeletedApps, b.opts.AppDebounce, func() {
		b.write(KeyDeletedApps, b.desk.Apps.DeletedApps())
	})
}

func (b *Binder) schedulePins() {
	b.debounce.Schedule(KeyPinnedApps, b.opts.AppDebounce, func() {
		b.write(KeyPinnedApps, b.desk.Apps.Pinned())
	})
}

func (b *Binder) appendFileLog(item types.Item) {
	b.mu.Lock()
	b.fileLog = append(b.fileLog, item)
	b.mu.Unlock()

	b.debounce.Schedule(KeyFiles, b.opts.AppDebounce, func() {
		b.mu.Lock()
		snapshot := append([]types.Item(nil), b.fileLog...)
		b.mu.Unlock()
		b.write(KeyFiles, snapshot)
	})
}

// write stores v under key. Quota failures are expected when inline media
// outgrows the store; they are logged at debug level and counted.
func (b *Binder) write(key string, v any) {
	timer := monitoring.NewTimer(b.metrics, key)

	data, err := b.codec.Marshal(v)
	if err != nil {
		b.logger.Error("Failed to encode snapshot", zap.String("key", key), zap.Error(err))
		timer.Stop("error")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err = b.opts.Breaker.Do(func() error {
		return b.store.Set(ctx, key, data)
	})
	switch {
	case errors.Is(err, resilience.ErrOpen):
		b.logger.Debug("Storage breaker open, write skipped", zap.String("key", key))
		timer.Stop("skipped")
	case errors.Is(err, storage.ErrQuotaExceeded):
		b.logger.Debug("Storage quota exceeded, write dropped", zap.String("key", key), zap.Int("bytes", len(data)))
		if b.metrics != nil {
			b.metrics.RecordDropped(key)
		}
		timer.Stop("dropped")
	case err != nil:
		b.logger.Warn("Failed to write snapshot", zap.String("key", key), zap.Error(err))
		timer.Stop("error")
	default:
		timer.Stop("ok")
	}
}

// read decodes key into v. found is false for a missing key.
func (b *Binder) read(ctx context.Context, key string, v any) (found bool, err error) {
	data, err := b.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := b.codec.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
