package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/domain/desktop"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/monitoring"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/persistence"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/infrastructure/storage"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/id"
	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/utils"
)

var (
	// ErrNotOpen is returned for profiles without an open desktop
	ErrNotOpen = errors.New("session: desktop not open")
	// ErrClosed is returned by Open after CloseAll
	ErrClosed = errors.New("session: manager closed")
)

// Options configures new desktops
type Options struct {
	Desktop     desktop.Options
	Persistence persistence.Options
}

// Session is an open desktop
type Session struct {
	ID       id.SessionID `json:"id"`
	Profile  string       `json:"profile"`
	OpenedAt time.Time    `json:"openedAt"`
	Restored bool         `json:"restored"`

	Desktop *desktop.Desktop `json:"-"`
	binder  *persistence.Binder

	closed    chan struct{}
	closeOnce sync.Once
}

// Done is closed when the session is closed
func (s *Session) Done() <-chan struct{} {
	return s.closed
}

// Info summarizes an open session
type Info struct {
	ID       id.SessionID `json:"id"`
	Profile  string       `json:"profile"`
	OpenedAt time.Time    `json:"openedAt"`
	Restored bool         `json:"restored"`
	Windows  int          `json:"windows"`
	Items    int          `json:"items"`
}

// Manager handles open desktops
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool

	store   storage.Store
	codec   *persistence.Codec
	opts    Options
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a session manager over store. Each profile's keys are
// namespaced by profile name.
func NewManager(store storage.Store, codec *persistence.Codec, opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Desktop.Logger == nil {
		opts.Desktop.Logger = logger
	}
	if opts.Persistence.Breaker == nil {
		opts.Persistence.Breaker = persistence.NewWriteBreaker(opts.Desktop.Metrics, logger)
	}
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		codec:    codec,
		opts:     opts,
		logger:   logger.Named("session"),
		metrics:  opts.Desktop.Metrics,
	}
}

// Open returns the desktop for profile, restoring it from the store on first
// use. opened reports whether a new session was created.
func (m *Manager) Open(ctx context.Context, profile string) (sess *Session, opened bool, err error) {
	if err := utils.ValidateProfile(profile); err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, false, ErrClosed
	}
	if existing, ok := m.sessions[profile]; ok {
		return existing, false, nil
	}

	desk := desktop.New(profile, m.opts.Desktop)
	binder := persistence.NewBinder(storage.Namespace(m.store, profile), m.codec, desk, m.opts.Persistence, m.logger).
		WithMetrics(m.metrics)

	restored, err := binder.Restore(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to restore desktop %s: %w", profile, err)
	}
	binder.Attach()
	if !restored {
		binder.SaveAll()
	}

	sess = &Session{
		ID:       id.NewSessionID(),
		Profile:  profile,
		OpenedAt: time.Now(),
		Restored: restored,
		Desktop:  desk,
		binder:   binder,
		closed:   make(chan struct{}),
	}
	m.sessions[profile] = sess
	m.updateGauge()

	m.logger.Info("Desktop opened",
		zap.String("profile", profile),
		zap.String("session_id", sess.ID.String()),
		zap.Bool("restored", restored))
	return sess, true, nil
}

// Get returns the open session for profile
func (m *Manager) Get(profile string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[profile]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotOpen, profile)
	}
	return sess, nil
}

// List returns the open sessions ordered by profile
func (m *Manager) List() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.sessions))
	for _, sess := range m.sessions {
		out = append(out, sess.Info())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Profile < out[j].Profile })
	return out
}

// Saved returns the profiles with state in the store, open or not
func (m *Manager) Saved(ctx context.Context) ([]string, error) {
	profiles, err := storage.Profiles(ctx, m.store)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved profiles: %w", err)
	}
	sort.Strings(profiles)
	return profiles, nil
}

// Flush writes pending changes of profile without closing it
func (m *Manager) Flush(profile string) error {
	sess, err := m.Get(profile)
	if err != nil {
		return err
	}
	sess.binder.Flush()
	return nil
}

// Close flushes pending writes and drops the desktop
func (m *Manager) Close(ctx context.Context, profile string) error {
	m.mu.Lock()
	sess, ok := m.sessions[profile]
	if ok {
		delete(m.sessions, profile)
		m.updateGauge()
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotOpen, profile)
	}
	return m.shutdown(ctx, sess)
}

// CloseAll closes every session and refuses new ones
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.sessions = make(map[string]*Session)
	m.updateGauge()
	m.mu.Unlock()

	var errs []error
	for _, sess := range sessions {
		if err := m.shutdown(ctx, sess); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of open sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Info summarizes the session
func (s *Session) Info() Info {
	return Info{
		ID:       s.ID,
		Profile:  s.Profile,
		OpenedAt: s.OpenedAt,
		Restored: s.Restored,
		Windows:  s.Desktop.Windows.Stats().TotalWindows,
		Items:    s.Desktop.Files.Len(),
	}
}

func (m *Manager) shutdown(ctx context.Context, sess *Session) error {
	sess.closeOnce.Do(func() { close(sess.closed) })

	done := make(chan struct{})
	go func() {
		sess.binder.Close()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Desktop closed", zap.String("profile", sess.Profile))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("closing desktop %s: %w", sess.Profile, ctx.Err())
	}
}

// updateGauge must be called with mu held
func (m *Manager) updateGauge() {
	if m.metrics != nil {
		m.metrics.SetSessionsActive(len(m.sessions))
	}
}
