package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"hos-route-service/internal/domain"
)

// State is the render state exposed to the surrounding UI. The three
// states are mutually exclusive: loading -> ready or loading -> error,
// and a new trip always re-enters loading first.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Session owns one live map instance: its markers, route overlay and
// viewport. Sessions never overlap; the manager tears one down fully
// before installing the next.
type Session struct {
	ID      string
	TripID  int64
	Content domain.MapContent
}

// release drops the session's markers and overlay.
func (s *Session) release() {
	s.Content = domain.MapContent{}
}

// Snapshot is a point-in-time view of the manager's state.
type Snapshot struct {
	State   State
	ErrMsg  string
	Session *Session
}

// Manager owns the single live map session and serializes all mutation
// of it. Each composition is tagged with a generation token; starting a
// new composition cancels the previous one, and only the latest
// generation may apply its result, so stale compositions can never
// overwrite the current session.
type Manager struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc

	state  State
	errMsg string
	live   *Session

	onLiveChange func(live bool)
}

func NewManager() *Manager {
	return &Manager{state: StateLoading}
}

// OnLiveChange registers a hook invoked when a session is created or
// torn down. Used to keep the live-session gauge current.
func (m *Manager) OnLiveChange(fn func(live bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onLiveChange = fn
}

// Begin starts a new composition: the previous in-flight one is
// cancelled, the generation advances, and the state returns to loading.
// The returned context is cancelled when a newer composition begins.
func (m *Manager) Begin(ctx context.Context) (context.Context, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.gen++
	m.state = StateLoading
	m.errMsg = ""

	return ctx, m.gen
}

// Apply installs the composition result for the given generation,
// tearing down the previous session first. Results from superseded
// generations are ignored.
func (m *Manager) Apply(gen uint64, tripID int64, content domain.MapContent) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		return false
	}

	m.teardownLocked()

	// All markers and the overlay are installed in one pass; nothing
	// mutates the session after this point.
	m.live = &Session{
		ID:      uuid.NewString(),
		TripID:  tripID,
		Content: content,
	}
	m.state = StateReady
	m.errMsg = ""

	if m.onLiveChange != nil {
		m.onLiveChange(true)
	}

	return true
}

// Fail records a composition failure for the given generation and
// tears down the live session, so the error state never exposes a
// previous trip's map content. Stale failures are ignored.
func (m *Manager) Fail(gen uint64, msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		return false
	}

	m.teardownLocked()

	m.state = StateError
	m.errMsg = msg

	return true
}

// Snapshot returns the current state and live session, if any.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		State:   m.state,
		ErrMsg:  m.errMsg,
		Session: m.live,
	}
}

// Close cancels any in-flight composition and tears down the live
// session. Used on component shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.teardownLocked()
}

func (m *Manager) teardownLocked() {
	if m.live == nil {
		return
	}

	m.live.release()
	m.live = nil

	if m.onLiveChange != nil {
		m.onLiveChange(false)
	}
}
