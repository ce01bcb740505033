package session

import (
	"strconv"
	"sync"
	"time"

	"recipebox-svc/src/internal/config"

	"github.com/sirupsen/logrus"
)

// Interaction kinds tracked by the monitor, mirroring the event set a
// browser client would listen for.
type Interaction string

const (
	InteractionPointerDown Interaction = "pointerdown"
	InteractionKeyDown     Interaction = "keydown"
	InteractionScroll      Interaction = "scroll"
	InteractionTouchStart  Interaction = "touchstart"
	InteractionClick       Interaction = "click"
)

// Monitor tracks wall-clock time since the last user interaction while a
// token is held, and forces logout once the inactivity window elapses.
//
// It is a two-state machine: Unauthenticated and Authenticated. Entering
// Authenticated stamps the activity timestamp and starts a periodic check;
// leaving it clears the token, the username and the activity timestamp
// together and synchronously cancels the periodic check.
//
// This is a client-side defense only. Server-side token expiry is the
// authoritative bound; the monitor can log out sooner, never later.
type Monitor struct {
	store     Store
	window    time.Duration
	interval  time.Duration
	onExpired func()

	// injectable clock for tests
	nowFunc func() time.Time

	mu            sync.Mutex
	authenticated bool
	lastPersist   time.Time
	stopCh        chan struct{}
	doneCh        chan struct{}
}

// NewMonitor builds a monitor over the given store. onExpired is invoked
// (outside the monitor lock) only when logout was forced by the inactivity
// threshold, so the caller can surface a distinct notice; manual logout
// stays silent.
func NewMonitor(cfg *config.SessionSettings, store Store, onExpired func()) *Monitor {
	return &Monitor{
		store:     store,
		window:    time.Duration(cfg.InactivityHours) * time.Hour,
		interval:  time.Duration(cfg.CheckIntervalSeconds) * time.Second,
		onExpired: onExpired,
		nowFunc:   time.Now,
	}
}

// Begin enters Authenticated with a freshly acquired token.
func (m *Monitor) Begin(token, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.authenticated {
		return nil
	}

	if err := m.store.Set(KeyToken, token); err != nil {
		return err
	}
	if err := m.store.Set(KeyUsername, username); err != nil {
		return err
	}

	m.enterLocked()
	return nil
}

// Resume enters Authenticated from a previously stored token, if any. The
// inactivity check runs immediately: a token restored past the threshold is
// discarded on the spot instead of lingering until the first tick. Returns
// whether the monitor ended up authenticated.
func (m *Monitor) Resume() bool {
	m.mu.Lock()

	if m.authenticated {
		m.mu.Unlock()
		return true
	}

	if m.store.Get(KeyToken) == "" {
		// Not authenticated: a stale timestamp must not leak into the
		// next login cycle.
		m.store.Delete(KeyLastActivity)
		m.mu.Unlock()
		return false
	}

	if last, ok := m.storedActivity(); ok && m.nowFunc().Sub(last) >= m.window {
		logrus.Info("Stored session exceeded the inactivity window, logging out")
		m.clearLocked()
		m.mu.Unlock()
		m.notifyExpired()
		return false
	}

	m.enterLocked()
	m.mu.Unlock()
	return true
}

// Record stamps the activity timestamp for an interaction. Writes are
// debounced: at most one persisted stamp per check interval, regardless of
// the raw event rate.
func (m *Monitor) Record(kind Interaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.authenticated {
		return
	}

	now := m.nowFunc()
	if now.Sub(m.lastPersist) < m.interval {
		return
	}

	logrus.WithField("interaction", string(kind)).Debug("Activity recorded")
	m.stampLocked(now)
}

// Logout leaves Authenticated explicitly. It returns only after the
// periodic check has fully stopped, so no further stamping or threshold
// check can fire against cleared state.
func (m *Monitor) Logout() {
	m.mu.Lock()
	if !m.authenticated {
		m.mu.Unlock()
		return
	}

	done := m.doneCh
	m.clearLocked()
	m.mu.Unlock()

	<-done
}

// HandleUnauthorized reacts to a 401 from the server: the token is no
// longer good, so the session is discarded like a manual logout.
func (m *Monitor) HandleUnauthorized() {
	logrus.Warn("Server rejected the session token, logging out")
	m.Logout()
}

// Authenticated reports the current state.
func (m *Monitor) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// Token returns the stored token, or "" when unauthenticated.
func (m *Monitor) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.authenticated {
		return ""
	}
	return m.store.Get(KeyToken)
}

// Username returns the stored username, or "" when unauthenticated.
func (m *Monitor) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.authenticated {
		return ""
	}
	return m.store.Get(KeyUsername)
}

// enterLocked transitions to Authenticated: stamp now, start the periodic
// check. Caller holds the lock.
func (m *Monitor) enterLocked() {
	m.stampLocked(m.nowFunc())
	m.authenticated = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	go m.watch(m.stopCh, m.doneCh)
}

// clearLocked transitions to Unauthenticated: discard all three stored
// keys and signal the periodic check to stop. Caller holds the lock.
func (m *Monitor) clearLocked() {
	m.store.Delete(KeyToken, KeyUsername, KeyLastActivity)
	m.authenticated = false
	m.lastPersist = time.Time{}
	if m.stopCh != nil {
		close(m.stopCh)
		m.stopCh = nil
	}
}

func (m *Monitor) stampLocked(now time.Time) {
	if err := m.store.Set(KeyLastActivity, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		logrus.WithError(err).Warn("Failed to persist activity timestamp")
		return
	}
	m.lastPersist = now
}

func (m *Monitor) storedActivity() (time.Time, bool) {
	raw := m.store.Get(KeyLastActivity)
	if raw == "" {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

func (m *Monitor) watch(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.checkInactivity()
		case <-stopCh:
			return
		}
	}
}

// checkInactivity is the periodic threshold check. A missing timestamp is
// replaced with now rather than treated as expired.
func (m *Monitor) checkInactivity() {
	m.mu.Lock()

	if !m.authenticated {
		m.mu.Unlock()
		return
	}

	now := m.nowFunc()
	last, ok := m.storedActivity()
	if !ok {
		m.stampLocked(now)
		m.mu.Unlock()
		return
	}

	if now.Sub(last) < m.window {
		m.mu.Unlock()
		return
	}

	logrus.Info("Inactivity window exceeded, logging out")
	m.clearLocked()
	m.mu.Unlock()

	m.notifyExpired()
}

func (m *Monitor) notifyExpired() {
	if m.onExpired != nil {
		m.onExpired()
	}
}
