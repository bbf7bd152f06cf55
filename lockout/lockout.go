// Package lockout implements the failed-login lockout policy: a volatile
// attempt counter, a persisted unlock deadline, and the Unlocked -> Locked ->
// Unlocked cycle driven by failed attempts and a scheduled unlock.
package lockout

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	DefaultThreshold = 5
	DefaultDuration  = 5 * time.Minute
)

var ErrLockedOut = errors.New("too many failed login attempts")

// Guard owns the lockout state for one login surface. The attempt counter is
// in-memory only and resets with the process; the unlock deadline is
// persisted so a lockout survives a restart with its remaining duration
// intact.
type Guard struct {
	store     DeadlineStore
	threshold int
	duration  time.Duration
	nowTime   func() time.Time
	afterFunc func(d time.Duration, fn func()) func() bool
	onUnlock  func()
	logger    zerolog.Logger

	lock      sync.Mutex
	attempts  int
	locked    bool
	deadline  time.Time
	stopTimer func() bool
}

type Option func(*Guard)

// WithThreshold sets how many failed attempts trigger the lockout.
func WithThreshold(threshold int) Option {
	return func(g *Guard) {
		if threshold > 0 {
			g.threshold = threshold
		}
	}
}

// WithDuration sets the lockout window.
func WithDuration(duration time.Duration) Option {
	return func(g *Guard) {
		if duration > 0 {
			g.duration = duration
		}
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(g *Guard) {
		g.nowTime = nowFunc
	}
}

// WithAfterFunc replaces the unlock scheduler (primarily for testing).
func WithAfterFunc(afterFunc func(d time.Duration, fn func()) func() bool) Option {
	return func(g *Guard) {
		g.afterFunc = afterFunc
	}
}

// WithUnlockNotify registers a callback fired whenever the guard transitions
// back to Unlocked, so callers can re-enable their input surface. The callback
// runs outside the guard's lock and may call back into the guard.
func WithUnlockNotify(fn func()) Option {
	return func(g *Guard) {
		g.onUnlock = fn
	}
}

// WithLogger sets the guard's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

func New(store DeadlineStore, options ...Option) (*Guard, error) {
	if store == nil {
		return nil, errors.New("[lockout.New] deadline store is required")
	}
	g := &Guard{
		store:     store,
		threshold: DefaultThreshold,
		duration:  DefaultDuration,
		nowTime:   time.Now,
		logger:    zerolog.Nop(),
	}
	g.afterFunc = func(d time.Duration, fn func()) func() bool {
		return time.AfterFunc(d, fn).Stop
	}
	for _, opt := range options {
		opt(g)
	}
	return g, nil
}

// Init recovers persisted lockout state on startup. A deadline already in the
// past is cleared eagerly; a future deadline re-enters Locked with an unlock
// scheduled for the remaining duration only, never the full window.
func (g *Guard) Init() error {
	g.lock.Lock()

	deadline, ok, err := g.store.Deadline()
	if err != nil {
		g.lock.Unlock()
		return errors.Wrap(err, "[Guard.Init] load deadline")
	}
	if !ok {
		g.lock.Unlock()
		return nil
	}
	now := g.nowTime()
	if !deadline.After(now) {
		notify := g.unlockLocked()
		g.lock.Unlock()
		runNotify(notify)
		return nil
	}
	g.locked = true
	g.deadline = deadline
	g.scheduleUnlockLocked(deadline.Sub(now))
	g.logger.Warn().Time("until", deadline).Msg("lockout restored from persisted deadline")
	g.lock.Unlock()
	return nil
}

// Check gates a submission attempt. While locked it rejects immediately with
// ErrLockedOut, without touching the counter. A deadline that has elapsed
// before the scheduled unlock fired unlocks on the spot.
func (g *Guard) Check() error {
	g.lock.Lock()

	if !g.locked {
		g.lock.Unlock()
		return nil
	}
	if !g.deadline.After(g.nowTime()) {
		notify := g.unlockLocked()
		g.lock.Unlock()
		runNotify(notify)
		return nil
	}
	err := errors.Wrapf(ErrLockedOut, "locked until %s", g.deadline.Format(time.RFC3339))
	g.lock.Unlock()
	return err
}

// RecordFailure counts one failed authentication. The transition to Locked
// happens exactly when the counter reaches the threshold. It returns the
// attempts remaining before lockout and whether the guard is now locked.
func (g *Guard) RecordFailure() (remaining int, nowLocked bool) {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.locked {
		return 0, true
	}
	g.attempts++
	if g.attempts >= g.threshold {
		deadline := g.nowTime().Add(g.duration)
		g.locked = true
		g.deadline = deadline
		if err := g.store.SetDeadline(deadline); err != nil {
			// The in-memory lock still holds; only restart recovery is lost.
			g.logger.Error().Err(err).Msg("persist lockout deadline")
		}
		g.scheduleUnlockLocked(g.duration)
		g.logger.Warn().Int("attempts", g.attempts).Time("until", deadline).Msg("account locked")
		return 0, true
	}
	return g.threshold - g.attempts, false
}

// Reset clears the counter and any lockout after a successful login.
func (g *Guard) Reset() error {
	g.lock.Lock()
	notify := g.unlockLocked()
	g.lock.Unlock()
	runNotify(notify)
	return nil
}

// Locked reports whether submissions are currently rejected.
func (g *Guard) Locked() bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.locked && g.deadline.After(g.nowTime())
}

// Attempts returns the current failed-attempt count.
func (g *Guard) Attempts() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.attempts
}

// Remaining returns how many attempts are left before the lockout triggers.
func (g *Guard) Remaining() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.locked {
		return 0
	}
	return g.threshold - g.attempts
}

// Until returns the unlock deadline; the zero time when not locked.
func (g *Guard) Until() time.Time {
	g.lock.Lock()
	defer g.lock.Unlock()
	if !g.locked {
		return time.Time{}
	}
	return g.deadline
}

func (g *Guard) scheduleUnlockLocked(d time.Duration) {
	if g.stopTimer != nil {
		g.stopTimer()
	}
	g.stopTimer = g.afterFunc(d, func() {
		g.lock.Lock()
		notify := g.unlockLocked()
		g.lock.Unlock()
		runNotify(notify)
	})
}

// unlockLocked performs the Locked -> Unlocked transition. Callers hold
// g.lock and must run the returned notification, if any, after releasing it;
// the callback is free to re-enter the guard.
func (g *Guard) unlockLocked() func() {
	if g.stopTimer != nil {
		g.stopTimer()
		g.stopTimer = nil
	}
	wasLocked := g.locked
	g.locked = false
	g.deadline = time.Time{}
	g.attempts = 0
	if err := g.store.Clear(); err != nil {
		g.logger.Error().Err(err).Msg("clear lockout deadline")
	}
	if !wasLocked {
		return nil
	}
	g.logger.Info().Msg("account unlocked")
	return g.onUnlock
}

func runNotify(notify func()) {
	if notify != nil {
		notify()
	}
}
