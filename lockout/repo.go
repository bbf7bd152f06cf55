package lockout

import "time"

// DeadlineStore persists the unlock deadline under its own storage key,
// separate from the session record. Like the session store it is shared by
// every login surface on the host; writes are last-write-wins.
type DeadlineStore interface {
	// Deadline returns the stored deadline and whether one is present.
	Deadline() (time.Time, bool, error)
	SetDeadline(deadline time.Time) error
	Clear() error
}
