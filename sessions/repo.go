package sessions

// Store persists at most one session record under a single storage key.
// The key is shared by every tenant's login surface on the same host, so a
// second tenant's login overwrites the first's session. Writes are
// last-write-wins and readers always load fresh.
type Store interface {
	// Load returns the stored record, or ErrNoSession when the key is absent
	// or its contents cannot be parsed.
	Load() (*Session, error)
	Save(session *Session) error
	// Clear removes the record. Clearing an absent record is not an error.
	Clear() error
}
