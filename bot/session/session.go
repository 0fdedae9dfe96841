// Package session holds the per-user state of the provider/token elicitation
// flow. Records live for the lifetime of the process; there is no
// persistence and no expiry.
package session

import "github.com/hopevpn/tokenbot/bot/provider"

// Phase marks the position of a session in the linear flow.
type Phase string

const (
	// PhaseAwaitingProvider means the user was prompted to pick a provider.
	PhaseAwaitingProvider Phase = "awaiting_provider"
	// PhaseAwaitingToken means a provider is chosen and a token is expected.
	PhaseAwaitingToken Phase = "awaiting_token"
	// PhaseComplete means both provider and token are captured.
	PhaseComplete Phase = "complete"
)

// Record is the per-user session state. Provider is zero until the user
// picks one; Token is non-empty only when Phase is PhaseComplete. The flow
// transitions are the only place records are constructed, which keeps
// invalid combinations out of the store.
type Record struct {
	Phase    Phase
	Provider provider.Provider
	Token    string
}

// Store maps a Telegram user ID to at most one Record. A missing key is a
// normal state: the user never interacted or was just reset.
type Store interface {
	// Get returns the record for a user if one exists.
	Get(userID int64) (Record, bool)
	// Put replaces any existing record for the user.
	Put(userID int64, rec Record)
	// Delete removes the record for the user.
	Delete(userID int64)
}

// Locker serializes the read-modify-write cycle for a single user so
// concurrent updates for the same user cannot interleave. Different users
// never block on each other.
type Locker interface {
	// Acquire blocks until the caller owns the user's slot and returns the
	// release function.
	Acquire(userID int64) (release func())
}

// Counter exposes a snapshot of session counts per phase for diagnostics.
type Counter interface {
	Counts() map[Phase]int
}
