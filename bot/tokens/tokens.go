// Package tokens is the query surface other code uses to read a user's
// resolved credentials. It is a direct view over the session store: only
// completed sessions are visible.
package tokens

import "github.com/hopevpn/tokenbot/bot/session"

// Resolved is a fully captured (provider, token) pair.
type Resolved struct {
	Provider     string
	ProviderName string
	Token        string
}

// Resolver reads completed sessions out of a store.
type Resolver struct {
	store session.Store
}

// NewResolver wraps the given store.
func NewResolver(store session.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the user's provider and token if the elicitation flow is
// complete. An unknown user or an in-progress session yields (zero, false).
func (r *Resolver) Resolve(userID int64) (Resolved, bool) {
	rec, ok := r.store.Get(userID)
	if !ok || rec.Phase != session.PhaseComplete {
		return Resolved{}, false
	}
	return Resolved{
		Provider:     rec.Provider.ID(),
		ProviderName: rec.Provider.DisplayName(),
		Token:        rec.Token,
	}, true
}
