package tokens

import (
	"testing"

	"github.com/hopevpn/tokenbot/bot/flow"
	"github.com/hopevpn/tokenbot/bot/provider"
	"github.com/hopevpn/tokenbot/bot/session"
)

// step feeds one event through the state machine and applies the resulting
// mutation, the same cycle the dispatcher runs per inbound update.
func step(store session.Store, userID int64, ev flow.Event) {
	rec, exists := store.Get(userID)
	out := flow.Apply(rec, exists, ev)
	switch out.Mutation {
	case flow.PutRecord:
		store.Put(userID, out.Record)
	case flow.DeleteRecord:
		store.Delete(userID)
	}
}

func TestResolveUnknownUser(t *testing.T) {
	r := NewResolver(session.NewMemoryStore())
	if _, ok := r.Resolve(99); ok {
		t.Fatal("unknown user must resolve to no data")
	}
}

func TestResolveIncompleteSession(t *testing.T) {
	store := session.NewMemoryStore()
	r := NewResolver(store)

	store.Put(1, session.Record{Phase: session.PhaseAwaitingProvider})
	if _, ok := r.Resolve(1); ok {
		t.Fatal("awaiting_provider must resolve to no data")
	}

	store.Put(1, session.Record{Phase: session.PhaseAwaitingToken, Provider: provider.Hertz})
	if _, ok := r.Resolve(1); ok {
		t.Fatal("awaiting_token must resolve to no data")
	}
}

func TestRoundTrip(t *testing.T) {
	store := session.NewMemoryStore()
	r := NewResolver(store)
	const user = int64(5)

	step(store, user, flow.Command{Name: flow.CommandStart})
	step(store, user, flow.Selection{Raw: provider.Hertz.ID()})
	step(store, user, flow.Text{Body: "abc123"})

	got, ok := r.Resolve(user)
	if !ok {
		t.Fatal("completed flow must resolve")
	}
	want := Resolved{Provider: "hertz", ProviderName: "Hertz", Token: "abc123"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestReentryReplacesPriorSession(t *testing.T) {
	store := session.NewMemoryStore()
	r := NewResolver(store)
	const user = int64(6)

	step(store, user, flow.Command{Name: flow.CommandStart})
	step(store, user, flow.Selection{Raw: provider.DigitalOcean.ID()})
	step(store, user, flow.Text{Body: "do-token"})

	step(store, user, flow.Command{Name: flow.CommandStart})
	// Mid-restart the old token must already be gone.
	if _, ok := r.Resolve(user); ok {
		t.Fatal("restart must discard the prior resolved token")
	}

	step(store, user, flow.Selection{Raw: provider.Hertz.ID()})
	step(store, user, flow.Text{Body: "xyz"})

	got, ok := r.Resolve(user)
	if !ok {
		t.Fatal("second flow must resolve")
	}
	want := Resolved{Provider: "hertz", ProviderName: "Hertz", Token: "xyz"}
	if got != want {
		t.Fatalf("residual state: got %+v, want %+v", got, want)
	}
}

func TestCancelRemovesResolvedToken(t *testing.T) {
	store := session.NewMemoryStore()
	r := NewResolver(store)
	const user = int64(7)

	step(store, user, flow.Command{Name: flow.CommandStart})
	step(store, user, flow.Selection{Raw: provider.Hertz.ID()})
	step(store, user, flow.Text{Body: "tok"})
	step(store, user, flow.Command{Name: flow.CommandCancel})

	if _, ok := r.Resolve(user); ok {
		t.Fatal("cancel must leave no resolvable data")
	}
	if _, ok := store.Get(user); ok {
		t.Fatal("cancel must delete the record entirely")
	}
}
