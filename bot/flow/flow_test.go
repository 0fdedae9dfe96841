package flow

import (
	"strings"
	"testing"

	"github.com/hopevpn/tokenbot/bot/provider"
	"github.com/hopevpn/tokenbot/bot/session"
)

func TestStartAlwaysRestartsFlow(t *testing.T) {
	cases := []struct {
		name   string
		rec    session.Record
		exists bool
	}{
		{name: "no record"},
		{name: "awaiting provider", rec: session.Record{Phase: session.PhaseAwaitingProvider}, exists: true},
		{name: "awaiting token", rec: session.Record{Phase: session.PhaseAwaitingToken, Provider: provider.Hertz}, exists: true},
		{name: "complete", rec: session.Record{Phase: session.PhaseComplete, Provider: provider.DigitalOcean, Token: "tok"}, exists: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Apply(tc.rec, tc.exists, Command{Name: CommandStart})
			if out.Mutation != PutRecord {
				t.Fatalf("mutation = %v, want PutRecord", out.Mutation)
			}
			want := session.Record{Phase: session.PhaseAwaitingProvider}
			if out.Record != want {
				t.Fatalf("record = %+v, want %+v", out.Record, want)
			}
			if len(out.Replies) != 1 || !out.Replies[0].ProviderKeyboard {
				t.Fatalf("expected one reply with provider keyboard, got %+v", out.Replies)
			}
		})
	}
}

func TestStartGreetsUserByName(t *testing.T) {
	out := Apply(session.Record{}, false, Command{Name: CommandStart, UserName: "Dana"})
	if !strings.Contains(out.Replies[0].Text, "Welcome, Dana!") {
		t.Fatalf("greeting missing name: %q", out.Replies[0].Text)
	}
	out = Apply(session.Record{}, false, Command{Name: CommandStart})
	if !strings.Contains(out.Replies[0].Text, "Welcome!") {
		t.Fatalf("anonymous greeting wrong: %q", out.Replies[0].Text)
	}
}

func TestProviderSelectionAdvances(t *testing.T) {
	rec := session.Record{Phase: session.PhaseAwaitingProvider}
	for _, p := range provider.All() {
		out := Apply(rec, true, Selection{Raw: p.ID()})
		if out.Mutation != PutRecord {
			t.Fatalf("%s: mutation = %v, want PutRecord", p, out.Mutation)
		}
		if out.Record.Phase != session.PhaseAwaitingToken || out.Record.Provider != p {
			t.Fatalf("%s: record = %+v", p, out.Record)
		}
		if out.Record.Token != "" {
			t.Fatalf("%s: token must stay empty before capture", p)
		}
		if len(out.Replies) != 1 || !strings.Contains(out.Replies[0].Text, p.DisplayName()) {
			t.Fatalf("%s: prompt should name the provider: %+v", p, out.Replies)
		}
		if !out.Replies[0].EditSource {
			t.Fatalf("%s: token prompt should replace the keyboard message", p)
		}
	}
}

func TestUnknownSelectionPayloadIsNoOp(t *testing.T) {
	rec := session.Record{Phase: session.PhaseAwaitingProvider}
	out := Apply(rec, true, Selection{Raw: "aws"})
	if out.Mutation != KeepRecord {
		t.Fatalf("mutation = %v, want KeepRecord", out.Mutation)
	}
	if len(out.Replies) != 1 {
		t.Fatalf("expected a corrective hint, got %+v", out.Replies)
	}
}

func TestStaleSelectionIsNoOpWithNotice(t *testing.T) {
	cases := []struct {
		name   string
		rec    session.Record
		exists bool
	}{
		{name: "no record"},
		{name: "awaiting token", rec: session.Record{Phase: session.PhaseAwaitingToken, Provider: provider.Hertz}, exists: true},
		{name: "complete", rec: session.Record{Phase: session.PhaseComplete, Provider: provider.Hertz, Token: "tok"}, exists: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Apply(tc.rec, tc.exists, Selection{Raw: provider.Hertz.ID()})
			if out.Mutation != KeepRecord {
				t.Fatalf("mutation = %v, want KeepRecord", out.Mutation)
			}
			if len(out.Replies) != 1 {
				t.Fatalf("stale press must answer with a hint, got %+v", out.Replies)
			}
		})
	}
}

func TestTokenCapture(t *testing.T) {
	rec := session.Record{Phase: session.PhaseAwaitingToken, Provider: provider.Hertz}
	out := Apply(rec, true, Text{Body: "  abc123  "})
	if out.Mutation != PutRecord {
		t.Fatalf("mutation = %v, want PutRecord", out.Mutation)
	}
	want := session.Record{Phase: session.PhaseComplete, Provider: provider.Hertz, Token: "abc123"}
	if out.Record != want {
		t.Fatalf("record = %+v, want %+v", out.Record, want)
	}
	if !strings.Contains(out.Replies[0].Text, provider.Hertz.DisplayName()) {
		t.Fatalf("confirmation should name the provider: %q", out.Replies[0].Text)
	}
}

func TestBlankTokenReprompts(t *testing.T) {
	rec := session.Record{Phase: session.PhaseAwaitingToken, Provider: provider.DigitalOcean}
	for _, body := range []string{"", "   ", "\n\t"} {
		out := Apply(rec, true, Text{Body: body})
		if out.Mutation != KeepRecord {
			t.Fatalf("blank %q: mutation = %v, want KeepRecord", body, out.Mutation)
		}
		if len(out.Replies) != 1 {
			t.Fatalf("blank %q: expected re-prompt", body)
		}
	}
}

func TestTextOutsideTokenPhaseHints(t *testing.T) {
	cases := []struct {
		name   string
		rec    session.Record
		exists bool
	}{
		{name: "no record"},
		{name: "awaiting provider", rec: session.Record{Phase: session.PhaseAwaitingProvider}, exists: true},
		{name: "complete", rec: session.Record{Phase: session.PhaseComplete, Provider: provider.Hertz, Token: "tok"}, exists: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Apply(tc.rec, tc.exists, Text{Body: "not-a-token"})
			if out.Mutation != KeepRecord {
				t.Fatalf("mutation = %v, want KeepRecord", out.Mutation)
			}
			if len(out.Replies) != 1 || !strings.Contains(out.Replies[0].Text, "/start") {
				t.Fatalf("hint must point at /start, got %+v", out.Replies)
			}
		})
	}
}

func TestCancelDeletesFromAnyPhase(t *testing.T) {
	cases := []session.Record{
		{Phase: session.PhaseAwaitingProvider},
		{Phase: session.PhaseAwaitingToken, Provider: provider.Hertz},
		{Phase: session.PhaseComplete, Provider: provider.DigitalOcean, Token: "tok"},
	}
	for _, rec := range cases {
		out := Apply(rec, true, Command{Name: CommandCancel})
		if out.Mutation != DeleteRecord {
			t.Fatalf("phase %s: mutation = %v, want DeleteRecord", rec.Phase, out.Mutation)
		}
		if len(out.Replies) != 1 {
			t.Fatalf("phase %s: expected cancellation acknowledgment", rec.Phase)
		}
	}
}

func TestCancelWithoutRecord(t *testing.T) {
	out := Apply(session.Record{}, false, Command{Name: CommandCancel})
	if out.Mutation != KeepRecord {
		t.Fatalf("mutation = %v, want KeepRecord", out.Mutation)
	}
	if len(out.Replies) != 1 || !strings.Contains(out.Replies[0].Text, "Nothing to cancel") {
		t.Fatalf("expected nothing-to-cancel notice, got %+v", out.Replies)
	}
}

// Every (phase, event) pair outside the advancing transitions must leave the
// record untouched and still answer with at least one reply.
func TestNonAdvancingPairsAreTotalNoOps(t *testing.T) {
	type state struct {
		name   string
		rec    session.Record
		exists bool
	}
	states := []state{
		{name: "none"},
		{name: "awaiting_provider", rec: session.Record{Phase: session.PhaseAwaitingProvider}, exists: true},
		{name: "awaiting_token", rec: session.Record{Phase: session.PhaseAwaitingToken, Provider: provider.Hertz}, exists: true},
		{name: "complete", rec: session.Record{Phase: session.PhaseComplete, Provider: provider.Hertz, Token: "tok"}, exists: true},
	}
	events := map[string]Event{
		"selection": Selection{Raw: provider.DigitalOcean.ID()},
		"text":      Text{Body: "hello"},
		"unknown":   Command{Name: "/help"},
	}
	advancing := map[string]bool{
		"awaiting_provider/selection": true,
		"awaiting_token/text":         true,
	}
	for _, st := range states {
		for evName, ev := range events {
			key := st.name + "/" + evName
			if advancing[key] {
				continue
			}
			t.Run(key, func(t *testing.T) {
				out := Apply(st.rec, st.exists, ev)
				if out.Mutation != KeepRecord {
					t.Fatalf("mutation = %v, want KeepRecord", out.Mutation)
				}
				if len(out.Replies) == 0 {
					t.Fatal("rejected input must produce a corrective reply, never silence")
				}
			})
		}
	}
}
