package bot

import (
	"strings"
	"testing"

	"github.com/hopevpn/tokenbot/bot/flow"
	"github.com/hopevpn/tokenbot/bot/provider"
	"github.com/hopevpn/tokenbot/bot/session"
)

func TestProviderKeyboardSingleRow(t *testing.T) {
	a := New(&Config{})
	markup := a.providerKeyboard()
	if len(markup.InlineKeyboard) != 1 {
		t.Fatalf("rows = %d, want 1", len(markup.InlineKeyboard))
	}
	row := markup.InlineKeyboard[0]
	if len(row) != len(provider.All()) {
		t.Fatalf("buttons = %d, want %d", len(row), len(provider.All()))
	}
	for i, p := range provider.All() {
		if row[i].Text != p.DisplayName() {
			t.Fatalf("button %d text = %q, want %q", i, row[i].Text, p.DisplayName())
		}
		if !strings.Contains(row[i].Data, p.ID()) {
			t.Fatalf("button %d data = %q, missing %q", i, row[i].Data, p.ID())
		}
	}
}

func TestPhaseAfter(t *testing.T) {
	cases := []struct {
		name   string
		rec    session.Record
		exists bool
		out    flow.Outcome
		want   session.Phase
	}{
		{
			name: "put reports new phase",
			out:  flow.Outcome{Mutation: flow.PutRecord, Record: session.Record{Phase: session.PhaseAwaitingToken}},
			want: session.PhaseAwaitingToken,
		},
		{
			name:   "delete reports absence",
			rec:    session.Record{Phase: session.PhaseComplete},
			exists: true,
			out:    flow.Outcome{Mutation: flow.DeleteRecord},
			want:   "",
		},
		{
			name:   "keep reports current phase",
			rec:    session.Record{Phase: session.PhaseAwaitingProvider},
			exists: true,
			out:    flow.Outcome{Mutation: flow.KeepRecord},
			want:   session.PhaseAwaitingProvider,
		},
		{
			name: "keep without record reports absence",
			out:  flow.Outcome{Mutation: flow.KeepRecord},
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := phaseAfter(tc.rec, tc.exists, tc.out); got != tc.want {
				t.Fatalf("phaseAfter = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSessionsReport(t *testing.T) {
	report := sessionsReport(map[session.Phase]int{
		session.PhaseComplete:      2,
		session.PhaseAwaitingToken: 1,
	}, 3)
	if !strings.Contains(report, "Active sessions: *3*") {
		t.Fatalf("missing total: %q", report)
	}
	if !strings.Contains(report, "`complete`: 2") || !strings.Contains(report, "`awaiting_token`: 1") {
		t.Fatalf("missing phase lines: %q", report)
	}
}

func TestInProgressTracksStore(t *testing.T) {
	a := New(&Config{})
	if a.InProgress(1) {
		t.Fatal("fresh app must report no session")
	}
	a.store.Put(1, session.Record{Phase: session.PhaseAwaitingProvider})
	if !a.InProgress(1) {
		t.Fatal("stored session must report in progress")
	}
	a.store.Delete(1)
	if a.InProgress(1) {
		t.Fatal("deleted session must report no session")
	}
}
