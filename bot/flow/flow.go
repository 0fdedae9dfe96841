// Package flow implements the conversation state machine for the provider
// token elicitation: /start → pick a provider → send the token. It is pure
// decision logic over session records; it never touches the transport or the
// store, which makes every transition unit testable.
package flow

import (
	"strings"

	"github.com/hopevpn/tokenbot/bot/provider"
	"github.com/hopevpn/tokenbot/bot/session"
)

// Event is the closed set of inbound event kinds the machine consumes.
type Event interface{ isEvent() }

// Command carries a slash command. UserName is the sender's display name,
// already escaped for Markdown by the dispatcher.
type Command struct {
	Name     string
	UserName string
}

// Selection carries the payload of a provider inline button press.
type Selection struct {
	Raw string
}

// Text carries a free-text message body.
type Text struct {
	Body string
}

func (Command) isEvent()   {}
func (Selection) isEvent() {}
func (Text) isEvent()      {}

// Supported slash commands.
const (
	CommandStart  = "/start"
	CommandCancel = "/cancel"
)

// Mutation tells the dispatcher what to do with the user's record.
type Mutation int

const (
	// KeepRecord leaves the store untouched.
	KeepRecord Mutation = iota
	// PutRecord replaces the user's record with Outcome.Record.
	PutRecord
	// DeleteRecord removes the user's record.
	DeleteRecord
)

// Reply is one outbound message produced by a transition.
type Reply struct {
	Text string
	// ProviderKeyboard attaches one inline button per provider.
	ProviderKeyboard bool
	// EditSource replaces the message the event originated from (used to
	// swap the keyboard prompt for the token prompt) instead of sending a
	// new message.
	EditSource bool
}

// Outcome is the total result of applying one event: a store mutation plus
// the replies to send. Every event yields an Outcome; the machine never
// errors on user input.
type Outcome struct {
	Mutation Mutation
	Record   session.Record
	Replies  []Reply
}

// Apply advances the user's session by one event. rec is the current record
// and exists reports whether one is stored; the absent record is the
// implicit initial state.
func Apply(rec session.Record, exists bool, ev Event) Outcome {
	switch e := ev.(type) {
	case Command:
		switch e.Name {
		case CommandStart:
			return applyStart(e)
		case CommandCancel:
			return applyCancel(exists)
		default:
			return hint(msgHintStart)
		}
	case Selection:
		return applySelection(rec, exists, e)
	case Text:
		return applyText(rec, exists, e)
	}
	return hint(msgHintStart)
}

// applyStart restarts the flow from any phase, discarding prior state.
func applyStart(cmd Command) Outcome {
	return Outcome{
		Mutation: PutRecord,
		Record:   session.Record{Phase: session.PhaseAwaitingProvider},
		Replies: []Reply{{
			Text:             welcomeText(cmd.UserName),
			ProviderKeyboard: true,
		}},
	}
}

func applyCancel(exists bool) Outcome {
	if !exists {
		return hint(msgNothingToCancel)
	}
	return Outcome{
		Mutation: DeleteRecord,
		Replies:  []Reply{{Text: msgCancelled}},
	}
}

func applySelection(rec session.Record, exists bool, sel Selection) Outcome {
	if !exists || rec.Phase != session.PhaseAwaitingProvider {
		// Stale button press: the payload cannot be trusted to match the
		// user's current phase, so re-prompt instead of mutating anything.
		return hint(msgStaleSelection)
	}
	p, ok := provider.Parse(sel.Raw)
	if !ok {
		return hint(msgStaleSelection)
	}
	return Outcome{
		Mutation: PutRecord,
		Record: session.Record{
			Phase:    session.PhaseAwaitingToken,
			Provider: p,
		},
		Replies: []Reply{{Text: tokenPromptText(p), EditSource: true}},
	}
}

func applyText(rec session.Record, exists bool, txt Text) Outcome {
	if !exists || rec.Phase != session.PhaseAwaitingToken {
		if exists && rec.Phase == session.PhaseAwaitingProvider {
			return hint(msgHintPickProvider)
		}
		return hint(msgHintStart)
	}
	token := strings.TrimSpace(txt.Body)
	if token == "" {
		return hint(msgEmptyToken)
	}
	return Outcome{
		Mutation: PutRecord,
		Record: session.Record{
			Phase:    session.PhaseComplete,
			Provider: rec.Provider,
			Token:    token,
		},
		Replies: []Reply{{Text: tokenSavedText(rec.Provider)}},
	}
}

// hint answers an out-of-place event with a corrective message and no
// store mutation.
func hint(text string) Outcome {
	return Outcome{
		Mutation: KeepRecord,
		Replies:  []Reply{{Text: text}},
	}
}
