package bot

import (
	"log/slog"

	"github.com/hopevpn/tokenbot/bot/flow"
	"github.com/hopevpn/tokenbot/bot/session"
	"github.com/hopevpn/tokenbot/core/logger"
	"github.com/hopevpn/tokenbot/core/telegram/callbacks"
	"github.com/hopevpn/tokenbot/core/telegram/format"
	tghelpers "github.com/hopevpn/tokenbot/core/telegram/helpers"
	"github.com/hopevpn/tokenbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// providerCallbackKey is the unique part of provider inline buttons.
const providerCallbackKey = "provider"

// dispatch runs one inbound event through the state machine: it serializes
// the read-modify-write cycle for the sender, applies the transition,
// persists the resulting mutation, and sends every reply back on the same
// chat. Events for different users proceed concurrently.
func (a *App) dispatch(c tele.Context, ev flow.Event) error {
	userID := c.Sender().ID

	release := a.store.Acquire(userID)
	rec, exists := a.store.Get(userID)
	out := flow.Apply(rec, exists, ev)

	switch out.Mutation {
	case flow.PutRecord:
		a.store.Put(userID, out.Record)
	case flow.DeleteRecord:
		a.store.Delete(userID)
	}
	release()

	ctx := tghelpers.BuildContext(c)
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("phase", string(phaseAfter(rec, exists, out))),
	}
	if out.Mutation == flow.PutRecord && out.Record.Provider != "" {
		attrs = append(attrs, slog.String("provider", out.Record.Provider.ID()))
	}
	logger.Debug(ctx, "bot.flow", "flow.transition", attrs...)

	for _, reply := range out.Replies {
		var markup *tele.ReplyMarkup
		if reply.ProviderKeyboard {
			markup = a.providerKeyboard()
		}
		if reply.EditSource {
			if err := tghelpers.EditOrSendMD(c, reply.Text, markup); err != nil {
				return err
			}
			continue
		}
		if err := tghelpers.SendMD(c, reply.Text, markup); err != nil {
			return err
		}
	}
	return nil
}

// phaseAfter resolves the phase a user ends up in, with absence reported as
// an empty string.
func phaseAfter(rec session.Record, exists bool, out flow.Outcome) session.Phase {
	switch out.Mutation {
	case flow.PutRecord:
		return out.Record.Phase
	case flow.DeleteRecord:
		return ""
	}
	if !exists {
		return ""
	}
	return rec.Phase
}

// providerKeyboard builds one inline button per provider on a single row.
func (a *App) providerKeyboard() *tele.ReplyMarkup {
	opts := a.providers
	btns := make([]keyboard.InlineBtn, 0, len(opts))
	for _, p := range opts {
		btns = append(btns, keyboard.InlineBtn{
			Text:   p.DisplayName(),
			Unique: providerCallbackKey,
			Data:   p.ID(),
		})
	}
	return keyboard.InlineButtonsNPerRow(btns, len(btns))
}

// handleStart restarts the elicitation flow for the sender.
func (a *App) handleStart(c tele.Context) error {
	return a.dispatch(c, flow.Command{
		Name:     flow.CommandStart,
		UserName: escapedFirstName(c),
	})
}

// handleCancel aborts any in-progress or completed session.
func (a *App) handleCancel(c tele.Context) error {
	return a.dispatch(c, flow.Command{Name: flow.CommandCancel})
}

// handleProviderSelection consumes a provider inline button press. The
// payload is revalidated by the flow; a stale or foreign payload only
// produces a hint.
func (a *App) handleProviderSelection(c tele.Context) error {
	return a.dispatch(c, flow.Selection{Raw: callbacks.CallbackPayload(c)})
}

// handleText feeds free text into the flow; depending on the sender's phase
// it is either the awaited token or answered with a hint.
func (a *App) handleText(c tele.Context) error {
	return a.dispatch(c, flow.Text{Body: c.Text()})
}

// handleSessions reports per-phase session counts. Admin-only diagnostic.
func (a *App) handleSessions(c tele.Context) error {
	counts := a.store.Counts()
	total := 0
	for _, n := range counts {
		total += n
	}
	ctx := tghelpers.BuildContext(c)
	logger.SESS.LogAttrs(ctx, slog.LevelInfo, "sessions.report",
		slog.Int("sessions", total),
	)
	return tghelpers.SendMD(c, sessionsReport(counts, total))
}

// InProgress reports whether the sender has an active session, which routes
// free text through the state machine.
func (a *App) InProgress(userID int64) bool {
	_, ok := a.store.Get(userID)
	return ok
}

// ManagerHandler satisfies the text router's FSM hook.
func (a *App) ManagerHandler(c tele.Context) error {
	return a.handleText(c)
}

// UnknownText handles text from users without a session.
func (a *App) UnknownText() tele.HandlerFunc {
	return a.handleText
}

// UnknownDocument answers attachments with the same corrective hint as any
// other unexpected input.
func (a *App) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return tghelpers.SendMD(c, "I can only accept a text token. Send /start to begin.")
	}
}

// UnknownCallback answers button presses that no longer map to a handler.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		_ = c.Respond(&tele.CallbackResponse{Text: "Unsupported action"})
		return tghelpers.SendMD(c, "That choice is no longer active. Send /start to begin again.")
	}
}

// escapedFirstName returns the sender's first name, safe to interpolate
// into Markdown replies.
func escapedFirstName(c tele.Context) string {
	user := c.Sender()
	if user == nil || user.FirstName == "" {
		return ""
	}
	escaped, err := format.EscapeMarkdown(user.FirstName, format.MarkdownV1, "")
	if err != nil {
		return ""
	}
	return escaped
}
