package flow

import (
	"fmt"
	"strings"

	"github.com/hopevpn/tokenbot/bot/provider"
)

const (
	msgCancelled        = "Cancelled. Send /start to try again."
	msgNothingToCancel  = "Nothing to cancel. Send /start to begin."
	msgHintStart        = "Send /start to connect a provider."
	msgHintPickProvider = "Please pick a provider with the buttons above, or send /start to show them again."
	msgStaleSelection   = "That choice is no longer active. Send /start to begin again."
	msgEmptyToken       = "Please send a non-empty token."
)

func welcomeText(userName string) string {
	var b strings.Builder
	if userName != "" {
		fmt.Fprintf(&b, "Welcome, %s! ", userName)
	} else {
		b.WriteString("Welcome! ")
	}
	b.WriteString("Choose which provider you want to connect:\n")
	for _, p := range provider.All() {
		fmt.Fprintf(&b, "\n• *%s* – enter your %s API token", p.DisplayName(), p.DisplayName())
	}
	return b.String()
}

func tokenPromptText(p provider.Provider) string {
	return fmt.Sprintf(
		"You selected *%s*.\n\n"+
			"Please send your API token in the next message.\n"+
			"_Your token is stored only in this session and used for your requests._",
		p.DisplayName(),
	)
}

func tokenSavedText(p provider.Provider) string {
	return fmt.Sprintf(
		"✅ *%s* token saved.\n\n"+
			"You can use /start again to switch provider or update your token.",
		p.DisplayName(),
	)
}
