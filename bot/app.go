// Package bot wires the conversation flow, session store, and token query
// surface into the Telegram runtime: it adapts inbound updates into flow
// events and routes the produced replies back out.
package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hopevpn/tokenbot/bot/flow"
	"github.com/hopevpn/tokenbot/bot/provider"
	"github.com/hopevpn/tokenbot/bot/session"
	"github.com/hopevpn/tokenbot/bot/tokens"
	coreconfig "github.com/hopevpn/tokenbot/core/config"
	coretelegram "github.com/hopevpn/tokenbot/core/telegram"
	"github.com/hopevpn/tokenbot/core/telegram/commands"
	"github.com/hopevpn/tokenbot/core/telegram/router"
	"github.com/hopevpn/tokenbot/core/telegram/ui"
)

// Config is the application configuration: just the reusable core for now.
type Config struct {
	coreconfig.Config `yaml:",inline"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// LoadConfig reads the application configuration from the given path.
func LoadConfig(path string) (*Config, error) {
	core, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return &Config{Config: *core}, nil
}

// App owns the process-wide session store and exposes the handlers the
// Telegram runtime dispatches into.
type App struct {
	cfg       *Config
	store     *session.MemoryStore
	resolver  *tokens.Resolver
	providers []provider.Provider
}

var (
	_ router.FSM          = (*App)(nil)
	_ ui.FallbackProvider = (*App)(nil)
)

// New constructs the application around a fresh in-memory session store.
func New(cfg *Config) *App {
	store := session.NewMemoryStore()
	return &App{
		cfg:       cfg,
		store:     store,
		resolver:  tokens.NewResolver(store),
		providers: provider.All(),
	}
}

// Tokens returns the query surface for resolved (provider, token) pairs.
func (a *App) Tokens() *tokens.Resolver {
	return a.resolver
}

// Registry builds the command/callback registry for this bot.
func (a *App) Registry() *coretelegram.Registry {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand(flow.CommandStart, commands.Command{
		Handler:     a.handleStart,
		Description: "Connect a provider and save its API token",
	})
	reg.RegisterCommand(flow.CommandCancel, commands.Command{
		Handler:     a.handleCancel,
		Description: "Cancel the current flow",
	})
	reg.RegisterCommand("/sessions", commands.Command{
		Handler:     a.handleSessions,
		Description: "Show session counts per phase",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(providerCallbackKey, a.handleProviderSelection)
	reg.SetTextFallback(a.UnknownText())
	reg.SetCallbackNotFound(a.UnknownCallback())

	return reg
}

// TelegramRunOptions assembles the runtime options consumed by core/cmd.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	if a.cfg == nil {
		return coretelegram.RunOptions{}, fmt.Errorf("bot: nil config")
	}
	cfg := a.cfg.CoreConfig()
	reg := a.Registry()

	var fallbacks ui.FallbackProvider = a

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		NotFound: fallbacks.UnknownCallback(),
	}))
	routes = append(routes, router.TextRoutes(a, reg, router.TextOptions{
		UnknownText:     fallbacks.UnknownText(),
		UnknownDocument: fallbacks.UnknownDocument(),
	})...)

	return coretelegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(cfg, nil),
		Routes:      routes,
	}, nil
}

// sessionsReport renders the /sessions diagnostic.
func sessionsReport(counts map[session.Phase]int, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions: *%d*\n", total)
	phases := make([]string, 0, len(counts))
	for phase := range counts {
		phases = append(phases, string(phase))
	}
	sort.Strings(phases)
	for _, phase := range phases {
		fmt.Fprintf(&b, "\n`%s`: %d", phase, counts[session.Phase(phase)])
	}
	return b.String()
}
