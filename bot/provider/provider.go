// Package provider enumerates the external services a user can register an
// API token for. The set is fixed at compile time; identifiers double as
// inline-button callback payloads.
package provider

// Provider is the stable identifier of a supported service.
type Provider string

const (
	// Hertz identifies the Hertz API.
	Hertz Provider = "hertz"
	// DigitalOcean identifies the Digital Ocean API.
	DigitalOcean Provider = "digitalocean"
)

var displayNames = map[Provider]string{
	Hertz:        "Hertz",
	DigitalOcean: "Digital Ocean",
}

// all keeps the fixed keyboard order.
var all = []Provider{Hertz, DigitalOcean}

// All returns the supported providers in stable display order.
func All() []Provider {
	out := make([]Provider, len(all))
	copy(out, all)
	return out
}

// Parse resolves a raw identifier (e.g. a callback payload) to a Provider.
func Parse(raw string) (Provider, bool) {
	p := Provider(raw)
	_, ok := displayNames[p]
	return p, ok
}

// ID returns the stable identifier used on buttons and in the store.
func (p Provider) ID() string {
	return string(p)
}

// DisplayName returns the human-readable name shown to users.
func (p Provider) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return string(p)
}

// Valid reports whether p is one of the supported providers.
func (p Provider) Valid() bool {
	_, ok := displayNames[p]
	return ok
}
