package lookup

import (
	"log"

	"github.com/imcoder44/FootprintX/internal/config"
)

// DemoKey is the placeholder API key that selects fixture data in auto mode.
const DemoKey = "demo_key"

// NewRegistryFromConfig builds a registry with one collaborator per kind.
// LOOKUP_MODE=fixture forces fixtures everywhere, LOOKUP_MODE=live forces
// live providers, and auto picks live only where a real key is configured.
// The social search has no public API and always uses fixture data.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	r := NewRegistry()
	timeout := cfg.ProviderTimeout()

	r.MustRegister(KindPhone, choose(cfg.LookupMode, KindPhone, cfg.NumverifyKey, func() Collaborator {
		return NewPhoneClient(cfg.NumverifyURL, cfg.NumverifyKey, timeout)
	}))
	r.MustRegister(KindEmail, choose(cfg.LookupMode, KindEmail, cfg.ClearbitKey, func() Collaborator {
		return NewEmailClient(cfg.ClearbitURL, cfg.ClearbitKey, timeout)
	}))
	r.MustRegister(KindIP, choose(cfg.LookupMode, KindIP, cfg.IPStackKey, func() Collaborator {
		return NewGeoIPClient(cfg.IPStackURL, cfg.IPStackKey, timeout)
	}))
	r.MustRegister(KindSocial, NewFixtureClient(KindSocial))

	return r
}

func choose(mode string, kind Kind, apiKey string, live func() Collaborator) Collaborator {
	var useFixture bool
	switch mode {
	case config.ModeFixture:
		useFixture = true
	case config.ModeLive:
	default:
		useFixture = apiKey == "" || apiKey == DemoKey
	}

	if useFixture {
		log.Printf("INFO: %s lookups use fixture data", kind)
		return NewFixtureClient(kind)
	}
	log.Printf("INFO: %s lookups use live provider", kind)
	return live()
}
