// Package config provides configuration for the lookup service.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Lookup modes.
const (
	// ModeAuto uses live providers where a real API key is configured and
	// fixtures everywhere else.
	ModeAuto = "auto"
	// ModeLive always calls provider APIs.
	ModeLive = "live"
	// ModeFixture never leaves the process.
	ModeFixture = "fixture"
)

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:footprintx.db?cache=shared&mode=rwc"`

	// Providers
	LookupMode        string `env:"LOOKUP_MODE" envDefault:"auto"`
	NumverifyKey      string `env:"NUMVERIFY_KEY" envDefault:"demo_key"`
	NumverifyURL      string `env:"NUMVERIFY_URL" envDefault:"http://apilayer.net"`
	ClearbitKey       string `env:"CLEARBIT_KEY" envDefault:"demo_key"`
	ClearbitURL       string `env:"CLEARBIT_URL" envDefault:"https://person.clearbit.com"`
	IPStackKey        string `env:"IPSTACK_KEY" envDefault:"demo_key"`
	IPStackURL        string `env:"IPSTACK_URL" envDefault:"http://api.ipstack.com"`
	ProviderTimeoutMs int    `env:"PROVIDER_TIMEOUT_MS" envDefault:"10000"`
	NameEmailDomain   string `env:"NAME_EMAIL_DOMAIN" envDefault:"@gmail.com"`

	// Pacing (minimum latency before each event is emitted)
	PaceStartMs      int `env:"PACE_START_MS" envDefault:"500"`
	PacePhoneMs      int `env:"PACE_PHONE_MS" envDefault:"800"`
	PaceEmailMs      int `env:"PACE_EMAIL_MS" envDefault:"1200"`
	PaceIPMs         int `env:"PACE_IP_MS" envDefault:"600"`
	PaceNameEmailMs  int `env:"PACE_NAME_EMAIL_MS" envDefault:"1000"`
	PaceNameSocialMs int `env:"PACE_NAME_SOCIAL_MS" envDefault:"1500"`
	PaceEndMs        int `env:"PACE_END_MS" envDefault:"1000"`

	// Policy
	PolicyPath string `env:"POLICY_PATH"`

	// Auth for the submit route; disabled unless both are set
	AuthUsername string `env:"AUTH_USERNAME"`
	AuthPassword string `env:"AUTH_PASSWORD"`

	// History
	HistoryRetentionHours int    `env:"HISTORY_RETENTION_HOURS" envDefault:"168"`
	HistoryPruneSchedule  string `env:"HISTORY_PRUNE_SCHEDULE" envDefault:"@every 1h"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Pacing holds the per-step minimum delays used by the orchestrator.
type Pacing struct {
	Start      time.Duration
	Phone      time.Duration
	Email      time.Duration
	IP         time.Duration
	NameEmail  time.Duration
	NameSocial time.Duration
	End        time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed as env tags.
func (c *Config) Validate() error {
	switch c.LookupMode {
	case ModeAuto, ModeLive, ModeFixture:
	default:
		return fmt.Errorf("invalid LOOKUP_MODE %q (want %s, %s or %s)", c.LookupMode, ModeAuto, ModeLive, ModeFixture)
	}
	if c.HTTPPort <= 0 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	}
	return nil
}

// Pacing returns the configured pacing delays.
func (c *Config) Pacing() Pacing {
	return Pacing{
		Start:      ms(c.PaceStartMs),
		Phone:      ms(c.PacePhoneMs),
		Email:      ms(c.PaceEmailMs),
		IP:         ms(c.PaceIPMs),
		NameEmail:  ms(c.PaceNameEmailMs),
		NameSocial: ms(c.PaceNameSocialMs),
		End:        ms(c.PaceEndMs),
	}
}

// ProviderTimeout returns the HTTP timeout for provider calls.
func (c *Config) ProviderTimeout() time.Duration {
	return ms(c.ProviderTimeoutMs)
}

// HistoryRetention returns how long lookup records are kept.
func (c *Config) HistoryRetention() time.Duration {
	return time.Duration(c.HistoryRetentionHours) * time.Hour
}

// AuthEnabled reports whether basic auth protects the submit route.
func (c *Config) AuthEnabled() bool {
	return c.AuthUsername != "" && c.AuthPassword != ""
}

func ms(v int) time.Duration {
	if v < 0 {
		return 0
	}
	return time.Duration(v) * time.Millisecond
}
