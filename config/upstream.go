package config

import (
	"fmt"
	"strings"
	"time"
)

// UpstreamMode selects which upstream adapter the gateway talks to.
type UpstreamMode string

const (
	// UpstreamModeAPI talks to the real StoreZ API over HTTP.
	UpstreamModeAPI UpstreamMode = "api"
	// UpstreamModeMock uses the in-process dev upstream (development only).
	UpstreamModeMock UpstreamMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for UpstreamMode.
func (m *UpstreamMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "api", "mock":
		*m = UpstreamMode(v)
		return nil
	default:
		return fmt.Errorf("invalid UpstreamMode: %q (valid options: api, mock)", v)
	}
}

// UpstreamConfig contains settings for the remote StoreZ API.
type UpstreamConfig struct {
	// Mode determines which upstream adapter to use.
	Mode UpstreamMode `env:"MODE" envDefault:"api"`

	// BaseURL is the upstream API root, e.g. "http://localhost:8081/api".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8081/api"`

	// Timeout bounds each upstream request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// CredentialCookie is the name of the upstream session cookie the
	// gateway relays, e.g. "JSESSIONID".
	CredentialCookie string `env:"CREDENTIAL_COOKIE" envDefault:"JSESSIONID"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	u.BaseURL = strings.TrimRight(strings.TrimSpace(u.BaseURL), "/")
	if u.Timeout <= 0 {
		u.Timeout = 10 * time.Second
	}
	if u.CredentialCookie == "" {
		u.CredentialCookie = "JSESSIONID"
	}
}
